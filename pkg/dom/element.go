package dom

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element is a handle on an element node of a Document.
type Element struct {
	n *html.Node
}

// ID returns the element id, or an empty string.
func (e *Element) ID() string {
	return attr(e.n, "id")
}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string {
	return e.n.Data
}

// Attr returns the value of the attribute key and whether it is set.
func (e *Element) Attr(key string) (string, bool) {
	return lookupAttr(e.n, key)
}

// SetAttr sets the attribute key to val, adding it if needed.
func (e *Element) SetAttr(key, val string) {
	for i, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == key {
			e.n.Attr[i].Val = val
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes the attribute key.
func (e *Element) RemoveAttr(key string) {
	e.n.Attr = slices.DeleteFunc(e.n.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == key
	})
}

// HasClass reports whether class is in the class list.
func (e *Element) HasClass(class string) bool {
	return slices.Contains(strings.Fields(attr(e.n, "class")), class)
}

// InnerHTML renders the children of the element.
func (e *Element) InnerHTML() string {
	var buf bytes.Buffer
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return buf.String()
		}
	}
	return buf.String()
}

// SetInnerHTML replaces the children of the element with markup, parsed in the context
// of the element.
func (e *Element) SetInnerHTML(markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), e.n)
	if err != nil {
		return fmt.Errorf("parse fragment for %s: %w", e.describe(), err)
	}

	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		e.n.AppendChild(n)
	}
	return nil
}

// Text returns the concatenated text content of the element.
func (e *Element) Text() string {
	var sb strings.Builder
	walk(e.n, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		return true
	})
	return sb.String()
}

// Value returns the current value of a form control: the value attribute of an input,
// the selected option of a select (the first option when none is marked selected), the
// text of a textarea. Other elements return their value attribute.
func (e *Element) Value() string {
	switch e.n.DataAtom {
	case atom.Select:
		var first, selected *html.Node
		walk(e.n, func(n *html.Node) bool {
			if n.Type != html.ElementNode || n.DataAtom != atom.Option {
				return true
			}
			if first == nil {
				first = n
			}
			if _, ok := lookupAttr(n, "selected"); ok {
				selected = n
				return false
			}
			return true
		})
		if selected == nil {
			selected = first
		}
		if selected == nil {
			return ""
		}
		return optionValue(selected)
	case atom.Textarea:
		return e.Text()
	default:
		return attr(e.n, "value")
	}
}

// Select marks the option carrying value as selected and clears the others.
// It returns false when the element is not a select or no option matches.
func (e *Element) Select(value string) bool {
	if e.n.DataAtom != atom.Select {
		return false
	}

	var options []*html.Node
	walk(e.n, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Option {
			options = append(options, n)
		}
		return true
	})

	idx := slices.IndexFunc(options, func(n *html.Node) bool { return optionValue(n) == value })
	if idx < 0 {
		return false
	}
	for i, n := range options {
		opt := &Element{n: n}
		if i == idx {
			opt.SetAttr("selected", "")
		} else {
			opt.RemoveAttr("selected")
		}
	}
	return true
}

// SetValue changes the value of a form control as a user would: a select gets the
// option carrying value selected, a textarea gets value as its text, any other element
// gets a value attribute. It returns false when a select has no such option.
func (e *Element) SetValue(value string) bool {
	switch e.n.DataAtom {
	case atom.Select:
		return e.Select(value)
	case atom.Textarea:
		for c := e.n.FirstChild; c != nil; c = e.n.FirstChild {
			e.n.RemoveChild(c)
		}
		e.n.AppendChild(&html.Node{Type: html.TextNode, Data: value})
		return true
	default:
		e.SetAttr("value", value)
		return true
	}
}

// Hidden reports whether the inline style sets display to none.
func (e *Element) Hidden() bool {
	v, ok := styleProperty(attr(e.n, "style"), "display")
	return ok && strings.EqualFold(v, "none")
}

// SetHidden sets the inline display to none, or removes the inline display so the
// element falls back to its stylesheet value.
func (e *Element) SetHidden(hidden bool) {
	style := attr(e.n, "style")
	if hidden {
		style = setStyleProperty(style, "display", "none")
	} else {
		style = setStyleProperty(style, "display", "")
	}

	if style == "" {
		e.RemoveAttr("style")
		return
	}
	e.SetAttr("style", style)
}

// Remove detaches the element from the document.
func (e *Element) Remove() {
	if e.n.Parent != nil {
		e.n.Parent.RemoveChild(e.n)
	}
}

func (e *Element) describe() string {
	if id := e.ID(); id != "" {
		return "#" + id
	}
	return "<" + e.n.Data + ">"
}

func optionValue(n *html.Node) string {
	if v, ok := lookupAttr(n, "value"); ok {
		return v
	}
	return strings.TrimSpace((&Element{n: n}).Text())
}

// styleProperty reads one declaration of an inline style attribute.
func styleProperty(style, name string) (string, bool) {
	for _, decl := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if ok && strings.EqualFold(strings.TrimSpace(k), name) {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// setStyleProperty sets one declaration of an inline style attribute, removing it when
// value is empty. Other declarations keep their order.
func setStyleProperty(style, name, value string) string {
	var decls []string
	replaced := false
	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		k, _, _ := strings.Cut(decl, ":")
		if strings.EqualFold(strings.TrimSpace(k), name) {
			if value != "" && !replaced {
				decls = append(decls, name+": "+value)
				replaced = true
			}
			continue
		}
		decls = append(decls, decl)
	}
	if value != "" && !replaced {
		decls = append(decls, name+": "+value)
	}
	if len(decls) == 0 {
		return ""
	}
	return strings.Join(decls, "; ") + ";"
}
