// Package dom is a small in-memory page model on top of golang.org/x/net/html.
// It offers the handful of operations the key figures scripts need: lookup by id,
// class based discovery, inner markup access and inline visibility.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Document is a parsed HTML page. It is not safe for concurrent use.
type Document struct {
	root *html.Node
}

// Parse reads a full HTML page from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString parses a full HTML page held in s.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// ElementByID returns the first element in document order whose id is id.
// The tree is walked on every call, so detached elements are never returned.
func (d *Document) ElementByID(id string) (*Element, bool) {
	if id == "" {
		return nil, false
	}

	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})

	if found == nil {
		return nil, false
	}
	return &Element{n: found}, true
}

// ElementsByIDPrefix returns every element whose id starts with prefix, in document order.
func (d *Document) ElementsByIDPrefix(prefix string) []*Element {
	var out []*Element
	walk(d.root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		if id, ok := lookupAttr(n, "id"); ok && strings.HasPrefix(id, prefix) {
			out = append(out, &Element{n: n})
		}
		return true
	})
	return out
}

// Descendants returns the elements that carry all of classes and have an ancestor
// carrying all of ancestorClasses, in document order. It is the equivalent of the
// selector ".a1.a2 .c1.c2".
func (d *Document) Descendants(ancestorClasses, classes []string) []*Element {
	var out []*Element
	walk(d.root, func(n *html.Node) bool {
		if n.Type != html.ElementNode || !hasClasses(n, classes) {
			return true
		}
		for p := n.Parent; p != nil; p = p.Parent {
			if p.Type == html.ElementNode && hasClasses(p, ancestorClasses) {
				out = append(out, &Element{n: n})
				break
			}
		}
		return true
	})
	return out
}

// Render writes the whole document as HTML to w.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// String renders the document, returning an empty string if rendering fails.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// walk visits n and its descendants depth first. Returning false from fn stops the walk.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func attr(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}

func hasClasses(n *html.Node, classes []string) bool {
	if len(classes) == 0 {
		return false
	}
	have := strings.Fields(attr(n, "class"))
	for _, want := range classes {
		if !slices.Contains(have, want) {
			return false
		}
	}
	return true
}
