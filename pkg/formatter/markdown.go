package formatter

import (
	"fmt"
	"strings"

	"github.com/eticeo/key-figures/pkg/counter"
	"github.com/eticeo/key-figures/pkg/page"
)

// Report describes the animations of one page run.
type Report struct {
	Source   string
	Elements []ElementReport
}

// ElementReport is the outcome for one number element.
type ElementReport struct {
	ElementID  string
	Extraction counter.Extraction
	Ticks      int64  // ticks rendered until convergence, 0 when not animated
	Final      string // content of the element after the run, empty if it left the page
	Present    bool   // whether the element was still on the page at the end
}

// Animated returns the number of elements that ran an animation.
func (r Report) Animated() int {
	n := 0
	for _, el := range r.Elements {
		if !el.Extraction.Empty() {
			n++
		}
	}
	return n
}

// MaxTicks returns the tick count of the slowest animation.
func (r Report) MaxTicks() int64 {
	var m int64
	for _, el := range r.Elements {
		m = max(m, el.Ticks)
	}
	return m
}

// ToMarkdown renders the report as a markdown document: a summary, an index of the
// elements, then one section per element with its figures.
func ToMarkdown(r Report) string {
	var sb strings.Builder

	sb.WriteString("# Key Figures Animation Report\n\n")
	if r.Source != "" {
		sb.WriteString(fmt.Sprintf("Source: `%s`\n\n", r.Source))
	}

	sb.WriteString(fmt.Sprintf("- **Number elements**: %d\n", len(r.Elements)))
	sb.WriteString(fmt.Sprintf("- **Animated**: %d\n", r.Animated()))
	sb.WriteString(fmt.Sprintf("- **Skipped (no number)**: %d\n", len(r.Elements)-r.Animated()))
	sb.WriteString(fmt.Sprintf("- **Longest animation**: %d ticks\n\n", r.MaxTicks()))

	if len(r.Elements) == 0 {
		return sb.String()
	}

	// Index
	sb.WriteString("## Elements\n\n")
	sb.WriteString("| Element | Block | Line | Figures | Ticks |\n")
	sb.WriteString("|---------|-------|------|---------|-------|\n")
	for _, el := range r.Elements {
		block, line := "-", "-"
		if id, err := page.ParseNumberID(el.ElementID); err == nil {
			block, line = fmt.Sprint(id.Block), fmt.Sprint(id.Line)
		}
		name := el.ElementID
		if name == "" {
			name = "(no id)"
		}
		sb.WriteString(fmt.Sprintf("| [%s](#%s) | %s | %s | %d | %d |\n",
			cell(name), toAnchor(name), block, line, len(el.Extraction.Figures), el.Ticks))
	}
	sb.WriteString("\n")

	// Details
	for _, el := range r.Elements {
		name := el.ElementID
		if name == "" {
			name = "(no id)"
		}
		sb.WriteString(fmt.Sprintf("### %s\n\n", name))
		sb.WriteString(fmt.Sprintf("- **Original**: `%s`\n", inline(el.Extraction.Original)))

		if el.Extraction.Empty() {
			sb.WriteString("- Skipped: no number to animate\n\n")
			continue
		}

		sb.WriteString(fmt.Sprintf("- **Template**: `%s`\n", inline(el.Extraction.Template)))
		if el.Present {
			sb.WriteString(fmt.Sprintf("- **Final**: `%s`\n", inline(el.Final)))
		} else {
			sb.WriteString("- **Final**: element left the page\n")
		}
		sb.WriteString(fmt.Sprintf("- **Ticks**: %d\n\n", el.Ticks))

		sb.WriteString("| Token | Target | Step |\n")
		sb.WriteString("|-------|--------|------|\n")
		for _, f := range el.Extraction.Figures {
			sb.WriteString(fmt.Sprintf("| `%s` | %d | %d |\n", f.Token, f.Target, f.Step))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// toAnchor converts a heading to the anchor markdown renderers generate for it:
// lower case, spaces to hyphens, anything but letters, digits, hyphens and underscores
// removed.
func toAnchor(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")

	var result strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// inline flattens markup to one line so it fits in a code span.
func inline(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "`", "'")
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
