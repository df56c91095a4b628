// Package editform keeps the block settings form readable: only the tile sections and
// the number rows that will actually be displayed are shown.
//
// The host wires it explicitly: call [Open] once the form is on the page, then
// [HandleChange] with the id of every select whose value changed.
package editform

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/eticeo/key-figures/pkg/dom"
)

// Element id conventions of the settings form.
const (
	BlockNumberPrefix = "id_config_block_number"
	LineNumberPrefix  = "id_config_line_number_"
	HeaderPrefix      = "id_configheader"
	NumberItemPrefix  = "fitem_id_config_number_"
	CaptionItemPrefix = "fitem_id_config_number_caption_"
)

// ManageLines shows the elements whose id is targetPrefix followed by a number up to the
// integer value of selector, and hides those above it. Elements whose id has no number
// right after the prefix are left alone. The value is read from its leading integer
// ("3 rows" is 3); a value without one shows every numbered element.
func ManageLines(doc *dom.Document, selector *dom.Element, targetPrefix string) {
	limit, limited := leadingInt(selector.Value())

	numbered := regexp.MustCompile(`^` + regexp.QuoteMeta(targetPrefix) + `(\d+)(?:\D|$)`)
	for _, el := range doc.ElementsByIDPrefix(targetPrefix) {
		m := numbered.FindStringSubmatch(el.ID())
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		el.SetHidden(limited && num > limit)
	}
}

// ChangeLine applies the number of rows chosen in a tile's line selector
// (id_config_line_number_<block>) to that tile's number and caption rows.
// It returns false when the selector id does not name a tile.
func ChangeLine(doc *dom.Document, lineSelector *dom.Element) bool {
	block, ok := blockOf(lineSelector.ID())
	if !ok {
		return false
	}

	ManageLines(doc, lineSelector, NumberItemPrefix+block+"_")
	ManageLines(doc, lineSelector, CaptionItemPrefix+block+"_")
	return true
}

// Open runs every rule once, as done when the settings form is first displayed.
func Open(doc *dom.Document) {
	for _, el := range doc.ElementsByIDPrefix(BlockNumberPrefix) {
		ManageLines(doc, el, HeaderPrefix)
	}
	for _, el := range doc.ElementsByIDPrefix(LineNumberPrefix) {
		ChangeLine(doc, el)
	}
}

// HandleChange runs the rule attached to the element id after its value changed.
// It returns false when id is not on the page or has no rule.
func HandleChange(doc *dom.Document, id string) bool {
	el, ok := doc.ElementByID(id)
	if !ok {
		return false
	}

	switch {
	case strings.HasPrefix(id, BlockNumberPrefix):
		ManageLines(doc, el, HeaderPrefix)
		return true
	case strings.HasPrefix(id, LineNumberPrefix):
		return ChangeLine(doc, el)
	default:
		return false
	}
}

func blockOf(id string) (string, bool) {
	rest, ok := strings.CutPrefix(id, LineNumberPrefix)
	if !ok {
		return "", false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return "", false
	}
	return strconv.Itoa(n), true
}

// leadingInt reads an optionally signed integer at the start of s after leading
// whitespace, ignoring whatever follows it. It reports false when s starts with no digit.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v")

	neg := false
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		neg, s = true, rest
	} else {
		s = strings.TrimPrefix(s, "+")
	}

	end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if end < 0 {
		end = len(s)
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Too many digits for an int: no row number can exceed it.
		if neg {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	if neg {
		n = -n
	}
	return n, true
}
