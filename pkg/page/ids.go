// Package page loads rendered course pages and understands the identifiers the key
// figures block gives its elements.
package page

import (
	"fmt"
	"regexp"
	"strconv"
)

// NumberID locates one number element: block instance, tile and row within the tile.
type NumberID struct {
	Instance int
	Block    int
	Line     int
}

// String formats the id the way the block renders it.
func (id NumberID) String() string {
	return fmt.Sprintf("number_%d_%d_%d", id.Instance, id.Block, id.Line)
}

var numberIDPattern = regexp.MustCompile(`^number_([0-9]+)_([0-9]+)_([0-9]+)$`)

// ParseNumberID parses an element id of the form number_<instance>_<block>_<line>.
func ParseNumberID(id string) (NumberID, error) {
	m := numberIDPattern.FindStringSubmatch(id)
	if m == nil {
		return NumberID{}, fmt.Errorf("invalid number element id %q: want number_<instance>_<block>_<line>", id)
	}

	var parts [3]int
	for i := range parts {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return NumberID{}, fmt.Errorf("invalid number element id %q: %w", id, err)
		}
		parts[i] = n
	}

	return NumberID{Instance: parts[0], Block: parts[1], Line: parts[2]}, nil
}
