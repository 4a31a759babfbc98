package crudview

import (
	"strings"

	"github.com/samber/lo"
)

// Search highlights the displayed rows having any cell that contains term,
// ignoring case, and clears the highlight of the others. Only rows already
// in the grid are searched. An empty term matches every row.
//
// The selection follows the highlight: a selected row that does not match
// is deselected, and a single match becomes the selection.
func (v *View) Search(term string) (int, error) {
	if err := v.guard(); err != nil {
		return 0, err
	}
	needle := strings.ToLower(term)

	matches := 0
	for i, row := range v.rows {
		hit := lo.SomeBy(row.Cells, func(c string) bool {
			return strings.Contains(strings.ToLower(c), needle)
		})
		v.highlighted[i] = hit
		if hit {
			matches++
		}
	}

	if v.selected >= 0 && !v.highlighted[v.selected] {
		v.selected = -1
	}
	if matches == 1 {
		v.selected = lo.IndexOf(v.highlighted, true)
	}
	return matches, nil
}
