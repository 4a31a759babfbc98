package api_rows

import (
	"net/http"

	"github.com/dracory/api"

	"github.com/dracory/tabbase/internal/crudview"
)

// Rows returns the grid of one tab as it is currently displayed: rows in
// display order, the selection, the search highlight and the sort state.
type Rows struct {
	workspace *crudview.Workspace
}

// New creates a new Rows handler
func New(ws *crudview.Workspace) *Rows {
	return &Rows{workspace: ws}
}

// Handle processes the request
func (h *Rows) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.Respond(w, r, api.Error("api_rows must be GET"))
		return
	}

	tab := r.URL.Query().Get("tab")
	if tab == "" {
		api.Respond(w, r, api.Error("tab is required"))
		return
	}

	var g crudview.Grid
	err := h.workspace.Do(tab, func(v *crudview.View) error {
		g = v.Grid()
		return nil
	})
	if err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	data := map[string]any{
		"table":       g.Table,
		"columns":     g.Columns,
		"rows":        g.Rows,
		"count":       len(g.Rows),
		"selected":    g.Selected,
		"highlighted": g.Highlighted,
		"sort_column": g.SortColumn,
		"sort_desc":   g.SortDesc,
		"modal_open":  g.Modal != nil,
	}
	api.Respond(w, r, api.SuccessWithData("rows_listed", data))
}
