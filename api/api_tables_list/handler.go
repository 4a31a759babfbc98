package api_tables_list

import (
	"context"
	"net/http"

	"github.com/dracory/api"

	"github.com/dracory/tabbase/internal/crudview"
)

// Counter returns the live row count of a table.
type Counter interface {
	Count(ctx context.Context, table string) (int64, error)
}

// TablesList lists every tab of the workspace with its columns, the rows on
// display and a fresh row count from the database.
type TablesList struct {
	workspace *crudview.Workspace
	counter   Counter
}

// New creates a new TablesList handler
func New(ws *crudview.Workspace, counter Counter) *TablesList {
	return &TablesList{workspace: ws, counter: counter}
}

// Handle processes the request to list the tables
func (h *TablesList) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.Respond(w, r, api.Error("method not allowed"))
		return
	}

	ctx := r.Context()
	tables := make([]map[string]any, 0, len(h.workspace.Names()))

	for _, tab := range h.workspace.Tabs() {
		entry := map[string]any{
			"name": tab.Name(),
		}
		if tab.Err() != nil {
			entry["error"] = tab.Err().Error()
			tables = append(tables, entry)
			continue
		}

		_ = h.workspace.Do(tab.Name(), func(v *crudview.View) error {
			entry["columns"] = v.Columns()
			entry["displayed"] = v.RowCount()
			return nil
		})

		count, err := h.counter.Count(ctx, tab.Name())
		if err != nil {
			entry["error"] = err.Error()
		} else {
			entry["count"] = count
		}
		tables = append(tables, entry)
	}

	api.Respond(w, r, api.SuccessWithData("tables_listed", map[string]any{
		"tables": tables,
		"count":  len(tables),
	}))
}
