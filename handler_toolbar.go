package tabbase

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dracory/tabbase/internal/crudview"
	"github.com/dracory/tabbase/shared/constants"
)

// handleToolbar runs one grid action on the tab and redirects back to it.
func (a *App) handleToolbar(action string, w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	ctx := r.Context()
	tab := a.tabParam(r)
	params := map[string]string{}

	err := a.workspace.Do(tab, func(v *crudview.View) error {
		switch action {
		case constants.ActionRefresh:
			return v.Populate(ctx)

		case constants.ActionSort:
			return v.ToggleSort(ctx, r.PostFormValue("column"))

		case constants.ActionSelect:
			row := r.PostFormValue("row")
			i, err := strconv.Atoi(row)
			if err != nil {
				return fmt.Errorf("%w: %q", crudview.ErrRowOutOfRange, row)
			}
			return v.Select(i)

		case constants.ActionSearch:
			term := r.PostFormValue("term")
			params["term"] = term
			_, err := v.Search(term)
			return err

		case constants.ActionDelete:
			_, err := v.Delete(ctx, r.PostFormValue("confirm") == "yes")
			return err
		}
		return nil
	})

	if errors.Is(err, crudview.ErrNotConfirmed) {
		params["confirm"] = constants.ActionDelete
	}
	a.redirect(w, r, action, tab, err, params)
}
