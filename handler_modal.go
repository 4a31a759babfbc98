package tabbase

import (
	"net/http"

	"github.com/dracory/tabbase/internal/crudview"
	"github.com/dracory/tabbase/shared/constants"
)

// handleModal opens, submits or cancels the add/edit form of a tab.
func (a *App) handleModal(action string, w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	_ = r.ParseForm()
	ctx := r.Context()
	tab := a.tabParam(r)

	err := a.workspace.Do(tab, func(v *crudview.View) error {
		var err error
		switch action {
		case constants.ActionAdd:
			_, err = v.OpenAdd()
		case constants.ActionEdit:
			_, err = v.OpenEdit()
		case constants.ActionModalSubmit:
			err = v.Submit(ctx, r.PostForm["value"])
		case constants.ActionModalCancel:
			err = v.Cancel()
		}
		return err
	})

	a.redirect(w, r, action, tab, err, nil)
}
