package tabbase

import (
	"embed"
	"net/http"
	"path/filepath"

	"github.com/dracory/tabbase/internal/crudview"
	"github.com/dracory/tabbase/pages/page_workspace"
	"github.com/dracory/tabbase/shared"
)

//go:embed assets/style.css
var assetsFS embed.FS

// handleHome renders the tabbed page with the requested tab active.
func (a *App) handleHome(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := page_workspace.Options{
		URLs:          a.urls,
		CSRFToken:     EnsureCSRFCookie(w, r, a.config.SessionSecret),
		Active:        a.tabParam(r),
		Term:          q.Get("term"),
		ConfirmDelete: q.Get("confirm") != "",
		Notice: page_workspace.Notice{
			Level:   q.Get("level"),
			Message: q.Get("notice"),
		},
	}

	for _, t := range a.workspace.Tabs() {
		info := page_workspace.TabInfo{Name: t.Name()}
		if t.Err() != nil {
			info.Err = t.Err().Error()
		}
		opts.Tabs = append(opts.Tabs, info)
	}

	_ = a.workspace.Do(opts.Active, func(v *crudview.View) error {
		g := v.Grid()
		opts.Grid = &g
		opts.DefaultReportPath = filepath.Base(v.DefaultReportPath())
		return nil
	})

	html := page_workspace.Render(opts)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// handleAssetCSS serves the embedded stylesheet.
func (a *App) handleAssetCSS(w http.ResponseWriter, r *http.Request) {
	css, err := shared.EmbeddedFileToString(assetsFS, "assets/style.css")
	if err != nil {
		http.Error(w, "asset not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(css))
}
