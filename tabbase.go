// Package tabbase serves a tabbed CRUD front-end over every table of one
// database. Each table gets a tab with a grid and the same toolbar:
// refresh, sort, select, search, add, edit, delete and report.
package tabbase

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dracory/api"

	"github.com/dracory/tabbase/api/api_rows"
	"github.com/dracory/tabbase/api/api_tables_list"
	"github.com/dracory/tabbase/internal/crudview"
	"github.com/dracory/tabbase/shared/constants"
	"github.com/dracory/tabbase/shared/types"
	"github.com/dracory/tabbase/shared/urls"
)

// App represents the main application instance
type App struct {
	config    types.Config
	catalog   crudview.Catalog
	workspace *crudview.Workspace
	urls      urls.Builder
	logger    *slog.Logger
}

// New builds the workspace over every table of cat and returns the app
// serving it. The configuration should be loaded using LoadConfig() from
// config.go. Only a failure to list the tables is returned.
func New(ctx context.Context, cfg types.Config, cat crudview.Catalog, options ...Option) (*App, error) {
	// Apply any option functions to the config
	for _, option := range options {
		option(&cfg)
	}
	cfg = withDefaults(cfg)

	logger := slog.Default()
	ws, err := crudview.NewWorkspace(ctx, cat,
		crudview.WithLogger(logger),
		crudview.WithReportDir(cfg.ReportDir),
	)
	if err != nil {
		return nil, err
	}

	return &App{
		config:    cfg,
		catalog:   cat,
		workspace: ws,
		urls:      urls.New(cfg.BasePath, cfg.ActionParam),
		logger:    logger,
	}, nil
}

// Workspace returns the tabs the app serves.
func (a *App) Workspace() *crudview.Workspace { return a.workspace }

// Handler returns an http.Handler that serves the UI and the JSON API
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(a.config.BasePath, a.handleRequest)
	return securityHeaders(mux)
}

// handleRequest routes requests to the appropriate handler
func (a *App) handleRequest(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get(a.config.ActionParam)

	if r.Method == http.MethodPost {
		if err := CheckCSRF(r, a.config.SessionSecret); err != nil {
			a.logger.Warn("csrf check failed",
				slog.String("id", GetRequestID(r.Context())),
				slog.String("action", action),
				slog.String("reason", err.Error()),
			)
			http.Error(w, "invalid CSRF token", http.StatusForbidden)
			return
		}
	}

	switch action {
	// Page and assets
	case "", constants.ActionHome:
		a.handleHome(w, r)
	case constants.ActionAssetCSS:
		a.handleAssetCSS(w, r)
	case constants.ActionHealthz:
		api.Respond(w, r, api.Success("ok"))

	// Toolbar
	case constants.ActionRefresh,
		constants.ActionSort,
		constants.ActionSelect,
		constants.ActionSearch,
		constants.ActionDelete:
		a.handleToolbar(action, w, r)
	case constants.ActionAdd,
		constants.ActionEdit,
		constants.ActionModalSubmit,
		constants.ActionModalCancel:
		a.handleModal(action, w, r)
	case constants.ActionReport:
		a.handleReport(w, r)
	case constants.ActionReportDownload:
		a.handleReportDownload(w, r)

	// API Handlers
	case constants.ActionApiTablesList:
		api_tables_list.New(a.workspace, a.catalog).Handle(w, r)
	case constants.ActionApiRows:
		api_rows.New(a.workspace).Handle(w, r)

	default:
		http.Redirect(w, r, a.urls.Home(), http.StatusFound)
	}
}

// tabParam is the tab an action targets, the first tab when none is given.
func (a *App) tabParam(r *http.Request) string {
	if tab := r.FormValue("tab"); tab != "" {
		return tab
	}
	names := a.workspace.Names()
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// redirect sends the browser back to tab, with a dialog when the outcome
// of action calls for one.
func (a *App) redirect(w http.ResponseWriter, r *http.Request, action, tab string, err error, params map[string]string) {
	if params == nil {
		params = map[string]string{}
	}
	if level, message, ok := noticeFor(action, err); ok {
		params["level"] = level
		params["notice"] = message
		a.logger.Warn("action failed",
			slog.String("id", GetRequestID(r.Context())),
			slog.String("action", action),
			slog.String("tab", tab),
			slog.String("error", err.Error()),
		)
	}
	http.Redirect(w, r, a.urls.Tab(tab, params), http.StatusSeeOther)
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodPost {
		return true
	}
	w.Header().Set("Allow", http.MethodPost)
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	return false
}
