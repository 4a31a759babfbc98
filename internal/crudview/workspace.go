package crudview

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/samber/lo"
)

// Catalog is a Store that can also list its tables.
type Catalog interface {
	Store
	Tables(ctx context.Context) ([]string, error)
}

// Tab binds one table to its view for the lifetime of the process. A tab
// whose table could not be loaded keeps the error and refuses every action.
type Tab struct {
	name string
	view *View
	err  error
}

// Name is the table name shown on the tab.
func (t *Tab) Name() string { return t.name }

// Err is the load failure of the tab, if any.
func (t *Tab) Err() error { return t.err }

// Workspace holds one tab per discovered table. All actions on all tabs run
// one at a time, as if on a single UI thread.
type Workspace struct {
	mu     sync.Mutex
	tabs   []*Tab
	logger *slog.Logger
}

// NewWorkspace discovers every table and builds, loads and populates one
// tab each. Only a failure to list tables is returned; a table that fails
// to load breaks its own tab.
func NewWorkspace(ctx context.Context, cat Catalog, opts ...Option) (*Workspace, error) {
	o := newOptions(opts)
	names, err := cat.Tables(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover tables: %w", err)
	}

	ws := &Workspace{logger: o.logger}
	for _, name := range names {
		tab := &Tab{name: name, view: New(cat, name, opts...)}
		if err := tab.view.Load(ctx); err != nil {
			tab.err = err
		} else if err := tab.view.Populate(ctx); err != nil {
			tab.err = err
		}
		if tab.err != nil {
			o.logger.Error("tab unavailable", slog.String("table", name), slog.String("error", tab.err.Error()))
		}
		ws.tabs = append(ws.tabs, tab)
	}
	o.logger.Info("workspace ready", slog.Int("tabs", len(ws.tabs)))
	return ws, nil
}

// Tabs lists the tabs in discovery order.
func (w *Workspace) Tabs() []*Tab {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]*Tab(nil), w.tabs...)
}

// Names lists the table names in discovery order.
func (w *Workspace) Names() []string {
	return lo.Map(w.Tabs(), func(t *Tab, _ int) string { return t.name })
}

// Do runs fn against the named tab's view, serialized with every other action.
func (w *Workspace) Do(name string, fn func(v *View) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	tab, ok := lo.Find(w.tabs, func(t *Tab) bool { return t.name == name })
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTab, name)
	}
	if tab.err != nil {
		return tab.err
	}
	return fn(tab.view)
}
