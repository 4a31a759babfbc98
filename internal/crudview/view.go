// Package crudview binds one database table to a grid with a uniform CRUD
// toolbar: populate, sort, select, search, add, edit, delete and report.
//
// A View keeps no model of its own beyond what the grid currently shows.
// Every mutation issues one statement and then re-reads the table, so the
// database stays the only source of truth.
package crudview

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/dracory/tabbase/internal/store"
)

// Store is the database surface a View needs.
type Store interface {
	Columns(ctx context.Context, table string) ([]string, error)
	SelectAll(ctx context.Context, table string) ([]store.Row, error)
	SelectOrdered(ctx context.Context, table, column string, desc bool) ([]store.Row, error)
	Insert(ctx context.Context, table string, values []any) error
	DeleteMatching(ctx context.Context, table string, match []any) (int64, error)
	UpdateMatching(ctx context.Context, table string, values, match []any) (int64, error)
	Count(ctx context.Context, table string) (int64, error)
}

var _ Store = (*store.Store)(nil)

// Option configures a View or a Workspace.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	reportDir string
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithReportDir sets the directory every report is written under.
func WithReportDir(dir string) Option {
	return func(o *options) { o.reportDir = dir }
}

func newOptions(opts []Option) options {
	o := options{logger: slog.Default(), reportDir: "."}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// View is the grid state of one tab.
type View struct {
	store  Store
	table  string
	opts   options
	logger *slog.Logger

	columns     []string
	rows        []store.Row
	selected    int
	highlighted []bool

	// nextDesc holds, per column, the direction the next header activation sorts in.
	nextDesc   map[string]bool
	sortColumn string
	sortDesc   bool

	modal *Modal
}

// New creates a view over one table. Call Load before anything else.
func New(st Store, table string, opts ...Option) *View {
	o := newOptions(opts)
	return &View{
		store:    st,
		table:    table,
		opts:     o,
		logger:   o.logger.With(slog.String("table", table)),
		selected: -1,
		nextDesc: map[string]bool{},
	}
}

// Table returns the bound table name.
func (v *View) Table() string { return v.table }

// Columns returns the column names in schema order.
func (v *View) Columns() []string { return append([]string(nil), v.columns...) }

// Load introspects the table's columns. A missing table fails this view only.
// Sort toggles of columns that no longer exist are dropped.
func (v *View) Load(ctx context.Context) error {
	cols, err := v.store.Columns(ctx, v.table)
	if err != nil {
		return storeErr("load", v.table, err)
	}
	v.columns = cols
	for c := range v.nextDesc {
		if !lo.Contains(cols, c) {
			delete(v.nextDesc, c)
		}
	}
	return nil
}

// Populate re-introspects the columns and re-reads the whole table in store
// order, dropping selection and search highlight.
func (v *View) Populate(ctx context.Context) error {
	if err := v.guard(); err != nil {
		return err
	}
	return v.reload(ctx)
}

func (v *View) reload(ctx context.Context) error {
	if err := v.Load(ctx); err != nil {
		return err
	}
	rows, err := v.store.SelectAll(ctx, v.table)
	if err != nil {
		return storeErr("populate", v.table, err)
	}
	v.replace(rows)
	v.sortColumn, v.sortDesc = "", false
	return nil
}

// Sort re-reads the table ordered by column and flips that column's toggle
// so the next header activation reverses direction. Ties fall in whatever
// order the database picks.
func (v *View) Sort(ctx context.Context, column string, desc bool) error {
	if err := v.guard(); err != nil {
		return err
	}
	if !lo.Contains(v.columns, column) {
		return fmt.Errorf("%w: %s", store.ErrUnknownColumn, column)
	}
	rows, err := v.store.SelectOrdered(ctx, v.table, column, desc)
	if err != nil {
		return storeErr("sort", v.table, err)
	}
	v.replace(rows)
	v.sortColumn, v.sortDesc = column, desc
	v.nextDesc[column] = !desc
	v.logger.Debug("sorted", slog.String("column", column), slog.Bool("desc", desc))
	return nil
}

// ToggleSort is the header click: ascending first, then alternating.
func (v *View) ToggleSort(ctx context.Context, column string) error {
	return v.Sort(ctx, column, v.nextDesc[column])
}

// Select makes one row the selection.
func (v *View) Select(index int) error {
	if err := v.guard(); err != nil {
		return err
	}
	if index < 0 || index >= len(v.rows) {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, index)
	}
	v.selected = index
	return nil
}

// ClearSelection drops the selection.
func (v *View) ClearSelection() { v.selected = -1 }

// Selected returns the selected row index.
func (v *View) Selected() (int, bool) {
	return v.selected, v.selected >= 0
}

// Delete removes the selected row after confirmation. Rows are matched on
// every column, so rows identical to the selection go with it. Returns the
// number of rows removed.
func (v *View) Delete(ctx context.Context, confirmed bool) (int64, error) {
	if err := v.guard(); err != nil {
		return 0, err
	}
	if v.selected < 0 {
		return 0, ErrNoSelection
	}
	if !confirmed {
		return 0, ErrNotConfirmed
	}

	match := v.rows[v.selected].Values
	n, err := v.store.DeleteMatching(ctx, v.table, match)
	if err != nil {
		return 0, storeErr("delete", v.table, err)
	}
	v.logger.Info("rows deleted", slog.Int64("count", n))
	return n, v.reload(ctx)
}

// RowCount is the number of rows on display.
func (v *View) RowCount() int { return len(v.rows) }

// Grid is a read-only snapshot of what the tab renders.
type Grid struct {
	Table       string
	Columns     []string
	Rows        [][]string
	Selected    int
	Highlighted []bool
	SortColumn  string
	SortDesc    bool
	// NextDesc tells, per column, which way the next header click sorts.
	NextDesc map[string]bool
	Modal    *Modal
}

// Grid returns a snapshot of the current grid state.
func (v *View) Grid() Grid {
	g := Grid{
		Table:       v.table,
		Columns:     v.Columns(),
		Rows:        lo.Map(v.rows, func(r store.Row, _ int) []string { return append([]string(nil), r.Cells...) }),
		Selected:    v.selected,
		Highlighted: append([]bool(nil), v.highlighted...),
		SortColumn:  v.sortColumn,
		SortDesc:    v.sortDesc,
		NextDesc:    make(map[string]bool, len(v.columns)),
		Modal:       v.Modal(),
	}
	for _, c := range v.columns {
		g.NextDesc[c] = v.nextDesc[c]
	}
	return g
}

func (v *View) replace(rows []store.Row) {
	v.rows = rows
	v.selected = -1
	v.highlighted = make([]bool, len(rows))
}

// guard keeps the grid inert while a form is open.
func (v *View) guard() error {
	if v.modal != nil {
		return ErrModalOpen
	}
	return nil
}
