package crudview

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/dracory/tabbase/internal/store"
)

// ModalKind tells which toolbar action opened the form.
type ModalKind int

const (
	ModalAdd ModalKind = iota + 1
	ModalEdit
)

const (
	titleAdd  = "Добавить строку"
	titleEdit = "Изменить строку"
)

// Field is one labelled text input of a modal form.
type Field struct {
	Column string
	Value  string
}

// Modal is the blocking form collecting one text value per column.
type Modal struct {
	Kind   ModalKind
	Title  string
	Fields []Field
	// Err holds the last rejection from the database, if any.
	Err string

	// original is the pre-edit row used to find it again.
	original []any
}

// OpenAdd opens an empty form with one field per column.
func (v *View) OpenAdd() (*Modal, error) {
	if err := v.guard(); err != nil {
		return nil, err
	}
	v.modal = &Modal{
		Kind:   ModalAdd,
		Title:  titleAdd,
		Fields: lo.Map(v.columns, func(c string, _ int) Field { return Field{Column: c} }),
	}
	return v.Modal(), nil
}

// OpenEdit opens a form pre-filled with the selected row.
func (v *View) OpenEdit() (*Modal, error) {
	if err := v.guard(); err != nil {
		return nil, err
	}
	if v.selected < 0 {
		return nil, ErrNoSelection
	}
	row := v.rows[v.selected]
	v.modal = &Modal{
		Kind:  ModalEdit,
		Title: titleEdit,
		Fields: lo.Map(v.columns, func(c string, i int) Field {
			return Field{Column: c, Value: row.Cells[i]}
		}),
		original: append([]any(nil), row.Values...),
	}
	return v.Modal(), nil
}

// Modal returns a copy of the open form, or nil.
func (v *View) Modal() *Modal {
	if v.modal == nil {
		return nil
	}
	m := *v.modal
	m.Fields = append([]Field(nil), v.modal.Fields...)
	m.original = nil
	return &m
}

// Submit confirms the open form. Add inserts the values into every column
// in schema order; Edit overwrites every column of the rows equal to the
// pre-edit row. On success the form closes and the grid reloads. On a
// database rejection the form stays open with the error and the values.
func (v *View) Submit(ctx context.Context, values []string) error {
	if v.modal == nil {
		return ErrNoModal
	}
	if len(values) != len(v.columns) {
		return fmt.Errorf("%w: %d values for %d columns", store.ErrValueCount, len(values), len(v.columns))
	}
	args := lo.Map(values, func(s string, _ int) any { return s })

	var err error
	switch v.modal.Kind {
	case ModalAdd:
		err = storeErr("insert", v.table, v.store.Insert(ctx, v.table, args))
		if err == nil {
			v.logger.Info("row inserted")
		}
	case ModalEdit:
		var n int64
		n, err = v.store.UpdateMatching(ctx, v.table, args, v.modal.original)
		err = storeErr("update", v.table, err)
		if err == nil {
			v.logger.Info("rows updated", slog.Int64("count", n))
		}
	}

	if err != nil {
		for i := range v.modal.Fields {
			v.modal.Fields[i].Value = values[i]
		}
		v.modal.Err = err.Error()
		v.logger.Warn("form rejected", slog.String("error", err.Error()))
		return err
	}

	v.modal = nil
	return v.reload(ctx)
}

// Cancel closes the open form without touching the database.
func (v *View) Cancel() error {
	if v.modal == nil {
		return ErrNoModal
	}
	v.modal = nil
	return nil
}
