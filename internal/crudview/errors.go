package crudview

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSelection is returned by Edit and Delete when no row is selected.
	ErrNoSelection = errors.New("no row selected")
	// ErrNotConfirmed is returned by Delete when the user has not confirmed.
	ErrNotConfirmed = errors.New("deletion not confirmed")
	// ErrModalOpen is returned by every action while a form is open on the tab.
	ErrModalOpen = errors.New("a form is open on this tab")
	// ErrNoModal is returned by Submit and Cancel when no form is open.
	ErrNoModal = errors.New("no form is open")
	// ErrRowOutOfRange is returned by Select for an index outside the grid.
	ErrRowOutOfRange = errors.New("row index out of range")
	// ErrReportPath is returned by Report for a path outside the report directory.
	ErrReportPath = errors.New("report path outside the report directory")
	// ErrUnknownTab is returned by the workspace for a table it did not discover.
	ErrUnknownTab = errors.New("unknown tab")
)

// StoreError reports a statement the database rejected: constraint or
// type violations, a vanished table, a broken connection.
type StoreError struct {
	Op    string
	Table string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op, table string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Table: table, Err: err}
}
