// Package testutil provides database and logging helpers for tests.
package testutil

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dracory/tabbase/internal/seed"
	"github.com/dracory/tabbase/internal/store"
)

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// NewStore opens an empty SQLite file in a temp dir. It is closed on cleanup.
func NewStore(t testing.TB) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	st, err := store.Open(context.Background(), "sqlite", path, false, NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// NewSeededStore opens a SQLite file holding the IT company sample data.
func NewSeededStore(t testing.TB) *store.Store {
	t.Helper()
	st := NewStore(t)
	require.NoError(t, seed.Run(context.Background(), st.DB()))
	return st
}
