// Package store is the single database handle shared by every tab. It
// issues the handful of statement shapes the CRUD views need, binds every
// value as a parameter and only lets table and column names through after
// checking them against the introspected schema.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/dracory/tabbase/shared/driver"
)

var (
	// ErrTableNotFound is returned when a table is not in the schema.
	ErrTableNotFound = errors.New("table not found")
	// ErrUnknownColumn is returned when a column is not in the table's schema.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrValueCount is returned when the number of values differs from the number of columns.
	ErrValueCount = errors.New("value count does not match column count")
)

// Store wraps the process-wide connection.
type Store struct {
	db     *gorm.DB
	driver string
	logger *slog.Logger
}

// New wraps an already opened gorm connection.
func New(db *gorm.DB, driverName string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, driver: driver.Normalize(driverName), logger: logger}
}

// Open connects to the database and verifies the connection with a ping.
func Open(ctx context.Context, driverName, dsn string, debug bool, logger *slog.Logger) (*Store, error) {
	db, err := driver.OpenDBWithDSN(driverName, dsn, debug)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return New(db, driverName, logger), nil
}

// DB exposes the underlying gorm handle.
func (s *Store) DB() *gorm.DB { return s.db }

// Driver returns the canonical driver name.
func (s *Store) Driver() string { return s.driver }

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Tables lists the user tables of the connected database.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	var tables []string
	if err := s.db.WithContext(ctx).Raw(tablesQuery(s.driver)).Scan(&tables).Error; err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

// Columns lists the table's column names in schema-declaration order.
func (s *Store) Columns(ctx context.Context, table string) ([]string, error) {
	var cols []string
	if err := s.db.WithContext(ctx).Raw(columnsQuery(s.driver), table).Scan(&cols).Error; err != nil {
		return nil, fmt.Errorf("columns of %s: %w", table, err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	return cols, nil
}

// SelectAll returns every row in whatever order the database yields them.
func (s *Store) SelectAll(ctx context.Context, table string) ([]Row, error) {
	if _, err := s.Columns(ctx, table); err != nil {
		return nil, err
	}
	return s.query(ctx, "SELECT * FROM "+s.quote(table))
}

// SelectOrdered returns every row ordered by one column.
func (s *Store) SelectOrdered(ctx context.Context, table, column string, desc bool) ([]Row, error) {
	cols, err := s.Columns(ctx, table)
	if err != nil {
		return nil, err
	}
	if !lo.Contains(cols, column) {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, table, column)
	}
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	return s.query(ctx, "SELECT * FROM "+s.quote(table)+" ORDER BY "+s.quote(column)+" "+dir)
}

// Insert writes one row, values in schema order.
func (s *Store) Insert(ctx context.Context, table string, values []any) error {
	cols, err := s.Columns(ctx, table)
	if err != nil {
		return err
	}
	if len(values) != len(cols) {
		return fmt.Errorf("%w: %d values for %d columns", ErrValueCount, len(values), len(cols))
	}
	ph := strings.Repeat("?, ", len(values))
	sqlStr := "INSERT INTO " + s.quote(table) + " VALUES (" + strings.TrimSuffix(ph, ", ") + ")"
	if err := s.exec(ctx, sqlStr, values...); err != nil {
		return err
	}
	s.logger.Debug("row inserted", slog.String("table", table))
	return nil
}

// DeleteMatching deletes every row equal to match on all columns and
// returns the number of rows removed.
func (s *Store) DeleteMatching(ctx context.Context, table string, match []any) (int64, error) {
	cols, err := s.Columns(ctx, table)
	if err != nil {
		return 0, err
	}
	if len(match) != len(cols) {
		return 0, fmt.Errorf("%w: %d values for %d columns", ErrValueCount, len(match), len(cols))
	}
	sqlStr := "DELETE FROM " + s.quote(table) + " WHERE " + s.where(cols)
	res := s.db.WithContext(ctx).Exec(sqlStr, match...)
	if res.Error != nil {
		return 0, res.Error
	}
	s.logger.Debug("rows deleted", slog.String("table", table), slog.Int64("count", res.RowsAffected))
	return res.RowsAffected, nil
}

// UpdateMatching sets every column to values on the rows equal to match
// on all columns and returns the number of rows changed.
func (s *Store) UpdateMatching(ctx context.Context, table string, values, match []any) (int64, error) {
	cols, err := s.Columns(ctx, table)
	if err != nil {
		return 0, err
	}
	if len(values) != len(cols) || len(match) != len(cols) {
		return 0, fmt.Errorf("%w: %d/%d values for %d columns", ErrValueCount, len(values), len(match), len(cols))
	}
	sets := lo.Map(cols, func(c string, _ int) string { return s.quote(c) + " = ?" })
	sqlStr := "UPDATE " + s.quote(table) + " SET " + strings.Join(sets, ", ") + " WHERE " + s.where(cols)

	args := make([]any, 0, len(values)+len(match))
	args = append(args, values...)
	args = append(args, match...)

	res := s.db.WithContext(ctx).Exec(sqlStr, args...)
	if res.Error != nil {
		return 0, res.Error
	}
	s.logger.Debug("rows updated", slog.String("table", table), slog.Int64("count", res.RowsAffected))
	return res.RowsAffected, nil
}

// Count returns SELECT COUNT(*) for the table.
func (s *Store) Count(ctx context.Context, table string) (int64, error) {
	if _, err := s.Columns(ctx, table); err != nil {
		return 0, err
	}
	var n int64
	if err := s.db.WithContext(ctx).Raw("SELECT COUNT(*) FROM " + s.quote(table)).Scan(&n).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

func (s *Store) query(ctx context.Context, sqlStr string) ([]Row, error) {
	rows, err := s.db.WithContext(ctx).Raw(sqlStr).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

func (s *Store) exec(ctx context.Context, sqlStr string, args ...any) error {
	return s.db.WithContext(ctx).Exec(sqlStr, args...).Error
}

func (s *Store) quote(ident string) string {
	return driver.QuoteIdent(s.driver, ident)
}

// where builds c1 = ? AND c2 = ? ... over every column.
func (s *Store) where(cols []string) string {
	preds := lo.Map(cols, func(c string, _ int) string { return s.quote(c) + " = ?" })
	return strings.Join(preds, " AND ")
}
