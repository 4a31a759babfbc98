package crudview

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultReportPath is where Report writes when given no path.
func (v *View) DefaultReportPath() string {
	return filepath.Join(v.opts.reportDir, v.table+"_report.txt")
}

// ReportMessage is the confirmation shown once a report is written.
func ReportMessage(table string) string {
	return fmt.Sprintf("Отчет для таблицы %s успешно создан.", table)
}

// ReportPath resolves name inside the report directory. An empty name gives
// DefaultReportPath and a name without an extension gets ".txt". Absolute
// names and names climbing out of the directory are rejected.
func (v *View) ReportPath(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return v.DefaultReportPath(), nil
	}
	if filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return "", fmt.Errorf("%w: %s", ErrReportPath, name)
	}
	dir := filepath.Clean(v.opts.reportDir)
	path := filepath.Join(dir, name)
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrReportPath, name)
	}
	if filepath.Ext(path) == "" {
		path += ".txt"
	}
	return path, nil
}

// Report writes the table report to name inside the report directory, see
// ReportPath. Returns the path written.
func (v *View) Report(ctx context.Context, name string) (string, error) {
	if err := v.guard(); err != nil {
		return "", err
	}
	path, err := v.ReportPath(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("report dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	if err := v.WriteReport(ctx, f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report: %w", err)
	}

	v.logger.Info("report written", slog.String("path", path))
	return path, nil
}

// WriteReport writes the report text: a header naming the table, the column
// list, one tab-indented line per row from a fresh scan and a footer with a
// fresh COUNT(*).
func (v *View) WriteReport(ctx context.Context, w io.Writer) error {
	if err := v.guard(); err != nil {
		return err
	}
	cols, err := v.store.Columns(ctx, v.table)
	if err != nil {
		return storeErr("report", v.table, err)
	}
	rows, err := v.store.SelectAll(ctx, v.table)
	if err != nil {
		return storeErr("report", v.table, err)
	}
	count, err := v.store.Count(ctx, v.table)
	if err != nil {
		return storeErr("report", v.table, err)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Отчет по таблице: %s\n", v.table)
	fmt.Fprintf(bw, "Столбцы: %s\n", strings.Join(cols, ", "))
	fmt.Fprintln(bw, "Данные:")
	for _, row := range rows {
		fmt.Fprintf(bw, "\t%s\n", strings.Join(row.Cells, ", "))
	}
	fmt.Fprintf(bw, "Количество строк: %d\n", count)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
