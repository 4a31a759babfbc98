package tabbase

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/dracory/tabbase/internal/crudview"
	"github.com/dracory/tabbase/shared/constants"
)

// handleReport writes the tab's report to the path the user typed, or to
// the default file when the field is left empty.
func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	ctx := r.Context()
	tab := a.tabParam(r)

	var written string
	err := a.workspace.Do(tab, func(v *crudview.View) error {
		var err error
		written, err = v.Report(ctx, r.PostFormValue("path"))
		return err
	})
	if err != nil {
		a.redirect(w, r, constants.ActionReport, tab, err, nil)
		return
	}

	a.logger.Info("report created",
		slog.String("id", GetRequestID(ctx)),
		slog.String("tab", tab),
		slog.String("path", written),
	)
	http.Redirect(w, r, a.urls.Notice(tab, constants.NoticeInfo, crudview.ReportMessage(tab)+" "+written), http.StatusSeeOther)
}

// handleReportDownload streams the tab's report as a text file.
func (a *App) handleReportDownload(w http.ResponseWriter, r *http.Request) {
	tab := a.tabParam(r)

	var buf bytes.Buffer
	err := a.workspace.Do(tab, func(v *crudview.View) error {
		return v.WriteReport(r.Context(), &buf)
	})
	if err != nil {
		a.redirect(w, r, constants.ActionReportDownload, tab, err, nil)
		return
	}

	filename := tab + "_report.txt"
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="report.txt"; filename*=UTF-8''`+url.PathEscape(filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
