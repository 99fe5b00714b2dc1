package http

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"reconboard/internal/aggregate"
	"reconboard/internal/core"
	"reconboard/internal/log"
	"reconboard/internal/view"
)

// breakdownRow is one entry of the status pie rendered as a bar.
type breakdownRow struct {
	Name    string
	Status  core.SettlementStatus
	Value   int64
	Percent int
}

// totalRow is one bar of the amount-by-status chart.
type totalRow struct {
	Status  core.SettlementStatus
	Total   core.Amount
	Percent int
}

type summaryViewData struct {
	view.SummarySnapshot
	Breakdown []breakdownRow
	Totals    []totalRow
	Statuses  []core.SettlementStatus
}

type transactionsViewData struct {
	view.TransactionsSnapshot
	Statuses []core.SettlementStatus
}

func (s *Server) handleWelcome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "welcome.html", nil)
}

func (s *Server) handleSummaryPage(w http.ResponseWriter, r *http.Request) {
	s.refreshSummary(r)
	s.render(w, r, "summary.html", s.summaryData())
}

// handleSummaryPartial re-renders the summary content for htmx swaps
// driven by the filter control or the reconcile trigger.
func (s *Server) handleSummaryPartial(w http.ResponseWriter, r *http.Request) {
	s.refreshSummary(r)
	body, err := s.renderToBuffer("summary_content", s.summaryData())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "summary partial render failed",
			log.FieldOperation, log.OpRender, log.FieldError, err)
		InternalServerError("could not render summary").Write(w)
		return
	}
	NewHTMXResponse().BodyHTML(body).Write(w)
}

func (s *Server) handleTransactionsPage(w http.ResponseWriter, r *http.Request) {
	s.refreshTransactions(r)
	s.render(w, r, "transactions.html", s.transactionsData())
}

func (s *Server) handleTransactionsPartial(w http.ResponseWriter, r *http.Request) {
	s.refreshTransactions(r)
	data := s.transactionsData()
	body, err := s.renderToBuffer("transactions_content", data)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "transactions partial render failed",
			log.FieldOperation, log.OpRender, log.FieldError, err)
		InternalServerError("could not render transactions").Write(w)
		return
	}
	NewHTMXResponse().TriggerFilterChanged(data.Filter).BodyHTML(body).Write(w)
}

// handleTransactionDetail renders one transaction with its settlements. A
// detail page never shows a transaction without settlements; it is loaded
// fresh on every visit.
func (s *Server) handleTransactionDetail(w http.ResponseWriter, r *http.Request) {
	id := sanitizeInput(mux.Vars(r)["id"])

	detail := view.NewDetailController(s.engine, s.logger)
	detail.Load(r.Context(), id)
	snap := detail.Snapshot()

	data := struct {
		view.DetailSnapshot
		Trend []aggregate.TrendPoint
	}{
		DetailSnapshot: snap,
		Trend:          aggregate.SettlementTrend(snap.Detail.Settlements),
	}

	switch snap.State {
	case view.StateNotFound:
		w.WriteHeader(http.StatusNotFound)
	case view.StateError:
		w.WriteHeader(http.StatusBadGateway)
	}
	s.render(w, r, "detail.html", data)
}

// handleUpload forwards a settlement file to the engine and re-renders
// the summary content. The engine's verdict comes back as an htmx
// notification: the report counts on success, the server's message
// verbatim on rejection.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, s.uploadMaxBytes)
	if err := r.ParseMultipartForm(s.uploadMaxBytes); err != nil {
		s.logger.WarnContext(ctx, "upload form parse failed", log.FieldError, err)
		BadRequestError("The uploaded file could not be read. Check the file size and try again.").Write(w)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		BadRequestError("Select a settlement CSV file to upload.").Write(w)
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		s.logger.ErrorContext(ctx, "upload read failed", log.FieldError, err)
		InternalServerError("could not read uploaded file").Write(w)
		return
	}
	filename := sanitizeInput(header.Filename)
	if filename == "" {
		filename = "settlement_report.csv"
	}

	if s.metrics != nil {
		s.metrics.UploadStarted()
		defer s.metrics.UploadFinished()
	}

	if err := s.summary.Upload(ctx, filename, payload); err != nil {
		// A second upload while one is running is refused, not queued.
		ErrorResponse(http.StatusConflict, err.Error()).Write(w)
		return
	}

	data := s.summaryData()
	body, renderErr := s.renderToBuffer("summary_content", data)
	if renderErr != nil {
		s.logger.ErrorContext(ctx, "summary render after upload failed",
			log.FieldOperation, log.OpRender, log.FieldError, renderErr)
		InternalServerError("could not render summary").Write(w)
		return
	}

	resp := NewHTMXResponse().BodyHTML(body)
	switch data.Notice.Kind {
	case view.NoticeSuccess:
		report := data.Notice.Report
		resp.TriggerReconcileCompleted(report.ProcessedRows, report.MatchedRows, report.UnmatchedCount()).
			TriggerSuccessNotification(fmt.Sprintf("Reconciliation completed: %d rows processed, %d matched.",
				report.ProcessedRows, report.MatchedRows))
	case view.NoticeError:
		resp.TriggerErrorNotification(data.Notice.Message)
	}
	resp.Write(w)
}

// refreshSummary drives the summary controller from the request: a
// status parameter is a filter-change event, its absence a plain mount.
func (s *Server) refreshSummary(r *http.Request) {
	if status, ok := r.URL.Query()["status"]; ok {
		s.summary.SetFilter(r.Context(), sanitizeInput(status[0]))
		return
	}
	s.summary.Refresh(r.Context())
}

func (s *Server) refreshTransactions(r *http.Request) {
	if status, ok := r.URL.Query()["status"]; ok {
		s.transactions.SetFilter(r.Context(), sanitizeInput(status[0]))
		return
	}
	s.transactions.Refresh(r.Context())
}

func (s *Server) summaryData() summaryViewData {
	snap := s.summary.Snapshot()
	return summaryViewData{
		SummarySnapshot: snap,
		Breakdown:       breakdownRows(snap.Stats),
		Totals:          totalRows(snap.Transactions),
		Statuses:        core.AllStatuses(),
	}
}

func (s *Server) transactionsData() transactionsViewData {
	return transactionsViewData{
		TransactionsSnapshot: s.transactions.Snapshot(),
		Statuses:             core.AllStatuses(),
	}
}

func breakdownRows(stats core.SummaryStats) []breakdownRow {
	entries := aggregate.BreakdownByStatus(stats)
	var total int64
	for _, e := range entries {
		total += e.Value
	}
	rows := make([]breakdownRow, 0, len(entries))
	for _, e := range entries {
		percent := 0
		if total > 0 {
			percent = int(e.Value * 100 / total)
		}
		rows = append(rows, breakdownRow{
			Name:    statusLabel(core.SettlementStatus(e.Name)),
			Status:  core.SettlementStatus(e.Name),
			Value:   e.Value,
			Percent: percent,
		})
	}
	return rows
}

func totalRows(txns []core.Transaction) []totalRow {
	totals := aggregate.TotalsByStatus(txns)
	var max int64
	for _, t := range totals {
		if t.Total.Cents > max {
			max = t.Total.Cents
		}
	}
	rows := make([]totalRow, 0, len(totals))
	for _, t := range totals {
		percent := 0
		if max > 0 {
			percent = int(t.Total.Cents * 100 / max)
		}
		rows = append(rows, totalRow{Status: t.Status, Total: t.Total, Percent: percent})
	}
	return rows
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.ErrorContext(r.Context(), "template execution failed",
			log.FieldOperation, log.OpRender, "template", name, log.FieldError, err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func (s *Server) renderToBuffer(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
