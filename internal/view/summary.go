package view

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"reconboard/internal/core"
	"reconboard/internal/gateway"
	"reconboard/internal/log"
)

// NoticeKind classifies the banner shown after an upload attempt.
type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// Notice is the outcome of the most recent upload.
type Notice struct {
	Kind    NoticeKind
	Message string
	Report  core.ReconcileReport
}

// SummaryController drives the summary page: dashboard stats, the
// transaction list, and the upload control. Stats and list are
// independent slices, but a filter change on this page refreshes both.
type SummaryController struct {
	mu     sync.Mutex
	engine gateway.EngineClient
	logger *log.Logger

	filter    string
	stats     slot[core.SummaryStats]
	list      slot[[]core.Transaction]
	uploading bool
	notice    Notice
}

// SummarySnapshot is a copy of the page state safe to render without
// holding the controller's lock.
type SummarySnapshot struct {
	Filter string

	StatsState State
	Stats      core.SummaryStats
	StatsError string

	ListState    State
	Transactions []core.Transaction
	ListError    string

	Uploading bool
	Notice    Notice
}

func NewSummaryController(engine gateway.EngineClient, logger *log.Logger) *SummaryController {
	return &SummaryController{
		engine: engine,
		logger: logger.WithComponent(log.ComponentView),
	}
}

// Refresh fetches stats and the transaction list concurrently. The two
// fetches resolve independently; one failing does not discard the other.
// It returns once both have resolved.
func (c *SummaryController) Refresh(ctx context.Context) {
	c.mu.Lock()
	statsToken := c.stats.begin()
	listToken := c.list.begin()
	filter := c.filter
	c.mu.Unlock()

	var g errgroup.Group
	g.Go(func() error {
		stats, err := c.engine.GetSummary(ctx)
		c.mu.Lock()
		defer c.mu.Unlock()
		if err != nil {
			c.logger.ErrorContext(ctx, "summary fetch failed", log.FieldOperation, log.OpSummary, log.FieldError, err)
			c.stats.fail(statsToken, StateError, fetchMessage(err))
			return nil
		}
		c.stats.succeed(statsToken, stats)
		return nil
	})
	g.Go(func() error {
		c.fetchList(ctx, listToken, filter)
		return nil
	})
	_ = g.Wait()
}

// SetFilter records the status filter and refreshes both slices. This
// page couples stats to the filter-driven refresh cycle.
func (c *SummaryController) SetFilter(ctx context.Context, status string) {
	c.mu.Lock()
	c.filter = status
	c.mu.Unlock()
	c.Refresh(ctx)
}

// Upload submits a settlement file to the engine. On success the list is
// refetched and a report banner is set. On rejection the server's message
// is surfaced verbatim and the currently displayed data is left untouched.
// Only one upload may run at a time.
func (c *SummaryController) Upload(ctx context.Context, filename string, file []byte) error {
	c.mu.Lock()
	if c.uploading {
		c.mu.Unlock()
		return ErrUploadInProgress
	}
	c.uploading = true
	c.mu.Unlock()

	report, err := c.engine.SubmitReconciliation(ctx, filename, file)

	if err != nil {
		msg := engineUnavailableMsg
		var uploadErr *gateway.UploadError
		if errors.As(err, &uploadErr) {
			msg = uploadErr.Message
		}
		c.logger.WarnContext(ctx, "upload rejected",
			log.FieldOperation, log.OpReconcile, log.FieldFileName, filename, log.FieldError, err)
		c.mu.Lock()
		c.uploading = false
		c.notice = Notice{Kind: NoticeError, Message: msg}
		c.mu.Unlock()
		return nil
	}

	c.logger.InfoContext(ctx, "upload accepted",
		log.FieldOperation, log.OpReconcile, log.FieldFileName, filename, log.FieldRowCount, report.ProcessedRows)

	c.mu.Lock()
	c.uploading = false
	c.notice = Notice{Kind: NoticeSuccess, Report: report}
	listToken := c.list.begin()
	filter := c.filter
	c.mu.Unlock()

	c.fetchList(ctx, listToken, filter)
	return nil
}

// ClearNotice removes the upload banner.
func (c *SummaryController) ClearNotice() {
	c.mu.Lock()
	c.notice = Notice{}
	c.mu.Unlock()
}

func (c *SummaryController) Snapshot() SummarySnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return SummarySnapshot{
		Filter:       c.filter,
		StatsState:   c.stats.state,
		Stats:        c.stats.data,
		StatsError:   c.stats.errMsg,
		ListState:    c.list.state,
		Transactions: append([]core.Transaction(nil), c.list.data...),
		ListError:    c.list.errMsg,
		Uploading:    c.uploading,
		Notice:       c.notice,
	}
}

func (c *SummaryController) fetchList(ctx context.Context, token uint64, filter string) {
	txns, err := c.engine.ListTransactions(ctx, filter)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.ErrorContext(ctx, "transaction list fetch failed",
			log.FieldOperation, log.OpList, log.FieldStatusFilter, filter, log.FieldError, err)
		c.list.fail(token, StateError, fetchMessage(err))
		return
	}
	c.list.succeed(token, txns)
}
