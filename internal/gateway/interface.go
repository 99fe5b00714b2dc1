package gateway

import (
	"context"

	"reconboard/internal/core"
)

// EngineClient is the outbound port to the remote reconciliation engine.
// Pages depend on this interface, never on the concrete HTTP client.
//
// All three reads are single-attempt fresh fetches with no caching; only
// SubmitReconciliation mutates remote state.
//
//go:generate mockgen -destination=mocks/mock_engine.go -source=interface.go EngineClient
type EngineClient interface {
	// GetSummary fetches the dashboard summary snapshot.
	GetSummary(ctx context.Context) (core.SummaryStats, error)

	// ListTransactions fetches transactions, optionally filtered by
	// settlement status. An empty filter means all; filter values are
	// passed through unvalidated because the server is authoritative.
	ListTransactions(ctx context.Context, statusFilter string) ([]core.Transaction, error)

	// GetTransactionDetail fetches one transaction with its settlement
	// history. Returns ErrNotFound when the id does not resolve.
	GetTransactionDetail(ctx context.Context, id string) (core.TransactionDetail, error)

	// SubmitReconciliation uploads a settlement CSV for processing in a
	// single atomic call. On rejection the returned error is an
	// *UploadError carrying the server's message verbatim.
	SubmitReconciliation(ctx context.Context, filename string, file []byte) (core.ReconcileReport, error)
}
