package gateway

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reconboard/internal/core"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, Timeout: 5 * time.Second}), srv
}

func TestGetSummary(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dashboard/summary", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"total_transactions": 120,
			"total_settlements": 200,
			"critical_issues": 3,
			"warning_issues": 7,
			"breakdown_by_status": {"PENDING": 40, "FULLY_SETTLED": 80}
		}`)
	}))

	stats, err := client.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(120), stats.TotalTransactions)
	assert.Equal(t, int64(3), stats.CriticalIssues)
	require.Len(t, stats.BreakdownByStatus, 2)
	assert.Equal(t, core.StatusPending, stats.BreakdownByStatus[0].Status)
}

func TestGetSummaryServerErrorIsTransient(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := client.GetSummary(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransient)
}

func TestGetSummaryNetworkErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	client := NewClient(Config{BaseURL: srv.URL, Timeout: time.Second})
	srv.Close()

	_, err := client.GetSummary(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransient)
}

func TestListTransactionsFilterPassesThrough(t *testing.T) {
	var gotFilter string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/transactions", r.URL.Path)
		gotFilter = r.URL.Query().Get("status")
		_, _ = io.WriteString(w, `[
			{"transaction_id":"T1","transaction_amount":10.50,"settlement_status":"FULLY_SETTLED"},
			{"transaction_id":"T2","transaction_amount":20,"settlement_status":"FULLY_SETTLED"}
		]`)
	}))

	txns, err := client.ListTransactions(context.Background(), "FULLY_SETTLED")
	require.NoError(t, err)
	assert.Equal(t, "FULLY_SETTLED", gotFilter)
	require.Len(t, txns, 2)
	// Server-provided order is preserved.
	assert.Equal(t, "T1", txns[0].TransactionID)
	assert.Equal(t, int64(1050), txns[0].TransactionAmount.Cents)
}

func TestListTransactionsNoFilterOmitsQuery(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.URL.Query()["status"]
		assert.False(t, ok, "no status parameter expected")
		_, _ = io.WriteString(w, `[]`)
	}))

	txns, err := client.ListTransactions(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestListTransactionsIdempotent(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"transaction_id":"T1","transaction_amount":5,"settlement_status":"PENDING"}]`)
	}))

	first, err := client.ListTransactions(context.Background(), "PENDING")
	require.NoError(t, err)
	second, err := client.ListTransactions(context.Background(), "PENDING")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetTransactionDetail(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/transactions/TXN004", r.URL.Path)
		_, _ = io.WriteString(w, `{
			"transaction": {"transaction_id":"TXN004","transaction_amount":50,"settlement_status":"PARTIAL"},
			"settlements": [{"settlement_id":"S1","settlement_date":"2025-01-02","settlement_type":"DEBIT","settlement_amount":30}]
		}`)
	}))

	detail, err := client.GetTransactionDetail(context.Background(), "TXN004")
	require.NoError(t, err)
	assert.Equal(t, "TXN004", detail.Transaction.TransactionID)
	require.Len(t, detail.Settlements, 1)
}

func TestGetTransactionDetailNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	}))

	_, err := client.GetTransactionDetail(context.Background(), "NOPE")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrTransient)
}

func TestSubmitReconciliation(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/reconcile", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "settlement_report.csv", header.Filename)
		body, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "settlement_id,settlement_date\n", string(body))

		_, _ = io.WriteString(w, `{"processed_rows": 1, "inserted_settlements": 1, "matched_rows": 1}`)
	}))

	report, err := client.SubmitReconciliation(context.Background(),
		"settlement_report.csv", []byte("settlement_id,settlement_date\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, report.ProcessedRows)
	assert.Equal(t, 1, report.InsertedSettlements)
}

func TestSubmitReconciliationEmptyAckBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	report, err := client.SubmitReconciliation(context.Background(), "r.csv", []byte("x"))
	require.NoError(t, err)
	assert.Zero(t, report.ProcessedRows)
}

func TestSubmitReconciliationRejectedVerbatim(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, "Invalid CSV header")
	}))

	_, err := client.SubmitReconciliation(context.Background(), "bad.csv", []byte("x"))
	require.Error(t, err)

	var uploadErr *UploadError
	require.True(t, errors.As(err, &uploadErr))
	assert.Equal(t, http.StatusBadRequest, uploadErr.StatusCode)
	assert.Equal(t, "Invalid CSV header", uploadErr.Message)
	assert.Equal(t, "Invalid CSV header", uploadErr.Error())
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "down", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{BaseURL: srv.URL, Timeout: time.Second, BreakerEnabled: true})
	for i := 0; i < 6; i++ {
		_, err := client.GetSummary(context.Background())
		assert.ErrorIs(t, err, ErrTransient)
	}
	// Breaker is open: calls are still transient failures but stop
	// reaching the engine.
	hitsWhenOpen := hits
	_, err := client.GetSummary(context.Background())
	assert.ErrorIs(t, err, ErrTransient)
	assert.Equal(t, hitsWhenOpen, hits)
}

func TestBreakerIgnoresUploadRejections(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "Invalid CSV header", http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{BaseURL: srv.URL, Timeout: time.Second, BreakerEnabled: true})
	for i := 0; i < 8; i++ {
		_, err := client.SubmitReconciliation(context.Background(), "bad.csv", []byte("x"))
		var uploadErr *UploadError
		require.True(t, errors.As(err, &uploadErr), "rejections must keep flowing through")
	}
	assert.Equal(t, 8, hits)
}
