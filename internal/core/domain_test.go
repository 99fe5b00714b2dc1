package core

import (
	"encoding/json"
	"testing"
)

func TestTransactionDecodeDefaults(t *testing.T) {
	// net_settled absent: must default to zero without error.
	payload := `{"transaction_id":"TXN001","merchant_name":"ACME","transaction_amount":100.50,"settlement_status":"PENDING"}`
	var txn Transaction
	if err := json.Unmarshal([]byte(payload), &txn); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if txn.TransactionID != "TXN001" {
		t.Fatalf("expected TXN001, got %q", txn.TransactionID)
	}
	if txn.TransactionAmount.Cents != 10050 {
		t.Fatalf("expected 10050 cents, got %d", txn.TransactionAmount.Cents)
	}
	if !txn.NetSettled.IsZero() {
		t.Fatalf("expected zero net settled, got %v", txn.NetSettled)
	}
	if txn.SettlementStatus != StatusPending {
		t.Fatalf("expected PENDING, got %s", txn.SettlementStatus)
	}
}

func TestUnknownStatusPassesThrough(t *testing.T) {
	// The server is authoritative: an unknown status is kept verbatim.
	var txn Transaction
	if err := json.Unmarshal([]byte(`{"settlement_status":"HELD"}`), &txn); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if txn.SettlementStatus != SettlementStatus("HELD") {
		t.Fatalf("expected HELD, got %s", txn.SettlementStatus)
	}
}

func TestTransactionDetailDecode(t *testing.T) {
	payload := `{
		"transaction": {"transaction_id":"TXN004","transaction_amount":50,"settlement_status":"PARTIAL"},
		"settlements": [
			{"settlement_id":"S1","settlement_date":"2025-01-02","settlement_type":"DEBIT","settlement_amount":30},
			{"settlement_id":"S2","settlement_date":"2025-01-05","settlement_type":"CREDIT","settlement_amount":10}
		]
	}`
	var detail TransactionDetail
	if err := json.Unmarshal([]byte(payload), &detail); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(detail.Settlements) != 2 {
		t.Fatalf("expected 2 settlements, got %d", len(detail.Settlements))
	}
	if detail.Settlements[1].SettlementType != SettlementCredit {
		t.Fatalf("expected CREDIT, got %s", detail.Settlements[1].SettlementType)
	}
}

func TestReconcileReportCounts(t *testing.T) {
	payload := `{
		"processed_rows": 12,
		"inserted_settlements": 9,
		"matched_rows": 9,
		"already_existing": 1,
		"updated_transactions": 5,
		"unmatched_rows": [{"settlement_id":"S9"}],
		"errors": [{"error":"bad date"},{"error":"bad amount"}]
	}`
	var report ReconcileReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if report.ProcessedRows != 12 || report.InsertedSettlements != 9 {
		t.Fatalf("unexpected counts: %+v", report)
	}
	if report.UnmatchedCount() != 1 || report.ErrorCount() != 2 {
		t.Fatalf("expected 1 unmatched and 2 errors, got %d and %d",
			report.UnmatchedCount(), report.ErrorCount())
	}
}
