package aggregate

import (
	"encoding/json"
	"testing"

	"reconboard/internal/core"
)

func txn(id string, status core.SettlementStatus, cents int64) core.Transaction {
	return core.Transaction{
		TransactionID:     id,
		SettlementStatus:  status,
		TransactionAmount: core.Amount{Cents: cents},
	}
}

func TestTotalsByStatus(t *testing.T) {
	txns := []core.Transaction{
		txn("T1", core.StatusPending, 1050),
		txn("T2", core.StatusFullySettled, 2000),
		txn("T3", core.StatusPending, 950),
		txn("T4", core.StatusRefunded, 500),
	}

	got := TotalsByStatus(txns)
	if len(got) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(got))
	}
	// First-seen order: PENDING, FULLY_SETTLED, REFUNDED.
	want := []StatusTotal{
		{Status: core.StatusPending, Total: core.Amount{Cents: 2000}},
		{Status: core.StatusFullySettled, Total: core.Amount{Cents: 2000}},
		{Status: core.StatusRefunded, Total: core.Amount{Cents: 500}},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("group %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestTotalsByStatusOmitsAbsentStatuses(t *testing.T) {
	got := TotalsByStatus([]core.Transaction{txn("T1", core.StatusPartial, 100)})
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 group, got %d", len(got))
	}
	for _, st := range got {
		if st.Total.IsZero() {
			t.Fatalf("no synthetic zero entries expected, got %+v", st)
		}
	}
}

func TestTotalsByStatusEmptyInput(t *testing.T) {
	if got := TotalsByStatus(nil); len(got) != 0 {
		t.Fatalf("expected empty output, got %v", got)
	}
	if got := TotalsByStatus([]core.Transaction{}); len(got) != 0 {
		t.Fatalf("expected empty output, got %v", got)
	}
}

func TestTotalsByStatusExactSums(t *testing.T) {
	// Amounts that drift under float addition must sum exactly in cents.
	txns := make([]core.Transaction, 0, 10)
	for i := 0; i < 10; i++ {
		txns = append(txns, txn("T", core.StatusPending, 10)) // 0.10 each
	}
	got := TotalsByStatus(txns)
	if len(got) != 1 || got[0].Total.Cents != 100 {
		t.Fatalf("expected exactly 1.00, got %v", got)
	}
}

func TestBreakdownByStatus(t *testing.T) {
	var stats core.SummaryStats
	payload := `{"total_transactions": 120, "breakdown_by_status": {"PENDING": 40, "FULLY_SETTLED": 80}}`
	if err := json.Unmarshal([]byte(payload), &stats); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := BreakdownByStatus(stats)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0] != (NameValue{Name: "PENDING", Value: 40}) {
		t.Fatalf("unexpected first entry: %+v", got[0])
	}
	if got[1] != (NameValue{Name: "FULLY_SETTLED", Value: 80}) {
		t.Fatalf("unexpected second entry: %+v", got[1])
	}
	if got[0].Value+got[1].Value != 120 {
		t.Fatalf("entries should sum to 120")
	}
}

func TestBreakdownByStatusEmpty(t *testing.T) {
	if got := BreakdownByStatus(core.SummaryStats{}); len(got) != 0 {
		t.Fatalf("expected empty output, got %v", got)
	}
}

func TestSettlementTrend(t *testing.T) {
	settlements := []core.Settlement{
		{SettlementDate: "2025-01-02", SettlementAmount: core.Amount{Cents: 3000}},
		{SettlementDate: "2025-01-05", SettlementAmount: core.Amount{Cents: 1000}},
	}
	got := SettlementTrend(settlements)
	if len(got) != 2 {
		t.Fatalf("expected 2 points, got %d", len(got))
	}
	if got[0].Date != "2025-01-02" || got[1].Amount.Cents != 1000 {
		t.Fatalf("unexpected points: %+v", got)
	}
	if len(SettlementTrend(nil)) != 0 {
		t.Fatalf("expected empty trend for empty history")
	}
}
