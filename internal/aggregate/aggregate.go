// Package aggregate derives chart-ready series from engine records.
// Every function here is a pure function of its input: no I/O, no state,
// and an empty input always yields an empty output.
package aggregate

import "reconboard/internal/core"

// NameValue is one slice of the summary breakdown chart.
type NameValue struct {
	Name  string
	Value int64
}

// StatusTotal is one bar of the status-vs-amount chart.
type StatusTotal struct {
	Status core.SettlementStatus
	Total  core.Amount
}

// TrendPoint is one point of the settlement history chart on the
// transaction detail page.
type TrendPoint struct {
	Date   string
	Amount core.Amount
}

// BreakdownByStatus converts a summary breakdown into chart entries, one
// per mapping entry in received order. Nothing is fabricated, dropped,
// or sorted; the server's ordering is the display ordering.
func BreakdownByStatus(stats core.SummaryStats) []NameValue {
	out := make([]NameValue, 0, len(stats.BreakdownByStatus))
	for _, sc := range stats.BreakdownByStatus {
		out = append(out, NameValue{Name: string(sc.Status), Value: sc.Count})
	}
	return out
}

// TotalsByStatus groups transactions by settlement status and sums
// transaction amounts per group with exact cents addition. Groups appear
// in first-seen order; statuses with no transactions are omitted.
func TotalsByStatus(txns []core.Transaction) []StatusTotal {
	totals := make(map[core.SettlementStatus]int)
	out := make([]StatusTotal, 0)
	for _, txn := range txns {
		idx, seen := totals[txn.SettlementStatus]
		if !seen {
			idx = len(out)
			totals[txn.SettlementStatus] = idx
			out = append(out, StatusTotal{Status: txn.SettlementStatus})
		}
		out[idx].Total = out[idx].Total.Add(txn.TransactionAmount)
	}
	return out
}

// SettlementTrend maps a settlement history to date/amount points in the
// order the engine returned them.
func SettlementTrend(settlements []core.Settlement) []TrendPoint {
	out := make([]TrendPoint, 0, len(settlements))
	for _, s := range settlements {
		out = append(out, TrendPoint{Date: s.SettlementDate, Amount: s.SettlementAmount})
	}
	return out
}
