package core

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// StatusCount is one entry of a per-status breakdown.
type StatusCount struct {
	Status SettlementStatus
	Count  int64
}

// StatusBreakdown is a status -> count mapping that preserves the key
// order of the JSON object it was decoded from. A plain map would lose
// the server's ordering, which the breakdown chart follows verbatim.
type StatusBreakdown []StatusCount

// Get returns the count for a status and whether it was present.
func (b StatusBreakdown) Get(s SettlementStatus) (int64, bool) {
	for _, sc := range b {
		if sc.Status == s {
			return sc.Count, true
		}
	}
	return 0, false
}

// Total returns the sum of all counts in the breakdown.
func (b StatusBreakdown) Total() int64 {
	var total int64
	for _, sc := range b {
		total += sc.Count
	}
	return total
}

// UnmarshalJSON decodes a JSON object into ordered pairs. null and {}
// both decode to an empty breakdown, never an error.
func (b *StatusBreakdown) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode breakdown: %w", err)
	}
	if tok == nil {
		*b = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("decode breakdown: expected object, got %v", tok)
	}

	var out StatusBreakdown
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode breakdown key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("decode breakdown: non-string key %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode breakdown value: %w", err)
		}
		var count int64
		switch v := valTok.(type) {
		case json.Number:
			count, err = v.Int64()
			if err != nil {
				f, ferr := v.Float64()
				if ferr != nil {
					return fmt.Errorf("decode breakdown value %q: %w", v.String(), ferr)
				}
				count = int64(f)
			}
		case nil:
			count = 0
		default:
			return fmt.Errorf("decode breakdown: non-numeric value for %q", key)
		}
		out = append(out, StatusCount{Status: SettlementStatus(key), Count: count})
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode breakdown: %w", err)
	}

	*b = out
	return nil
}

// MarshalJSON re-emits the breakdown as a JSON object in stored order.
func (b StatusBreakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sc := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(sc.Status))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", sc.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SummaryStats is the derived dashboard snapshot computed by the engine.
// It is never patched incrementally on this side: every navigation or
// mutation that needs fresh numbers refetches the whole snapshot.
type SummaryStats struct {
	TotalTransactions int64           `json:"total_transactions"`
	TotalSettlements  int64           `json:"total_settlements"`
	CriticalIssues    int64           `json:"critical_issues"`
	WarningIssues     int64           `json:"warning_issues"`
	BreakdownByStatus StatusBreakdown `json:"breakdown_by_status"`

	TotalOutstandingAmount Amount  `json:"total_outstanding_amount"`
	AvgDaysToSettle        float64 `json:"avg_days_to_settle"`
	SettlementRate         float64 `json:"settlement_rate"`
}
