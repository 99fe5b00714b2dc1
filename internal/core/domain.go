package core

// SettlementStatus classifies a transaction's reconciliation outcome.
// Statuses are assigned by the remote engine and treated as opaque data
// here: unknown values pass through untouched and are never rewritten.
type SettlementStatus string

const (
	StatusPending       SettlementStatus = "PENDING"
	StatusPartial       SettlementStatus = "PARTIAL"
	StatusFullySettled  SettlementStatus = "FULLY_SETTLED"
	StatusOverSettled   SettlementStatus = "OVER_SETTLED"
	StatusRefunded      SettlementStatus = "REFUNDED"
	StatusNotApplicable SettlementStatus = "NOT_APPLICABLE"
)

// AllStatuses returns the known statuses in the order the filter control
// presents them.
func AllStatuses() []SettlementStatus {
	return []SettlementStatus{
		StatusPending,
		StatusPartial,
		StatusFullySettled,
		StatusOverSettled,
		StatusRefunded,
		StatusNotApplicable,
	}
}

// IssueFlag marks a transaction the engine considers problematic.
type IssueFlag string

const (
	IssueNone     IssueFlag = "NONE"
	IssueWarning  IssueFlag = "WARNING"
	IssueCritical IssueFlag = "CRITICAL"
)

// SettlementType is the direction of a funds movement.
type SettlementType string

const (
	SettlementDebit  SettlementType = "DEBIT"
	SettlementCredit SettlementType = "CREDIT"
)

type (
	// Transaction is a payment record subject to reconciliation. Records
	// are created and owned by the engine; the dashboard never edits them.
	Transaction struct {
		TransactionID     string           `json:"transaction_id"`
		TransactionDate   string           `json:"transaction_date"`
		MerchantName      string           `json:"merchant_name"`
		TransactionAmount Amount           `json:"transaction_amount"`
		NetSettled        Amount           `json:"net_settled"`
		SettlementStatus  SettlementStatus `json:"settlement_status"`
		IssueFlag         IssueFlag        `json:"issue_flag,omitempty"`
		AccountID         string           `json:"account_id,omitempty"`
		Currency          string           `json:"currency,omitempty"`
		LifecycleID       string           `json:"lifecycle_id,omitempty"`
	}

	// Settlement is a funds movement applied against one transaction.
	// Settlements are only ever fetched as part of a transaction detail.
	Settlement struct {
		SettlementID     string         `json:"settlement_id"`
		SettlementDate   string         `json:"settlement_date"`
		SettlementType   SettlementType `json:"settlement_type"`
		SettlementAmount Amount         `json:"settlement_amount"`
		Currency         string         `json:"currency,omitempty"`
	}

	// TransactionDetail is a transaction together with its settlement
	// history, as returned by the detail endpoint.
	TransactionDetail struct {
		Transaction Transaction  `json:"transaction"`
		Settlements []Settlement `json:"settlements"`
	}

	// ReconcileReport is the engine's response to a successful file
	// submission. Only counts are surfaced on the dashboard.
	ReconcileReport struct {
		ProcessedRows       int `json:"processed_rows"`
		InsertedSettlements int `json:"inserted_settlements"`
		MatchedRows         int `json:"matched_rows"`
		AlreadyExisting     int `json:"already_existing"`
		UpdatedTransactions int `json:"updated_transactions"`

		UnmatchedRows []map[string]any `json:"unmatched_rows,omitempty"`
		Errors        []map[string]any `json:"errors,omitempty"`
	}
)

// UnmatchedCount returns how many settlement rows found no transaction.
func (r ReconcileReport) UnmatchedCount() int {
	return len(r.UnmatchedRows)
}

// ErrorCount returns how many rows the engine rejected.
func (r ReconcileReport) ErrorCount() int {
	return len(r.Errors)
}
