// Command fakeengine is a stand-in reconciliation engine for local
// development and demos. It serves the four endpoints the dashboard
// consumes with canned data; it does not perform any matching.
package main

import (
	"encoding/csv"
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

type transaction struct {
	TransactionID     string  `json:"transaction_id"`
	TransactionDate   string  `json:"transaction_date"`
	MerchantName      string  `json:"merchant_name"`
	TransactionAmount float64 `json:"transaction_amount"`
	NetSettled        float64 `json:"net_settled"`
	SettlementStatus  string  `json:"settlement_status"`
	IssueFlag         string  `json:"issue_flag,omitempty"`
}

type settlement struct {
	SettlementID     string  `json:"settlement_id"`
	SettlementDate   string  `json:"settlement_date"`
	SettlementType   string  `json:"settlement_type"`
	SettlementAmount float64 `json:"settlement_amount"`
}

type fakeEngine struct {
	latency  time.Duration
	failRate float64

	mu          sync.Mutex
	txns        []transaction
	settlements map[string][]settlement
}

func main() {
	addr := getenvDefault("FAKE_ENGINE_ADDR", ":5000")
	latencyMs := getenvIntDefault("FAKE_ENGINE_LATENCY_MS", 0)
	failRate := getenvFloatDefault("FAKE_ENGINE_FAIL_RATE", 0)

	srv := &fakeEngine{
		latency:  time.Duration(latencyMs) * time.Millisecond,
		failRate: failRate,
	}
	srv.seed()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", srv.handleHealth)
	mux.HandleFunc("/api/dashboard/summary", srv.handleSummary)
	mux.HandleFunc("/api/transactions", srv.handleTransactions)
	mux.HandleFunc("/api/transactions/", srv.handleTransactionDetail)
	mux.HandleFunc("/api/reconcile", srv.handleReconcile)

	log.Printf("fake reconciliation engine listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}

func (s *fakeEngine) seed() {
	s.txns = []transaction{
		{TransactionID: "TXN001", TransactionDate: "2025-01-05", MerchantName: "Acme Retail", TransactionAmount: 150.00, NetSettled: 150.00, SettlementStatus: "FULLY_SETTLED"},
		{TransactionID: "TXN002", TransactionDate: "2025-01-06", MerchantName: "Globex Market", TransactionAmount: 89.99, NetSettled: 45.00, SettlementStatus: "PARTIAL", IssueFlag: "WARNING"},
		{TransactionID: "TXN003", TransactionDate: "2025-01-07", MerchantName: "Initech Cafe", TransactionAmount: 12.50, NetSettled: 0, SettlementStatus: "PENDING"},
		{TransactionID: "TXN004", TransactionDate: "2025-01-08", MerchantName: "Umbrella Pharmacy", TransactionAmount: 64.20, NetSettled: 80.00, SettlementStatus: "OVER_SETTLED", IssueFlag: "CRITICAL"},
		{TransactionID: "TXN005", TransactionDate: "2025-01-09", MerchantName: "Stark Hardware", TransactionAmount: 230.00, NetSettled: -230.00, SettlementStatus: "REFUNDED"},
		{TransactionID: "TXN006", TransactionDate: "2025-01-10", MerchantName: "Wayne Cleaners", TransactionAmount: 18.00, NetSettled: 0, SettlementStatus: "NOT_APPLICABLE"},
	}
	s.settlements = map[string][]settlement{
		"TXN001": {{SettlementID: "SET001", SettlementDate: "2025-01-07", SettlementType: "DEBIT", SettlementAmount: 150.00}},
		"TXN002": {{SettlementID: "SET002", SettlementDate: "2025-01-08", SettlementType: "DEBIT", SettlementAmount: 45.00}},
		"TXN004": {
			{SettlementID: "SET003", SettlementDate: "2025-01-09", SettlementType: "DEBIT", SettlementAmount: 64.20},
			{SettlementID: "SET004", SettlementDate: "2025-01-10", SettlementType: "DEBIT", SettlementAmount: 15.80},
		},
		"TXN005": {{SettlementID: "SET005", SettlementDate: "2025-01-11", SettlementType: "CREDIT", SettlementAmount: 230.00}},
	}
}

// simulate applies the configured latency and random failure rate.
// Returns false when the request was failed.
func (s *fakeEngine) simulate(w http.ResponseWriter) bool {
	if s.latency > 0 {
		time.Sleep(s.latency)
	}
	if s.failRate > 0 && rand.Float64() < s.failRate {
		http.Error(w, "simulated engine failure", http.StatusBadGateway)
		return false
	}
	return true
}

func (s *fakeEngine) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *fakeEngine) handleSummary(w http.ResponseWriter, r *http.Request) {
	if !s.simulate(w) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	breakdown := map[string]int{}
	critical, warning := 0, 0
	totalSettlements := 0
	var outstanding float64
	for _, t := range s.txns {
		breakdown[t.SettlementStatus]++
		switch t.IssueFlag {
		case "CRITICAL":
			critical++
		case "WARNING":
			warning++
		}
		if t.SettlementStatus == "PENDING" || t.SettlementStatus == "PARTIAL" {
			outstanding += t.TransactionAmount - t.NetSettled
		}
		totalSettlements += len(s.settlements[t.TransactionID])
	}

	writeJSON(w, map[string]any{
		"total_transactions":       len(s.txns),
		"total_settlements":        totalSettlements,
		"critical_issues":          critical,
		"warning_issues":           warning,
		"breakdown_by_status":      breakdown,
		"total_outstanding_amount": outstanding,
		"avg_days_to_settle":       2.3,
		"settlement_rate":          0.83,
	})
}

func (s *fakeEngine) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if !s.simulate(w) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	filter := r.URL.Query().Get("status")
	out := make([]transaction, 0, len(s.txns))
	for _, t := range s.txns {
		if filter == "" || t.SettlementStatus == filter {
			out = append(out, t)
		}
	}
	writeJSON(w, out)
}

func (s *fakeEngine) handleTransactionDetail(w http.ResponseWriter, r *http.Request) {
	if !s.simulate(w) {
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.txns {
		if t.TransactionID == id {
			sets := s.settlements[id]
			if sets == nil {
				sets = []settlement{}
			}
			writeJSON(w, map[string]any{
				"transaction": t,
				"settlements": sets,
			})
			return
		}
	}
	http.Error(w, `{"error":"transaction not found"}`, http.StatusNotFound)
}

// handleReconcile validates the CSV header and returns a canned report.
// No actual matching happens here.
func (s *fakeEngine) handleReconcile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	if !s.simulate(w) {
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		http.Error(w, "Invalid CSV header", http.StatusBadRequest)
		return
	}
	required := map[string]bool{"settlement_id": false, "settlement_date": false, "settlement_amount": false}
	for _, col := range header {
		col = strings.TrimSpace(strings.ToLower(col))
		if _, ok := required[col]; ok {
			required[col] = true
		}
	}
	for col, found := range required {
		if !found {
			http.Error(w, "Invalid CSV header: missing column "+col, http.StatusBadRequest)
			return
		}
	}

	rows := 0
	for {
		if _, err := reader.Read(); err != nil {
			break
		}
		rows++
	}

	writeJSON(w, map[string]any{
		"processed_rows":       rows,
		"inserted_settlements": rows,
		"matched_rows":         rows,
		"already_existing":     0,
		"updated_transactions": rows,
		"unmatched_rows":       []any{},
		"errors":               []any{},
	})
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvFloatDefault(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
