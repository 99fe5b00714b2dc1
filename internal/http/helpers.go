package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"reconboard/internal/core"
)

// formatAmount renders a monetary value for display (e.g., "$12.34").
// Rounding happened at parse time; display never re-rounds.
func formatAmount(a core.Amount) string {
	if a.Cents < 0 {
		return "-$" + core.Amount{Cents: -a.Cents}.String()
	}
	return "$" + a.String()
}

// formatPercent renders a 0..1 fraction as a percentage (e.g., "83%").
func formatPercent(fraction float64) string {
	return fmt.Sprintf("%.0f%%", fraction*100)
}

// statusLabel converts an enum value to a human-readable label
// (e.g., "FULLY_SETTLED" -> "Fully Settled").
func statusLabel(s core.SettlementStatus) string {
	words := strings.Split(strings.ToLower(string(s)), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// statusClass converts an enum value to a CSS modifier class
// (e.g., "FULLY_SETTLED" -> "status--fully-settled").
func statusClass(s core.SettlementStatus) string {
	return "status--" + strings.ReplaceAll(strings.ToLower(string(s)), "_", "-")
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
