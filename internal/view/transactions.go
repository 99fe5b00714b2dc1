package view

import (
	"context"
	"sync"

	"reconboard/internal/core"
	"reconboard/internal/gateway"
	"reconboard/internal/log"
)

// TransactionsController drives the transactions list page. A filter
// change here refreshes only the list; summary stats are not this page's
// concern.
type TransactionsController struct {
	mu     sync.Mutex
	engine gateway.EngineClient
	logger *log.Logger

	filter string
	list   slot[[]core.Transaction]
}

type TransactionsSnapshot struct {
	Filter       string
	ListState    State
	Transactions []core.Transaction
	ListError    string
}

func NewTransactionsController(engine gateway.EngineClient, logger *log.Logger) *TransactionsController {
	return &TransactionsController{
		engine: engine,
		logger: logger.WithComponent(log.ComponentView),
	}
}

// Refresh fetches the transaction list with the current filter.
func (c *TransactionsController) Refresh(ctx context.Context) {
	c.mu.Lock()
	token := c.list.begin()
	filter := c.filter
	c.mu.Unlock()

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

func (c *TransactionsController) SetFilter(ctx context.Context, status string) {
	c.mu.Lock()
	c.filter = status
	c.mu.Unlock()
	c.Refresh(ctx)
}

func (c *TransactionsController) Snapshot() TransactionsSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return TransactionsSnapshot{
		Filter:       c.filter,
		ListState:    c.list.state,
		Transactions: append([]core.Transaction(nil), c.list.data...),
		ListError:    c.list.errMsg,
	}
}
