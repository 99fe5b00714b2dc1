package view

import (
	"context"
	"errors"
	"sync"

	"reconboard/internal/core"
	"reconboard/internal/gateway"
	"reconboard/internal/log"
)

// DetailController drives a transaction detail page. A transaction is
// never rendered without its settlements; the page stays in Loading
// until the full detail resolves.
type DetailController struct {
	mu     sync.Mutex
	engine gateway.EngineClient
	logger *log.Logger

	id     string
	detail slot[core.TransactionDetail]
}

type DetailSnapshot struct {
	ID     string
	State  State
	Detail core.TransactionDetail
	Error  string
}

func NewDetailController(engine gateway.EngineClient, logger *log.Logger) *DetailController {
	return &DetailController{
		engine: engine,
		logger: logger.WithComponent(log.ComponentView),
	}
}

// Load fetches the transaction and its settlements. An unknown id
// resolves to the not-found state, not an error banner.
func (c *DetailController) Load(ctx context.Context, id string) {
	c.mu.Lock()
	c.id = id
	token := c.detail.begin()
	c.mu.Unlock()

	detail, err := c.engine.GetTransactionDetail(ctx, id)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			c.detail.fail(token, StateNotFound, "")
			return
		}
		c.logger.ErrorContext(ctx, "transaction detail fetch failed",
			log.FieldOperation, log.OpDetail, log.FieldTransactionID, id, log.FieldError, err)
		c.detail.fail(token, StateError, fetchMessage(err))
		return
	}
	c.detail.succeed(token, detail)
}

func (c *DetailController) Snapshot() DetailSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return DetailSnapshot{
		ID:     c.id,
		State:  c.detail.state,
		Detail: c.detail.data,
		Error:  c.detail.errMsg,
	}
}
