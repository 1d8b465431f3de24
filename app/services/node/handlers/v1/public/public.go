// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/forgecoin/forgecoin/business/web/errs"
	"github.com/forgecoin/forgecoin/foundation/events"
	"github.com/forgecoin/forgecoin/foundation/ledger/database"
	"github.com/forgecoin/forgecoin/foundation/ledger/state"
	"github.com/forgecoin/forgecoin/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// pingPeriod is how often a ping message is written over an open
// events websocket to keep the connection alive.
const pingPeriod = 30 * time.Second

// Handlers manages the set of public ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	Evts  *events.Events
	WS    websocket.Upgrader
}

// SubmitTransaction adds a new transaction to the mempool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var newTx submitTx
	if err := web.Decode(r, &newTx); err != nil {
		return err
	}

	tx, err := database.NewTx(database.AccountID(newTx.FromID), database.AccountID(newTx.ToID), newTx.Value, newTx.Tip)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("add tran", "traceid", v.TraceID, "tx", tx)
	if err := h.State.UpsertMempool(tx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "transaction added to mempool",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Genesis returns the genesis information used to boot the chain.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()

	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Mempool returns the set of uncommitted transactions in admission order.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	txs := h.State.RetrieveMempool()

	return web.Respond(ctx, w, txs, http.StatusOK)
}

// Balances returns the effective balances, committed state adjusted by the
// mempool. With an account in the route only that account is returned.
func (h Handlers) Balances(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	account := web.Param(r, "account")

	var acts []actBalance
	switch account {
	case "":
		for _, act := range h.State.RetrieveAccounts() {
			acts = append(acts, actBalance{
				Account: act.AccountID,
				Balance: h.State.QueryBalance(act.AccountID),
			})
		}

	default:
		accountID, err := database.ToAccountID(account)
		if err != nil {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		acts = append(acts, actBalance{
			Account: accountID,
			Balance: h.State.QueryBalance(accountID),
		})
	}

	balances := balances{
		LatestBlock: h.State.RetrieveLatestBlock().Hash(),
		Uncommitted: h.State.QueryMempoolLength(),
		Balances:    acts,
	}

	return web.Respond(ctx, w, balances, http.StatusOK)
}

// BlocksByNumber returns the chain, genesis first. With a number in the
// route only that block is returned.
func (h Handlers) BlocksByNumber(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	chain, err := h.State.RetrieveChain()
	if err != nil {
		return err
	}

	number := web.Param(r, "number")
	if number == "" {
		return web.Respond(ctx, w, chain, http.StatusOK)
	}

	num, err := strconv.ParseUint(number, 10, 64)
	if err != nil {
		return errs.NewTrusted(fmt.Errorf("invalid block number %q", number), http.StatusBadRequest)
	}

	for _, blockData := range chain {
		if blockData.Header.Number == num {
			return web.Respond(ctx, w, blockData, http.StatusOK)
		}
	}

	return errs.NewTrusted(fmt.Errorf("block %d not found", num), http.StatusNotFound)
}

// Stats returns the derived figures about the ledger.
func (h Handlers) Stats(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	stats := h.State.RetrieveStats()

	return web.Respond(ctx, w, stats, http.StatusOK)
}

// ValidateChain runs the full tamper check over the chain in storage.
func (h Handlers) ValidateChain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if err := h.State.ValidateChain(); err != nil {
		return errs.NewTrusted(err, http.StatusConflict)
	}

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "chain validated",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SignalMining signals the worker to start a mining operation.
func (h Handlers) SignalMining(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	h.State.Worker.SignalStartMining()

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "mining signalled",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Events upgrades the connection to a websocket and streams ledger
// lifecycle events until the client goes away.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	// Need this to handle CORS on the websocket.
	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	// This upgrades the HTTP connection to a websocket connection.
	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	h.Log.Infow("events", "traceid", v.TraceID, "message", "websocket open")

	// Set Pong Handler
	c.SetPongHandler(func(appData string) error {
		h.Log.Infow("events", "traceid", v.TraceID, "message", "pong received")
		return nil
	})

	// This provides a channel for receiving events from the ledger.
	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	// Starting a ticker to send a ping message over the websocket.
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, wd := <-ch:
			if !wd {
				return nil
			}
			if err := c.WriteJSON(ev); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}
