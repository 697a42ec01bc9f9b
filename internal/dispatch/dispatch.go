// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dispatch runs model requests off the UI goroutine.
//
// A dispatch returns a Future immediately. The worker goroutine never
// touches UI state: it only publishes a Result, which the UI loop collects
// by polling the Future on its own timer tick.
package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jeranaias/shellmind/internal/gateway"
	"github.com/jeranaias/shellmind/internal/model"
)

// =============================================================================
// RESULT
// =============================================================================

// Result is the outcome of one request. Exactly one of Reply or Err is
// meaningful: Err is nil on success.
type Result struct {
	// RequestID identifies the request that produced this result.
	RequestID string

	// Owner is the session ID supplied to Dispatch. The UI compares it
	// against the live session before applying the result.
	Owner string

	Reply    string
	Err      error
	Duration time.Duration
}

// =============================================================================
// FUTURE
// =============================================================================

// Future is a single-value handle to an in-flight request.
type Future struct {
	id     string
	owner  string
	result chan Result
	done   chan struct{}
	taken  bool
}

// ID returns the request ID.
func (f *Future) ID() string {
	return f.id
}

// Owner returns the session ID the request was dispatched for.
func (f *Future) Owner() string {
	return f.owner
}

// Poll returns the result without blocking. It reports true exactly once,
// on the first poll after the worker finished. Poll must be called from one
// goroutine only.
func (f *Future) Poll() (Result, bool) {
	if f.taken {
		return Result{}, false
	}
	select {
	case r := <-f.result:
		f.taken = true
		return r, true
	default:
		return Result{}, false
	}
}

// Done is closed once the result is available.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// =============================================================================
// DISPATCHER
// =============================================================================

// Dispatcher starts one worker goroutine per request. It has no pool and no
// cancellation: the caller keeps at most one request in flight.
type Dispatcher struct {
	gw      gateway.Gateway
	timeout time.Duration
	log     zerolog.Logger
}

// New creates a dispatcher. timeout bounds each request; zero means none.
func New(gw gateway.Gateway, timeout time.Duration, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		gw:      gw,
		timeout: timeout,
		log:     log.With().Str("component", "dispatch").Logger(),
	}
}

// Dispatch asks the gateway for a reply to history on a new goroutine. The
// history is copied before the goroutine starts.
func (d *Dispatcher) Dispatch(owner, modelName string, history []model.Message) *Future {
	f := &Future{
		id:     uuid.NewString(),
		owner:  owner,
		result: make(chan Result, 1),
		done:   make(chan struct{}),
	}
	snapshot := append([]model.Message(nil), history...)

	d.log.Debug().
		Str("request", f.id).
		Str("owner", owner).
		Str("model", modelName).
		Int("messages", len(snapshot)).
		Msg("dispatch")

	go d.run(f, modelName, snapshot)
	return f
}

func (d *Dispatcher) run(f *Future, modelName string, history []model.Message) {
	start := time.Now()
	res := Result{RequestID: f.id, Owner: f.owner}

	defer func() {
		if r := recover(); r != nil {
			res.Reply = ""
			res.Err = &gateway.GatewayError{Detail: fmt.Sprintf("internal error: %v", r)}
			d.log.Error().Interface("panic", r).Str("request", f.id).Msg("worker panicked")
		}
		res.Duration = time.Since(start)
		f.result <- res
		close(f.done)
	}()

	ctx := context.Background()
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	res.Reply, res.Err = d.gw.GenerateReply(ctx, modelName, history)
	if res.Err != nil {
		d.log.Warn().Err(res.Err).Str("request", f.id).Msg("request failed")
		return
	}
	d.log.Debug().Str("request", f.id).Dur("took", time.Since(start)).Msg("request complete")
}
