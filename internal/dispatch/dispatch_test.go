// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/shellmind/internal/gateway"
	"github.com/jeranaias/shellmind/internal/model"
)

type fakeGateway struct {
	reply   string
	err     error
	release chan struct{}
	seen    chan []model.Message
	panics  bool
}

func (g *fakeGateway) ListModels(context.Context) []string { return nil }

func (g *fakeGateway) GenerateReply(ctx context.Context, _ string, history []model.Message) (string, error) {
	if g.seen != nil {
		g.seen <- history
	}
	if g.release != nil {
		select {
		case <-g.release:
		case <-ctx.Done():
			return "", &gateway.GatewayError{Detail: ctx.Err().Error(), Err: ctx.Err()}
		}
	}
	if g.panics {
		panic("boom")
	}
	return g.reply, g.err
}

func wait(t *testing.T, f *Future) Result {
	t.Helper()
	select {
	case <-f.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("future never completed")
	}
	res, ok := f.Poll()
	require.True(t, ok)
	return res
}

func TestDispatch_Success(t *testing.T) {
	d := New(&fakeGateway{reply: "hi there"}, 0, zerolog.Nop())

	f := d.Dispatch("session-1", "llama3", []model.Message{model.NewUserMessage("hello")})
	res := wait(t, f)

	assert.NoError(t, res.Err)
	assert.Equal(t, "hi there", res.Reply)
	assert.Equal(t, "session-1", res.Owner)
	assert.Equal(t, f.ID(), res.RequestID)
}

func TestDispatch_Error(t *testing.T) {
	want := &gateway.GatewayError{Detail: "connection refused"}
	d := New(&fakeGateway{err: want}, 0, zerolog.Nop())

	res := wait(t, d.Dispatch("s", "m", nil))

	var gwErr *gateway.GatewayError
	require.True(t, errors.As(res.Err, &gwErr))
	assert.Equal(t, "connection refused", gwErr.Detail)
}

func TestFuture_PollNonBlockingAndOnce(t *testing.T) {
	gw := &fakeGateway{reply: "late", release: make(chan struct{})}
	d := New(gw, 0, zerolog.Nop())
	f := d.Dispatch("s", "m", nil)

	_, ok := f.Poll()
	assert.False(t, ok, "poll before completion must not block or succeed")

	close(gw.release)
	res := wait(t, f)
	assert.Equal(t, "late", res.Reply)

	_, ok = f.Poll()
	assert.False(t, ok, "result is delivered exactly once")
}

func TestDispatch_CopiesHistory(t *testing.T) {
	gw := &fakeGateway{reply: "ok", seen: make(chan []model.Message, 1), release: make(chan struct{})}
	d := New(gw, 0, zerolog.Nop())

	history := []model.Message{model.NewUserMessage("original")}
	f := d.Dispatch("s", "m", history)
	history[0].Content = "mutated"

	close(gw.release)
	wait(t, f)
	seen := <-gw.seen
	assert.Equal(t, "original", seen[0].Content)
}

func TestDispatch_Timeout(t *testing.T) {
	gw := &fakeGateway{release: make(chan struct{})}
	d := New(gw, 20*time.Millisecond, zerolog.Nop())

	res := wait(t, d.Dispatch("s", "m", nil))
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
}

func TestDispatch_PanicBecomesError(t *testing.T) {
	d := New(&fakeGateway{panics: true}, 0, zerolog.Nop())

	res := wait(t, d.Dispatch("s", "m", nil))
	var gwErr *gateway.GatewayError
	require.True(t, errors.As(res.Err, &gwErr))
	assert.Contains(t, gwErr.Detail, "boom")
}
