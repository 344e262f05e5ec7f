// Package testutils provides shared fakes for tests that exercise delivery
// without a live transport.
package testutils

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkeye/Huddle/internal/core"
)

// RecordingConn is a core.SignalConnection that keeps every frame it accepts.
type RecordingConn struct {
	mu      sync.Mutex
	frames  []core.Frame
	closed  bool
	sendErr error
}

func NewRecordingConn() *RecordingConn { return &RecordingConn{} }

func (c *RecordingConn) TrySend(f core.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return core.ErrConnectionClosed
	}
	if c.sendErr != nil {
		return c.sendErr
	}
	c.frames = append(c.frames, append(core.Frame(nil), f...))
	return nil
}

func (c *RecordingConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// FailWith makes subsequent TrySend calls return err.
func (c *RecordingConn) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sendErr = err
}

func (c *RecordingConn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *RecordingConn) Envelopes(t testing.TB) []core.Envelope {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]core.Envelope, 0, len(c.frames))
	for _, f := range c.frames {
		env, err := core.Decode(f)
		require.NoError(t, err)
		out = append(out, env)
	}
	return out
}

// Types lists the event types received so far, in order.
func (c *RecordingConn) Types(t testing.TB) []string {
	t.Helper()
	envs := c.Envelopes(t)
	out := make([]string, 0, len(envs))
	for _, e := range envs {
		out = append(out, e.Type)
	}
	return out
}

// OfType decodes the data of every event of the given type into a new T.
func OfType[T any](t testing.TB, c *RecordingConn, eventType string) []T {
	t.Helper()
	var out []T
	for _, e := range c.Envelopes(t) {
		if e.Type != eventType {
			continue
		}
		var v T
		require.NoError(t, json.Unmarshal(e.Data, &v))
		out = append(out, v)
	}
	return out
}

func (c *RecordingConn) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = nil
}
