package processor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"triage-server/internal/observability"
)

// State is the lifecycle of a call session. Transitions only move forward.
type State int

const (
	StateConnecting State = iota
	StateStreaming
	StateDraining
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "CONNECTING"
	case StateStreaming:
		return "STREAMING"
	case StateDraining:
		return "DRAINING"
	case StateClosed:
		return "CLOSED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// callSession is the mutable state of one call shared by both relay
// directions.
type callSession struct {
	id        string
	startedAt time.Time
	logger    *observability.Logger

	mu        sync.Mutex
	streamSid string
	state     State
	stopSeen  bool
	entries   []Entry
}

func newCallSession(id string, logger *observability.Logger) *callSession {
	return &callSession{
		id:        id,
		startedAt: time.Now(),
		logger:    logger,
		state:     StateConnecting,
	}
}

// transition moves to next and logs it. Backward moves are ignored.
func (c *callSession) transition(ctx context.Context, next State) bool {
	c.mu.Lock()
	prev := c.state
	if next <= prev {
		c.mu.Unlock()
		return false
	}
	c.state = next
	c.mu.Unlock()

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "from_state", Value: prev.String()},
		observability.Field{Key: "to_state", Value: next.String()},
	)
	c.logger.Info(ctx, "Call state transition")
	return true
}

func (c *callSession) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *callSession) setStreamSid(sid string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.streamSid = sid
}

func (c *callSession) StreamSid() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.streamSid
}

func (c *callSession) markStopped() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopSeen = true
}

func (c *callSession) StopSeen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopSeen
}

func (c *callSession) appendEntry(e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, e)
}

// Entries returns a copy of the transcript so far.
func (c *callSession) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}
