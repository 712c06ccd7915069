// Package search orders concurrent search requests per key so that a newer
// request's result always supersedes an older one's.
//
// Callers tag each request with a client sequence number. Begin registers the
// request and cancels whatever was in flight for the same key; a request
// tagged lower than the latest sequence seen is stale on arrival. The result
// may only be delivered if Commit reports true.
package search

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reasons a result is dropped.
const (
	ReasonOutOfOrder = "out_of_order"
	ReasonSuperseded = "superseded"
)

var staleResults = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_search_stale_results_total",
		Help: "Search results discarded because a newer request for the same key exists",
	},
	[]string{"reason"},
)

type keyState struct {
	latest   uint64
	current  *Ticket
	lastSeen time.Time
}

// Coordinator tracks the latest request per key.
type Coordinator struct {
	mu        sync.Mutex
	keys      map[string]*keyState
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewCoordinator creates a coordinator. Keys with nothing in flight are
// forgotten after idleTTL.
func NewCoordinator(idleTTL time.Duration) *Coordinator {
	return &Coordinator{
		keys:    make(map[string]*keyState),
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

// Ticket is one registered request.
type Ticket struct {
	c      *Coordinator
	key    string
	seq    uint64
	ctx    context.Context
	cancel context.CancelFunc
	stale  bool
}

// Begin registers request seq for key and returns its ticket. The ticket's
// context is canceled as soon as a newer request for key begins.
func (c *Coordinator) Begin(ctx context.Context, key string, seq uint64) *Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweepLocked(now)

	st, ok := c.keys[key]
	if !ok {
		st = &keyState{}
		c.keys[key] = st
	}
	st.lastSeen = now

	tctx, cancel := context.WithCancel(ctx)
	t := &Ticket{c: c, key: key, seq: seq, ctx: tctx, cancel: cancel}

	if ok && seq < st.latest {
		t.stale = true
		cancel()
		staleResults.WithLabelValues(ReasonOutOfOrder).Inc()
		return t
	}

	if st.current != nil {
		st.current.cancel()
	}
	st.latest = seq
	st.current = t
	return t
}

// Context is canceled when the ticket is superseded or finished.
func (t *Ticket) Context() context.Context { return t.ctx }

// Seq returns the sequence number the ticket was registered with.
func (t *Ticket) Seq() uint64 { return t.seq }

// Stale reports whether the ticket was out of order on arrival.
func (t *Ticket) Stale() bool { return t.stale }

// Commit finishes the ticket and reports whether its result may be
// delivered, i.e. no newer request for the key has begun.
func (t *Ticket) Commit() bool {
	c := t.c
	c.mu.Lock()
	defer c.mu.Unlock()
	defer t.cancel()

	if t.stale {
		return false
	}
	st, ok := c.keys[t.key]
	if !ok || st.current != t {
		staleResults.WithLabelValues(ReasonSuperseded).Inc()
		return false
	}
	st.current = nil
	st.lastSeen = c.now()
	return true
}

// Release abandons the ticket without delivering a result.
func (t *Ticket) Release() {
	c := t.c
	c.mu.Lock()
	defer c.mu.Unlock()

	t.cancel()
	if st, ok := c.keys[t.key]; ok && st.current == t {
		st.current = nil
	}
}

// Len returns the number of tracked keys.
func (c *Coordinator) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.keys)
}

func (c *Coordinator) sweepLocked(now time.Time) {
	if c.idleTTL <= 0 || now.Sub(c.lastSweep) < c.idleTTL {
		return
	}
	c.lastSweep = now
	for key, st := range c.keys {
		if st.current == nil && now.Sub(st.lastSeen) > c.idleTTL {
			delete(c.keys, key)
		}
	}
}
