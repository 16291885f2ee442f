package search

import (
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const DefaultDelay = 300 * time.Millisecond

// State is a point-in-time view of an Engine.
type State[T Document] struct {
	Query          string
	CommittedQuery string
	IsSearching    bool
	Results        []T
}

type Options struct {
	Delay        time.Duration
	InitialQuery string
	Clock        clockwork.Clock
}

// Engine holds the raw query, the debounced (committed) query and the
// list being searched. Only the timer scheduled by the latest
// SetQuery can commit.
type Engine[T Document] struct {
	mu        sync.Mutex
	clock     clockwork.Clock
	delay     time.Duration
	items     []T
	raw       string
	committed string
	timer     clockwork.Timer
	gen       uint64
	closed    bool

	subs    map[int]func(State[T])
	nextSub int
}

func NewEngine[T Document](items []T, opts Options) *Engine[T] {
	delay := opts.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Engine[T]{
		clock:     clock,
		delay:     delay,
		items:     items,
		raw:       opts.InitialQuery,
		committed: opts.InitialQuery,
		subs:      map[int]func(State[T]){},
	}
}

// SetQuery records q immediately and (re)starts the debounce timer. When
// the timer fires the query current at that moment is committed.
func (e *Engine[T]) SetQuery(q string) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.raw = q
	e.gen++
	if e.timer != nil {
		e.timer.Stop()
	}
	gen := e.gen
	e.timer = e.clock.AfterFunc(e.delay, func() { e.commit(gen) })
	st := e.stateLocked()
	subs := e.subscribersLocked()
	e.mu.Unlock()

	publish(subs, st)
}

// ClearSearch sets an empty query. It is debounced like any other query.
func (e *Engine[T]) ClearSearch() { e.SetQuery("") }

func (e *Engine[T]) commit(gen uint64) {
	e.mu.Lock()
	if e.closed || gen != e.gen {
		e.mu.Unlock()
		return
	}
	e.committed = e.raw
	e.timer = nil
	st := e.stateLocked()
	subs := e.subscribersLocked()
	e.mu.Unlock()

	publish(subs, st)
}

// SetItems replaces the list being searched. The committed query is
// kept and applied to the new list.
func (e *Engine[T]) SetItems(items []T) {
	e.mu.Lock()
	e.items = items
	st := e.stateLocked()
	subs := e.subscribersLocked()
	e.mu.Unlock()

	publish(subs, st)
}

func (e *Engine[T]) Query() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.raw
}

func (e *Engine[T]) CommittedQuery() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.committed
}

// IsSearching reports a non-blank query that has not been committed yet.
func (e *Engine[T]) IsSearching() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.searchingLocked()
}

// Filtered is always derived from the committed query, never the raw one.
func (e *Engine[T]) Filtered() []T {
	e.mu.Lock()
	items, q := e.items, e.committed
	e.mu.Unlock()
	return Filter(items, q)
}

func (e *Engine[T]) TotalResults() int { return len(e.Filtered()) }

func (e *Engine[T]) HasResults() bool { return e.TotalResults() > 0 }

func (e *Engine[T]) State() State[T] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

// Subscribe registers fn to receive the state after every change. The
// returned func removes the subscription.
func (e *Engine[T]) Subscribe(fn func(State[T])) (unsubscribe func()) {
	e.mu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.subs, id)
		e.mu.Unlock()
	}
}

// Close stops any pending timer. A closed engine ignores further queries.
func (e *Engine[T]) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Engine[T]) searchingLocked() bool {
	return e.raw != e.committed && strings.TrimSpace(e.raw) != ""
}

func (e *Engine[T]) stateLocked() State[T] {
	return State[T]{
		Query:          e.raw,
		CommittedQuery: e.committed,
		IsSearching:    e.searchingLocked(),
		Results:        Filter(e.items, e.committed),
	}
}

func (e *Engine[T]) subscribersLocked() []func(State[T]) {
	out := make([]func(State[T]), 0, len(e.subs))
	for _, fn := range e.subs {
		out = append(out, fn)
	}
	return out
}

func publish[T Document](subs []func(State[T]), st State[T]) {
	for _, fn := range subs {
		fn(st)
	}
}
