// Package reactive implements the subscription layer over the query API.
//
// A subscription is keyed by (query name, canonical argument string).
// Subscribers sharing a key share one query execution and one cached result.
// Mutations publish an invalidation per touched collection; every entry
// registered against that collection is re-evaluated and its subscribers are
// notified when the result changed by value. Invalidation is deliberately
// coarse: any write to a collection re-runs all queries over it.
package reactive

import (
	"reflect"
	"sync"
)

// QueryFunc computes the current value of a query.
type QueryFunc func() (any, error)

// Key identifies one shared query execution.
type Key struct {
	Query string
	Args  string
}

// Result is what subscribers receive. Ready is false only for the initial
// loading sentinel, which is distinct from a legitimate nil Value.
type Result struct {
	Ready bool
	Value any
	Err   error
}

// entry is the shared state of all subscribers with the same key.
type entry struct {
	key         Key
	collections []string
	fn          QueryFunc
	subscribers map[*Subscription]struct{}

	ready bool
	value any
	err   error

	// generation counts invalidations; an evaluation that finishes after a
	// newer invalidation was published is stale and must be discarded.
	generation uint64
}

// Registry is the explicit publish/subscribe registry. It is handed to the
// store and the web layer; there is no hidden global instance.
type Registry struct {
	mu      sync.Mutex
	entries map[Key]*entry
	byColl  map[string]map[Key]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[Key]*entry),
		byColl:  make(map[string]map[Key]struct{}),
	}
}

// Subscribe registers interest in a query over the given collections.
// The first subscriber for a key triggers the initial evaluation; later
// subscribers share the cached result and receive it immediately.
// The returned subscription starts with a loading sentinel until the first
// value arrives.
func (r *Registry) Subscribe(query, args string, collections []string, fn QueryFunc) *Subscription {
	key := Key{Query: query, Args: args}

	sub := &Subscription{
		registry: r,
		ch:       make(chan Result, 1),
	}

	r.mu.Lock()

	e, ok := r.entries[key]
	if !ok {
		e = &entry{
			key:         key,
			collections: collections,
			fn:          fn,
			subscribers: make(map[*Subscription]struct{}),
		}

		r.entries[key] = e

		for _, c := range collections {
			if r.byColl[c] == nil {
				r.byColl[c] = make(map[Key]struct{})
			}

			r.byColl[c][key] = struct{}{}
		}
	}

	e.subscribers[sub] = struct{}{}
	sub.entry = e

	if e.ready {
		// share the cached result right away, failed or not
		sub.deliver(Result{Ready: true, Value: e.value, Err: e.err})
		r.mu.Unlock()

		return sub
	}

	sub.deliver(Result{})

	gen := e.generation
	r.mu.Unlock()

	if !ok {
		go r.evaluate(e, gen)
	}

	return sub
}

// Publish signals that a mutation touched the named collection. All entries
// registered against it are re-evaluated asynchronously.
func (r *Registry) Publish(collection string) {
	r.mu.Lock()

	keys := r.byColl[collection]
	for key := range keys {
		e := r.entries[key]
		if e == nil {
			continue
		}

		e.generation++

		go r.evaluate(e, e.generation)
	}

	r.mu.Unlock()
}

// evaluate runs the entry's query outside the lock and delivers the result
// unless it was superseded or the entry has no subscribers left.
func (r *Registry) evaluate(e *entry, gen uint64) {
	value, err := e.fn()

	r.mu.Lock()
	defer r.mu.Unlock()

	// entry dropped after the last unsubscribe, or a newer invalidation is
	// already being evaluated: this result must not be delivered
	if r.entries[e.key] != e || gen != e.generation {
		return
	}

	if err != nil {
		// cache the failure so late joiners are not left on the loading
		// sentinel until the next invalidation
		e.ready = true
		e.value = nil
		e.err = err

		for sub := range e.subscribers {
			sub.deliver(Result{Ready: true, Err: err})
		}

		return
	}

	// redeliver only when the result changed by value; a recovery after a
	// failure is always a change
	if e.ready && e.err == nil && reflect.DeepEqual(e.value, value) {
		return
	}

	e.ready = true
	e.value = value
	e.err = nil

	for sub := range e.subscribers {
		sub.deliver(Result{Ready: true, Value: value})
	}
}

// unsubscribe detaches sub from its entry; the last subscriber for a key
// releases the cached result.
func (r *Registry) unsubscribe(sub *Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := sub.entry
	if e == nil {
		return
	}

	if _, ok := e.subscribers[sub]; !ok {
		return
	}

	delete(e.subscribers, sub)
	close(sub.ch)
	sub.entry = nil

	if len(e.subscribers) > 0 {
		return
	}

	delete(r.entries, e.key)

	for _, c := range e.collections {
		delete(r.byColl[c], e.key)

		if len(r.byColl[c]) == 0 {
			delete(r.byColl, c)
		}
	}
}
