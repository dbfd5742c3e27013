// Package collection implements the client-side reactive cache layer: one
// Collection per entity type mirrors server state, applies mutations
// optimistically, and pushes changes to live queries.
package collection

import (
	"context"
	"sync"

	appErrors "github.com/MarcusGasberg/somemellier/internal/errors"
)

// Config wires a Collection to its entity type and its API collaborator.
// OnInsert/OnUpdate may be nil, in which case writes commit locally without a
// network round trip (useful in tests and for derived collections).
type Config[T any] struct {
	// GetKey extracts the entity id. Duplicate ids overwrite.
	GetKey func(T) string
	// Fetch loads the full current snapshot from the API.
	Fetch func(ctx context.Context) ([]T, error)
	// OnInsert persists a locally inserted entity. The returned entity (the
	// server echo, carrying server-assigned fields) replaces the local one.
	OnInsert func(ctx context.Context, item T) (T, error)
	// OnUpdate persists a locally updated entity.
	OnUpdate func(ctx context.Context, item T) (T, error)
}

// Collection is an in-memory, queryable mirror of one server-side entity set.
// All reads and writes are safe for concurrent use; persistence runs on
// per-key worker goroutines so mutations against the same entity id reach the
// network strictly in order.
type Collection[T any] struct {
	cfg Config[T]

	mu    sync.Mutex
	items map[string]T
	order []string

	queues map[string][]*queuedMutation[T]
	// draining marks keys with a live worker goroutine. The worker clears its
	// flag under c.mu when it finds the queue empty, so at most one worker
	// ever exists per key.
	draining map[string]bool

	subscribers map[int]func()
	nextSub     int
}

type queuedMutation[T any] struct {
	mut     *Mutation
	item    T
	prev    T
	hadPrev bool
}

func New[T any](cfg Config[T]) *Collection[T] {
	if cfg.GetKey == nil {
		panic("collection: Config.GetKey is required")
	}
	return &Collection[T]{
		cfg:         cfg,
		items:       make(map[string]T),
		queues:      make(map[string][]*queuedMutation[T]),
		draining:    make(map[string]bool),
		subscribers: make(map[int]func()),
	}
}

// Load fetches the full snapshot and replaces the cached set. On failure the
// cache keeps its previous contents and the error is returned to the caller,
// tagged with its kind, so the view layer decides the fallback rendering.
// Entities with uncommitted local mutations keep their optimistic value.
func (c *Collection[T]) Load(ctx context.Context) error {
	fetched, err := c.cfg.Fetch(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	fresh := make(map[string]T, len(fetched))
	order := make([]string, 0, len(fetched))
	for _, item := range fetched {
		key := c.cfg.GetKey(item)
		if _, seen := fresh[key]; !seen {
			order = append(order, key)
		}
		fresh[key] = item
	}
	// Preserve optimistic state for keys with writes still in flight.
	for key, queue := range c.queues {
		if len(queue) == 0 {
			continue
		}
		if local, ok := c.items[key]; ok {
			if _, seen := fresh[key]; !seen {
				order = append(order, key)
			}
			fresh[key] = local
		}
	}
	c.items = fresh
	c.order = order
	c.mu.Unlock()

	c.notify()
	return nil
}

// Get returns the entity for id, if cached.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[id]
	return item, ok
}

// List returns a snapshot of all cached entities in insertion order.
func (c *Collection[T]) List() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.items[key])
	}
	return out
}

// Len returns the number of cached entities.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Insert applies the entity locally right away, making it visible to live
// queries before the create request resolves, then persists asynchronously.
// On persistence failure the optimistic write is reverted.
func (c *Collection[T]) Insert(ctx context.Context, item T) *Mutation {
	key := c.cfg.GetKey(item)
	mut := newMutation(key, opInsert)

	c.mu.Lock()
	prev, hadPrev := c.items[key]
	if !hadPrev {
		c.order = append(c.order, key)
	}
	c.items[key] = item
	c.enqueueLocked(ctx, &queuedMutation[T]{mut: mut, item: item, prev: prev, hadPrev: hadPrev})
	c.mu.Unlock()

	c.notify()
	return mut
}

// Update looks up id, applies the patch in place, and persists asynchronously.
// Returns a NotFound error when id is absent.
func (c *Collection[T]) Update(ctx context.Context, id string, patch func(*T)) (*Mutation, error) {
	c.mu.Lock()
	current, ok := c.items[id]
	if !ok {
		c.mu.Unlock()
		return nil, &appErrors.Error{Kind: appErrors.KindNotFound, Message: "entity " + id + " not found in collection"}
	}

	prev := current
	patch(&current)
	c.items[id] = current

	mut := newMutation(id, opUpdate)
	c.enqueueLocked(ctx, &queuedMutation[T]{mut: mut, item: current, prev: prev, hadPrev: true})
	c.mu.Unlock()

	c.notify()
	return mut, nil
}

// Subscribe registers fn to run after every change (insert, update, load
// merge, rollback). Returns the unsubscribe func.
func (c *Collection[T]) Subscribe(fn func()) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subscribers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}
}

// Reset clears all cached state. Pending mutation queues are dropped; tests
// use this between cases.
func (c *Collection[T]) Reset() {
	c.mu.Lock()
	c.items = make(map[string]T)
	c.order = nil
	c.queues = make(map[string][]*queuedMutation[T])
	c.mu.Unlock()
	c.notify()
}

// enqueueLocked appends the mutation to the per-key queue and starts the
// worker unless one is already draining the key. Queue length alone cannot
// decide this: the worker dequeues before notifying subscribers, so the queue
// can be momentarily empty while the worker is still between iterations.
// Caller holds c.mu.
func (c *Collection[T]) enqueueLocked(ctx context.Context, qm *queuedMutation[T]) {
	c.queues[qm.mut.key] = append(c.queues[qm.mut.key], qm)
	if !c.draining[qm.mut.key] {
		c.draining[qm.mut.key] = true
		go c.drain(ctx, qm.mut.key)
	}
}

// drain processes the key's queue in FIFO order, one network call at a time,
// so a slow response can never land after (and clobber) a newer write.
func (c *Collection[T]) drain(ctx context.Context, key string) {
	for {
		c.mu.Lock()
		queue := c.queues[key]
		if len(queue) == 0 {
			delete(c.queues, key)
			delete(c.draining, key)
			c.mu.Unlock()
			return
		}
		qm := queue[0]
		c.mu.Unlock()

		qm.mut.setState(MutationInFlight)
		echo, err := c.persist(ctx, qm)

		c.mu.Lock()
		// Reset may have cleared the queue while the request was in flight.
		if q := c.queues[key]; len(q) > 0 {
			c.queues[key] = q[1:]
		}
		hasNewer := len(c.queues[key]) > 0

		if err != nil {
			c.rollbackLocked(qm, hasNewer)
		} else if !hasNewer {
			// Merge the server echo only when no newer local write exists;
			// otherwise the echo is already stale.
			c.items[key] = echo
		}
		c.mu.Unlock()

		// Notify before closing Done so waiters observe the settled cache.
		c.notify()
		if err != nil {
			qm.mut.finish(MutationFailed, err)
		} else {
			qm.mut.finish(MutationCommitted, nil)
		}
	}
}

func (c *Collection[T]) persist(ctx context.Context, qm *queuedMutation[T]) (T, error) {
	switch qm.mut.op {
	case opInsert:
		if c.cfg.OnInsert == nil {
			return qm.item, nil
		}
		return c.cfg.OnInsert(ctx, qm.item)
	default:
		if c.cfg.OnUpdate == nil {
			return qm.item, nil
		}
		return c.cfg.OnUpdate(ctx, qm.item)
	}
}

// rollbackLocked reverts one failed optimistic write. When newer writes are
// queued behind it their optimistic value stays; reverting underneath them
// would discard state the user has since produced.
func (c *Collection[T]) rollbackLocked(qm *queuedMutation[T], hasNewer bool) {
	if hasNewer {
		return
	}
	key := qm.mut.key
	if qm.mut.op == opInsert && !qm.hadPrev {
		delete(c.items, key)
		for i, k := range c.order {
			if k == key {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
		return
	}
	c.items[key] = qm.prev
}

func (c *Collection[T]) notify() {
	c.mu.Lock()
	fns := make([]func(), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
