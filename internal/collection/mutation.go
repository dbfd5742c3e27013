package collection

import "sync"

// MutationState tracks an optimistic write through its lifecycle. Every local
// write starts Pending, is picked up by the per-key worker as InFlight, and
// ends Committed or Failed. Failed mutations have already been rolled back.
type MutationState int

const (
	MutationPending MutationState = iota
	MutationInFlight
	MutationCommitted
	MutationFailed
)

func (s MutationState) String() string {
	switch s {
	case MutationInFlight:
		return "inflight"
	case MutationCommitted:
		return "committed"
	case MutationFailed:
		return "failed"
	default:
		return "pending"
	}
}

type mutationOp int

const (
	opInsert mutationOp = iota
	opUpdate
)

// Mutation is the observable handle for one optimistic write.
type Mutation struct {
	mu    sync.Mutex
	key   string
	op    mutationOp
	state MutationState
	err   error
	done  chan struct{}
}

func newMutation(key string, op mutationOp) *Mutation {
	return &Mutation{key: key, op: op, done: make(chan struct{})}
}

// Key returns the entity id this mutation targets.
func (m *Mutation) Key() string { return m.key }

// State returns the current lifecycle state.
func (m *Mutation) State() MutationState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Err returns the persistence error for a failed mutation.
func (m *Mutation) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Done is closed once the mutation reaches a terminal state.
func (m *Mutation) Done() <-chan struct{} { return m.done }

func (m *Mutation) setState(s MutationState) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

func (m *Mutation) finish(s MutationState, err error) {
	m.mu.Lock()
	m.state = s
	m.err = err
	m.mu.Unlock()
	close(m.done)
}
