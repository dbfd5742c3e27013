package collection

import "sort"

// Query is a composable read over one collection: equality filters, ordering
// and limiting. Evaluate once with All, or keep it live with Subscribe.
type Query[T any] struct {
	coll  *Collection[T]
	preds []func(T) bool
	less  func(a, b T) bool
	limit int
}

func (c *Collection[T]) Query() *Query[T] {
	return &Query[T]{coll: c, limit: -1}
}

// Where narrows the result set. Multiple calls AND together.
func (q *Query[T]) Where(pred func(T) bool) *Query[T] {
	q.preds = append(q.preds, pred)
	return q
}

func (q *Query[T]) OrderBy(less func(a, b T) bool) *Query[T] {
	q.less = less
	return q
}

func (q *Query[T]) Limit(n int) *Query[T] {
	q.limit = n
	return q
}

// All evaluates the query against the current cache contents.
func (q *Query[T]) All() []T {
	items := q.coll.List()
	out := make([]T, 0, len(items))
	for _, item := range items {
		if q.matches(item) {
			out = append(out, item)
		}
	}
	if q.less != nil {
		sort.SliceStable(out, func(i, j int) bool { return q.less(out[i], out[j]) })
	}
	if q.limit >= 0 && len(out) > q.limit {
		out = out[:q.limit]
	}
	return out
}

// Select evaluates the query and projects each surviving result through fn.
// A free function because Go methods cannot introduce the output type.
func Select[T, U any](q *Query[T], fn func(T) U) []U {
	items := q.All()
	out := make([]U, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}

// First returns the first result, if any.
func (q *Query[T]) First() (T, bool) {
	results := q.All()
	if len(results) == 0 {
		var zero T
		return zero, false
	}
	return results[0], true
}

// Subscribe makes the query live: fn receives the current results immediately
// and again after every collection change. No manual invalidation is needed.
func (q *Query[T]) Subscribe(fn func([]T)) func() {
	unsubscribe := q.coll.Subscribe(func() {
		fn(q.All())
	})
	fn(q.All())
	return unsubscribe
}

func (q *Query[T]) matches(item T) bool {
	for _, pred := range q.preds {
		if !pred(item) {
			return false
		}
	}
	return true
}

// Joined is one row of a left join: every left entity paired with its first
// matching right entity, or nil when none matches.
type Joined[L, R any] struct {
	Left  L
	Right *R
}

// JoinQuery is a live left join between two collections.
type JoinQuery[L, R any] struct {
	left  *Collection[L]
	right *Collection[R]
	on    func(L, R) bool
	preds []func(Joined[L, R]) bool
}

// LeftJoin pairs each left entity with the first right entity matching on.
func LeftJoin[L, R any](left *Collection[L], right *Collection[R], on func(L, R) bool) *JoinQuery[L, R] {
	return &JoinQuery[L, R]{left: left, right: right, on: on}
}

func (q *JoinQuery[L, R]) Where(pred func(Joined[L, R]) bool) *JoinQuery[L, R] {
	q.preds = append(q.preds, pred)
	return q
}

// Missing keeps only rows without a join partner, the absence predicate
// behind "channels not yet connected".
func (q *JoinQuery[L, R]) Missing() *JoinQuery[L, R] {
	return q.Where(func(row Joined[L, R]) bool { return row.Right == nil })
}

func (q *JoinQuery[L, R]) All() []Joined[L, R] {
	lefts := q.left.List()
	rights := q.right.List()

	out := make([]Joined[L, R], 0, len(lefts))
	for _, l := range lefts {
		row := Joined[L, R]{Left: l}
		for i := range rights {
			if q.on(l, rights[i]) {
				row.Right = &rights[i]
				break
			}
		}
		if q.matchesRow(row) {
			out = append(out, row)
		}
	}
	return out
}

// Lefts evaluates the join and projects the left side of the surviving rows.
func (q *JoinQuery[L, R]) Lefts() []L {
	rows := q.All()
	out := make([]L, len(rows))
	for i, row := range rows {
		out[i] = row.Left
	}
	return out
}

// Subscribe fires immediately and again when either side changes.
func (q *JoinQuery[L, R]) Subscribe(fn func([]Joined[L, R])) func() {
	emit := func() { fn(q.All()) }
	unsubLeft := q.left.Subscribe(emit)
	unsubRight := q.right.Subscribe(emit)
	emit()
	return func() {
		unsubLeft()
		unsubRight()
	}
}

func (q *JoinQuery[L, R]) matchesRow(row Joined[L, R]) bool {
	for _, pred := range q.preds {
		if !pred(row) {
			return false
		}
	}
	return true
}
