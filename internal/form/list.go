package form

import "github.com/google/uuid"

// Direction is the way a record moves within its list.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// ParseDirection maps "up"/"down" to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return Up, true
	case "down":
		return Down, true
	}
	return 0, false
}

// List is an ordered, variable-length collection of editable records.
// Records are keyed by stable ids and positioned by an explicit order slice,
// so removing or moving one record never shifts another record's identity.
// The order slice is replaced rather than mutated on every change.
type List[T any] struct {
	min   int
	blank func() T
	order []string
	items map[string]T
}

// NewList creates a list that refuses to shrink below minLen records.
// With no initial items it starts with minLen blank records.
func NewList[T any](minLen int, blank func() T, items ...T) *List[T] {
	l := &List[T]{
		min:   minLen,
		blank: blank,
		items: make(map[string]T, len(items)),
	}
	for _, it := range items {
		l.insert(it)
	}
	if len(items) == 0 {
		for range minLen {
			l.insert(blank())
		}
	}
	return l
}

func (l *List[T]) insert(v T) string {
	id := uuid.NewString()
	order := make([]string, len(l.order), len(l.order)+1)
	copy(order, l.order)
	l.order = append(order, id)
	l.items[id] = v
	return id
}

// Len returns the number of records.
func (l *List[T]) Len() int { return len(l.order) }

// Min returns the minimum cardinality.
func (l *List[T]) Min() int { return l.min }

// At returns the record at index i.
func (l *List[T]) At(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(l.order) {
		return zero, false
	}
	return l.items[l.order[i]], true
}

// ID returns the stable id of the record at index i.
func (l *List[T]) ID(i int) (string, bool) {
	if i < 0 || i >= len(l.order) {
		return "", false
	}
	return l.order[i], true
}

// IndexOf returns the current index of id, or -1.
func (l *List[T]) IndexOf(id string) int {
	for i, v := range l.order {
		if v == id {
			return i
		}
	}
	return -1
}

// Items returns a snapshot of the records in order.
func (l *List[T]) Items() []T {
	out := make([]T, len(l.order))
	for i, id := range l.order {
		out[i] = l.items[id]
	}
	return out
}

// Add appends a blank record and returns its id. It always succeeds.
func (l *List[T]) Add() string {
	return l.insert(l.blank())
}

// Remove deletes the record at index i. It is a no-op when the index is out
// of range or when removing would drop the list below its minimum.
func (l *List[T]) Remove(i int) bool {
	if i < 0 || i >= len(l.order) || len(l.order) <= l.min {
		return false
	}
	id := l.order[i]
	order := make([]string, 0, len(l.order)-1)
	order = append(order, l.order[:i]...)
	order = append(order, l.order[i+1:]...)
	l.order = order
	delete(l.items, id)
	return true
}

// Set replaces the record at index i, leaving every sibling untouched.
func (l *List[T]) Set(i int, v T) bool {
	if i < 0 || i >= len(l.order) {
		return false
	}
	l.items[l.order[i]] = v
	return true
}

// Update replaces the record at index i with fn applied to it.
func (l *List[T]) Update(i int, fn func(T) T) bool {
	cur, ok := l.At(i)
	if !ok {
		return false
	}
	return l.Set(i, fn(cur))
}

// Move swaps the record at index i with its neighbour in direction d.
// Moving the first record up or the last record down is a no-op.
func (l *List[T]) Move(i int, d Direction) bool {
	if i < 0 || i >= len(l.order) {
		return false
	}
	j := i - 1
	if d == Down {
		j = i + 1
	}
	if j < 0 || j >= len(l.order) {
		return false
	}
	order := make([]string, len(l.order))
	copy(order, l.order)
	order[i], order[j] = order[j], order[i]
	l.order = order
	return true
}

// Clone returns an independent copy that keeps the same record ids.
func (l *List[T]) Clone() *List[T] {
	c := &List[T]{
		min:   l.min,
		blank: l.blank,
		order: make([]string, len(l.order)),
		items: make(map[string]T, len(l.items)),
	}
	copy(c.order, l.order)
	for k, v := range l.items {
		c.items[k] = v
	}
	return c
}
