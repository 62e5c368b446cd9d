package inmemdb

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// table keeps rows by id and remembers insertion order, so listings are stable.
type table[T any] struct {
	mu    sync.RWMutex
	rows  map[string]*T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]*T)}
}

func newID() string {
	return uuid.New().String()
}

// insert stores row under id. Must be called with the write lock held.
func (t *table[T]) insert(id string, row T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = &row
}

// all returns copies of every row in insertion order. Must be called with a lock held.
func (t *table[T]) all(keep func(T) bool) []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		row := *t.rows[id]
		if keep == nil || keep(row) {
			out = append(out, row)
		}
	}
	return out
}

// get returns a copy of the row. Must be called with a lock held.
func (t *table[T]) get(id string) (T, bool) {
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return *row, true
}

// remove drops the row and reports whether it existed. Must be called with the write lock held.
func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// The helpers below wrap a single table operation with the DB latency and the table lock.

func addRow[T any](ctx context.Context, db *DB, t *table[T], row T, setID func(*T, string)) (T, error) {
	if err := db.wait(ctx); err != nil {
		var zero T
		return zero, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	id := newID()
	setID(&row, id)
	t.insert(id, row)
	return row, nil
}

func listRows[T any](ctx context.Context, db *DB, t *table[T], keep func(T) bool) ([]T, error) {
	if err := db.wait(ctx); err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.all(keep), nil
}

func getRow[T any](ctx context.Context, db *DB, t *table[T], id string, notFound error) (T, error) {
	var zero T
	if err := db.wait(ctx); err != nil {
		return zero, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	if row, ok := t.get(id); ok {
		return row, nil
	}
	return zero, notFound
}

func replaceRow[T any](ctx context.Context, db *DB, t *table[T], id string, row T, notFound error) (T, error) {
	var zero T
	if err := db.wait(ctx); err != nil {
		return zero, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.get(id); !ok {
		return zero, notFound
	}
	t.insert(id, row)
	return row, nil
}

func deleteRow[T any](ctx context.Context, db *DB, t *table[T], id string, notFound error) error {
	if err := db.wait(ctx); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.remove(id) {
		return notFound
	}
	return nil
}
