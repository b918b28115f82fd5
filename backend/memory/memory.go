// Package memory keeps rows in a slice and serves keyset pages from it. It is
// meant for tests and small reference lists.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/Alp4ka/keysetpager"
)

// Predicate reports whether a row matches.
type Predicate[T any] func(row T) (bool, error)

// Match wraps an infallible filter function.
func Match[T any](fn func(T) bool) Predicate[T] {
	return func(row T) (bool, error) {
		return fn(row), nil
	}
}

// Backend is safe for concurrent use. Predicates and sorting read columns
// through the same Fields registry the pager uses.
type Backend[T any] struct {
	mu     sync.RWMutex
	rows   []T
	fields keysetpager.Fields[T]
}

func New[T any](fields keysetpager.Fields[T], rows ...T) *Backend[T] {
	return &Backend[T]{
		rows:   slices.Clone(rows),
		fields: fields,
	}
}

// Insert appends rows.
func (b *Backend[T]) Insert(rows ...T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.rows = append(b.rows, rows...)
}

// Len returns the number of stored rows.
func (b *Backend[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.rows)
}

// Compare - implements keysetpager.PredicateBuilder.
func (b *Backend[T]) Compare(column string, op keysetpager.Operator, value any) Predicate[T] {
	return func(row T) (bool, error) {
		c, err := b.compareColumn(row, column, value)
		if err != nil {
			return false, err
		}

		switch op {
		case keysetpager.OperatorGT:
			return c > 0, nil
		case keysetpager.OperatorLT:
			return c < 0, nil
		case keysetpager.OperatorEQ:
			return c == 0, nil
		default:
			return false, fmt.Errorf("unsupported operator '%s'", op)
		}
	}
}

// Equal - implements keysetpager.PredicateBuilder.
func (b *Backend[T]) Equal(column string, value any) Predicate[T] {
	return b.Compare(column, keysetpager.OperatorEQ, value)
}

// And - implements keysetpager.PredicateBuilder. Nil predicates are skipped.
func (b *Backend[T]) And(predicates ...Predicate[T]) Predicate[T] {
	predicates = slices.DeleteFunc(slices.Clone(predicates), isNil[T])

	return func(row T) (bool, error) {
		for _, p := range predicates {
			ok, err := p(row)
			if err != nil || !ok {
				return false, err
			}
		}

		return true, nil
	}
}

// Or - implements keysetpager.PredicateBuilder. Nil predicates are skipped.
func (b *Backend[T]) Or(predicates ...Predicate[T]) Predicate[T] {
	predicates = slices.DeleteFunc(slices.Clone(predicates), isNil[T])

	return func(row T) (bool, error) {
		for _, p := range predicates {
			ok, err := p(row)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}

		return false, nil
	}
}

func isNil[T any](p Predicate[T]) bool {
	return p == nil
}

// Find - implements keysetpager.Backend.
func (b *Backend[T]) Find(ctx context.Context, q keysetpager.Query[Predicate[T]]) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matched, err := b.filter(q.Where)
	if err != nil {
		return nil, err
	}

	if err := b.sort(matched, q.Sort); err != nil {
		return nil, err
	}

	if q.Offset > 0 {
		matched = matched[min(q.Offset, len(matched)):]
	}

	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}

	return matched, nil
}

// Count - implements keysetpager.Backend.
func (b *Backend[T]) Count(ctx context.Context, where []Predicate[T]) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	matched, err := b.filter(where)
	if err != nil {
		return 0, err
	}

	return int64(len(matched)), nil
}

// filter returns a copy of the matching rows taken under the read lock.
func (b *Backend[T]) filter(where []Predicate[T]) ([]T, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	all := b.And(where...)

	var ret []T
	for _, row := range b.rows {
		ok, err := all(row)
		if err != nil {
			return nil, err
		}
		if ok {
			ret = append(ret, row)
		}
	}

	return ret, nil
}

func (b *Backend[T]) sort(rows []T, orderings keysetpager.Orderings) error {
	var sortErr error

	slices.SortStableFunc(rows, func(x, y T) int {
		for _, o := range orderings {
			field, ok := b.fields[o.Column]
			if !ok {
				sortErr = fmt.Errorf("%w: '%s'", keysetpager.ErrUnknownSortField, o.Column)
				return 0
			}

			c, err := keysetpager.CompareValues(field.Value(x), field.Value(y))
			if err != nil {
				sortErr = err
				return 0
			}

			if c != 0 {
				if o.Direction == keysetpager.DirectionDESC {
					return -c
				}
				return c
			}
		}

		return 0
	})

	return sortErr
}

func (b *Backend[T]) compareColumn(row T, column string, value any) (int, error) {
	field, ok := b.fields[column]
	if !ok {
		return 0, fmt.Errorf("%w: '%s'", keysetpager.ErrUnknownSortField, column)
	}

	return keysetpager.CompareValues(field.Value(row), value)
}

var _ keysetpager.Backend[struct{}, Predicate[struct{}]] = (*Backend[struct{}])(nil)
