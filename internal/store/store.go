package store

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"github.com/Alp4ka/keysetpager"
)

// Filter narrows the order list. Empty fields match everything.
type Filter struct {
	Customer string `form:"customer"`
	Status   string `form:"status"`
}

// Store lists and inserts orders on one configured backend.
type Store interface {
	// List returns one keyset page. A sort without the id column gets id
	// appended as the tie-breaker.
	List(ctx context.Context, req keysetpager.PageRequest, f Filter) (*keysetpager.Slice[Order], error)
	// Insert stores orders with their ids as given.
	Insert(ctx context.Context, orders ...Order) error
	// Mapping returns the API sort aliases.
	Mapping() keysetpager.ColumnMapping
	// DefaultSort is used when the client sends no sort.
	DefaultSort() keysetpager.Orderings
	Close() error
}

type inserter func(ctx context.Context, orders ...Order) error

// store adapts a Pager over any backend to Store.
type store[P any] struct {
	schema  schema
	backend keysetpager.Backend[Order, P]
	pager   *keysetpager.Pager[Order, P]
	insert  inserter
	close   func() error
}

func newStore[P any](s schema, backend keysetpager.Backend[Order, P], insert inserter, closeFn func() error, logger *zap.Logger) *store[P] {
	if closeFn == nil {
		closeFn = func() error { return nil }
	}

	return &store[P]{
		schema:  s,
		backend: backend,
		pager:   keysetpager.New(backend, s.fields, keysetpager.WithLogger(logger)),
		insert:  insert,
		close:   closeFn,
	}
}

func (s *store[P]) List(ctx context.Context, req keysetpager.PageRequest, f Filter) (*keysetpager.Slice[Order], error) {
	if len(req.Sort()) > 0 && !slices.Contains(req.Sort().Columns(), s.schema.idCol) {
		req = req.WithSort(keysetpager.Asc(s.schema.idCol))
	}

	return s.pager.FindAll(ctx, req, filterPredicates(s.backend, f)...)
}

func (s *store[P]) Insert(ctx context.Context, orders ...Order) error {
	if len(orders) == 0 {
		return nil
	}

	return s.insert(ctx, orders...)
}

func (s *store[P]) Mapping() keysetpager.ColumnMapping {
	return s.schema.mapping
}

func (s *store[P]) DefaultSort() keysetpager.Orderings {
	return s.schema.defaultSort()
}

func (s *store[P]) Close() error {
	return s.close()
}

func filterPredicates[P any](b keysetpager.PredicateBuilder[P], f Filter) []P {
	var ret []P

	if f.Customer != "" {
		ret = append(ret, b.Equal(ColumnCustomer, f.Customer))
	}

	if f.Status != "" {
		ret = append(ret, b.Equal(ColumnStatus, f.Status))
	}

	return ret
}
