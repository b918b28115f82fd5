package keysetpager

import "context"

// PredicateBuilder builds backend specific filter predicates of type P.
type PredicateBuilder[P any] interface {
	// Compare returns "column op value" for OperatorGT and OperatorLT.
	Compare(column string, op Operator, value any) P
	// Equal returns "column = value".
	Equal(column string, value any) P
	// And joins predicates with logical AND.
	And(predicates ...P) P
	// Or joins predicates with logical OR.
	Or(predicates ...P) P
}

// Query describes one bounded read.
type Query[P any] struct {
	// Where predicates are joined with AND. Empty means no filter.
	Where []P
	// Sort is applied as ORDER BY in the given order.
	Sort Orderings
	// Limit bounds the number of returned rows. Zero or NoLimit disables it.
	Limit int
	// Offset skips rows; used only by the legacy offset paging.
	Offset int
}

// Backend is the capability surface the pager needs from a store holding rows
// of type T. Implementations must not retry on their own behalf; the pager
// returns their errors to the caller unchanged.
type Backend[T any, P any] interface {
	PredicateBuilder[P]

	// Find runs q and returns the rows in sort order.
	Find(ctx context.Context, q Query[P]) ([]T, error)
	// Count returns the number of rows matching all where predicates.
	Count(ctx context.Context, where []P) (int64, error)
}
