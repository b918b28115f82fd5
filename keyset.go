package keysetpager

import (
	"fmt"

	"github.com/samber/lo"
)

// keysetDNF expands orderings and the boundary row values into the filter
// selecting rows strictly after the boundary row:
//
//	(C1 O1 V1) OR (C1 = V1 AND C2 O2 V2) OR ... OR (C1 = V1 AND ... AND Cn On Vn)
//
// where Oi is ">" for ascending and "<" for descending columns. Rows sharing the
// leading columns with the boundary row fall through to the next column, so
// duplicate sort keys are neither skipped nor repeated as long as the last
// column is unique.
func keysetDNF(orderings Orderings, boundary []any) tDNF {
	if len(boundary) == 0 {
		return nil
	}

	dnf := make(tDNF, 0, len(orderings))
	for i, orderBy := range orderings {
		previousWithEqualityCondition := lo.Map(orderings[:i], func(prev OrderBy, j int) tConjunct {
			return tConjunct{Column: prev.Column, Value: boundary[j], Operator: OperatorEQ}
		})

		disjunct := make(tDisjunct, 0, i+1)
		disjunct = append(disjunct, previousWithEqualityCondition...)
		disjunct = append(disjunct, tConjunct{
			Column:   orderBy.Column,
			Value:    boundary[i],
			Operator: orderBy.Direction.ForOperator(),
		})

		dnf = append(dnf, disjunct)
	}

	return dnf
}

// BuildKeysetPredicate builds the boundary predicate for the row whose sort
// column values are boundary, given in the order of orderings. An empty
// boundary (first page) yields no predicate and false.
func BuildKeysetPredicate[P any](b PredicateBuilder[P], orderings Orderings, boundary []any) (P, bool, error) {
	var zero P

	if len(boundary) == 0 {
		return zero, false, nil
	}

	if len(boundary) != len(orderings) {
		return zero, false, fmt.Errorf("cannot build keyset predicate: %d boundary values for %d sort columns", len(boundary), len(orderings))
	}

	p, ok := renderDNF(keysetDNF(orderings, boundary), b)

	return p, ok, nil
}
