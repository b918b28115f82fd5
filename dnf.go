package keysetpager

import (
	"fmt"
	"strings"
)

type (
	tConjunct struct {
		Column   string
		Value    any
		Operator Operator
	}

	tDisjunct []tConjunct

	// tDNF represents the disjunctive normal form (DNF) of a logical expression.
	// Each disjunct is joined by OR, and each disjunct consists of a list of
	// conjuncts which are joined by AND. A conjunct is the value of
	// Operator(Column, Value).
	//
	// Thus:
	//
	//	DNF = X1 OR X2 ... OR Xn, where Xi = Ai1 AND Ai2 ... AND Aim.
	//	DNF = (A11 AND A12 AND A13) OR (A21 AND A22 AND A23), for n=2, m=3.
	//
	//  Where (A11 AND A12 AND A13), (A21 AND A22 AND A23) are disjuncts and
	//  A11, A12, A13, A21, A22, A23 are conjuncts.
	tDNF []tDisjunct
)

// toPredicate renders a conjunct through the backend predicate builder.
// Anything but a strict comparison is rendered as equality.
func toPredicate[P any](c tConjunct, b PredicateBuilder[P]) P {
	if !c.Operator.Valid() {
		return b.Equal(c.Column, c.Value)
	}

	return b.Compare(c.Column, c.Operator, c.Value)
}

// renderDisjunct renders a disjunct (K1, K2, K3) as "K1 AND K2 AND K3". A
// single conjunct is returned as is. Reports false for an empty disjunct.
func renderDisjunct[P any](d tDisjunct, b PredicateBuilder[P]) (P, bool) {
	var zero P

	andPredicates := make([]P, 0, len(d))
	for _, conjunct := range d {
		andPredicates = append(andPredicates, toPredicate(conjunct, b))
	}

	switch len(andPredicates) {
	case 0:
		return zero, false
	case 1:
		return andPredicates[0], true
	default:
		return b.And(andPredicates...), true
	}
}

// renderDNF joins the rendered disjuncts with OR. Reports false for an empty
// DNF, meaning no constraint at all.
func renderDNF[P any](d tDNF, b PredicateBuilder[P]) (P, bool) {
	var zero P

	orPredicates := make([]P, 0, len(d))
	for _, disjunct := range d {
		p, ok := renderDisjunct(disjunct, b)
		if !ok {
			continue
		}

		orPredicates = append(orPredicates, p)
	}

	switch len(orPredicates) {
	case 0:
		return zero, false
	case 1:
		return orPredicates[0], true
	default:
		return b.Or(orPredicates...), true
	}
}

// String renders the DNF in SQL-like notation, mainly for logs and tests.
//
// Example:
//
//	((id < 10) OR (id = 10 AND name < abc))
func (d tDNF) String() string {
	if len(d) == 0 {
		return "TRUE"
	}

	orClauses := make([]string, 0, len(d))
	for _, disjunct := range d {
		andClauses := make([]string, 0, len(disjunct))
		for _, c := range disjunct {
			andClauses = append(andClauses, fmt.Sprintf("%s %s %v", c.Column, c.Operator, c.Value))
		}
		orClauses = append(orClauses, "("+strings.Join(andClauses, " AND ")+")")
	}

	return "(" + strings.Join(orClauses, " OR ") + ")"
}
