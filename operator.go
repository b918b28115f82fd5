package keysetpager

// Operator is a comparison between a column and a boundary value.
type Operator string

const (
	OperatorGT Operator = ">"
	OperatorLT Operator = "<"

	// OperatorEQ pins the leading columns of a boundary disjunct. It is never
	// the last conjunct of a disjunct.
	OperatorEQ Operator = "="
)

// Valid reports whether the operator is a strict keyset comparison, the only
// kind PredicateBuilder.Compare is asked for besides equality.
func (o Operator) Valid() bool {
	return o == OperatorGT || o == OperatorLT
}
