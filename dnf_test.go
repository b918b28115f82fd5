package keysetpager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

func Test_toPredicate(t *testing.T) {
	b := NewGORMBackend[tUser](nil)

	tests := []struct {
		name     string
		conjunct tConjunct
		wantSQL  string
		wantVars []any
	}{
		{
			name:     "string less than",
			conjunct: tConjunct{Column: "name", Operator: OperatorLT, Value: "abc"},
			wantSQL:  "name < ?",
			wantVars: []any{"abc"},
		},
		{
			name:     "integer greater than",
			conjunct: tConjunct{Column: "id", Operator: OperatorGT, Value: 10},
			wantSQL:  "id > ?",
			wantVars: []any{10},
		},
		{
			name:     "equality",
			conjunct: tConjunct{Column: "t.id", Operator: OperatorEQ, Value: 7},
			wantSQL:  "t.id = ?",
			wantVars: []any{7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, ok := toPredicate[clause.Expression](tt.conjunct, b).(clause.Expr)
			require.True(t, ok)
			assert.Equal(t, tt.wantSQL, expr.SQL)
			assert.Equal(t, tt.wantVars, expr.Vars)
		})
	}
}

func Test_renderDisjunct(t *testing.T) {
	tests := []struct {
		name     string
		disjunct tDisjunct
		want     string
		wantOK   bool
	}{
		{
			name: "several conjuncts are joined with AND",
			disjunct: tDisjunct{
				{Column: "id", Operator: OperatorEQ, Value: 5},
				{Column: "created_at", Operator: OperatorGT, Value: "2024-01-02T03:04:05Z"},
			},
			want:   "(id = 5 AND created_at > 2024-01-02T03:04:05Z)",
			wantOK: true,
		},
		{
			name:     "single conjunct is not wrapped",
			disjunct: tDisjunct{{Column: "id", Operator: OperatorGT, Value: 5}},
			want:     "id > 5",
			wantOK:   true,
		},
		{
			name:     "empty disjunct",
			disjunct: tDisjunct{},
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := renderDisjunct[string](tt.disjunct, tTextBuilder{})
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_renderDNF(t *testing.T) {
	tests := []struct {
		name   string
		dnf    tDNF
		want   string
		wantOK bool
	}{
		{
			name: "disjuncts are joined with OR",
			dnf: tDNF{
				{{Column: "id", Operator: OperatorGT, Value: 10}},
				{
					{Column: "id", Operator: OperatorEQ, Value: 10},
					{Column: "name", Operator: OperatorLT, Value: "abc"},
				},
			},
			want:   "(id > 10 OR (id = 10 AND name < abc))",
			wantOK: true,
		},
		{
			name:   "single disjunct collapses",
			dnf:    tDNF{{{Column: "id", Operator: OperatorLT, Value: 3}}},
			want:   "id < 3",
			wantOK: true,
		},
		{
			name:   "empty disjuncts are skipped",
			dnf:    tDNF{{}, {{Column: "id", Operator: OperatorLT, Value: 3}}},
			want:   "id < 3",
			wantOK: true,
		},
		{
			name:   "empty DNF",
			dnf:    tDNF{},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := renderDNF[string](tt.dnf, tTextBuilder{})
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_tDNF_String(t *testing.T) {
	tests := []struct {
		name string
		dnf  tDNF
		want string
	}{
		{
			name: "two disjuncts",
			dnf: tDNF{
				{{Column: "id", Operator: OperatorLT, Value: 10}},
				{
					{Column: "id", Operator: OperatorEQ, Value: 10},
					{Column: "name", Operator: OperatorLT, Value: "abc"},
				},
			},
			want: "((id < 10) OR (id = 10 AND name < abc))",
		},
		{
			name: "empty means no constraint",
			dnf:  nil,
			want: "TRUE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dnf.String())
		})
	}
}
