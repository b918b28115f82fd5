// Package sqlbackend serves keyset pages straight from database/sql, without
// an ORM. It is tested against modernc.org/sqlite and used with the pgx
// stdlib driver for PostgreSQL.
package sqlbackend

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/Alp4ka/keysetpager"
)

// Predicate is a SQL boolean expression with "?" placeholders and its
// arguments in placeholder order.
type Predicate struct {
	SQL  string
	Args []any
}

// Placeholder selects the bind variable syntax of the driver.
type Placeholder int

const (
	// Question is "?", used by SQLite and MySQL.
	Question Placeholder = iota
	// Dollar is "$1, $2, ...", used by PostgreSQL.
	Dollar
)

// Table describes where rows of T live and how to read them.
type Table[T any] struct {
	// Name is the table, view or subquery alias rows are selected from.
	Name string
	// Columns are selected in this order and passed to Scan.
	Columns []string
	// Scan reads the current row.
	Scan func(rows *sql.Rows) (T, error)
}

type Backend[T any] struct {
	db          *sql.DB
	table       Table[T]
	placeholder Placeholder
}

type Option func(*options)

type options struct {
	placeholder Placeholder
}

// WithPlaceholder sets the bind variable syntax. Default is Question.
func WithPlaceholder(p Placeholder) Option {
	return func(o *options) {
		o.placeholder = p
	}
}

func New[T any](db *sql.DB, table Table[T], opts ...Option) *Backend[T] {
	o := options{placeholder: Question}
	for _, opt := range opts {
		opt(&o)
	}

	return &Backend[T]{
		db:          db,
		table:       table,
		placeholder: o.placeholder,
	}
}

// Compare - implements keysetpager.PredicateBuilder.
func (b *Backend[T]) Compare(column string, op keysetpager.Operator, value any) Predicate {
	return Predicate{
		SQL:  fmt.Sprintf("%s %s ?", column, op),
		Args: []any{value},
	}
}

// Equal - implements keysetpager.PredicateBuilder.
func (b *Backend[T]) Equal(column string, value any) Predicate {
	return b.Compare(column, keysetpager.OperatorEQ, value)
}

// And - implements keysetpager.PredicateBuilder.
func (b *Backend[T]) And(predicates ...Predicate) Predicate {
	return join(" AND ", predicates)
}

// Or - implements keysetpager.PredicateBuilder.
func (b *Backend[T]) Or(predicates ...Predicate) Predicate {
	return join(" OR ", predicates)
}

// Find - implements keysetpager.Backend.
func (b *Backend[T]) Find(ctx context.Context, q keysetpager.Query[Predicate]) ([]T, error) {
	var query strings.Builder

	fmt.Fprintf(&query, "SELECT %s FROM %s", strings.Join(b.table.Columns, ", "), b.table.Name)

	where := join(" AND ", q.Where)
	if where.SQL != "" {
		query.WriteString(" WHERE " + where.SQL)
	}

	if len(q.Sort) > 0 {
		query.WriteString(" ORDER BY " + q.Sort.ToSQL())
	}

	switch {
	case q.Limit > 0:
		query.WriteString(" LIMIT " + strconv.Itoa(q.Limit))
	case q.Offset > 0:
		// SQLite and MySQL reject OFFSET without LIMIT.
		query.WriteString(" LIMIT " + strconv.FormatInt(math.MaxInt64, 10))
	}

	if q.Offset > 0 {
		query.WriteString(" OFFSET " + strconv.Itoa(q.Offset))
	}

	rows, err := b.db.QueryContext(ctx, b.Rebind(query.String()), where.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ret []T
	for rows.Next() {
		row, err := b.table.Scan(rows)
		if err != nil {
			return nil, err
		}

		ret = append(ret, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ret, nil
}

// Count - implements keysetpager.Backend.
func (b *Backend[T]) Count(ctx context.Context, where []Predicate) (int64, error) {
	query := "SELECT COUNT(*) FROM " + b.table.Name

	filter := join(" AND ", where)
	if filter.SQL != "" {
		query += " WHERE " + filter.SQL
	}

	var total int64
	if err := b.db.QueryRowContext(ctx, b.Rebind(query), filter.Args...).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

// Rebind rewrites "?" placeholders for the configured driver. Literal question
// marks inside quoted strings are not supported in predicates.
func (b *Backend[T]) Rebind(query string) string {
	if b.placeholder != Dollar {
		return query
	}

	var (
		ret strings.Builder
		n   int
	)

	ret.Grow(len(query) + 8)
	for _, r := range query {
		if r != '?' {
			ret.WriteRune(r)
			continue
		}

		n++
		ret.WriteString("$" + strconv.Itoa(n))
	}

	return ret.String()
}

// join connects non-empty predicates with sep. Operands are parenthesized when
// there is more than one, so nested OR and AND keep their meaning.
func join(sep string, predicates []Predicate) Predicate {
	predicates = lo.Filter(predicates, func(p Predicate, _ int) bool {
		return p.SQL != ""
	})

	switch len(predicates) {
	case 0:
		return Predicate{}
	case 1:
		return predicates[0]
	}

	parts := make([]string, 0, len(predicates))
	var args []any
	for _, p := range predicates {
		parts = append(parts, "("+p.SQL+")")
		args = append(args, p.Args...)
	}

	return Predicate{
		SQL:  strings.Join(parts, sep),
		Args: args,
	}
}

var _ keysetpager.Backend[struct{}, Predicate] = (*Backend[struct{}])(nil)
