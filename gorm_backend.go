package keysetpager

import (
	"context"
	"fmt"
	"math"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMBackend serves rows of T through gorm. The *gorm.DB given to
// NewGORMBackend is the base scope of every query: put the table, joins and
// static conditions there.
//
// Usage:
//
//	backend := keysetpager.NewGORMBackend[User](db.Table("users").Where("deleted_at IS NULL"))
//	pager := keysetpager.New[User, clause.Expression](backend, userFields)
//	page, err := pager.FindAll(ctx, req, clause.Eq{Column: "name", Value: "lol"})
type GORMBackend[T any] struct {
	db *gorm.DB
}

func NewGORMBackend[T any](db *gorm.DB) *GORMBackend[T] {
	return &GORMBackend[T]{db: db}
}

// Compare - implements PredicateBuilder. Column names are validated by
// Orderings before they get here.
func (b *GORMBackend[T]) Compare(column string, op Operator, value any) clause.Expression {
	return clause.Expr{
		SQL:  fmt.Sprintf("%s %s ?", column, op),
		Vars: []any{value},
	}
}

// Equal - implements PredicateBuilder.
func (b *GORMBackend[T]) Equal(column string, value any) clause.Expression {
	return b.Compare(column, OperatorEQ, value)
}

// And - implements PredicateBuilder.
func (b *GORMBackend[T]) And(predicates ...clause.Expression) clause.Expression {
	return clause.And(predicates...)
}

// Or - implements PredicateBuilder.
func (b *GORMBackend[T]) Or(predicates ...clause.Expression) clause.Expression {
	return clause.Or(predicates...)
}

// Find - implements Backend.
func (b *GORMBackend[T]) Find(ctx context.Context, q Query[clause.Expression]) ([]T, error) {
	var rows []T

	err := applyQuery(b.db.WithContext(ctx), q).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// Count - implements Backend.
func (b *GORMBackend[T]) Count(ctx context.Context, where []clause.Expression) (int64, error) {
	var total int64

	err := applyWhere(b.db.WithContext(ctx), where).Model(new(T)).Count(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}

func applyWhere(db *gorm.DB, where []clause.Expression) *gorm.DB {
	for _, p := range where {
		if p == nil {
			continue
		}

		db = db.Clauses(p)
	}

	return db
}

// applyQuery applies filters, ORDER BY and LIMIT/OFFSET to a gorm query.
func applyQuery(db *gorm.DB, q Query[clause.Expression]) *gorm.DB {
	db = applyWhere(db, q.Where)
	db = q.Sort.Apply(db)

	switch {
	case q.Limit > 0:
		db = db.Limit(q.Limit)
	case q.Offset > 0:
		// SQLite and MySQL reject OFFSET without LIMIT.
		db = db.Limit(math.MaxInt)
	}

	if q.Offset > 0 {
		db = db.Offset(q.Offset)
	}

	return db
}

var _ Backend[struct{}, clause.Expression] = (*GORMBackend[struct{}])(nil)
