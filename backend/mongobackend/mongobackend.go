// Package mongobackend serves keyset pages from a MongoDB collection. Sort
// columns are document field paths, e.g. "_id" or "customer.name".
package mongobackend

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Alp4ka/keysetpager"
)

type Backend[T any] struct {
	coll *mongo.Collection
}

func New[T any](coll *mongo.Collection) *Backend[T] {
	return &Backend[T]{coll: coll}
}

// Compare - implements keysetpager.PredicateBuilder.
func (b *Backend[T]) Compare(column string, op keysetpager.Operator, value any) bson.D {
	return bson.D{{Key: column, Value: bson.D{{Key: operatorKey(op), Value: value}}}}
}

// Equal - implements keysetpager.PredicateBuilder.
func (b *Backend[T]) Equal(column string, value any) bson.D {
	return b.Compare(column, keysetpager.OperatorEQ, value)
}

// And - implements keysetpager.PredicateBuilder.
func (b *Backend[T]) And(predicates ...bson.D) bson.D {
	return combine("$and", predicates)
}

// Or - implements keysetpager.PredicateBuilder.
func (b *Backend[T]) Or(predicates ...bson.D) bson.D {
	return combine("$or", predicates)
}

// Find - implements keysetpager.Backend.
func (b *Backend[T]) Find(ctx context.Context, q keysetpager.Query[bson.D]) ([]T, error) {
	opts := options.Find()

	if len(q.Sort) > 0 {
		opts.SetSort(SortDocument(q.Sort))
	}

	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	if q.Offset > 0 {
		opts.SetSkip(int64(q.Offset))
	}

	cursor, err := b.coll.Find(ctx, Filter(q.Where), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []T
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	return rows, nil
}

// Count - implements keysetpager.Backend.
func (b *Backend[T]) Count(ctx context.Context, where []bson.D) (int64, error) {
	return b.coll.CountDocuments(ctx, Filter(where))
}

// Filter joins where predicates with $and. No predicates match every document.
func Filter(where []bson.D) bson.D {
	return combine("$and", where)
}

// SortDocument converts orderings to a sort specification, 1 for ascending
// and -1 for descending.
func SortDocument(orderings keysetpager.Orderings) bson.D {
	ret := make(bson.D, 0, len(orderings))
	for _, o := range orderings {
		dir := 1
		if o.Direction == keysetpager.DirectionDESC {
			dir = -1
		}

		ret = append(ret, bson.E{Key: o.Column, Value: dir})
	}

	return ret
}

func operatorKey(op keysetpager.Operator) string {
	switch op {
	case keysetpager.OperatorGT:
		return "$gt"
	case keysetpager.OperatorLT:
		return "$lt"
	case keysetpager.OperatorEQ:
		return "$eq"
	default:
		panic(fmt.Errorf("cannot map operator '%s' to mongo", op))
	}
}

func combine(key string, predicates []bson.D) bson.D {
	operands := make(bson.A, 0, len(predicates))
	for _, p := range predicates {
		if len(p) == 0 {
			continue
		}

		operands = append(operands, p)
	}

	switch len(operands) {
	case 0:
		return bson.D{}
	case 1:
		return operands[0].(bson.D)
	default:
		return bson.D{{Key: key, Value: operands}}
	}
}

var _ keysetpager.Backend[struct{}, bson.D] = (*Backend[struct{}])(nil)
