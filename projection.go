package keysetpager

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

const _selectTag = "select"

// _projectionPlans caches the selected columns per output type. Values are
// func() ([]string, error) built with sync.OnceValues, so every plan is
// computed at most once and never changes afterwards.
var _projectionPlans sync.Map

var _buildProjectionColumns = buildProjectionColumns

// ProjectionColumns returns the columns selected for the output struct S.
//
// A field's column is taken from its `select:"path"` tag, or derived from the
// field name with gorm's default naming strategy. Fields tagged `select:"-"`
// and unexported fields are skipped, embedded structs are flattened.
// The result label of a tagged path must match the field's column name, alias
// it otherwise:
//
//	type UserName struct {
//		ID   uint
//		Name string `select:"profiles.display_name AS name"`
//	}
func ProjectionColumns[S any]() ([]string, error) {
	typ := reflect.TypeFor[S]()

	plan, _ := _projectionPlans.LoadOrStore(typ, sync.OnceValues(func() ([]string, error) {
		return _buildProjectionColumns(typ)
	}))

	columns, err := plan.(func() ([]string, error))()
	if err != nil {
		return nil, err
	}

	return slices.Clone(columns), nil
}

// FindProjection runs q against db selecting only the columns of S. db is the
// base scope, as for GORMBackend.
func FindProjection[S any](ctx context.Context, db *gorm.DB, q Query[clause.Expression]) ([]S, error) {
	columns, err := ProjectionColumns[S]()
	if err != nil {
		return nil, err
	}

	var rows []S

	err = applyQuery(db.WithContext(ctx).Select(columns), q).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func buildProjectionColumns(typ reflect.Type) ([]string, error) {
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("cannot build projection for non-struct type %s", typ)
	}

	naming := schema.NamingStrategy{}

	var columns []string
	for i := range typ.NumField() {
		field := typ.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded, err := buildProjectionColumns(field.Type)
			if err != nil {
				return nil, err
			}
			columns = append(columns, embedded...)
			continue
		}

		if !field.IsExported() {
			continue
		}

		column := field.Tag.Get(_selectTag)
		switch column {
		case "-":
			continue
		case "":
			column = naming.ColumnName("", field.Name)
		}

		columns = append(columns, column)
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("cannot build projection for %s: no selectable fields", typ)
	}

	return columns, nil
}
