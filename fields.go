package keysetpager

import (
	"cmp"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Field reads one sort column off a row and converts its value to and from the
// string form stored in continuation tokens.
type Field[T any] struct {
	get    func(T) any
	format func(any) (string, error)
	parse  func(string) (any, error)
}

// Fields is a registry of fields keyed by the sort column name, as it appears
// in OrderBy.Column. Register every column a client may sort by.
//
// Example:
//
//	keysetpager.Fields[Order]{
//		"id":         keysetpager.OrderedField(func(o Order) int64 { return o.ID }),
//		"created_at": keysetpager.TimeField(func(o Order) time.Time { return o.CreatedAt }),
//	}
type Fields[T any] map[string]Field[T]

// Value returns the native value of the field in row.
func (f Field[T]) Value(row T) any {
	return f.get(row)
}

// Format returns the token form of the field value in row.
func (f Field[T]) Format(row T) (string, error) {
	return f.format(f.get(row))
}

// Parse converts a token value back to the native type of the field.
func (f Field[T]) Parse(s string) (any, error) {
	v, err := f.parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBoundaryValue, err)
	}

	return v, nil
}

func (f Field[T]) valid() bool {
	return f.get != nil && f.format != nil && f.parse != nil
}

// OrderedField registers a column whose Go type is an integer, float or string
// kind, named types included.
func OrderedField[T any, V cmp.Ordered](get func(T) V) Field[T] {
	typ := reflect.TypeFor[V]()

	return Field[T]{
		get: func(row T) any { return get(row) },
		format: func(v any) (string, error) {
			return formatOrdered(reflect.ValueOf(v))
		},
		parse: func(s string) (any, error) {
			return parseOrdered(typ, s)
		},
	}
}

// TimeField registers a timestamp column. Values travel as RFC 3339 with
// nanoseconds, keeping the original offset.
func TimeField[T any](get func(T) time.Time) Field[T] {
	return Field[T]{
		get: func(row T) any { return get(row) },
		format: func(v any) (string, error) {
			t, ok := v.(time.Time)
			if !ok {
				return "", fmt.Errorf("unexpected type %T for time field", v)
			}
			return t.Format(time.RFC3339Nano), nil
		},
		parse: func(s string) (any, error) {
			return time.Parse(time.RFC3339Nano, s)
		},
	}
}

// UUIDField registers a UUID column.
func UUIDField[T any](get func(T) uuid.UUID) Field[T] {
	return Field[T]{
		get: func(row T) any { return get(row) },
		format: func(v any) (string, error) {
			id, ok := v.(uuid.UUID)
			if !ok {
				return "", fmt.Errorf("unexpected type %T for uuid field", v)
			}
			return id.String(), nil
		},
		parse: func(s string) (any, error) {
			return uuid.Parse(s)
		},
	}
}

// CustomField registers a column with caller supplied conversions. parse must
// return a value the backend can compare, see CompareValues.
func CustomField[T any](get func(T) any, format func(any) (string, error), parse func(string) (any, error)) Field[T] {
	return Field[T]{
		get:    get,
		format: format,
		parse:  parse,
	}
}

func formatOrdered(rv reflect.Value) (string, error) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64), nil
	case reflect.String:
		return rv.String(), nil
	default:
		return "", fmt.Errorf("cannot format value of kind %s", rv.Kind())
	}
}

func parseOrdered(typ reflect.Type, s string) (any, error) {
	rv := reflect.New(typ).Elem()

	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, typ.Bits())
		if err != nil {
			return nil, err
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := strconv.ParseUint(s, 10, typ.Bits())
		if err != nil {
			return nil, err
		}
		rv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(s, typ.Bits())
		if err != nil {
			return nil, err
		}
		rv.SetFloat(n)
	case reflect.String:
		rv.SetString(s)
	default:
		return nil, fmt.Errorf("type %s is not naturally ordered", typ)
	}

	return rv.Interface(), nil
}
