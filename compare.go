package keysetpager

import (
	"bytes"
	"cmp"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// CompareValues compares two values of the same ordered type and returns -1, 0
// or +1 like cmp.Compare. Supported are integer, float and string kinds (named
// types included), time.Time and uuid.UUID. Anything else, or a pair of
// different types, fails with ErrNotComparable.
func CompareValues(a, b any) (int, error) {
	switch at := a.(type) {
	case time.Time:
		bt, ok := b.(time.Time)
		if !ok {
			return 0, fmt.Errorf("%w: %T and %T", ErrNotComparable, a, b)
		}
		return at.Compare(bt), nil
	case uuid.UUID:
		bt, ok := b.(uuid.UUID)
		if !ok {
			return 0, fmt.Errorf("%w: %T and %T", ErrNotComparable, a, b)
		}
		return bytes.Compare(at[:], bt[:]), nil
	}

	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if !av.IsValid() || !bv.IsValid() || av.Type() != bv.Type() {
		return 0, fmt.Errorf("%w: %T and %T", ErrNotComparable, a, b)
	}

	switch av.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(av.Int(), bv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(av.Uint(), bv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(av.Float(), bv.Float()), nil
	case reflect.String:
		return cmp.Compare(av.String(), bv.String()), nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrNotComparable, a)
	}
}
