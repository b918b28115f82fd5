package keysetpager

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_CompareValues(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Nanosecond)
	u1 := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	u2 := uuid.MustParse("00000000-0000-0000-0000-000000000002")

	tests := []struct {
		name    string
		a, b    any
		want    int
		wantErr bool
	}{
		{"int less", 1, 2, -1, false},
		{"int64 equal", int64(5), int64(5), 0, false},
		{"uint greater", uint(9), uint(3), 1, false},
		{"float less", 1.5, 2.5, -1, false},
		{"string greater", "b", "a", 1, false},
		{"named string", tStatus("a"), tStatus("b"), -1, false},
		{"time less", t1, t2, -1, false},
		{"same instant in another zone", t1, t1.In(time.FixedZone("X", 3600)), 0, false},
		{"uuid less", u1, u2, -1, false},
		{"mixed int kinds", 1, int64(1), 0, true},
		{"time and string", t1, "x", 0, true},
		{"uuid and string", u1, "x", 0, true},
		{"nil", nil, 1, 0, true},
		{"unsupported kind", []int{1}, []int{1}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompareValues(tt.a, tt.b)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotComparable)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
