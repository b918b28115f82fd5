package cli

import (
	"bytes"
	"context"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GenerateOrders(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 999, time.FixedZone("X", 3600))

	orders := GenerateOrders(41, 7, now)
	require.Len(t, orders, 7)

	for i, o := range orders {
		assert.Equal(t, int64(41+i), o.ID)
		assert.Contains(t, _seedCustomers, o.Customer)
		assert.Contains(t, _seedStatuses, o.Status)
		assert.Positive(t, o.AmountCents)
		assert.Equal(t, time.UTC, o.CreatedAt.Location())
		assert.Zero(t, o.CreatedAt.Nanosecond())

		_, err := uuid.Parse(o.Reference)
		assert.NoError(t, err)
	}

	assert.True(t, orders[0].CreatedAt.Equal(orders[2].CreatedAt), "times tie in groups of three")
	assert.Equal(t, time.Second, orders[2].CreatedAt.Sub(orders[3].CreatedAt))
	assert.True(t, orders[0].CreatedAt.Equal(now.Truncate(time.Second)))
}

func Test_NewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.True(t, slices.Contains(names, "serve"))
	assert.True(t, slices.Contains(names, "seed"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func Test_SeedCmd(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		wantOut string
	}{
		{
			name:    "memory driver",
			args:    []string{"seed", "--count", "5"},
			wantOut: "Inserted 5 orders\n",
		},
		{
			name:    "non-positive count",
			args:    []string{"seed", "--count", "0"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("KEYSETD_DATABASE_DRIVER", "memory")
			t.Setenv("KEYSETD_LOG_LEVEL", "error")

			var out bytes.Buffer
			cmd := NewRootCmd()
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs(tt.args)

			err := cmd.ExecuteContext(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantOut, out.String())
		})
	}
}
