package cli

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Alp4ka/keysetpager/internal/store"
)

var (
	_seedCustomers = []string{"acme", "globex", "initech", "umbrella", "hooli"}
	_seedStatuses  = []string{"new", "paid", "shipped", "cancelled"}
)

// NewSeedCmd creates the seed command.
func NewSeedCmd(configPath *string) *cobra.Command {
	var (
		count   int
		startID int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert generated orders",
		Example: `  # Insert 500 orders with ids 1..500
  keysetd seed --count 500`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return fmt.Errorf("count must be positive, got %d", count)
			}

			cfg, log, err := loadRuntime(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync()

			st, err := store.Open(cmd.Context(), cfg.Database, log)
			if err != nil {
				return err
			}
			defer st.Close()

			orders := GenerateOrders(startID, count, time.Now())
			if err := st.Insert(cmd.Context(), orders...); err != nil {
				return err
			}

			log.Info("seeded orders", zap.Int("count", count), zap.Int64("start_id", startID))
			cmd.Printf("Inserted %d orders\n", count)

			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 100, "Number of orders to insert")
	cmd.Flags().Int64Var(&startID, "start-id", 1, "Id of the first inserted order")

	return cmd
}

// GenerateOrders builds count orders with consecutive ids. Creation times go
// back from now in whole seconds and repeat every few orders, so sorting by
// time alone has ties.
func GenerateOrders(startID int64, count int, now time.Time) []store.Order {
	now = now.UTC().Truncate(time.Second)

	orders := make([]store.Order, 0, count)
	for i := range count {
		orders = append(orders, store.Order{
			ID:          startID + int64(i),
			Reference:   uuid.NewString(),
			Customer:    _seedCustomers[rand.IntN(len(_seedCustomers))],
			Status:      _seedStatuses[rand.IntN(len(_seedStatuses))],
			AmountCents: 100 + rand.Int64N(100_000),
			CreatedAt:   now.Add(-time.Duration(i/3) * time.Second),
		})
	}

	return orders
}
