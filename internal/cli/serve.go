package cli

import (
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Alp4ka/keysetpager/internal/server"
	"github.com/Alp4ka/keysetpager/internal/store"
)

// NewServeCmd creates the serve command.
func NewServeCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the orders list over HTTP",
		Example: `  # Serve from the default SQLite file
  keysetd serve

  # Serve from PostgreSQL through pgx
  KEYSETD_DATABASE_DRIVER=pgx KEYSETD_DATABASE_DSN=postgres://localhost/orders keysetd serve`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadRuntime(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			st, err := store.Open(ctx, cfg.Database, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := st.Close(); err != nil {
					log.Warn("failed to close store", zap.Error(err))
				}
			}()

			if cfg.Log.Level != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}

			return server.New(st, log, cfg.Paging.MaxSize).Run(ctx, cfg.Server.Addr)
		},
	}

	return cmd
}
