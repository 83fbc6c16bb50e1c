package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"rentledger/internal/auth"
	"rentledger/internal/billing"
	"rentledger/internal/httpapi"
	"rentledger/internal/store"
)

func ServeCmd(env *Env) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := env.Provider()
			if err != nil {
				return err
			}
			db, err := env.DB()
			if err != nil {
				return err
			}
			engine := billing.NewEngine(store.New(db), auth.ContextIdentity{}, billing.WithLogger(env.Log))
			server := httpapi.New(engine, provider, env.Log)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				errc <- server.Listen(fmt.Sprintf(":%d", port))
			}()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
				env.Log.Info("shutting down")
				return server.Shutdown()
			}
		},
	}

	cmd.Flags().IntVar(&port, "port", env.Config.HTTPPort, "Port to listen on")

	return cmd
}
