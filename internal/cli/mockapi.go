package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crudconsole/internal/mockapi"

	"github.com/spf13/cobra"
)

func newMockAPICmd(app *App) *cobra.Command {
	var (
		addr string
		rate float64
	)

	cmd := &cobra.Command{
		Use:   "mock-api",
		Short: "Serve an in-memory copy of the demo API (reads from fixtures, writes are echoed)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := app.logger()
			srv := mockapi.New(mockapi.Options{RateLimit: rate, Logger: log})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- srv.Start(addr) }()
			cmd.PrintErrf("mock API listening on http://%s\n", addr)
			log.Info("mock api started", "addr", addr, "rate", rate)

			select {
			case err := <-errc:
				if err != nil {
					return writeErr(cmd, err)
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return writeErr(cmd, err)
			}
			return <-errc
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "Listen address")
	cmd.Flags().Float64Var(&rate, "rate", 0, "Requests per second per client (0: unlimited)")
	return cmd
}
