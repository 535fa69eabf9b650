package cmds

import (
	"context"
	"fmt"
	"intranet/internal/api"
	"intranet/internal/backends/memory"
	"intranet/internal/ui"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newAPICmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "api",
		Short: "Serve the client records API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// records live only as long as this process
			stop, done := api.RunServerInterruptible(e.cfg.APIPort, memory.NewClientStore())
			return waitForShutdown(cmd.Context(), stop, done)
		},
	}
}

func newFormCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Serve the client information form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := e.apiClient()
			if err != nil {
				return err
			}
			log.WithField("api", client.BaseURL()).Info("form posts to client api")
			form := ui.NewFormServer(client)
			stop, done := api.ServeInterruptible(fmt.Sprintf(":%d", e.cfg.FormPort), form.Router())
			return waitForShutdown(cmd.Context(), stop, done)
		},
	}
}

// waitForShutdown blocks until the server fails or the process is signalled,
// then stops the server and waits for it to drain.
func waitForShutdown(ctx context.Context, stop chan<- struct{}, done <-chan error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		stop <- struct{}{}
		return <-done
	}
}
