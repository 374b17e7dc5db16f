package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kolharsam/folio"
	"github.com/kolharsam/folio/internal/log"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Index the content directory and serve the site",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			app := folio.New(cfg)
			defer app.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := app.Shutdown(shutdownCtx); err != nil {
					log.WithComponent("cli").Error().Err(err).Msg("shutdown")
				}
			}()
			return app.Start()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides $ADDR)")
	return cmd
}
