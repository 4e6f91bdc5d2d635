package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Bahjat/view-counter/internal/pageserver"
	"github.com/Bahjat/view-counter/internal/platform/config"
)

func serveSubcommand(cfg config.Config, log *slog.Logger) *cobra.Command {
	var page string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a host page with its view count rendered per request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if page == "" {
				return errPageRequired
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			widget, doc, err := loadWidget(ctx, cfg, log, page)
			if err != nil {
				return err
			}
			var hostPage bytes.Buffer
			if err := doc.Render(&hostPage); err != nil {
				return err
			}

			svc := pageserver.NewService(widget, hostPage.Bytes(), log)
			handler := pageserver.NewHandler(pageserver.NewTransport(svc, log), log)
			srv := pageserver.NewServer(net.JoinHostPort("", cfg.Port), handler)

			errCh := make(chan error, 1)
			go func() {
				log.Info("page server listening", "addr", srv.Addr, "page", page)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			log.Info("page server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&page, "page", "", "host page to serve (file or URL)")
	return cmd
}
