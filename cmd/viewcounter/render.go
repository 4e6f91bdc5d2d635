package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Bahjat/view-counter/internal/platform/config"
)

var errPageRequired = errors.New("--page is required")

func renderSubcommand(cfg config.Config, log *slog.Logger) *cobra.Command {
	var page, out string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Load a host page, fill in its view count and write the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if page == "" {
				return errPageRequired
			}

			widget, doc, err := loadWidget(cmd.Context(), cfg, log, page)
			if err != nil {
				return err
			}
			if _, ran := widget.Initialize(cmd.Context(), doc); !ran {
				log.Info("page has no view counter element; rendering unchanged", "page", page)
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				w = f
			}
			return doc.Render(w)
		},
	}
	cmd.Flags().StringVar(&page, "page", "", "host page to render (file or URL)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")
	return cmd
}
