package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Bahjat/view-counter/internal/platform/config"
	"github.com/Bahjat/view-counter/internal/viewcounter"
)

func countSubcommand(cfg config.Config, log *slog.Logger) *cobra.Command {
	var page string

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Record one view and print the formatted count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			widget, _, err := loadWidget(cmd.Context(), cfg, log, page)
			if err != nil {
				return err
			}

			var display viewcounter.TextDisplay
			outcome := widget.Run(cmd.Context(), &display)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), outcome.Text)
			return err
		},
	}
	cmd.Flags().StringVar(&page, "page", "", "host page (file or URL) whose markup declares API bases")
	return cmd
}
