// Command viewcounter records a page view and shows the running view count
// of a page, using the first reachable counting API base.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Bahjat/view-counter/internal/platform/config"
	"github.com/Bahjat/view-counter/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	root := &cobra.Command{
		Use:           "viewcounter",
		Short:         "Record a page view and show the running view count",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		countSubcommand(cfg, log),
		renderSubcommand(cfg, log),
		serveSubcommand(cfg, log),
	)

	if err := root.Execute(); err != nil {
		log.Error("command failed", "error", err)
		fmt.Fprintf(os.Stderr, "viewcounter: %v\n", err)
		os.Exit(1)
	}
}
