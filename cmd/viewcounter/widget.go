package main

import (
	"context"
	"log/slog"

	"github.com/Bahjat/view-counter/internal/platform/config"
	"github.com/Bahjat/view-counter/internal/viewcounter"
)

// loadWidget opens the host page at location, if any, and builds a widget
// whose bases come from the page markup and the environment.
func loadWidget(ctx context.Context, cfg config.Config, log *slog.Logger, location string) (*viewcounter.Widget, *viewcounter.Page, error) {
	client := viewcounter.NewHTTPClient(viewcounter.ClientOptions{
		Timeout:      cfg.Timeout(),
		BlockPrivate: cfg.BlockPrivate,
	})

	var (
		page   *viewcounter.Page
		origin string
		src    viewcounter.Sources
	)
	if location != "" {
		var err error
		page, origin, err = viewcounter.OpenPage(ctx, client, location)
		if err != nil {
			return nil, nil, err
		}
		src = page.Sources()
	}

	src.Global = cfg.APIBase
	src.Origin = origin
	if cfg.PageOrigin != "" {
		src.Origin = cfg.PageOrigin
	}

	widget := viewcounter.New(viewcounter.Config{Sources: src, Locale: cfg.Language()}, client, log)
	log.Debug("resolved API bases", "bases", widget.Bases().List())
	return widget, page, nil
}
