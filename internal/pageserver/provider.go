package pageserver

import (
	"context"

	"github.com/Bahjat/view-counter/internal/viewcounter"
)

// CountWidget defines what the server needs from a view counter.
type CountWidget interface {
	Run(ctx context.Context, d viewcounter.Display) viewcounter.Outcome
	Initialize(ctx context.Context, page *viewcounter.Page) (viewcounter.Outcome, bool)
}
