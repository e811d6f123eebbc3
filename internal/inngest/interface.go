package inngest

import (
	"context"
	"net/http"

	"github.com/mauv0809/tribble-league/internal/processor"
)

type InngestClient interface {
	Serve() http.Handler
}

// Jobs is the work the scheduled functions trigger.
type Jobs interface {
	GenerateQuests(ctx context.Context, seasonID string, dryRun bool) (processor.GenerateResult, error)
	ProcessQuests(ctx context.Context, seasonID string, dryRun bool) (processor.QuestRunResult, error)
	PostLeaderboard(ctx context.Context, dryRun bool) error
	PostDailySummary(ctx context.Context, dryRun bool) error
}
