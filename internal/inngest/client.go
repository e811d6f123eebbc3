package inngest

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/inngest/inngestgo"
	"github.com/inngest/inngestgo/step"
)

// New registers the league's scheduled functions with Inngest.
func New(inngestClient inngestgo.Client, jobs Jobs) InngestClient {
	c := &client{
		inngestClient: inngestClient,
		jobs:          jobs,
	}
	c.createFunction("generate-quests", "Generate weekly quests", GenerateQuestsCron, func(ctx context.Context) (any, error) {
		return c.jobs.GenerateQuests(ctx, "", false)
	})
	c.createFunction("process-quests", "Resolve open quests", ProcessQuestsCron, func(ctx context.Context) (any, error) {
		return c.jobs.ProcessQuests(ctx, "", false)
	})
	c.createFunction("daily-summary", "Post the daily summary", DailySummaryCron, func(ctx context.Context) (any, error) {
		return "OK", c.jobs.PostDailySummary(ctx, false)
	})
	c.createFunction("weekly-leaderboard", "Post the weekly leaderboard", LeaderboardCron, func(ctx context.Context) (any, error) {
		return "OK", c.jobs.PostLeaderboard(ctx, false)
	})
	return c
}

// createFunction wraps a job in a single retried step behind a cron trigger.
func (i *client) createFunction(id, name, cron string, job func(ctx context.Context) (any, error)) inngestgo.ServableFunction {
	config := inngestgo.FunctionOpts{
		ID:   id,
		Name: name,
	}
	f, err := inngestgo.CreateFunction(
		i.inngestClient,
		config,
		inngestgo.CronTrigger(cron),
		func(ctx context.Context, input inngestgo.Input[map[string]any]) (any, error) {
			return step.Run(ctx, id, func(ctx context.Context) (any, error) {
				log.Info("Running scheduled job", "function", id)
				return job(ctx)
			})
		},
	)
	if err != nil {
		log.Fatal("Failed to create function", "function", id, "error", err)
	}
	return f
}

func (i *client) Serve() http.Handler {
	return i.inngestClient.Serve()
}
