package processor

import (
	"context"
	"fmt"
)

// PostLeaderboard posts the standings of the active season to the channel.
func (p *Processor) PostLeaderboard(ctx context.Context, dryRun bool) error {
	season, standings, err := p.Leaderboard("", "")
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	names, err := p.Names()
	if err != nil {
		return err
	}
	if err := p.notifier.SendLeaderboard(season, standings, names, dryRun); err != nil {
		return fmt.Errorf("failed to post leaderboard: %w", err)
	}
	return nil
}

// PostDailySummary posts the recap of the current UTC day of the active season.
func (p *Processor) PostDailySummary(ctx context.Context, dryRun bool) error {
	summary, err := p.DailySummary("", p.now().UTC())
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	names, err := p.Names()
	if err != nil {
		return err
	}
	if err := p.notifier.SendDailySummary(summary, names, dryRun); err != nil {
		return fmt.Errorf("failed to post daily summary: %w", err)
	}
	return nil
}
