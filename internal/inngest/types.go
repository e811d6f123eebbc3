package inngest

import (
	"github.com/inngest/inngestgo"
)

type client struct {
	inngestClient inngestgo.Client
	jobs          Jobs
}

// Schedules of the league's cron functions, in UTC.
const (
	GenerateQuestsCron = "0 7 * * 1"
	ProcessQuestsCron  = "0 * * * *"
	DailySummaryCron   = "0 21 * * *"
	LeaderboardCron    = "0 9 * * 1"
)
