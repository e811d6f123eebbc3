package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/tribble-league/internal/league"
	"github.com/mauv0809/tribble-league/internal/metrics"
	"github.com/mauv0809/tribble-league/internal/notifier"
	"github.com/mauv0809/tribble-league/internal/quest"
	"github.com/mauv0809/tribble-league/internal/replay"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendMatchResult(match league.Match, diffs []replay.PlayerDiff, names notifier.Names, dryRun bool) error {
	_, _, err := s.sendMessage(formatMatchResult(match, diffs, names), dryRun)
	return err
}

func (s *Notifier) SendQuestCompleted(q quest.Quest, names notifier.Names, dryRun bool) error {
	_, _, err := s.sendMessage(formatQuestResolved(q, names), dryRun)
	return err
}

func (s *Notifier) SendQuestFailed(q quest.Quest, names notifier.Names, dryRun bool) error {
	_, _, err := s.sendMessage(formatQuestResolved(q, names), dryRun)
	return err
}

func (s *Notifier) SendNewQuests(quests []quest.Quest, names notifier.Names, dryRun bool) error {
	if len(quests) == 0 {
		return nil
	}
	_, _, err := s.sendMessage(formatNewQuests(quests, names), dryRun)
	return err
}

func (s *Notifier) SendLeaderboard(season league.Season, standings []replay.Standing, names notifier.Names, dryRun bool) error {
	_, _, err := s.sendMessage(formatLeaderboard(season, standings, names), dryRun)
	return err
}

func (s *Notifier) SendDailySummary(summary league.DaySummary, names notifier.Names, dryRun bool) error {
	_, _, err := s.sendMessage(formatDailySummary(summary, names), dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(season league.Season, standings []replay.Standing, names notifier.Names) (any, error) {
	return formatLeaderboard(season, standings, names), nil
}

// FormatDailySummaryResponse formats the daily summary for a slash command response.
func (s *Notifier) FormatDailySummaryResponse(summary league.DaySummary, names notifier.Names) (any, error) {
	return formatDailySummary(summary, names), nil
}

// FormatPlayerCardResponse formats the caller's own season card.
func (s *Notifier) FormatPlayerCardResponse(card notifier.PlayerCard, names notifier.Names) (any, error) {
	return formatPlayerCard(card, names), nil
}

// FormatPlayerSuggestionsResponse asks an unlinked caller which player they are.
func (s *Notifier) FormatPlayerSuggestionsResponse(candidates []league.Player) (any, error) {
	return formatPlayerSuggestions(candidates), nil
}

func plain(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject("plain_text", text, true, false)
}

func mrkdwn(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject("mrkdwn", text, false, false)
}

func teamName(players []string, names notifier.Names) string {
	out := make([]string, 0, len(players))
	for _, id := range players {
		out = append(out, names.Of(id))
	}
	return strings.Join(out, " & ")
}

func medal(rank int) string {
	switch rank {
	case 1:
		return ":first_place_medal: "
	case 2:
		return ":second_place_medal: "
	case 3:
		return ":third_place_medal: "
	}
	return ""
}

// formatMatchResult announces a logged match and how it moved each participant.
func formatMatchResult(match league.Match, diffs []replay.PlayerDiff, names notifier.Names) slack.Message {
	blocks := []slack.Block{slack.NewHeaderBlock(plain(":table_tennis_paddle_and_ball: Match logged!"))}

	white := teamName(match.WhiteTeam(), names)
	black := teamName(match.BlackTeam(), names)
	var result string
	switch match.WinningSide() {
	case league.SideWhite:
		result = fmt.Sprintf("*%s* beat %s by %d", white, black, match.ScoreDiff)
	case league.SideBlack:
		result = fmt.Sprintf("*%s* beat %s by %d", black, white, match.ScoreDiff)
	default:
		result = fmt.Sprintf("%s and %s drew", white, black)
	}
	blocks = append(blocks, slack.NewSectionBlock(mrkdwn(result), nil, nil))

	if len(diffs) > 0 {
		fields := make([]*slack.TextBlockObject, 0, len(diffs))
		for _, d := range diffs {
			fields = append(fields, plain(formatDiff(d, names)))
		}
		blocks = append(blocks, slack.NewSectionBlock(plain("Ratings:"), fields, nil))
	}
	return slack.NewBlockMessage(blocks...)
}

func formatDiff(d replay.PlayerDiff, names notifier.Names) string {
	name := names.Of(d.PlayerID)
	if d.RatingBefore == nil || d.RankBefore == nil {
		return fmt.Sprintf("%s: %.0f (new, #%d)", name, d.RatingAfter, d.RankAfter)
	}
	delta := d.RatingAfter - *d.RatingBefore
	return fmt.Sprintf("%s: %.0f -> %.0f (%+.0f), #%d -> #%d", name, *d.RatingBefore, d.RatingAfter, delta, *d.RankBefore, d.RankAfter)
}

// formatQuestResolved announces a completed or failed quest.
func formatQuestResolved(q quest.Quest, names notifier.Names) slack.Message {
	player := names.Of(q.PlayerID)
	goal := q.Describe(names.Of)

	var header, body string
	if q.Status == quest.StatusCompleted {
		header = ":dart: Quest completed!"
		body = fmt.Sprintf("*%s* completed _%s_ and earned *%d* points.", player, goal, q.RewardPoints())
	} else {
		header = ":hourglass: Quest failed"
		body = fmt.Sprintf("*%s* did not manage _%s_ and loses *%d* points.", player, goal, -q.PenaltyPoints())
	}
	return slack.NewBlockMessage(
		slack.NewHeaderBlock(plain(header)),
		slack.NewSectionBlock(mrkdwn(body), nil, nil),
	)
}

// formatNewQuests lists freshly assigned quests.
func formatNewQuests(quests []quest.Quest, names notifier.Names) slack.Message {
	lines := make([]string, 0, len(quests))
	for _, q := range quests {
		lines = append(lines, fmt.Sprintf("• *%s*: %s (%d points)", names.Of(q.PlayerID), q.Describe(names.Of), q.RewardPoints()))
	}
	return slack.NewBlockMessage(
		slack.NewHeaderBlock(plain(":scroll: New quests")),
		slack.NewSectionBlock(mrkdwn(strings.Join(lines, "\n")), nil, nil),
	)
}

// formatLeaderboard creates a Slack message to display the season standings.
func formatLeaderboard(season league.Season, standings []replay.Standing, names notifier.Names) slack.Message {
	title := ":trophy: Leaderboard :trophy:"
	if season.Name != "" {
		title = fmt.Sprintf(":trophy: %s Leaderboard :trophy:", season.Name)
	}
	blocks := []slack.Block{slack.NewHeaderBlock(plain(title))}

	if len(standings) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(plain("No matches logged yet. Go play some matches!"), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for _, st := range standings {
		text := fmt.Sprintf("%d. %s%s\n> *Rating*: %.0f", st.Rank, medal(st.Rank), names.Of(st.PlayerID), st.Rating)
		blocks = append(blocks, slack.NewSectionBlock(mrkdwn(text), nil, nil))
	}
	if season.Algorithm != "" {
		blocks = append(blocks, slack.NewContextBlock("", plain("Rated with "+season.Algorithm)))
	}
	return slack.NewBlockMessage(blocks...)
}

// formatDailySummary recaps one day of play.
func formatDailySummary(summary league.DaySummary, names notifier.Names) slack.Message {
	header := fmt.Sprintf(":calendar: Summary for %s", summary.Day.Format("Monday 02 Jan"))
	blocks := []slack.Block{slack.NewHeaderBlock(plain(header))}

	if summary.MatchesPlayed == 0 {
		blocks = append(blocks, slack.NewSectionBlock(plain("No matches were played."), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	lines := []string{fmt.Sprintf("*Matches played*: %d (%d drawn)", summary.MatchesPlayed, summary.Draws)}
	if summary.BiggestWin != nil {
		lines = append(lines, "*Biggest win*: "+describeWin(*summary.BiggestWin, names))
	}
	if summary.ClosestWin != nil {
		lines = append(lines, "*Closest win*: "+describeWin(*summary.ClosestWin, names))
	}
	if len(summary.MostActive) > 0 {
		lines = append(lines, fmt.Sprintf("*Most active*: %s (%d matches)", teamName(summary.MostActive, names), summary.MostActiveGames))
	}
	blocks = append(blocks, slack.NewSectionBlock(mrkdwn(strings.Join(lines, "\n")), nil, nil))
	return slack.NewBlockMessage(blocks...)
}

func describeWin(m league.Match, names notifier.Names) string {
	return fmt.Sprintf("%s over %s by %d", teamName(m.Winners(), names), teamName(m.Losers(), names), m.ScoreDiff)
}

// formatPlayerCard shows a player's rank, record, recent matches and open quests.
func formatPlayerCard(card notifier.PlayerCard, names notifier.Names) slack.Message {
	blocks := []slack.Block{slack.NewHeaderBlock(plain(":bust_in_silhouette: " + names.Of(card.Player.ID)))}

	rank := "*Rank*: unranked"
	if card.Standing != nil {
		rank = fmt.Sprintf("*Rank*: %s#%d (%.0f)", medal(card.Standing.Rank), card.Standing.Rank, card.Standing.Rating)
	}
	lines := []string{
		rank,
		fmt.Sprintf("*Record*: %d played, %d won, %d drawn", card.Played, card.Won, card.Drawn),
	}
	blocks = append(blocks, slack.NewSectionBlock(mrkdwn(strings.Join(lines, "\n")), nil, nil))

	if len(card.Recent) > 0 {
		recent := make([]string, 0, len(card.Recent))
		for _, m := range card.Recent {
			recent = append(recent, "• "+describeFor(m, card.Player.ID, names))
		}
		blocks = append(blocks, slack.NewSectionBlock(mrkdwn("*Recent matches*\n"+strings.Join(recent, "\n")), nil, nil))
	}

	if len(card.OpenQuests) > 0 {
		quests := make([]string, 0, len(card.OpenQuests))
		for _, q := range card.OpenQuests {
			quests = append(quests, fmt.Sprintf("• %s (%d points)", q.Describe(names.Of), q.RewardPoints()))
		}
		blocks = append(blocks, slack.NewSectionBlock(mrkdwn("*Open quests*\n"+strings.Join(quests, "\n")), nil, nil))
	}
	if card.Season.Name != "" {
		blocks = append(blocks, slack.NewContextBlock("", plain(card.Season.Name)))
	}
	return slack.NewBlockMessage(blocks...)
}

// describeFor tells a match from one participant's side, e.g. "Won with Bo vs Cy by 3".
func describeFor(m league.Match, playerID string, names notifier.Names) string {
	outcome := "Lost"
	switch {
	case m.IsDraw():
		outcome = "Drew"
	case m.IsWinner(playerID):
		outcome = "Won"
	}
	text := outcome
	if mate := m.Teammate(playerID); mate != "" {
		text += " with " + names.Of(mate)
	}
	text += " vs " + teamName(m.Opponents(playerID), names)
	if !m.IsDraw() {
		text += fmt.Sprintf(" by %d", m.ScoreDiff)
	}
	return text
}

// formatPlayerSuggestions lists candidate players for an unlinked Slack user.
func formatPlayerSuggestions(candidates []league.Player) slack.Message {
	text := "I couldn't work out which player you are."
	if len(candidates) > 0 {
		lines := make([]string, 0, len(candidates))
		for _, p := range candidates {
			lines = append(lines, fmt.Sprintf("• %s (`%s`)", p.DisplayName(), p.ID))
		}
		text += " Did you mean one of these?\n" + strings.Join(lines, "\n")
	}
	return slack.NewBlockMessage(
		slack.NewSectionBlock(mrkdwn(text), nil, nil),
		slack.NewContextBlock("", mrkdwn("Link yourself with `/me link <player id>`")),
	)
}
