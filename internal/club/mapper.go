package club

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/tribble-league/internal/league"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// autoLinkConfidence is the score above which a Slack user is linked without asking.
	autoLinkConfidence = 0.8
	minConfidence      = 0.3
	maxSuggestions     = 5
)

// PlayerSuggestion is a candidate player for an unlinked Slack user.
type PlayerSuggestion struct {
	Player     league.Player
	Confidence float64
	Reasons    []string
}

// PlayerMapper resolves Slack users to league players.
type PlayerMapper struct {
	store ClubStore
}

func NewPlayerMapper(store ClubStore) *PlayerMapper {
	return &PlayerMapper{store: store}
}

// FindOrMapPlayer returns the player linked to the Slack user. Without a link it
// tries, in order, a player whose id is the Slack user id and a confident name
// match, linking either on success. Otherwise it returns ranked suggestions.
func (pm *PlayerMapper) FindOrMapPlayer(slackUserID, slackUsername string) (*league.Player, []PlayerSuggestion, error) {
	linked, err := pm.store.GetPlayerBySlackUserID(slackUserID)
	if err == nil {
		return &linked, nil, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, nil, err
	}

	unlinked, err := pm.store.GetUnlinkedPlayers()
	if err != nil {
		return nil, nil, err
	}
	for _, p := range unlinked {
		if p.ID == slackUserID {
			return pm.link(p, slackUserID, "slack_id", 1)
		}
	}

	suggestions := rankPlayers(slackUsername, unlinked)
	if len(suggestions) > 0 && suggestions[0].Confidence > autoLinkConfidence {
		return pm.link(suggestions[0].Player, slackUserID, "name", suggestions[0].Confidence)
	}
	return nil, suggestions, nil
}

// Link attaches the Slack user to an existing player chosen by hand.
func (pm *PlayerMapper) Link(slackUserID, playerID string) (league.Player, error) {
	players, err := pm.store.GetPlayers([]string{playerID})
	if err != nil {
		return league.Player{}, err
	}
	if len(players) == 0 {
		return league.Player{}, fmt.Errorf("player %s: %w", playerID, ErrNotFound)
	}
	if err := pm.store.LinkSlackUser(playerID, slackUserID); err != nil {
		return league.Player{}, err
	}
	log.Info("Linked Slack user by hand", "slack_user_id", slackUserID, "player", playerID)
	return players[0], nil
}

func (pm *PlayerMapper) link(p league.Player, slackUserID, via string, confidence float64) (*league.Player, []PlayerSuggestion, error) {
	if err := pm.store.LinkSlackUser(p.ID, slackUserID); err != nil {
		return nil, nil, err
	}
	log.Info("Linked Slack user to player", "slack_user_id", slackUserID, "player", p.ID, "via", via, "confidence", confidence)
	return &p, nil, nil
}

// rankPlayers scores every player against the Slack username and keeps the best few.
func rankPlayers(slackUsername string, players []league.Player) []PlayerSuggestion {
	username := normalizeName(slackUsername)
	if username == "" {
		return nil
	}

	var suggestions []PlayerSuggestion
	for _, p := range players {
		var best float64
		var reasons []string
		for _, candidate := range []string{p.Name, p.Nickname} {
			name := normalizeName(candidate)
			if name == "" {
				continue
			}
			score := (stringSimilarity(username, name) + tokenSimilarity(username, name)) / 2
			if score > best {
				best = score
				reasons = matchReasons(username, name)
			}
		}
		if best > minConfidence {
			suggestions = append(suggestions, PlayerSuggestion{Player: p, Confidence: best, Reasons: reasons})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeName lowercases, strips accents and turns separators such as "." or
// "_" into single spaces, so "jose.garcia" and "José García" compare equal.
func normalizeName(name string) string {
	if folded, _, err := transform.String(stripMarks, name); err == nil {
		name = folded
	}
	name = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r):
			return unicode.ToLower(r)
		case unicode.IsDigit(r):
			return -1
		}
		return ' '
	}, name)
	return strings.Join(strings.Fields(name), " ")
}

func stringSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(ra, rb))/float64(longest)
}

// tokenSimilarity is the share of name parts that have a near match in the other name.
func tokenSimilarity(a, b string) float64 {
	left, right := strings.Fields(a), strings.Fields(b)
	if len(left) == 0 || len(right) == 0 {
		return 0
	}
	matched := 0
	for _, l := range left {
		for _, r := range right {
			if stringSimilarity(l, r) > autoLinkConfidence {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(max(len(left), len(right)))
}

func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func matchReasons(username, name string) []string {
	var reasons []string
	switch {
	case username == name:
		reasons = append(reasons, "exact name match")
	case stringSimilarity(username, name) > autoLinkConfidence:
		reasons = append(reasons, "very similar name")
	}
	if tokenSimilarity(username, name) >= 0.5 {
		reasons = append(reasons, "shares part of the name")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "partial name similarity")
	}
	return reasons
}
