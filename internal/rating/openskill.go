package rating

import (
	"math"

	openskill "github.com/intinig/go-openskill/rating"
	"github.com/intinig/go-openskill/types"
	"github.com/mauv0809/tribble-league/internal/league"
)

var _ System[types.Rating] = OpenSkill{}

// OpenSkill is a Bayesian team-skill rating tracking a mean and an uncertainty
// per player. The update itself is delegated to go-openskill.
type OpenSkill struct {
	cfg OpenSkillConfig
}

// NewOpenSkill creates an OpenSkill system.
func NewOpenSkill(cfg OpenSkillConfig) OpenSkill {
	return OpenSkill{cfg: cfg}
}

func (OpenSkill) Name() Algorithm { return AlgorithmOpenSkill }

func (o OpenSkill) DefaultRating() types.Rating {
	return types.Rating{Mu: o.cfg.Mu, Sigma: o.cfg.Sigma}
}

func (o OpenSkill) RateMatch(m MatchWithRatings[types.Rating]) []PlayerWithRating[types.Rating] {
	white, black := m.White(), m.Black()
	teams := []types.Team{skillTeam(white), skillTeam(black)}

	rated := openskill.Rate(teams, o.options(m.Match.Result))

	out := make([]PlayerWithRating[types.Rating], 0, len(white)+len(black))
	for i, p := range white {
		out = append(out, PlayerWithRating[types.Rating]{PlayerID: p.PlayerID, Rating: rated[0][i]})
	}
	for i, p := range black {
		out = append(out, PlayerWithRating[types.Rating]{PlayerID: p.PlayerID, Rating: rated[1][i]})
	}
	return out
}

// ToNumber is the conservative ordinal mu - z*sigma, floored.
func (o OpenSkill) ToNumber(r types.Rating) float64 {
	return math.Floor(r.Mu - o.cfg.Z*r.Sigma)
}

func (OpenSkill) Equal(a, b *types.Rating) bool {
	return equalPtr(a, b, func(a, b types.Rating) bool {
		return a.Mu == b.Mu && a.Sigma == b.Sigma
	})
}

// options builds the update options. Ranks are ordered white, black and a
// lower rank means a better finish.
func (o OpenSkill) options(result league.Result) *types.OpenSkillOptions {
	var rank []int
	switch result {
	case league.ResultWhite:
		rank = []int{1, 2}
	case league.ResultBlack:
		rank = []int{2, 1}
	default:
		rank = []int{1, 1}
	}
	return &types.OpenSkillOptions{
		Mu:    float64Ptr(o.cfg.Mu),
		Sigma: float64Ptr(o.cfg.Sigma),
		Tau:   float64Ptr(o.cfg.Tau),
		Rank:  rank,
	}
}

func skillTeam(players []PlayerWithRating[types.Rating]) types.Team {
	team := make(types.Team, 0, len(players))
	for _, p := range players {
		team = append(team, p.Rating)
	}
	return team
}

func float64Ptr(v float64) *float64 {
	return &v
}
