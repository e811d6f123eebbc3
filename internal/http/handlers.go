package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/tribble-league/internal/club"
	"github.com/mauv0809/tribble-league/internal/league"
	"github.com/mauv0809/tribble-league/internal/processor"
	"github.com/mauv0809/tribble-league/internal/pubsub"
	"github.com/mauv0809/tribble-league/internal/quest"
	"github.com/mauv0809/tribble-league/internal/rating"
	"github.com/mauv0809/tribble-league/internal/replay"
	"github.com/slack-go/slack"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) CountersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := s.Counters.GetAll()
		if err != nil {
			log.Error("Failed to read counters", "error", err)
			http.Error(w, "Failed to read counters", http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, counters)
	}
}

type leaderboardResponse struct {
	SeasonID  string            `json:"seasonId"`
	Season    string            `json:"season"`
	Algorithm string            `json:"algorithm"`
	Standings []replay.Standing `json:"standings"`
}

func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		season, standings, err := s.Processor.Leaderboard(q.Get("season"), q.Get("algorithm"))
		if err != nil {
			respondError(w, "Failed to build leaderboard", err)
			return
		}
		algorithm := q.Get("algorithm")
		if algorithm == "" {
			algorithm = season.Algorithm
		}
		respondJSON(w, http.StatusOK, leaderboardResponse{
			SeasonID:  season.ID,
			Season:    season.Name,
			Algorithm: algorithm,
			Standings: standings,
		})
	}
}

func (s *Server) PlayerHistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		history, err := s.Processor.PlayerHistory(q.Get("season"), r.PathValue("id"), q.Get("algorithm"))
		if err != nil {
			respondError(w, "Failed to build rating history", err)
			return
		}
		respondJSON(w, http.StatusOK, history)
	}
}

func (s *Server) PlayerEventsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := s.Processor.PlayerEvents(r.URL.Query().Get("season"), r.PathValue("id"))
		if err != nil {
			respondError(w, "Failed to load rating events", err)
			return
		}
		respondJSON(w, http.StatusOK, rows)
	}
}

func (s *Server) MatchDiffHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		diffs, err := s.Processor.MatchDiff(r.PathValue("id"), r.URL.Query().Get("algorithm"))
		if err != nil {
			respondError(w, "Failed to diff match", err)
			return
		}
		respondJSON(w, http.StatusOK, diffs)
	}
}

func (s *Server) LogMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var match league.Match
		if err := json.NewDecoder(r.Body).Decode(&match); err != nil {
			log.Warn("Failed to decode match", "error", err)
			http.Error(w, "Invalid match payload", http.StatusBadRequest)
			return
		}
		logged, err := s.Processor.LogMatch(r.Context(), match, isDryRunFromContext(r))
		if err != nil {
			respondError(w, "Failed to log match", err)
			return
		}
		respondJSON(w, http.StatusCreated, logged)
	}
}

func (s *Server) ProcessQuestsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := s.Processor.ProcessQuests(r.Context(), r.URL.Query().Get("season"), isDryRunFromContext(r))
		if err != nil {
			respondError(w, "Failed to process quests", err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

func (s *Server) GenerateQuestsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := s.Processor.GenerateQuests(r.Context(), r.URL.Query().Get("season"), isDryRunFromContext(r))
		if err != nil {
			respondError(w, "Failed to generate quests", err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// MatchLoggedHandler receives match-logged events from the Pub/Sub push subscription
// and posts the result to Slack.
func (s *Server) MatchLoggedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}
		var push pushMessage
		if err := json.Unmarshal(bodyBytes, &push); err != nil {
			log.Error("Failed to unmarshal Pub/Sub message", "error", err)
			http.Error(w, "Invalid Pub/Sub message", http.StatusBadRequest)
			return
		}
		rawData, err := base64.StdEncoding.DecodeString(push.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		var msg pubsub.MatchLoggedMessage
		if err := s.pubsub.ProcessMessage(rawData, &msg); err != nil {
			log.Error("Failed to decode match-logged payload", "error", err)
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}
		log.Info("Received match-logged event", "matchID", msg.MatchID, "season", msg.SeasonID)

		// Acknowledge even when the announcement fails so Pub/Sub does not redeliver
		// and post the same result twice.
		if err := s.Processor.AnnounceMatch(r.Context(), msg.MatchID, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to announce match", "error", err, "matchID", msg.MatchID)
		}
		w.WriteHeader(http.StatusOK)
	}
}

func (s *Server) LeaderboardCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			http.Error(w, "Invalid slash command", http.StatusBadRequest)
			return
		}
		// The command text optionally names the algorithm, e.g. "/leaderboard streak".
		algorithm := strings.TrimSpace(cmd.Text)
		season, standings, err := s.Processor.Leaderboard("", algorithm)
		if err != nil {
			respondError(w, "Failed to build leaderboard", err)
			return
		}
		names, err := s.Processor.Names()
		if err != nil {
			respondError(w, "Failed to load players", err)
			return
		}
		if algorithm != "" {
			season.Algorithm = algorithm
		}
		msg, err := s.Notifier.FormatLeaderboardResponse(season, standings, names)
		if err != nil {
			log.Error("Failed to format leaderboard", "error", err)
			http.Error(w, "Failed to format leaderboard", http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, msg)
	}
}

func (s *Server) DailySummaryCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			http.Error(w, "Invalid slash command", http.StatusBadRequest)
			return
		}
		day := time.Now().UTC()
		if text := strings.TrimSpace(cmd.Text); text != "" {
			parsed, err := time.Parse(time.DateOnly, text)
			if err != nil {
				http.Error(w, "Expected a date like 2024-05-01", http.StatusBadRequest)
				return
			}
			day = parsed
		}
		summary, err := s.Processor.DailySummary("", day)
		if err != nil {
			respondError(w, "Failed to build daily summary", err)
			return
		}
		names, err := s.Processor.Names()
		if err != nil {
			respondError(w, "Failed to load players", err)
			return
		}
		msg, err := s.Notifier.FormatDailySummaryResponse(summary, names)
		if err != nil {
			log.Error("Failed to format daily summary", "error", err)
			http.Error(w, "Failed to format daily summary", http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, msg)
	}
}

// MeCommandHandler shows the caller's own season card. Callers are matched to a
// player by their Slack account; "/me link <player id>" claims a player by hand.
func (s *Server) MeCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			http.Error(w, "Invalid slash command", http.StatusBadRequest)
			return
		}

		var player *league.Player
		if args := strings.Fields(cmd.Text); len(args) == 2 && args[0] == "link" {
			linked, err := s.mapper.Link(cmd.UserID, args[1])
			if err != nil {
				respondError(w, "Failed to link player", err)
				return
			}
			player = &linked
		} else {
			found, suggestions, err := s.mapper.FindOrMapPlayer(cmd.UserID, cmd.UserName)
			if err != nil {
				respondError(w, "Failed to look up player", err)
				return
			}
			if found == nil {
				candidates := make([]league.Player, 0, len(suggestions))
				for _, sg := range suggestions {
					candidates = append(candidates, sg.Player)
				}
				msg, err := s.Notifier.FormatPlayerSuggestionsResponse(candidates)
				if err != nil {
					log.Error("Failed to format player suggestions", "error", err)
					http.Error(w, "Failed to format player suggestions", http.StatusInternalServerError)
					return
				}
				respondJSON(w, http.StatusOK, msg)
				return
			}
			player = found
		}

		card, err := s.Processor.PlayerCard("", player.ID, "")
		if err != nil {
			respondError(w, "Failed to build player card", err)
			return
		}
		names, err := s.Processor.Names()
		if err != nil {
			respondError(w, "Failed to load players", err)
			return
		}
		msg, err := s.Notifier.FormatPlayerCardResponse(card, names)
		if err != nil {
			log.Error("Failed to format player card", "error", err)
			http.Error(w, "Failed to format player card", http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, msg)
	}
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// respondError maps domain errors onto status codes.
func respondError(w http.ResponseWriter, msg string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, club.ErrNotFound), errors.Is(err, replay.ErrNoMatch):
		status = http.StatusNotFound
	case errors.Is(err, league.ErrInvalidMatch),
		errors.Is(err, processor.ErrMatchNotInSeason),
		errors.Is(err, rating.ErrUnknownAlgorithm):
		status = http.StatusBadRequest
	case errors.Is(err, quest.ErrUnknownKind):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		log.Error(msg, "error", err)
	} else {
		log.Warn(msg, "error", err)
	}
	http.Error(w, fmt.Sprintf("%s: %v", msg, err), status)
}
