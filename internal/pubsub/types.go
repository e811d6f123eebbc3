package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub. It doubles as the topic name.
type EventType string

const (
	EventMatchLogged EventType = "match-logged"
)

// MatchLoggedMessage is published after a match has been stored.
type MatchLoggedMessage struct {
	MatchID  string `msgpack:"match_id"`
	SeasonID string `msgpack:"season_id"`
}
