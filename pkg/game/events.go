package game

import (
	"context"
	"errors"

	"github.com/jwebster45206/fun-house/pkg/state"
)

// EventType names something that happened during a session.
type EventType string

const (
	EventTypeSessionStarted     EventType = "session.started"
	EventTypeCharacterChosen    EventType = "character.chosen"
	EventTypeRoomEntered        EventType = "room.entered"
	EventTypeChallengeAttempted EventType = "challenge.attempted"
	EventTypeGameCompleted      EventType = "game.completed"
	EventTypeSessionEnded       EventType = "session.ended"
)

// Event is published at each milestone of a session. State is a copy taken
// when the event was raised.
type Event struct {
	Type      EventType      `json:"type"`
	SessionID string         `json:"session_id"`
	Data      map[string]any `json:"data,omitempty"`
	State     state.Snapshot `json:"state"`
}

// Publisher receives game events. Failures are logged by the game and never
// interrupt play.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(ctx context.Context, event Event) error

func (f PublisherFunc) Publish(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// MultiPublisher fans an event out to several publishers and joins their
// errors.
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
