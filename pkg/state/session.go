package state

import (
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/fun-house/pkg/actor"
)

// Session is the mutable state of one play-through. The game loop threads it
// through every turn instead of keeping package-level variables.
type Session struct {
	ID                  uuid.UUID     `json:"id"`
	Player              *actor.Player `json:"-"`
	CurrentRoom         string        `json:"current_room"`
	BeatenRooms         int           `json:"beaten_rooms"`
	TotalChallengeRooms int           `json:"total_challenge_rooms"`
	Completed           bool          `json:"completed"` // completion message already shown
	Turns               int           `json:"turns"`
	StartedAt           time.Time     `json:"started_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

func NewSession(player *actor.Player, startRoom string, totalChallengeRooms int) *Session {
	now := time.Now()
	return &Session{
		ID:                  uuid.New(),
		Player:              player,
		CurrentRoom:         startRoom,
		TotalChallengeRooms: totalChallengeRooms,
		StartedAt:           now,
		UpdatedAt:           now,
	}
}

// MoveTo changes the current room and counts a turn.
func (s *Session) MoveTo(roomName string) {
	s.CurrentRoom = roomName
	s.Turns++
	s.UpdatedAt = time.Now()
}

// RecordBeaten counts a room whose challenge was just answered correctly.
// Progress is one-way; nothing ever decrements it.
func (s *Session) RecordBeaten() {
	s.BeatenRooms++
	s.UpdatedAt = time.Now()
}

// CheckCompletion returns true the first time every challenge room has been
// beaten, and false on every call after that.
func (s *Session) CheckCompletion() bool {
	if s.Completed || s.TotalChallengeRooms == 0 || s.BeatenRooms < s.TotalChallengeRooms {
		return false
	}
	s.Completed = true
	s.UpdatedAt = time.Now()
	return true
}

// Snapshot is a point-in-time copy of a session, safe to hand to other
// goroutines.
type Snapshot struct {
	SessionID           string   `json:"session_id"`
	Character           string   `json:"character,omitempty"`
	Room                string   `json:"room"`
	Inventory           []string `json:"inventory"`
	BeatenRooms         int      `json:"beaten_rooms"`
	TotalChallengeRooms int      `json:"total_challenge_rooms"`
	Completed           bool     `json:"completed"`
	Turns               int      `json:"turns"`
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID:           s.ID.String(),
		Room:                s.CurrentRoom,
		Inventory:           []string{},
		BeatenRooms:         s.BeatenRooms,
		TotalChallengeRooms: s.TotalChallengeRooms,
		Completed:           s.Completed,
		Turns:               s.Turns,
	}
	if s.Player != nil {
		snap.Inventory = append(snap.Inventory, s.Player.Inventory...)
		if s.Player.Character != nil {
			snap.Character = s.Player.Character.Name()
		}
	}
	return snap
}
