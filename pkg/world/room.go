package world

import (
	"context"
	"errors"
	"fmt"

	"github.com/jwebster45206/fun-house/pkg/textfilter"
)

// ErrNoChallenges is returned when a navigation-only room is asked to run a
// challenge.
var ErrNoChallenges = errors.New("room has no challenges")

const (
	MsgAlreadyBeaten = "You have already beaten this room."
	MsgIncorrect     = "Incorrect! Try again."
	MsgAnswerPrompt  = "Your answer: "
)

// Outcome classifies a challenge attempt.
type Outcome int

const (
	OutcomeAlreadyBeaten Outcome = iota
	OutcomeCorrect
	OutcomeIncorrect
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAlreadyBeaten:
		return "already_beaten"
	case OutcomeCorrect:
		return "correct"
	case OutcomeIncorrect:
		return "incorrect"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is what a challenge attempt reports back to the game loop.
type Result struct {
	Outcome   Outcome
	Challenge Challenge // zero when the room was already beaten
	Message   string
}

// Connection is one outgoing exit of a room.
type Connection struct {
	Direction string
	Target    string // room name, resolved through the Map
}

// Room is a node in the adventure map. Connections hold room names, not
// pointers; the owning Map resolves them at traversal time.
type Room struct {
	Name        string
	Description string

	challenges  []Challenge
	solved      bool
	connections map[string]string // normalized direction → room name
	order       []string          // directions in the order they were connected
}

// NewRoom creates an unsolved room. A nil or empty challenge set makes it a
// navigation-only room.
func NewRoom(name, description string, challenges []Challenge) *Room {
	cs := make([]Challenge, len(challenges))
	copy(cs, challenges)
	return &Room{
		Name:        name,
		Description: description,
		challenges:  cs,
		connections: make(map[string]string),
	}
}

func (r *Room) String() string {
	return r.Name
}

// Challenges returns a copy of the room's challenge set.
func (r *Room) Challenges() []Challenge {
	cs := make([]Challenge, len(r.challenges))
	copy(cs, r.challenges)
	return cs
}

// HasChallenges reports whether the room presents a challenge at all.
func (r *Room) HasChallenges() bool {
	return len(r.challenges) > 0
}

// Solved reports whether the room's challenge has been beaten.
func (r *Room) Solved() bool {
	return r.solved
}

// Connect records an exit toward targetRoomName. The target is not checked;
// reconnecting a direction replaces its target but keeps its position.
func (r *Room) Connect(targetRoomName, direction string) {
	key := textfilter.Normalize(direction)
	if _, exists := r.connections[key]; !exists {
		r.order = append(r.order, key)
	}
	r.connections[key] = targetRoomName
}

// Connection returns the room name reached by direction.
func (r *Room) Connection(direction string) (string, bool) {
	target, ok := r.connections[textfilter.Normalize(direction)]
	return target, ok
}

// Connections lists exits in the order they were added.
func (r *Room) Connections() []Connection {
	conns := make([]Connection, 0, len(r.order))
	for _, dir := range r.order {
		conns = append(conns, Connection{Direction: dir, Target: r.connections[dir]})
	}
	return conns
}

// AttemptChallenge presents one randomly chosen challenge and reads a single
// answer from term. A correct answer marks the room solved and hands its
// name to collector. Once solved, the room reports OutcomeAlreadyBeaten
// without reading input or touching collector.
func (r *Room) AttemptChallenge(ctx context.Context, term Terminal, rng Rand, collector Collector) (Result, error) {
	if r.solved {
		return Result{Outcome: OutcomeAlreadyBeaten, Message: MsgAlreadyBeaten}, nil
	}
	if len(r.challenges) == 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrNoChallenges, r.Name)
	}

	challenge := r.challenges[rng.IntN(len(r.challenges))]

	if err := term.WriteLine(challenge.Question); err != nil {
		return Result{}, fmt.Errorf("failed to write question: %w", err)
	}
	if err := term.WriteLine(MsgAnswerPrompt); err != nil {
		return Result{}, fmt.Errorf("failed to write answer prompt: %w", err)
	}

	input, err := term.ReadLine(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read answer: %w", err)
	}

	if !challenge.Accepts(input) {
		return Result{Outcome: OutcomeIncorrect, Challenge: challenge, Message: MsgIncorrect}, nil
	}

	r.solved = true
	if collector != nil {
		collector.Collect(r.Name)
	}
	return Result{
		Outcome:   OutcomeCorrect,
		Challenge: challenge,
		Message:   fmt.Sprintf("Correct! You have beaten the %s challenge!", r.Name),
	}, nil
}
