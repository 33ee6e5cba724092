package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/jwebster45206/fun-house/pkg/actor"
	"github.com/jwebster45206/fun-house/pkg/scenario"
	"github.com/jwebster45206/fun-house/pkg/state"
	"github.com/jwebster45206/fun-house/pkg/textfilter"
	"github.com/jwebster45206/fun-house/pkg/world"
)

const (
	TokenEnter  = "enter"
	TokenQuit   = "quit"
	TokenExit   = "exit"
	TokenReturn = "b"

	MsgOutsidePrompt  = "Type 'enter' to enter the house or 'quit' to quit the game: "
	MsgChooseDir      = "Choose a direction: "
	MsgReturnPrompt   = "Press 'b' to return to the lobby: "
	MsgGoodbye        = "Thanks for playing!"
	MsgDefaultFinish  = "Congratulations! You have beaten all the rooms and completed the game!"
	MsgCharacterIntro = "Available characters:"
)

// Game drives one session of a scenario over a line terminal.
type Game struct {
	scenario   *scenario.Scenario
	world      *world.Map
	characters []*actor.Character
	session    *state.Session
	rng        world.Rand
	publisher  Publisher
	logger     *slog.Logger
}

// Option customizes a Game.
type Option func(*Game)

// WithRand sets the source used to pick challenges.
func WithRand(r world.Rand) Option {
	return func(g *Game) { g.rng = r }
}

// WithPublisher sets where game events are sent.
func WithPublisher(p Publisher) Option {
	return func(g *Game) { g.publisher = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// New builds the map and characters of s and prepares a fresh session in
// the start room.
func New(s *scenario.Scenario, opts ...Option) (*Game, error) {
	if s == nil {
		return nil, fmt.Errorf("scenario cannot be nil")
	}

	m, err := s.BuildMap()
	if err != nil {
		return nil, fmt.Errorf("failed to build map: %w", err)
	}
	chars, err := s.BuildCharacters()
	if err != nil {
		return nil, fmt.Errorf("failed to build characters: %w", err)
	}
	if len(chars) == 0 {
		return nil, fmt.Errorf("scenario %q has no characters", s.Name)
	}

	start, err := m.GetRoom(s.StartRoom)
	if err != nil {
		return nil, fmt.Errorf("start room: %w", err)
	}
	if _, err := m.GetRoom(s.HubRoom); err != nil {
		return nil, fmt.Errorf("hub room: %w", err)
	}

	g := &Game{
		scenario:   s,
		world:      m,
		characters: chars,
		session:    state.NewSession(actor.NewPlayer(nil), start.Name, m.ChallengeRooms()),
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		publisher:  NopPublisher{},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("session_id", g.session.ID.String())
	return g, nil
}

func (g *Game) Session() *state.Session {
	return g.session
}

func (g *Game) Map() *world.Map {
	return g.world
}

func (g *Game) Characters() []*actor.Character {
	return g.characters
}

// Run plays the intro, character selection and then the room loop until the
// player quits from the start room. A failed read (including io.EOF) or a
// room missing from the map ends the session with that error.
func (g *Game) Run(ctx context.Context, term world.Terminal) error {
	g.publish(ctx, EventTypeSessionStarted, map[string]any{"scenario": g.scenario.Name})
	g.logger.Info("Session started", "scenario", g.scenario.Name)

	err := g.run(ctx, term)

	data := map[string]any{"completed": g.session.Completed}
	if err != nil {
		data["error"] = err.Error()
	}
	g.publish(context.WithoutCancel(ctx), EventTypeSessionEnded, data)
	g.logger.Info("Session ended",
		"turns", g.session.Turns,
		"beaten_rooms", g.session.BeatenRooms,
		"completed", g.session.Completed)
	return err
}

func (g *Game) run(ctx context.Context, term world.Terminal) error {
	if err := g.intro(ctx, term); err != nil {
		return err
	}
	if err := g.chooseCharacter(ctx, term); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		done, err := g.turn(ctx, term)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (g *Game) intro(ctx context.Context, term world.Terminal) error {
	if g.scenario.Intro == "" {
		return nil
	}
	if err := term.WriteLine(g.scenario.Intro); err != nil {
		return fmt.Errorf("failed to write intro: %w", err)
	}
	_, err := g.read(ctx, term)
	return err
}

func (g *Game) chooseCharacter(ctx context.Context, term world.Terminal) error {
	out := &printer{term: term}
	out.line(MsgCharacterIntro)
	for i, c := range g.characters {
		out.linef("%d. %s", i+1, c)
	}
	if out.err != nil {
		return out.err
	}

	for {
		out.linef("Choose your character (1-%d):", len(g.characters))
		if out.err != nil {
			return out.err
		}
		input, err := g.read(ctx, term)
		if err != nil {
			return err
		}

		c, err := actor.SelectCharacter(g.characters, input)
		if err != nil {
			g.logger.Debug("Invalid character choice", "input", input)
			out.linef("Please choose a valid number between 1 and %d.", len(g.characters))
			continue
		}

		g.session.Player.ChooseCharacter(c)
		out.linef("You have chosen %s.", c.Name())
		out.line(c.StatLine())
		g.publish(ctx, EventTypeCharacterChosen, map[string]any{"character": c.Name()})
		g.logger.Info("Character chosen", "character", c.Name())
		return out.err
	}
}

// turn shows the current room and handles one decision. It reports done
// when the player quits.
func (g *Game) turn(ctx context.Context, term world.Terminal) (bool, error) {
	room, err := g.world.GetRoom(g.session.CurrentRoom)
	if err != nil {
		return false, err
	}

	if err := term.WriteLine(room.Description); err != nil {
		return false, fmt.Errorf("failed to write description: %w", err)
	}

	if g.isStart(room) {
		return g.outsideTurn(ctx, term, room)
	}
	return false, g.roomTurn(ctx, term, room)
}

func (g *Game) outsideTurn(ctx context.Context, term world.Terminal, room *world.Room) (bool, error) {
	if err := term.WriteLine(MsgOutsidePrompt); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}
	action, err := g.read(ctx, term)
	if err != nil {
		return false, err
	}

	if action == TokenQuit {
		if err := term.WriteLine(MsgGoodbye); err != nil {
			return false, fmt.Errorf("failed to write goodbye: %w", err)
		}
		return true, nil
	}
	return false, g.follow(ctx, term, room, action)
}

// roomTurn lists the exits of a navigation room (normally the hub) and
// follows the one the player picks.
func (g *Game) roomTurn(ctx context.Context, term world.Terminal, room *world.Room) error {
	out := &printer{term: term}
	for _, conn := range room.Connections() {
		target, err := g.world.GetRoom(conn.Target)
		if err != nil {
			return err
		}
		status := ""
		if target.Solved() {
			status = " (already beaten)"
		}
		out.linef("Type '%s' to enter %s%s.", conn.Direction, target.Name, status)
	}
	out.line(MsgChooseDir)
	if out.err != nil {
		return out.err
	}

	action, err := g.read(ctx, term)
	if err != nil {
		return err
	}

	if _, ok := room.Connection(action); !ok && action == TokenExit && g.isHub(room) {
		g.enter(ctx, g.scenario.StartRoom)
		return nil
	}
	return g.follow(ctx, term, room, action)
}

// follow moves through the exit named by action. Unknown directions leave
// the player where they are so the next turn prompts again.
func (g *Game) follow(ctx context.Context, term world.Terminal, from *world.Room, action string) error {
	targetName, ok := from.Connection(action)
	if !ok {
		g.logger.Debug("Unknown direction", "room", from.Name, "direction", action)
		return nil
	}
	target, err := g.world.GetRoom(targetName)
	if err != nil {
		return err
	}

	if !target.HasChallenges() {
		g.enter(ctx, target.Name)
		return nil
	}
	return g.playRoom(ctx, term, target)
}

// playRoom runs the visit to a challenge room: one attempt if it is still
// unsolved, then back to the hub once the player confirms.
func (g *Game) playRoom(ctx context.Context, term world.Terminal, room *world.Room) error {
	g.enter(ctx, room.Name)

	if room.Solved() {
		if err := term.WriteLine(world.MsgAlreadyBeaten); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	} else {
		result, err := room.AttemptChallenge(ctx, term, g.rng, g.session.Player)
		if err != nil {
			return fmt.Errorf("challenge in %s: %w", room.Name, err)
		}
		if err := term.WriteLine(result.Message); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
		if result.Outcome == world.OutcomeCorrect {
			g.session.RecordBeaten()
		}
		g.publish(ctx, EventTypeChallengeAttempted, map[string]any{
			"room":    room.Name,
			"outcome": result.Outcome.String(),
		})
		g.logger.Info("Challenge attempted", "room", room.Name, "outcome", result.Outcome.String())
	}

	for {
		if err := term.WriteLine(MsgReturnPrompt); err != nil {
			return fmt.Errorf("failed to write prompt: %w", err)
		}
		input, err := g.read(ctx, term)
		if err != nil {
			return err
		}
		if input == TokenReturn {
			break
		}
	}

	hub, err := g.world.GetRoom(g.scenario.HubRoom)
	if err != nil {
		return err
	}
	g.enter(ctx, hub.Name)

	if g.session.CheckCompletion() {
		msg := g.scenario.CompletionMessage
		if msg == "" {
			msg = MsgDefaultFinish
		}
		if err := term.WriteLine(msg); err != nil {
			return fmt.Errorf("failed to write completion: %w", err)
		}
		g.publish(ctx, EventTypeGameCompleted, map[string]any{"turns": g.session.Turns})
		g.logger.Info("Game completed", "turns", g.session.Turns)
	}
	return nil
}

func (g *Game) enter(ctx context.Context, roomName string) {
	from := g.session.CurrentRoom
	g.session.MoveTo(roomName)
	g.publish(ctx, EventTypeRoomEntered, map[string]any{"from": from, "room": roomName})
	g.logger.Debug("Room entered", "from", from, "room", roomName)
}

func (g *Game) read(ctx context.Context, term world.Terminal) (string, error) {
	line, err := term.ReadLine(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return textfilter.Normalize(line), nil
}

func (g *Game) publish(ctx context.Context, eventType EventType, data map[string]any) {
	event := Event{
		Type:      eventType,
		SessionID: g.session.ID.String(),
		Data:      data,
		State:     g.session.Snapshot(),
	}
	if err := g.publisher.Publish(ctx, event); err != nil {
		g.logger.Warn("Failed to publish event", "event_type", eventType, "error", err)
	}
}

func (g *Game) isStart(room *world.Room) bool {
	return textfilter.Equal(room.Name, g.scenario.StartRoom)
}

func (g *Game) isHub(room *world.Room) bool {
	return textfilter.Equal(room.Name, g.scenario.HubRoom)
}

// printer writes lines until the first failure and keeps that error.
type printer struct {
	term world.Terminal
	err  error
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	if err := p.term.WriteLine(s); err != nil {
		p.err = fmt.Errorf("failed to write output: %w", err)
	}
}

func (p *printer) linef(format string, args ...any) {
	p.line(fmt.Sprintf(format, args...))
}

// IsEndOfInput reports whether err came from the terminal running out of
// input rather than from the game itself.
func IsEndOfInput(err error) bool {
	return errors.Is(err, io.EOF)
}
