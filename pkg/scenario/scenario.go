package scenario

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/jwebster45206/fun-house/pkg/actor"
	"github.com/jwebster45206/fun-house/pkg/textfilter"
	"github.com/jwebster45206/fun-house/pkg/world"
)

//go:embed data/fun_house.json
var funHouseJSON []byte

// Scenario is the static content of a game: its rooms, how they connect,
// and the characters a player can pick.
type Scenario struct {
	Name              string                `json:"name"`
	Intro             string                `json:"intro"`              // Shown once before character selection
	StartRoom         string                `json:"start_room"`         // Where the player begins and the only place to quit
	HubRoom           string                `json:"hub_room"`           // Lobby every challenge room returns to
	CompletionMessage string                `json:"completion_message"` // Shown once when every challenge room is beaten
	Locations         []Location            `json:"locations"`
	Characters        []actor.CharacterSpec `json:"characters"`
}

// Default returns a fresh copy of the built-in Fun House scenario.
func Default() (*Scenario, error) {
	return Parse(funHouseJSON)
}

// Load reads a scenario from a JSON file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a scenario strictly; unknown fields are rejected.
func Parse(data []byte) (*Scenario, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var s Scenario
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenario: %w", err)
	}
	return &s, nil
}

// BuildMap creates the rooms and wires their exits. Exits are connected in
// sorted direction order so menus list them predictably.
func (s *Scenario) BuildMap() (*world.Map, error) {
	m := world.NewMap()
	for _, loc := range s.Locations {
		m.AddRoom(world.NewRoom(loc.Name, loc.Description, loc.Challenges))
	}

	for _, loc := range s.Locations {
		directions := make([]string, 0, len(loc.Exits))
		for dir := range loc.Exits {
			directions = append(directions, dir)
		}
		slices.Sort(directions)

		for _, dir := range directions {
			if err := m.ConnectRooms(loc.Name, loc.Exits[dir], dir); err != nil {
				return nil, fmt.Errorf("failed to connect %s: %w", loc.Name, err)
			}
		}
	}
	return m, nil
}

// BuildCharacters turns the character specs into playable characters.
func (s *Scenario) BuildCharacters() ([]*actor.Character, error) {
	chars := make([]*actor.Character, 0, len(s.Characters))
	for i := range s.Characters {
		c, err := actor.NewCharacterFromSpec(&s.Characters[i])
		if err != nil {
			return nil, err
		}
		chars = append(chars, c)
	}
	return chars, nil
}

// Validate reports every structural problem with the scenario at once.
func (s *Scenario) Validate() error {
	var errs []error

	if s.Name == "" {
		errs = append(errs, errors.New("scenario name is required"))
	}
	if len(s.Characters) == 0 {
		errs = append(errs, errors.New("at least one character is required"))
	}

	seen := make(map[string]bool)
	challengeRooms := 0
	for _, loc := range s.Locations {
		key := textfilter.Normalize(loc.Name)
		if key == "" {
			errs = append(errs, errors.New("location with empty name"))
			continue
		}
		if seen[key] {
			errs = append(errs, fmt.Errorf("duplicate location %q", loc.Name))
		}
		seen[key] = true
		for i, ch := range loc.Challenges {
			if textfilter.Normalize(ch.Question) == "" || textfilter.Normalize(ch.Answer) == "" {
				errs = append(errs, fmt.Errorf("%s: challenge %d needs a question and an answer", loc.Name, i+1))
			}
		}
		if len(loc.Challenges) > 0 {
			challengeRooms++
		}
	}
	if challengeRooms == 0 {
		errs = append(errs, errors.New("at least one location needs challenges"))
	}

	for _, name := range []string{s.StartRoom, s.HubRoom} {
		if !seen[textfilter.Normalize(name)] {
			errs = append(errs, fmt.Errorf("%w: %q", world.ErrRoomNotFound, name))
		}
	}

	m, err := s.BuildMap()
	if err != nil {
		errs = append(errs, err)
	} else {
		errs = append(errs, s.validateReachability(m)...)
	}

	if _, err := s.BuildCharacters(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// validateReachability checks that the hub can be reached from the start,
// that every challenge room hangs off the hub, and that the hub leads back.
func (s *Scenario) validateReachability(m *world.Map) []error {
	start, err := m.GetRoom(s.StartRoom)
	if err != nil {
		return nil // already reported
	}
	hub, err := m.GetRoom(s.HubRoom)
	if err != nil {
		return nil
	}

	var errs []error
	if !leadsTo(start, hub.Name) {
		errs = append(errs, fmt.Errorf("%s has no exit to %s", start.Name, hub.Name))
	}
	if !leadsTo(hub, start.Name) {
		errs = append(errs, fmt.Errorf("%s has no exit to %s", hub.Name, start.Name))
	}
	for _, room := range m.Rooms() {
		if room.HasChallenges() && !leadsTo(hub, room.Name) {
			errs = append(errs, fmt.Errorf("challenge room %s is not reachable from %s", room.Name, hub.Name))
		}
	}
	return errs
}

func leadsTo(from *world.Room, target string) bool {
	for _, conn := range from.Connections() {
		if textfilter.Equal(conn.Target, target) {
			return true
		}
	}
	return false
}
