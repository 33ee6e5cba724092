package actor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jwebster45206/d20"
)

// ErrInvalidChoice is returned when a character menu selection is out of range
// or not a number.
var ErrInvalidChoice = errors.New("invalid character choice")

// Stats is the small ability block each playable character carries.
type Stats struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Intelligence int `json:"intelligence"`
}

// ToAttributes converts Stats to a map for d20.Actor compatibility
func (s *Stats) ToAttributes() map[string]int {
	return map[string]int{
		"strength":     s.Strength,
		"dexterity":    s.Dexterity,
		"intelligence": s.Intelligence,
	}
}

// CharacterSpec is the serializable description of a playable character.
type CharacterSpec struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Stats       Stats  `json:"stats"`
	HP          int    `json:"hp"`
	AC          int    `json:"ac"`
}

// Character is the runtime form of a CharacterSpec.
type Character struct {
	Spec  *CharacterSpec
	Actor *d20.Actor // Built at runtime from CharacterSpec
}

// NewCharacterFromSpec creates a Character and builds its d20.Actor.
func NewCharacterFromSpec(spec *CharacterSpec) (*Character, error) {
	if spec == nil {
		return nil, fmt.Errorf("spec cannot be nil")
	}
	if spec.Name == "" {
		return nil, fmt.Errorf("character name cannot be empty")
	}

	id := spec.ID
	if id == "" {
		id = strings.ToLower(spec.Name)
	}

	actor, err := d20.NewActor(id).
		WithHP(spec.HP).
		WithAC(spec.AC).
		WithAttributes(spec.Stats.ToAttributes()).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build actor for %s: %w", spec.Name, err)
	}

	return &Character{Spec: spec, Actor: actor}, nil
}

func (c *Character) Name() string {
	return c.Spec.Name
}

func (c *Character) Description() string {
	return c.Spec.Description
}

// String renders the character the way the selection menu lists it.
func (c *Character) String() string {
	return fmt.Sprintf("%s, a %s.", c.Spec.Name, c.Spec.Description)
}

// StatLine summarizes the character's abilities as read back from its actor.
func (c *Character) StatLine() string {
	attr := func(key string) int {
		if c.Actor == nil {
			return 0
		}
		if val, ok := c.Actor.Attribute(key); ok {
			return val
		}
		return 0
	}
	hp, ac := c.Spec.HP, c.Spec.AC
	if c.Actor != nil {
		hp, ac = c.Actor.HP(), c.Actor.AC()
	}
	return fmt.Sprintf("STR %d  DEX %d  INT %d  HP %d  AC %d",
		attr("strength"), attr("dexterity"), attr("intelligence"), hp, ac)
}

// SelectCharacter resolves a 1-based menu choice typed by the player.
func SelectCharacter(available []*Character, input string) (*Character, error) {
	choice, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || choice < 1 || choice > len(available) {
		return nil, fmt.Errorf("%w: please choose a valid number between 1 and %d", ErrInvalidChoice, len(available))
	}
	return available[choice-1], nil
}
