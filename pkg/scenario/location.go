package scenario

import "github.com/jwebster45206/fun-house/pkg/world"

// Location describes one room of a scenario.
type Location struct {
	Name        string            `json:"name"`                 // Also the key on the map.
	Description string            `json:"description,omitempty"` // Shown every time the player is here
	Exits       map[string]string `json:"exits,omitempty"`       // Direction → Location name
	Challenges  []world.Challenge `json:"challenges,omitempty"`  // Empty for navigation-only rooms
}
