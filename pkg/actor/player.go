package actor

import "slices"

// Player tracks the chosen character and the rooms the player has beaten.
type Player struct {
	Character *Character
	Inventory []string // names of solved rooms, in the order they were solved

	// CompletedRooms is reserved for tracking skipped or completed rooms; no
	// game rule reads it yet.
	CompletedRooms map[string]struct{}
}

func NewPlayer(character *Character) *Player {
	return &Player{
		Character:      character,
		Inventory:      make([]string, 0),
		CompletedRooms: make(map[string]struct{}),
	}
}

// Collect adds a solved room to the inventory. Rooms only solve once, so a
// repeated name is ignored.
func (p *Player) Collect(roomName string) {
	if p.HasCollected(roomName) {
		return
	}
	p.Inventory = append(p.Inventory, roomName)
}

// HasCollected reports whether roomName is already in the inventory.
func (p *Player) HasCollected(roomName string) bool {
	return slices.Contains(p.Inventory, roomName)
}

// ChooseCharacter assigns the player's identity.
func (p *Player) ChooseCharacter(c *Character) {
	p.Character = c
}
