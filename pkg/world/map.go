package world

import (
	"errors"
	"fmt"

	"github.com/jwebster45206/fun-house/pkg/textfilter"
)

// ErrRoomNotFound is returned when a room name was never added to the Map.
var ErrRoomNotFound = errors.New("room not found")

// Map owns every room of the adventure, keyed by normalized name.
type Map struct {
	rooms map[string]*Room
	order []string
}

func NewMap() *Map {
	return &Map{rooms: make(map[string]*Room)}
}

// AddRoom registers room under its normalized name. Adding a name twice
// replaces the earlier room.
func (m *Map) AddRoom(room *Room) {
	key := textfilter.Normalize(room.Name)
	if _, exists := m.rooms[key]; !exists {
		m.order = append(m.order, key)
	}
	m.rooms[key] = room
}

// GetRoom looks a room up by name, ignoring case and surrounding whitespace.
func (m *Map) GetRoom(name string) (*Room, error) {
	room, ok := m.rooms[textfilter.Normalize(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, name)
	}
	return room, nil
}

// ConnectRooms adds a one-way exit from roomA to roomB. A return path needs
// its own call.
func (m *Map) ConnectRooms(roomA, roomB, direction string) error {
	from, err := m.GetRoom(roomA)
	if err != nil {
		return err
	}
	to, err := m.GetRoom(roomB)
	if err != nil {
		return err
	}
	from.Connect(to.Name, direction)
	return nil
}

// Rooms returns every room in the order it was first added.
func (m *Map) Rooms() []*Room {
	rooms := make([]*Room, 0, len(m.order))
	for _, key := range m.order {
		rooms = append(rooms, m.rooms[key])
	}
	return rooms
}

// ChallengeRooms counts rooms that present a challenge.
func (m *Map) ChallengeRooms() int {
	n := 0
	for _, room := range m.rooms {
		if room.HasChallenges() {
			n++
		}
	}
	return n
}

// SolvedRooms counts rooms whose challenge has been beaten.
func (m *Map) SolvedRooms() int {
	n := 0
	for _, room := range m.rooms {
		if room.Solved() {
			n++
		}
	}
	return n
}

// Validate checks that every connection names a room on the map.
func (m *Map) Validate() error {
	var errs []error
	for _, room := range m.Rooms() {
		for _, conn := range room.Connections() {
			if _, err := m.GetRoom(conn.Target); err != nil {
				errs = append(errs, fmt.Errorf("%s --%s--> %w", room.Name, conn.Direction, err))
			}
		}
	}
	return errors.Join(errs...)
}
