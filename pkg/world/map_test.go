package world

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_GetRoom_CaseInsensitive(t *testing.T) {
	m := NewMap()
	room := riddleRoom()
	m.AddRoom(room)

	for _, name := range []string{"Riddle Room", "riddle room", "RIDDLE ROOM", " riddle room "} {
		got, err := m.GetRoom(name)
		require.NoError(t, err, name)
		assert.Same(t, room, got, name)
	}
}

func TestMap_GetRoom_NotFound(t *testing.T) {
	m := NewMap()
	m.AddRoom(riddleRoom())

	got, err := m.GetRoom("nonexistent")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRoomNotFound))
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestMap_AddRoom_Overwrites(t *testing.T) {
	m := NewMap()
	first := NewRoom("Outside", "first", nil)
	second := NewRoom("OUTSIDE", "second", nil)
	m.AddRoom(first)
	m.AddRoom(NewRoom("Entrance", "lobby", nil))
	m.AddRoom(second)

	got, err := m.GetRoom("outside")
	require.NoError(t, err)
	assert.Same(t, second, got)

	rooms := m.Rooms()
	require.Len(t, rooms, 2)
	assert.Same(t, second, rooms[0])
}

func TestMap_ConnectRooms(t *testing.T) {
	m := NewMap()
	outside := NewRoom("Outside", "You are outside the house.", nil)
	entrance := NewRoom("Entrance", "You are in the lobby.", nil)
	m.AddRoom(outside)
	m.AddRoom(entrance)

	require.NoError(t, m.ConnectRooms("outside", "entrance", "enter"))

	target, ok := outside.Connection("enter")
	require.True(t, ok)
	assert.Equal(t, "Entrance", target)

	next, err := m.GetRoom(target)
	require.NoError(t, err)
	assert.Same(t, entrance, next)

	// One-way only.
	assert.Empty(t, entrance.Connections())
}

func TestMap_ConnectRooms_Missing(t *testing.T) {
	m := NewMap()
	m.AddRoom(NewRoom("Outside", "You are outside the house.", nil))

	err := m.ConnectRooms("outside", "attic", "up")
	assert.True(t, errors.Is(err, ErrRoomNotFound))

	err = m.ConnectRooms("cellar", "outside", "up")
	assert.True(t, errors.Is(err, ErrRoomNotFound))
}

func TestMap_Counts(t *testing.T) {
	m := NewMap()
	m.AddRoom(NewRoom("Outside", "", nil))
	m.AddRoom(NewRoom("Entrance", "", nil))
	riddle := riddleRoom()
	m.AddRoom(riddle)
	m.AddRoom(NewRoom("Trivia Room", "", []Challenge{{Question: "Who wrote 'Hamlet'?", Answer: "shakespeare"}}))

	assert.Equal(t, 2, m.ChallengeRooms())
	assert.Zero(t, m.SolvedRooms())
}

func TestMap_Validate(t *testing.T) {
	m := NewMap()
	entrance := NewRoom("Entrance", "", nil)
	m.AddRoom(entrance)
	m.AddRoom(NewRoom("Outside", "", nil))

	// Dangling connections are allowed until the map is validated.
	entrance.Connect("Outside", "exit")
	entrance.Connect("Attic", "up")

	err := m.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRoomNotFound))
	assert.Contains(t, err.Error(), "Attic")

	m.AddRoom(NewRoom("Attic", "", nil))
	assert.NoError(t, m.Validate())
}
