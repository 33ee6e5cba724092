package world

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inventory []string

func (i *inventory) Collect(roomName string) {
	*i = append(*i, roomName)
}

func riddleRoom() *Room {
	return NewRoom("Riddle Room", "Solve the riddle to proceed.", []Challenge{
		{Question: "What has keys but can't open locks?", Answer: "piano"},
		{Question: "What has words, but never speaks?", Answer: "book"},
		{Question: "What gets wetter as it dries?", Answer: "towel"},
	})
}

func TestRoom_AttemptChallenge(t *testing.T) {
	tests := []struct {
		name            string
		pick            FixedRand
		input           string
		expectedOutcome Outcome
		expectedMessage string
		expectSolved    bool
		expectedInv     []string
	}{
		{
			name:            "normalized correct answer",
			pick:            0,
			input:           "PIANO ",
			expectedOutcome: OutcomeCorrect,
			expectedMessage: "Correct! You have beaten the Riddle Room challenge!",
			expectSolved:    true,
			expectedInv:     []string{"Riddle Room"},
		},
		{
			name:            "wrong answer",
			pick:            0,
			input:           "guitar",
			expectedOutcome: OutcomeIncorrect,
			expectedMessage: MsgIncorrect,
			expectSolved:    false,
		},
		{
			name:            "rng picks the third challenge",
			pick:            2,
			input:           "towel",
			expectedOutcome: OutcomeCorrect,
			expectedMessage: "Correct! You have beaten the Riddle Room challenge!",
			expectSolved:    true,
			expectedInv:     []string{"Riddle Room"},
		},
		{
			name:            "answer for a different challenge is rejected",
			pick:            1,
			input:           "piano",
			expectedOutcome: OutcomeIncorrect,
			expectedMessage: MsgIncorrect,
			expectSolved:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := riddleRoom()
			term := NewMockTerminal(tt.input)
			var inv inventory

			result, err := room.AttemptChallenge(context.Background(), term, tt.pick, &inv)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedOutcome, result.Outcome)
			assert.Equal(t, tt.expectedMessage, result.Message)
			assert.Equal(t, tt.expectSolved, room.Solved())
			assert.Equal(t, []string(tt.expectedInv), []string(inv))
			assert.Equal(t, room.Challenges()[tt.pick].Question, term.Outputs[0])
			assert.Equal(t, MsgAnswerPrompt, term.Outputs[1])
		})
	}
}

func TestRoom_AttemptChallenge_RetryAfterWrongAnswer(t *testing.T) {
	room := riddleRoom()
	term := NewMockTerminal("guitar", "piano")
	var inv inventory

	first, err := room.AttemptChallenge(context.Background(), term, FixedRand(0), &inv)
	require.NoError(t, err)
	assert.Equal(t, OutcomeIncorrect, first.Outcome)
	assert.Empty(t, inv)

	second, err := room.AttemptChallenge(context.Background(), term, FixedRand(0), &inv)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCorrect, second.Outcome)
	assert.True(t, room.Solved())
	assert.Equal(t, []string{"Riddle Room"}, []string(inv))
}

func TestRoom_AttemptChallenge_IdempotentAfterSuccess(t *testing.T) {
	room := riddleRoom()
	term := NewMockTerminal("piano", "book")
	var inv inventory

	_, err := room.AttemptChallenge(context.Background(), term, FixedRand(0), &inv)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		result, err := room.AttemptChallenge(context.Background(), term, FixedRand(1), &inv)
		require.NoError(t, err)
		assert.Equal(t, OutcomeAlreadyBeaten, result.Outcome)
		assert.Equal(t, MsgAlreadyBeaten, result.Message)
	}

	assert.True(t, room.Solved())
	assert.Equal(t, []string{"Riddle Room"}, []string(inv))
	// Only the first attempt read input.
	assert.Equal(t, 1, term.ReadCalls)
}

func TestRoom_AttemptChallenge_NoChallenges(t *testing.T) {
	room := NewRoom("Outside", "You are outside the house.", nil)
	term := NewMockTerminal("anything")

	_, err := room.AttemptChallenge(context.Background(), term, FixedRand(0), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoChallenges))
	assert.False(t, room.Solved())
	assert.Zero(t, term.ReadCalls)
}

func TestRoom_AttemptChallenge_ReadError(t *testing.T) {
	room := riddleRoom()
	term := NewMockTerminal()

	_, err := room.AttemptChallenge(context.Background(), term, FixedRand(0), nil)
	require.Error(t, err)
	assert.False(t, room.Solved())
}

func TestRoom_Connect(t *testing.T) {
	room := NewRoom("Entrance", "You are in the lobby.", nil)
	room.Connect("Riddle Room", "1")
	room.Connect("Trivia Room", "2")
	room.Connect("Outside", "EXIT")
	room.Connect("Unscramble Room", "2")

	target, ok := room.Connection("exit")
	assert.True(t, ok)
	assert.Equal(t, "Outside", target)

	_, ok = room.Connection("4")
	assert.False(t, ok)

	assert.Equal(t, []Connection{
		{Direction: "1", Target: "Riddle Room"},
		{Direction: "2", Target: "Unscramble Room"},
		{Direction: "exit", Target: "Outside"},
	}, room.Connections())
}

func TestRoom_ChallengesCopied(t *testing.T) {
	source := []Challenge{{Question: "What planet is known as the red planet?", Answer: "mars"}}
	room := NewRoom("Trivia Room", "Test your knowledge with trivia.", source)

	source[0].Answer = "venus"
	got := room.Challenges()
	got[0].Answer = "jupiter"

	assert.Equal(t, "mars", room.Challenges()[0].Answer)
	assert.True(t, room.HasChallenges())
}
