package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

const inputBuffer = 16

type outputMsg struct {
	line string
}

// programTerminal connects the game loop to the BubbleTea program: output
// lines become messages, input arrives from lines the player submits.
type programTerminal struct {
	send  func(tea.Msg)
	input <-chan string
}

func newProgramTerminal(send func(tea.Msg), input <-chan string) *programTerminal {
	return &programTerminal{send: send, input: input}
}

func (t *programTerminal) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line := <-t.input:
		return line, nil
	}
}

func (t *programTerminal) WriteLine(line string) error {
	t.send(outputMsg{line: line})
	return nil
}
