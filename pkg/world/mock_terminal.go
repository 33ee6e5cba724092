package world

import (
	"context"
	"io"
	"strings"
	"sync"
)

// MockTerminal is a scripted Terminal for testing. ReadLine returns the
// queued inputs in order and io.EOF once they run out.
type MockTerminal struct {
	Inputs  []string
	Outputs []string

	// Track calls for testing
	ReadCalls int

	mu sync.Mutex // protects all fields above
}

// NewMockTerminal creates a terminal that will answer reads with inputs.
func NewMockTerminal(inputs ...string) *MockTerminal {
	return &MockTerminal{
		Inputs:  inputs,
		Outputs: make([]string, 0),
	}
}

// ReadLine pops the next scripted input.
func (m *MockTerminal) ReadLine(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.ReadCalls++
	if len(m.Inputs) == 0 {
		return "", io.EOF
	}
	line := m.Inputs[0]
	m.Inputs = m.Inputs[1:]
	return line, nil
}

// WriteLine records output.
func (m *MockTerminal) WriteLine(line string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Outputs = append(m.Outputs, line)
	return nil
}

// Transcript joins everything written so far.
func (m *MockTerminal) Transcript() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return strings.Join(m.Outputs, "\n")
}

// Count returns how many written lines contain substr.
func (m *MockTerminal) Count(substr string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, line := range m.Outputs {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}

// FixedRand always picks the same index, clamped to the range asked for.
type FixedRand int

func (f FixedRand) IntN(n int) int {
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}
