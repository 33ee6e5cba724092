package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/jwebster45206/fun-house/pkg/world"
)

// LineTerminal reads newline-terminated input from r and writes each output
// line to w. Input is scanned on a background goroutine so a blocked read can
// still be abandoned through its context.
type LineTerminal struct {
	r io.Reader
	w io.Writer

	once  sync.Once
	lines chan string
	err   error // set before lines is closed
}

// Ensure LineTerminal implements world.Terminal
var _ world.Terminal = (*LineTerminal)(nil)

func NewLineTerminal(r io.Reader, w io.Writer) *LineTerminal {
	return &LineTerminal{r: r, w: w, lines: make(chan string)}
}

func (t *LineTerminal) scan() {
	defer close(t.lines)

	scanner := bufio.NewScanner(t.r)
	for scanner.Scan() {
		t.lines <- scanner.Text()
	}
	if err := scanner.Err(); err != nil {
		t.err = err
		return
	}
	t.err = io.EOF
}

func (t *LineTerminal) ReadLine(ctx context.Context) (string, error) {
	t.once.Do(func() { go t.scan() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-t.lines:
		if !ok {
			return "", t.err
		}
		return line, nil
	}
}

func (t *LineTerminal) WriteLine(line string) error {
	if _, err := fmt.Fprintln(t.w, line); err != nil {
		return fmt.Errorf("failed to write line: %w", err)
	}
	return nil
}
