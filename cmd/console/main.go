package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/fun-house/internal/config"
	"github.com/jwebster45206/fun-house/internal/events"
	"github.com/jwebster45206/fun-house/internal/logger"
	"github.com/jwebster45206/fun-house/internal/terminal"
	"github.com/jwebster45206/fun-house/pkg/game"
	"github.com/jwebster45206/fun-house/pkg/scenario"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	out, closeLog, err := logger.Output(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg, out)

	code := run(cfg, log)
	_ = closeLog()
	os.Exit(code)
}

func run(cfg *config.Config, log *slog.Logger) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := scenario.Default()
	if err == nil {
		err = s.Validate()
	}
	if err != nil {
		logger.WithError(log, err).Error("Built-in scenario is invalid")
		fmt.Fprintf(os.Stderr, "Failed to load scenario: %v\n", err)
		return 1
	}

	var publishers game.MultiPublisher
	if cfg.RedisURL != "" {
		client, err := events.NewClient(ctx, cfg.RedisURL, log)
		if err != nil {
			// Broadcasting is optional; play goes on without it.
			logger.WithError(log, err).Warn("Event broadcasting disabled")
		} else {
			defer func() {
				_ = client.Close() // Ignore error in defer
			}()
			publishers = append(publishers, events.NewBroadcaster(client, log))
		}
	}

	opts := []game.Option{game.WithLogger(log)}
	if cfg.Seed != 0 {
		opts = append(opts, game.WithRand(rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))))
	}

	switch cfg.ConsoleMode {
	case config.ModePlain:
		err = runPlain(ctx, s, publishers, opts)
	default:
		err = runConsole(ctx, s, publishers, opts)
	}

	if err != nil && !game.IsEndOfInput(err) && !errors.Is(err, context.Canceled) {
		logger.WithError(log, err).Error("Game ended with an error")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runPlain(ctx context.Context, s *scenario.Scenario, publishers game.MultiPublisher, opts []game.Option) error {
	g, err := game.New(s, append(opts, game.WithPublisher(publishers))...)
	if err != nil {
		return err
	}
	return g.Run(ctx, terminal.NewLineTerminal(os.Stdin, os.Stdout))
}

// runConsole runs the game loop on its own goroutine and the BubbleTea
// program on this one. They only talk through the program's message queue
// and the input channel.
func runConsole(ctx context.Context, s *scenario.Scenario, publishers game.MultiPublisher, opts []game.Option) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	input := make(chan string, inputBuffer)
	ui := NewConsoleUI(s.Name, input)
	p := tea.NewProgram(ui,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())

	uiPublisher := game.PublisherFunc(func(_ context.Context, e game.Event) error {
		p.Send(gameEventMsg{event: e})
		return nil
	})

	g, err := game.New(s, append(opts, game.WithPublisher(append(publishers, uiPublisher)))...)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		err := g.Run(ctx, newProgramTerminal(p.Send, input))
		p.Send(gameOverMsg{err: err})
		done <- err
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return fmt.Errorf("error running console: %w", err)
	}

	// The player may close the UI while the game waits for input.
	cancel()
	return <-done
}
