package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/jwebster45206/fun-house/internal/config"
	"github.com/jwebster45206/fun-house/internal/events"
	"github.com/jwebster45206/fun-house/internal/logger"
	"github.com/jwebster45206/fun-house/pkg/game"
)

// watch follows game sessions over Redis and prints each event as it
// happens. With no argument it follows every session.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg, os.Stderr)

	if cfg.RedisURL == "" {
		fmt.Fprintln(os.Stderr, "REDIS_URL is required to watch sessions")
		os.Exit(1)
	}

	var sessionID string
	if len(os.Args) > 1 {
		id, err := uuid.Parse(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid session ID %q: %v\n", os.Args[1], err)
			os.Exit(1)
		}
		sessionID = id.String()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := events.NewClient(ctx, cfg.RedisURL, log)
	if err != nil {
		logger.WithError(log, err).Error("Failed to connect to Redis")
		os.Exit(1)
	}
	defer func() {
		_ = client.Close() // Ignore error in defer
	}()

	sub, err := events.NewBroadcaster(client, log).Subscribe(ctx, sessionID)
	if err != nil {
		logger.WithError(log, err).Error("Failed to subscribe")
		os.Exit(1)
	}
	defer func() {
		_ = sub.Close()
	}()

	if sessionID == "" {
		fmt.Println("Watching all Fun House sessions. Ctrl+C to stop.")
	} else {
		fmt.Printf("Watching session %s. Ctrl+C to stop.\n", sessionID)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-sub.Events():
			if !ok {
				return
			}
			fmt.Println(formatEvent(e))
		}
	}
}

// formatEvent renders one event as a single line:
// [session] type room (beaten/total) key=value ...
func formatEvent(e game.Event) string {
	var b strings.Builder

	id := e.SessionID
	if len(id) > 8 {
		id = id[:8]
	}
	fmt.Fprintf(&b, "[%s] %-20s", id, e.Type)

	if e.State.Room != "" {
		fmt.Fprintf(&b, " %s", e.State.Room)
	}
	fmt.Fprintf(&b, " (%d/%d)", e.State.BeatenRooms, e.State.TotalChallengeRooms)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}

	return b.String()
}
