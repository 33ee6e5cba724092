package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/jwebster45206/fun-house/pkg/game"
	"github.com/jwebster45206/fun-house/pkg/state"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*Broadcaster, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	client, err := NewClient(context.Background(), "redis://"+mr.Addr(), logger)
	if err != nil {
		mr.Close()
		t.Fatalf("Failed to create redis client: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return NewBroadcaster(client, logger), client
}

func receive(t *testing.T, sub *Subscription) game.Event {
	t.Helper()
	select {
	case e, ok := <-sub.Events():
		require.True(t, ok, "subscription closed early")
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return game.Event{}
}

func TestBroadcaster_PublishAndSubscribe(t *testing.T) {
	b, _ := setupTestRedis(t)
	ctx := context.Background()

	sub, err := b.Subscribe(ctx, "session-1")
	require.NoError(t, err)
	defer sub.Close()

	event := game.Event{
		Type:      game.EventTypeChallengeAttempted,
		SessionID: "session-1",
		Data:      map[string]any{"room": "Riddle Room", "outcome": "correct"},
		State: state.Snapshot{
			SessionID:           "session-1",
			Room:                "Riddle Room",
			Inventory:           []string{"Riddle Room"},
			BeatenRooms:         1,
			TotalChallengeRooms: 3,
		},
	}
	require.NoError(t, b.Publish(ctx, event))

	got := receive(t, sub)
	assert.Equal(t, game.EventTypeChallengeAttempted, got.Type)
	assert.Equal(t, "Riddle Room", got.Data["room"])
	assert.Equal(t, []string{"Riddle Room"}, got.State.Inventory)
	assert.Equal(t, 1, got.State.BeatenRooms)
}

func TestBroadcaster_SubscribeAllSessions(t *testing.T) {
	b, _ := setupTestRedis(t)
	ctx := context.Background()

	sub, err := b.Subscribe(ctx, "")
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, b.Publish(ctx, game.Event{Type: game.EventTypeSessionStarted, SessionID: "a"}))
	require.NoError(t, b.Publish(ctx, game.Event{Type: game.EventTypeSessionStarted, SessionID: "b"}))

	assert.Equal(t, "a", receive(t, sub).SessionID)
	assert.Equal(t, "b", receive(t, sub).SessionID)
}

func TestBroadcaster_SkipsMalformedPayloads(t *testing.T) {
	b, client := setupTestRedis(t)
	ctx := context.Background()

	sub, err := b.Subscribe(ctx, "session-2")
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, client.Publish(ctx, ChannelName("session-2"), "not json").Err())
	require.NoError(t, b.Publish(ctx, game.Event{Type: game.EventTypeGameCompleted, SessionID: "session-2"}))

	assert.Equal(t, game.EventTypeGameCompleted, receive(t, sub).Type)
}

func TestSubscription_CloseEndsEvents(t *testing.T) {
	b, _ := setupTestRedis(t)

	sub, err := b.Subscribe(context.Background(), "session-3")
	require.NoError(t, err)
	require.NoError(t, sub.Close())
	assert.NoError(t, sub.Close())

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("events channel not closed")
	}
}

func TestBroadcaster_PublishError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	client, mock := redismock.NewClientMock()
	defer client.Close()

	event := game.Event{Type: game.EventTypeSessionEnded, SessionID: "x"}
	expected, err := json.Marshal(event)
	require.NoError(t, err)

	// Happy path
	mock.ExpectPublish(ChannelName("x"), string(expected)).SetVal(1)

	b := NewBroadcaster(client, logger)
	assert.NoError(t, b.Publish(context.Background(), event))

	// Dependency error
	mock.ExpectPublish(ChannelName("x"), string(expected)).SetErr(errors.New("redis error"))

	err = b.Publish(context.Background(), event)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish event")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewClient_BadURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	_, err := NewClient(context.Background(), "not a url", logger)
	assert.Error(t, err)
}

func TestEvent_JSONShape(t *testing.T) {
	data, err := json.Marshal(game.Event{Type: game.EventTypeRoomEntered, SessionID: "s"})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "room.entered", raw["type"])
	assert.Equal(t, "s", raw["session_id"])
	assert.Contains(t, raw, "state")
}
