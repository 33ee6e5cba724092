package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jwebster45206/fun-house/pkg/game"
	"github.com/redis/go-redis/v9"
)

const channelPrefix = "funhouse-events:"

// ChannelName is the pub/sub channel a session's events are published on.
func ChannelName(sessionID string) string {
	return channelPrefix + sessionID
}

// NewClient parses redisURL and checks the server answers.
func NewClient(ctx context.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Connected to Redis for event broadcasting", "addr", opt.Addr)
	return rdb, nil
}

// Broadcaster publishes game events to Redis Pub/Sub so other processes can
// follow a session.
type Broadcaster struct {
	redisClient *redis.Client
	logger      *slog.Logger
}

// Ensure Broadcaster implements game.Publisher
var _ game.Publisher = (*Broadcaster)(nil)

// NewBroadcaster creates a new event broadcaster
func NewBroadcaster(redisClient *redis.Client, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		redisClient: redisClient,
		logger:      logger,
	}
}

// Publish sends event to its session's channel.
func (b *Broadcaster) Publish(ctx context.Context, event game.Event) error {
	channel := ChannelName(event.SessionID)

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("Failed to marshal event", "error", err, "event_type", event.Type)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.redisClient.Publish(ctx, channel, string(data)).Err(); err != nil {
		b.logger.Error("Failed to publish event", "error", err, "channel", channel)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debug("Event published",
		"channel", channel,
		"event_type", event.Type,
	)
	return nil
}

// Subscription delivers decoded events from one or more session channels.
type Subscription struct {
	pubsub *redis.PubSub
	events chan game.Event
	done   chan struct{}
	once   sync.Once
	logger *slog.Logger
}

// Subscribe follows a single session, or every session when sessionID is
// empty. It returns once Redis has confirmed the subscription.
func (b *Broadcaster) Subscribe(ctx context.Context, sessionID string) (*Subscription, error) {
	var pubsub *redis.PubSub
	if sessionID == "" {
		pubsub = b.redisClient.PSubscribe(ctx, channelPrefix+"*")
	} else {
		pubsub = b.redisClient.Subscribe(ctx, ChannelName(sessionID))
	}

	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	sub := &Subscription{
		pubsub: pubsub,
		events: make(chan game.Event),
		done:   make(chan struct{}),
		logger: b.logger,
	}
	go sub.forward()

	b.logger.Debug("Subscribed to game events", "session_id", sessionID)
	return sub, nil
}

// Events is closed when the subscription ends.
func (s *Subscription) Events() <-chan game.Event {
	return s.events
}

func (s *Subscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.pubsub.Close()
	})
	return err
}

func (s *Subscription) forward() {
	defer close(s.events)

	for msg := range s.pubsub.Channel() {
		var event game.Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			s.logger.Error("Failed to unmarshal event", "error", err, "channel", msg.Channel)
			continue
		}

		select {
		case s.events <- event:
		case <-s.done:
			return
		}
	}
}
