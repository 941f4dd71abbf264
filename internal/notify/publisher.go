package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/job-portal/internal/domain"
)

// Message is the JSON document pushed to subscribers.
type Message struct {
	ID          string                  `json:"id"`
	Title       string                  `json:"title"`
	Message     string                  `json:"message"`
	Type        domain.NotificationType `json:"type"`
	RelatedID   *string                 `json:"related_id,omitempty"`
	RelatedType *string                 `json:"related_type,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
}

// Publisher pushes a persisted notification to the recipient's realtime channel.
type Publisher interface {
	Publish(ctx context.Context, n *domain.Notification) error
}

// RedisPublisher publishes on "<prefix>:<userID>".
type RedisPublisher struct {
	client *redis.Client
	prefix string
}

// NewRedisPublisher builds a publisher on the given client.
func NewRedisPublisher(client *redis.Client, prefix string) *RedisPublisher {
	if prefix == "" {
		prefix = "notifications"
	}
	return &RedisPublisher{client: client, prefix: prefix}
}

// Channel returns the channel name for a user.
func (p *RedisPublisher) Channel(userID string) string {
	return fmt.Sprintf("%s:%s", p.prefix, userID)
}

// Publish implements Publisher.
func (p *RedisPublisher) Publish(ctx context.Context, n *domain.Notification) error {
	payload, err := json.Marshal(Message{
		ID:          n.ID,
		Title:       n.Title,
		Message:     n.Message,
		Type:        n.Type,
		RelatedID:   n.RelatedID,
		RelatedType: n.RelatedType,
		CreatedAt:   n.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := p.client.Publish(ctx, p.Channel(n.UserID), payload).Err(); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

// NoopPublisher drops realtime pushes.
type NoopPublisher struct{}

// Publish implements Publisher.
func (NoopPublisher) Publish(context.Context, *domain.Notification) error { return nil }
