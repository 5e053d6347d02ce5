package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/projeval-api/internal/observability"
)

// ChangeEvent announces a committed mutation so that consumers can refresh
// their copies of the affected tables.
type ChangeEvent struct {
	Entity     string    `json:"entity"`
	Operation  string    `json:"operation"`
	Key        uint      `json:"key"`
	OccurredAt time.Time `json:"occurred_at"`
	Source     string    `json:"source"`
}

// ChangePublisher fans change events out to the configured transports.
type ChangePublisher interface {
	Publish(ctx context.Context, event ChangeEvent) error
}

type changePublisher struct {
	redis   *redis.Client
	nats    *nats.Conn
	channel string
	subject string
	source  string
	now     func() time.Time
	logger  zerolog.Logger
}

// NewChangePublisher publishes to a redis channel and to the nats subject
// derived from the same name. Either transport may be nil.
func NewChangePublisher(redisClient *redis.Client, natsConn *nats.Conn, channel string, logger zerolog.Logger) ChangePublisher {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		channel = "projeval:changes"
	}
	return &changePublisher{
		redis:   redisClient,
		nats:    natsConn,
		channel: channel,
		subject: SubjectForChannel(channel),
		source:  uuid.NewString(),
		now:     time.Now,
		logger:  logger.With().Str("component", "change_publisher").Logger(),
	}
}

// SubjectForChannel converts a redis channel name into a nats subject.
func SubjectForChannel(channel string) string {
	return strings.NewReplacer(":", ".", " ", "_").Replace(channel)
}

func (p *changePublisher) Publish(ctx context.Context, event ChangeEvent) error {
	if p.redis == nil && p.nats == nil {
		return nil
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = p.now().UTC()
	}
	if event.Source == "" {
		event.Source = p.source
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode change event: %w", err)
	}

	var errs []error
	if p.redis != nil {
		if err := p.redis.Publish(ctx, p.channel, payload).Err(); err != nil {
			observability.ChangeEvents().WithLabelValues("redis", "error").Inc()
			errs = append(errs, fmt.Errorf("redis publish: %w", err))
		} else {
			observability.ChangeEvents().WithLabelValues("redis", "ok").Inc()
		}
	}
	if p.nats != nil {
		if err := p.nats.Publish(p.subject, payload); err != nil {
			observability.ChangeEvents().WithLabelValues("nats", "error").Inc()
			errs = append(errs, fmt.Errorf("nats publish: %w", err))
		} else {
			observability.ChangeEvents().WithLabelValues("nats", "ok").Inc()
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	p.logger.Debug().
		Str("entity", event.Entity).
		Str("operation", event.Operation).
		Uint("key", event.Key).
		Msg("change event published")
	return nil
}
