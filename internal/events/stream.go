// Package events moves match notifications through a Redis stream and
// fans them out to per-company pub/sub channels.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yoockh/orbitmatch/internal/models"
)

const (
	DefaultStream = "match:events"
	streamMaxLen  = 10000
	payloadField  = "payload"
)

type Publisher interface {
	Publish(ctx context.Context, n *models.MatchNotification) error
}

// Channel is the pub/sub channel carrying a company's match feed.
func Channel(companyID string) string {
	return "company:" + companyID + ":matches"
}

// RedisStream appends notifications to a capped stream.
type RedisStream struct {
	rdb    *redis.Client
	stream string
}

func NewRedisStream(rdb *redis.Client, stream string) *RedisStream {
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisStream{rdb: rdb, stream: stream}
}

func (s *RedisStream) Stream() string { return s.stream }

func (s *RedisStream) Publish(ctx context.Context, n *models.MatchNotification) error {
	if n.CompanyID == "" {
		return errors.New("notification without company_id")
	}
	if n.At.IsZero() {
		n.At = time.Now().UTC()
	}
	b, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return s.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]any{
			"company_id": n.CompanyID,
			payloadField: string(b),
		},
	}).Err()
}

// Decode reads a notification back from a stream message.
func Decode(msg redis.XMessage) (*models.MatchNotification, error) {
	raw, _ := msg.Values[payloadField].(string)
	if raw == "" {
		return nil, errors.New("stream message without payload")
	}
	var n models.MatchNotification
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return nil, err
	}
	if n.CompanyID == "" {
		return nil, errors.New("notification without company_id")
	}
	return &n, nil
}

// Noop drops notifications. Used when Redis streaming is disabled.
type Noop struct{}

func (Noop) Publish(context.Context, *models.MatchNotification) error { return nil }
