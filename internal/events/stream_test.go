package events

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/yoockh/orbitmatch/internal/models"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestRedisStream_PublishAndDecode(t *testing.T) {
	t.Parallel()

	rdb := newTestRedis(t)
	s := NewRedisStream(rdb, "")
	ctx := context.Background()

	in := &models.MatchNotification{
		Type:             models.NotificationStatusChanged,
		CompanyID:        "co1",
		RecommendationID: "rec1",
		Status:           models.StatusInvited,
	}
	if err := s.Publish(ctx, in); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if in.At.IsZero() {
		t.Error("Publish should stamp At")
	}

	msgs, err := rdb.XRange(ctx, DefaultStream, "-", "+").Result()
	if err != nil {
		t.Fatalf("XRange: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("stream length = %d, want 1", len(msgs))
	}

	out, err := Decode(msgs[0])
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.CompanyID != "co1" || out.Status != models.StatusInvited || out.RecommendationID != "rec1" {
		t.Errorf("decoded %+v", out)
	}
}

func TestRedisStream_RejectsMissingCompany(t *testing.T) {
	t.Parallel()

	s := NewRedisStream(newTestRedis(t), "test:stream")
	if err := s.Publish(context.Background(), &models.MatchNotification{Type: models.NotificationMatchGenerated}); err == nil {
		t.Fatal("expected error without company id")
	}
}

func TestDecode_BadMessages(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		values map[string]any
	}{
		{"no payload", map[string]any{"company_id": "co1"}},
		{"not json", map[string]any{payloadField: "{"}},
		{"no company", map[string]any{payloadField: `{"type":"match_generated"}`}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Decode(redis.XMessage{ID: "1-0", Values: tc.values}); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestChannel(t *testing.T) {
	t.Parallel()
	if got := Channel("co1"); got != "company:co1:matches" {
		t.Errorf("Channel = %q", got)
	}
}
