package cache

import (
	"context"
	"time"
)

// MatchMemo remembers match responses under two keys: the caller's request id
// and a fingerprint of the request content. A caller-supplied request id is
// only ever answered from its own entry, so a new id with familiar content is
// recomputed and stored under that id.
type MatchMemo struct {
	c   Cache
	ttl time.Duration
}

func NewMatchMemo(c Cache, ttl time.Duration) *MatchMemo {
	return &MatchMemo{c: c, ttl: ttl}
}

func RequestKey(requestID string) string {
	return Key("match", "req", requestID)
}

// ContentKey keys a canonical request payload that carries no request id.
func ContentKey(content []byte) string {
	return Key("match", "resp", Fingerprint(content))
}

// Lookup decodes a remembered response into dst. With a request id only that
// id's entry is consulted, otherwise the content entry is.
func (m *MatchMemo) Lookup(ctx context.Context, requestID string, content []byte, dst any) (bool, error) {
	if m == nil || m.c == nil {
		return false, nil
	}
	key := ContentKey(content)
	if requestID != "" {
		key = RequestKey(requestID)
	}
	return m.c.GetJSON(ctx, key, dst)
}

// Store writes resp under the content key and, when requestID is set, under
// the request key too.
func (m *MatchMemo) Store(ctx context.Context, requestID string, content []byte, resp any) error {
	if m == nil || m.c == nil {
		return nil
	}
	keys := []string{ContentKey(content)}
	if requestID != "" {
		keys = append(keys, RequestKey(requestID))
	}
	if ms, ok := m.c.(multiSetter); ok {
		return ms.SetJSONMany(ctx, keys, resp, m.ttl)
	}
	for _, k := range keys {
		if err := m.c.SetJSON(ctx, k, resp, m.ttl); err != nil {
			return err
		}
	}
	return nil
}

// multiSetter writes one value under several keys in a single round trip.
type multiSetter interface {
	SetJSONMany(ctx context.Context, keys []string, val any, ttl time.Duration) error
}
