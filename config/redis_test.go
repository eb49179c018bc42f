package config

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestRedisOptions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		in       string
		wantAddr string
		wantDB   int
		wantErr  bool
	}{
		{name: "bare addr", in: "localhost:6379", wantAddr: "localhost:6379"},
		{name: "url with db", in: "redis://:secret@cache:6380/2", wantAddr: "cache:6380", wantDB: 2},
		{name: "empty", in: "", wantErr: true},
		{name: "bad url", in: "redis://cache:6379/notadb", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			opt, err := RedisOptions(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("RedisOptions(%q): %v", tc.in, err)
			}
			if opt.Addr != tc.wantAddr || opt.DB != tc.wantDB {
				t.Errorf("got addr=%q db=%d", opt.Addr, opt.DB)
			}
		})
	}
}

func TestInitRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_URI", "")
	t.Setenv("REDIS_URL", "redis://"+mr.Addr())

	if err := InitRedis(); err != nil {
		t.Fatalf("InitRedis: %v", err)
	}
	t.Cleanup(func() { _ = RedisClient.Close() })
	if RedisClient.Options().Addr != mr.Addr() {
		t.Errorf("addr = %q, want %q", RedisClient.Options().Addr, mr.Addr())
	}
}
