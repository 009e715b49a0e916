package cache

import (
	"context"
	"testing"
	"time"

	"github.com/SamriddhiRoy/user-dashboard/internal/domain/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T, ttl time.Duration) (*StatsCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewStatsCache(rdb, ttl), mr
}

func TestStatsCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t, time.Minute)

	got, err := c.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get on empty cache: %v", err)
	}
	if got != nil {
		t.Fatalf("Get on empty cache = %+v, want nil", got)
	}

	want := &model.TodoStats{TotalTodos: 5, CompletedTodos: 2, UpcomingTodos: 3, TotalUsers: 9}
	if err := c.Set(ctx, "u1", want); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err = c.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || *got != *want {
		t.Fatalf("Get = %+v, want %+v", got, want)
	}

	if other, _ := c.Get(ctx, "u2"); other != nil {
		t.Errorf("entries leaked across users: %+v", other)
	}
}

func TestStatsCacheExpiresAndInvalidates(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t, 30*time.Second)

	stats := &model.TodoStats{TotalTodos: 1}
	if err := c.Set(ctx, "u1", stats); err != nil {
		t.Fatalf("Set: %v", err)
	}
	mr.FastForward(31 * time.Second)
	if got, _ := c.Get(ctx, "u1"); got != nil {
		t.Errorf("entry survived its TTL: %+v", got)
	}

	if err := c.Set(ctx, "u1", stats); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Invalidate(ctx, "u1"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if got, _ := c.Get(ctx, "u1"); got != nil {
		t.Errorf("entry survived Invalidate: %+v", got)
	}
}

func TestNilStatsCacheIsNoop(t *testing.T) {
	ctx := context.Background()
	c := NewStatsCache(nil, time.Minute)
	if c != nil {
		t.Fatalf("NewStatsCache(nil) = %v, want nil", c)
	}
	if err := c.Set(ctx, "u1", &model.TodoStats{}); err != nil {
		t.Errorf("Set on nil cache: %v", err)
	}
	if got, err := c.Get(ctx, "u1"); got != nil || err != nil {
		t.Errorf("Get on nil cache = %v, %v", got, err)
	}
	if err := c.Invalidate(ctx, "u1"); err != nil {
		t.Errorf("Invalidate on nil cache: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	if NewStatsCache(rdb, 0) != nil {
		t.Error("zero TTL should disable the cache")
	}
}

func TestStatsCacheReportsRedisErrors(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	mr.Close()

	if _, err := c.Get(context.Background(), "u1"); err == nil {
		t.Error("Get against a stopped server returned nil error")
	}
}
