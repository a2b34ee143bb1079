package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestHelper(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheHelper(client, "user:"), mr
}

type cachedProfile struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

func TestCacheHelperSetGet(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	want := cachedProfile{ID: "u1", FullName: "Alice Nguyen"}
	if err := helper.Set(ctx, "u1", want, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got cachedProfile
	if err := helper.Get(ctx, "u1", &got); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestCacheHelperGetMiss(t *testing.T) {
	helper, _ := newTestHelper(t)

	var got cachedProfile
	err := helper.Get(context.Background(), "missing", &got)
	if !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Get() error = %v, want ErrCacheNotFound", err)
	}
}

func TestCacheHelperExpiry(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	if err := helper.Set(ctx, "u1", cachedProfile{ID: "u1"}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	mr.FastForward(2 * time.Minute)

	var got cachedProfile
	if err := helper.Get(ctx, "u1", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Get() after TTL error = %v, want ErrCacheNotFound", err)
	}
}

func TestCacheHelperDelete(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	_ = helper.Set(ctx, "u1", cachedProfile{ID: "u1"}, time.Minute)
	_ = helper.Set(ctx, "u2", cachedProfile{ID: "u2"}, time.Minute)

	if err := helper.Delete(ctx, "u1", "u2"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var got cachedProfile
	if err := helper.Get(ctx, "u1", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrCacheNotFound", err)
	}
}

func TestCacheHelperInvalidatePattern(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	_ = helper.Set(ctx, "profile:u1", cachedProfile{ID: "u1"}, time.Minute)
	_ = helper.Set(ctx, "profile:u2", cachedProfile{ID: "u2"}, time.Minute)
	_ = helper.Set(ctx, "roster:c1", cachedProfile{ID: "c1"}, time.Minute)

	if err := helper.InvalidatePattern(ctx, "profile:*"); err != nil {
		t.Fatalf("InvalidatePattern() error = %v", err)
	}

	var got cachedProfile
	if err := helper.Get(ctx, "profile:u1", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("profile:u1 survived invalidation: %v", err)
	}
	if err := helper.Get(ctx, "roster:c1", &got); err != nil {
		t.Errorf("roster:c1 evicted by unrelated pattern: %v", err)
	}
	if mr.Exists("user:profile:u1") {
		t.Error("raw key user:profile:u1 still present")
	}
}

func TestCacheHelperNilClientDegradesGracefully(t *testing.T) {
	helper := NewCacheHelper(nil, "user:")
	ctx := context.Background()

	if err := helper.Set(ctx, "u1", cachedProfile{ID: "u1"}, time.Minute); err != nil {
		t.Errorf("Set() with nil client error = %v, want nil", err)
	}
	if err := helper.Delete(ctx, "u1"); err != nil {
		t.Errorf("Delete() with nil client error = %v, want nil", err)
	}
	var got cachedProfile
	if err := helper.Get(ctx, "u1", &got); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("Get() with nil client error = %v, want ErrCacheNotAvailable", err)
	}
}
