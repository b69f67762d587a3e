package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestCacheHelper_SetGet(t *testing.T) {
	client := newTestClient(t)
	helper := NewCacheHelper(client, RoleCacheConfig.Prefix)
	ctx := context.Background()

	type payload struct {
		Role string `json:"role"`
	}

	if err := helper.Set(ctx, "uid:u1", payload{Role: "mentor"}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got payload
	if err := helper.Get(ctx, "uid:u1", &got); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Role != "mentor" {
		t.Errorf("cached role = %s, want mentor", got.Role)
	}

	// Keys are namespaced by the helper's prefix.
	if n, _ := client.Exists(ctx, "role:uid:u1").Result(); n != 1 {
		t.Error("expected the key under the role: prefix")
	}
}

func TestCacheHelper_GetMiss(t *testing.T) {
	helper := NewCacheHelper(newTestClient(t), ExistsCacheConfig.Prefix)

	var dest bool
	if err := helper.Get(context.Background(), "admin:u-missing", &dest); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Get() on a miss error = %v, want ErrCacheNotFound", err)
	}
}

func TestCacheHelper_NilClientDegrades(t *testing.T) {
	helper := NewCacheHelper(nil, "")
	ctx := context.Background()

	if err := helper.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Errorf("Set() without redis error = %v, want nil", err)
	}

	var dest string
	if err := helper.Get(ctx, "k", &dest); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("Get() without redis error = %v, want ErrCacheNotAvailable", err)
	}
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	client := newTestClient(t)
	helper := NewCacheHelper(client, StatsCacheConfig.Prefix)
	ctx := context.Background()

	t.Run("miss runs the fetch", func(t *testing.T) {
		calls := 0
		var got int
		err := helper.CacheOrExecute(ctx, "summary", &got, time.Minute, func() (interface{}, error) {
			calls++
			return 42, nil
		})
		if err != nil {
			t.Fatalf("CacheOrExecute() error = %v", err)
		}
		if calls != 1 || got != 42 {
			t.Errorf("got %d after %d calls, want 42 after 1", got, calls)
		}
	})

	t.Run("warm cache skips the fetch", func(t *testing.T) {
		if err := helper.Set(ctx, "warm", 7, time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		var got int
		err := helper.CacheOrExecute(ctx, "warm", &got, time.Minute, func() (interface{}, error) {
			t.Error("fetch should not run on a warm cache")
			return 0, nil
		})
		if err != nil {
			t.Fatalf("CacheOrExecute() error = %v", err)
		}
		if got != 7 {
			t.Errorf("got %d, want the cached 7", got)
		}
	})
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	client := newTestClient(t)
	helper := NewCacheHelper(client, ChatCacheConfig.Prefix)
	ctx := context.Background()

	for _, key := range []string{"student:s1:list", "student:s1:page:2", "student:s2:list"} {
		if err := helper.SetString(ctx, key, "x", time.Minute); err != nil {
			t.Fatalf("SetString(%s) error = %v", key, err)
		}
	}

	if err := helper.InvalidatePattern(ctx, "student:s1:*"); err != nil {
		t.Fatalf("InvalidatePattern() error = %v", err)
	}

	if _, err := helper.GetString(ctx, "student:s1:list"); !errors.Is(err, ErrCacheNotFound) {
		t.Error("s1 listing should be invalidated")
	}
	if _, err := helper.GetString(ctx, "student:s2:list"); err != nil {
		t.Errorf("s2 listing should survive, got error %v", err)
	}
}

func TestInvalidateRoleCache(t *testing.T) {
	client := newTestClient(t)
	cm := NewCacheManager(client)
	ctx := context.Background()

	if err := cm.Role.SetString(ctx, "uid:u1", "mentor", time.Minute); err != nil {
		t.Fatalf("SetString() error = %v", err)
	}
	if err := cm.Exists.SetString(ctx, "mentor:u1", "true", time.Minute); err != nil {
		t.Fatalf("SetString() error = %v", err)
	}

	InvalidateRoleCache(ctx, cm, "u1")

	if _, err := cm.Role.GetString(ctx, "uid:u1"); !errors.Is(err, ErrCacheNotFound) {
		t.Error("role resolution for u1 should be invalidated")
	}
	if _, err := cm.Exists.GetString(ctx, "mentor:u1"); !errors.Is(err, ErrCacheNotFound) {
		t.Error("existence probe for u1 should be invalidated")
	}
}
