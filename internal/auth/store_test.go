package auth

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/dscnitrourkela/project-nutella/config"
	"github.com/dscnitrourkela/project-nutella/internal/models"
	"github.com/dscnitrourkela/project-nutella/pkg/cache"
	"github.com/dscnitrourkela/project-nutella/pkg/identity"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	host, port, err := net.SplitHostPort(mr.Addr())
	if err != nil {
		t.Fatalf("failed to split miniredis address: %v", err)
	}

	client, err := cache.NewRedisClient(&config.RedisConfig{Host: host, Port: port})
	if err != nil {
		t.Fatalf("failed to connect cache client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, ttl), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	session, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if session.Auth != nil {
		t.Fatalf("fresh session carries auth: %+v", session.Auth)
	}

	session.Auth = &Auth{
		UID:   "firebase-uid",
		MDBID: "64f000000000000000000001",
		JWT:   "token-a",
		Exp:   time.Now().Add(time.Hour).Unix(),
		Role:  models.RoleUser,
		Claims: &identity.Claims{
			UID:  "firebase-uid",
			Role: models.RoleUser,
		},
	}
	if err := session.Save(ctx); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get() after save error = %v", err)
	}
	if reloaded.Auth == nil {
		t.Fatal("auth payload lost")
	}
	if reloaded.Auth.UID != "firebase-uid" || reloaded.Auth.JWT != "token-a" {
		t.Errorf("auth payload = %+v", reloaded.Auth)
	}
	if reloaded.Auth.Claims == nil || reloaded.Auth.Claims.UID != "firebase-uid" {
		t.Errorf("cached claims lost: %+v", reloaded.Auth.Claims)
	}
}

func TestRedisStoreDestroy(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	session, _ := store.Get(ctx, "s1")
	session.Auth = &Auth{JWT: "token-a", Exp: time.Now().Add(time.Hour).Unix()}
	if err := session.Save(ctx); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := session.Destroy(ctx); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}

	reloaded, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get() after destroy error = %v", err)
	}
	if reloaded.Auth != nil {
		t.Errorf("session survived destroy: %+v", reloaded.Auth)
	}
}

func TestRedisStoreTTL(t *testing.T) {
	store, mr := newTestRedisStore(t, time.Minute)
	ctx := context.Background()

	session, _ := store.Get(ctx, "s1")
	session.Auth = &Auth{JWT: "token-a", Exp: time.Now().Add(time.Hour).Unix()}
	if err := session.Save(ctx); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	mr.FastForward(2 * time.Minute)

	reloaded, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get() after expiry error = %v", err)
	}
	if reloaded.Auth != nil {
		t.Errorf("session survived TTL: %+v", reloaded.Auth)
	}
}
