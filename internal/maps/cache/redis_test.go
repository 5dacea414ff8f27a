package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"map-editor/internal/maps/models"
)

func TestKeys(t *testing.T) {
	if got := BeaconKey("B1"); got != "map:beacon:B1" {
		t.Fatalf("BeaconKey = %q", got)
	}
}

func TestUnreachableRedisIsMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewRedis(client, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	c.Set(ctx, BeaconKey("B1"), &models.Map{ID: "m1"})
	if _, ok := c.Get(ctx, BeaconKey("B1")); ok {
		t.Fatal("expected miss from unreachable redis")
	}
}

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	c.Set(context.Background(), "k", &models.Map{ID: "m1"})
	if _, ok := c.Get(context.Background(), "k"); ok {
		t.Fatal("noop cache returned a hit")
	}
}
