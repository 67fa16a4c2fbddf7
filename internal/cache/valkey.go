// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cache provides the public API response cache. Two backends share
// the Store interface: Valkey (Redis-compatible) for multi-instance
// deployments and an in-process map for a single server or tests.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces cached bodies so InvalidateAll never touches keys
// that belong to someone else on a shared Valkey. Entries are stored as
// keyPrefix + "<generation>:" + key.
const keyPrefix = "portfolio:api:"

// generationKey holds the INCR'd cache generation. It sits outside
// keyPrefix so the invalidation scan leaves it alone.
const generationKey = "portfolio:cache-generation"

// unlinkBatch is how many keys InvalidateAll hands to one UNLINK.
const unlinkBatch = 200

// ConnectValkey creates a client for addr and pings it within 5 seconds.
func ConnectValkey(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping %s: %w", addr, err)
	}
	return client, nil
}

// ValkeyStore keeps response bodies in Valkey with a fixed TTL.
type ValkeyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewValkeyStore wraps client. A zero ttl means DefaultTTL.
func NewValkeyStore(client *redis.Client, ttl time.Duration) *ValkeyStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ValkeyStore{client: client, ttl: ttl}
}

func (vs *ValkeyStore) Generation(ctx context.Context) (uint64, bool) {
	gen, err := vs.client.Get(ctx, generationKey).Uint64()
	switch {
	case err == redis.Nil:
		return 0, true
	case err != nil:
		slog.Warn("response cache generation read failed", "error", err)
		return 0, false
	}
	return gen, true
}

func (vs *ValkeyStore) Get(ctx context.Context, gen uint64, key string) ([]byte, bool) {
	body, err := vs.client.Get(ctx, keyPrefix+genKey(gen, key)).Bytes()
	switch {
	case err == redis.Nil:
		return nil, false
	case err != nil:
		slog.Warn("response cache get failed", "key", key, "error", err)
		return nil, false
	}
	return body, true
}

func (vs *ValkeyStore) Set(ctx context.Context, gen uint64, key string, body []byte) {
	if err := vs.client.Set(ctx, keyPrefix+genKey(gen, key), body, vs.ttl).Err(); err != nil {
		slog.Warn("response cache set failed", "key", key, "error", err)
	}
}

// InvalidateAll bumps the generation, then unlinks the stored bodies to
// free memory. A body stored under an older generation while the scan runs
// is unreachable and lives until its TTL.
func (vs *ValkeyStore) InvalidateAll(ctx context.Context) {
	if err := vs.client.Incr(ctx, generationKey).Err(); err != nil {
		slog.Warn("response cache generation bump failed", "error", err)
	}

	iter := vs.client.Scan(ctx, 0, keyPrefix+"*", unlinkBatch).Iterator()

	batch := make([]string, 0, unlinkBatch)
	removed := 0
	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := vs.client.Unlink(ctx, batch...).Err(); err != nil {
			slog.Warn("response cache unlink failed", "keys", len(batch), "error", err)
		} else {
			removed += len(batch)
		}
		batch = batch[:0]
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == unlinkBatch {
			flush()
		}
	}
	flush()

	if err := iter.Err(); err != nil {
		slog.Warn("response cache scan failed", "error", err)
	}
	slog.Debug("response cache invalidated", "removed", removed)
}
