// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is an in-process response cache for single-instance servers.
type MemoryStore struct {
	c   *gocache.Cache
	gen atomic.Uint64
}

// NewMemoryStore creates an in-process cache. Expired entries are purged
// every two TTLs.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{c: gocache.New(ttl, 2*ttl)}
}

func (ms *MemoryStore) Generation(context.Context) (uint64, bool) {
	return ms.gen.Load(), true
}

func (ms *MemoryStore) Get(_ context.Context, gen uint64, key string) ([]byte, bool) {
	v, ok := ms.c.Get(genKey(gen, key))
	if !ok {
		return nil, false
	}
	body, ok := v.([]byte)
	return body, ok
}

// Set drops bodies from an old generation instead of storing them.
func (ms *MemoryStore) Set(_ context.Context, gen uint64, key string, body []byte) {
	if gen != ms.gen.Load() {
		return
	}
	ms.c.Set(genKey(gen, key), body, gocache.DefaultExpiration)
}

func (ms *MemoryStore) InvalidateAll(context.Context) {
	gen := ms.gen.Add(1)
	n := ms.c.ItemCount()
	ms.c.Flush()
	slog.Debug("memory cache cleared", "deleted", n, "generation", gen)
}
