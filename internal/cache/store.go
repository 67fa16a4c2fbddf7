// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"strconv"
	"time"
)

// DefaultTTL is how long a cached response lives when no TTL is configured.
const DefaultTTL = 5 * time.Minute

// Store caches rendered response bodies by key. Backends never return
// errors: a failing cache degrades to a miss and is logged.
//
// Entries belong to a generation. InvalidateAll starts a new one, so a
// body computed before an invalidation and stored after it is filed under
// the old generation and never read again. Callers read Generation before
// loading the data and pass that value to Get and Set.
type Store interface {
	// Generation returns the current generation. ok is false when the
	// backend is unreachable and the cache should be bypassed.
	Generation(ctx context.Context) (gen uint64, ok bool)
	Get(ctx context.Context, gen uint64, key string) ([]byte, bool)
	Set(ctx context.Context, gen uint64, key string, body []byte)
	InvalidateAll(ctx context.Context)
}

func genKey(gen uint64, key string) string {
	return strconv.FormatUint(gen, 10) + ":" + key
}
