// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "time"

// SetClock replaces the cache clock in tests.
func (cache *MemoryCache) SetClock(now func() time.Time) {
	cache.now = now
}
