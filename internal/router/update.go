package router

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// UpdateStrategy decides how often a component is redrawn.
type UpdateStrategy int

const (
	// Full redraws on every call.
	Full UpdateStrategy = iota

	// Cached redraws at most once per CachedWindow.
	Cached

	// Partial redraws only when the data changed.
	Partial

	// Lazy redraws at most once per LazyWindow.
	Lazy
)

const (
	CachedWindow = 60 * time.Second
	LazyWindow   = time.Second
)

func (s UpdateStrategy) String() string {
	switch s {
	case Full:
		return "full"
	case Cached:
		return "cached"
	case Partial:
		return "partial"
	case Lazy:
		return "lazy"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

type cacheEntry struct {
	hash uint64
	at   time.Time
}

// ShouldUpdate reports whether the component on the current screen needs a
// redraw under the strategy, and records the redraw when it does. It only
// throttles rendering; nothing depends on it for correctness.
func (r *Router) ShouldUpdate(componentID string, data any, strategy UpdateStrategy) bool {
	if strategy == Full {
		return true
	}

	key := cacheKey(r.current, componentID)
	now := r.now()
	entry, seen := r.cache[key]

	switch strategy {
	case Cached:
		if seen && now.Sub(entry.at) < CachedWindow {
			return false
		}
	case Partial:
		if seen && entry.hash == hashData(data) {
			return false
		}
	case Lazy:
		if seen && now.Sub(entry.at) < LazyWindow {
			return false
		}
	}

	r.cache[key] = cacheEntry{hash: hashData(data), at: now}
	return true
}

// ClearCache drops the update cache of the given screens, or all of it.
func (r *Router) ClearCache(ids ...ScreenID) {
	if len(ids) == 0 {
		clear(r.cache)
		return
	}
	for key := range r.cache {
		for _, id := range ids {
			if strings.HasPrefix(key, string(id)+":") {
				delete(r.cache, key)
			}
		}
	}
}

func cacheKey(screen ScreenID, componentID string) string {
	return string(screen) + ":" + componentID
}

// hashData hashes the JSON form of data, whose map keys encoding/json sorts.
// Values that cannot be encoded fall back to their printed form.
func hashData(data any) uint64 {
	b, err := json.Marshal(data)
	if err != nil {
		return xxhash.Sum64String(fmt.Sprintf("%#v", data))
	}
	return xxhash.Sum64(b)
}
