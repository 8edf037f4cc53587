package feed

import (
	"context"
	"fmt"
	"time"

	"scpod/cache"
	"scpod/model"
)

// Resolver decides the effective publication time for each track in a
// feed. Tracks feeds always report the original publication time; likes,
// reposts and playlist feeds report the first time this service saw the
// track in that feed, persisted through the timestamp store.
type Resolver struct {
	store cache.TimestampStore
	now   func() time.Time
}

func NewResolver(store cache.TimestampStore) *Resolver {
	return &Resolver{store: store, now: time.Now}
}

// Resolve returns the effective timestamp for track within fc. Cache
// trouble never escapes: an unavailable store just means the current
// instant is used (and the write attempt is best-effort).
func (r *Resolver) Resolve(ctx context.Context, fc model.FeedContext, track model.Track) time.Time {
	if fc.Type == model.FeedTracks {
		return track.PublishedAt
	}

	key := CacheKey(fc, track.ID)
	if ts, ok := r.store.Get(ctx, key); ok {
		return ts
	}

	now := r.now().UTC()
	// Write result is deliberately ignored: this response uses now either
	// way, and a lost write only means the next request re-records.
	r.store.Set(ctx, key, now)
	return now
}

// CacheKey builds the store key for a (feed context, track) pair. Derived
// only from the context fields and the track id, so keys are stable across
// process restarts and distinct across users, feed types and slugs.
func CacheKey(fc model.FeedContext, trackID string) string {
	if fc.Type == model.FeedPlaylist {
		return fmt.Sprintf("firstseen:%s:%s:%s:%s", fc.Type, fc.Username, fc.PlaylistSlug, trackID)
	}
	return fmt.Sprintf("firstseen:%s:%s:%s", fc.Type, fc.Username, trackID)
}
