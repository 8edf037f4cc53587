package model

import "time"

// FeedType tags which of the four feed flavors a request asked for.
type FeedType string

const (
	FeedTracks   FeedType = "tracks"
	FeedLikes    FeedType = "likes"
	FeedReposts  FeedType = "reposts"
	FeedPlaylist FeedType = "playlist"
)

// FeedContext identifies one requested feed. Derived once per request by
// the classifier and immutable afterwards.
type FeedContext struct {
	Username     string
	Type         FeedType
	PlaylistSlug string
}

// Channel carries the feed-level metadata rendered into the RSS channel.
type Channel struct {
	Title       string
	Link        string
	Author      string
	Description string
	ImageURL    string
}

// Item is a track annotated with its resolved publication time. For tracks
// feeds EffectiveTimestamp is always the original publication time; for
// likes, reposts and playlists it is the first-seen time.
type Item struct {
	Track
	EffectiveTimestamp time.Time
}
