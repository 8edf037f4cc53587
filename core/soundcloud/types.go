package soundcloud

// Wire shapes of the SoundCloud API v2 responses, trimmed to the fields
// this service reads.

type apiUser struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Permalink    string `json:"permalink"`
	PermalinkURL string `json:"permalink_url"`
	AvatarURL    string `json:"avatar_url"`
	Description  string `json:"description"`
	Kind         string `json:"kind"`
}

type apiTranscoding struct {
	URL    string `json:"url"`
	Format struct {
		Protocol string `json:"protocol"`
		MimeType string `json:"mime_type"`
	} `json:"format"`
}

type apiTrack struct {
	ID           int64   `json:"id"`
	Kind         string  `json:"kind"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	CreatedAt    string  `json:"created_at"`
	Duration     int64   `json:"duration"` // milliseconds
	PermalinkURL string  `json:"permalink_url"`
	ArtworkURL   string  `json:"artwork_url"`
	User         apiUser `json:"user"`
	Media        struct {
		Transcodings []apiTranscoding `json:"transcodings"`
	} `json:"media"`
}

// Likes wrap the track; stream (repost) items do the same under a
// different envelope.
type apiLike struct {
	CreatedAt string    `json:"created_at"`
	Track     *apiTrack `json:"track"`
}

type apiStreamItem struct {
	Type  string    `json:"type"`
	Track *apiTrack `json:"track"`
}

type apiTrackPage struct {
	Collection []apiTrack `json:"collection"`
	NextHref   string     `json:"next_href"`
}

type apiLikePage struct {
	Collection []apiLike `json:"collection"`
	NextHref   string    `json:"next_href"`
}

type apiStreamPage struct {
	Collection []apiStreamItem `json:"collection"`
	NextHref   string          `json:"next_href"`
}

type apiPlaylist struct {
	ID           int64      `json:"id"`
	Kind         string     `json:"kind"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	PermalinkURL string     `json:"permalink_url"`
	ArtworkURL   string     `json:"artwork_url"`
	User         apiUser    `json:"user"`
	Tracks       []apiTrack `json:"tracks"`
}
