package model

import "time"

// Track is one SoundCloud track normalized from the API. The core treats
// everything except ID and PublishedAt as opaque pass-through metadata for
// the serializer.
type Track struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	PublishedAt time.Time `json:"publishedAt"` // original publication time, UTC
	Duration    int       `json:"duration"`    // duration in seconds
	MediaURL    string    `json:"mediaUrl"`    // progressive MP3 stream URL
	PageURL     string    `json:"pageUrl"`
	ArtworkURL  string    `json:"artworkUrl"`
}

// User is the SoundCloud account a feed belongs to.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	PageURL     string `json:"pageUrl"`
	AvatarURL   string `json:"avatarUrl"`
	Description string `json:"description"`
}
