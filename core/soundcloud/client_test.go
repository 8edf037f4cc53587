package soundcloud

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"scpod/config"
	"scpod/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trackJSON = `{
	"id": 101,
	"kind": "track",
	"title": "First Track",
	"description": "a song",
	"created_at": "2020-01-01T00:00:00Z",
	"duration": 245000,
	"permalink_url": "https://soundcloud.com/bob/first-track",
	"artwork_url": "https://i1.sndcdn.com/artworks-101.jpg",
	"user": {"id": 2, "username": "Bob", "permalink": "bob"},
	"media": {"transcodings": [
		{"url": "https://api-v2.soundcloud.com/media/101/hls", "format": {"protocol": "hls", "mime_type": "audio/mpegurl"}},
		{"url": "https://api-v2.soundcloud.com/media/101/progressive", "format": {"protocol": "progressive", "mime_type": "audio/mpeg"}}
	]}
}`

func newTestClient(t *testing.T) (*Client, *http.ServeMux) {
	t.Helper()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		SoundCloudAPIURL:   srv.URL,
		SoundCloudClientID: "test-client",
	}
	return NewClient(cfg), mux
}

func serveResolve(mux *http.ServeMux, t *testing.T, wantURL, body string) {
	mux.HandleFunc("/resolve", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-client", r.URL.Query().Get("client_id"))
		if r.URL.Query().Get("url") != wantURL {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	})
}

func TestResolveUser(t *testing.T) {
	client, mux := newTestClient(t)
	serveResolve(mux, t, "https://soundcloud.com/alice",
		`{"id": 1, "kind": "user", "username": "Alice", "permalink": "alice",
		  "permalink_url": "https://soundcloud.com/alice",
		  "avatar_url": "https://i1.sndcdn.com/avatars-1.jpg",
		  "description": "hi"}`)

	user, err := client.ResolveUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "Alice", user.DisplayName)
}

func TestResolveUserNotFound(t *testing.T) {
	client, mux := newTestClient(t)
	serveResolve(mux, t, "https://soundcloud.com/alice", `{}`)

	_, err := client.ResolveUser(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveUserRejectsNonUserResource(t *testing.T) {
	client, mux := newTestClient(t)
	serveResolve(mux, t, "https://soundcloud.com/alice", `{"id": 9, "kind": "playlist"}`)

	_, err := client.ResolveUser(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchTracks(t *testing.T) {
	client, mux := newTestClient(t)
	serveResolve(mux, t, "https://soundcloud.com/alice",
		`{"id": 1, "kind": "user", "username": "Alice", "permalink": "alice",
		  "permalink_url": "https://soundcloud.com/alice"}`)
	mux.HandleFunc("/users/1/tracks", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"collection": [%s]}`, trackJSON)
	})

	fc := model.FeedContext{Username: "alice", Type: model.FeedTracks}
	channel, tracks, err := client.Fetch(context.Background(), fc)
	require.NoError(t, err)

	assert.Equal(t, "Alice", channel.Title)
	assert.Equal(t, "SoundCloud channel podcast feed", channel.Description)

	require.Len(t, tracks, 1)
	track := tracks[0]
	assert.Equal(t, "101", track.ID)
	assert.Equal(t, "First Track", track.Title)
	assert.Equal(t, "Bob", track.Author)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), track.PublishedAt)
	assert.Equal(t, 245, track.Duration)
	assert.Equal(t, "https://api-v2.soundcloud.com/media/101/progressive?client_id=test-client", track.MediaURL)
}

func TestFetchLikesUnwrapsTracksAndSkipsPlaylistLikes(t *testing.T) {
	client, mux := newTestClient(t)
	serveResolve(mux, t, "https://soundcloud.com/alice",
		`{"id": 1, "kind": "user", "username": "Alice", "permalink": "alice",
		  "permalink_url": "https://soundcloud.com/alice"}`)
	mux.HandleFunc("/users/1/likes", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"collection": [
			{"created_at": "2026-01-01T00:00:00Z", "track": %s},
			{"created_at": "2026-01-02T00:00:00Z", "track": null}
		]}`, trackJSON)
	})

	fc := model.FeedContext{Username: "alice", Type: model.FeedLikes}
	channel, tracks, err := client.Fetch(context.Background(), fc)
	require.NoError(t, err)

	assert.Equal(t, "Alice (likes)", channel.Title)
	require.Len(t, tracks, 1)
	// The track keeps its own original publication time; first-seen
	// resolution happens downstream.
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), tracks[0].PublishedAt)
}

func TestFetchReposts(t *testing.T) {
	client, mux := newTestClient(t)
	serveResolve(mux, t, "https://soundcloud.com/alice",
		`{"id": 1, "kind": "user", "username": "Alice", "permalink": "alice",
		  "permalink_url": "https://soundcloud.com/alice"}`)
	mux.HandleFunc("/stream/users/1/reposts", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"collection": [{"type": "track-repost", "track": %s}]}`, trackJSON)
	})

	fc := model.FeedContext{Username: "alice", Type: model.FeedReposts}
	channel, tracks, err := client.Fetch(context.Background(), fc)
	require.NoError(t, err)

	assert.Equal(t, "Alice (reposts)", channel.Title)
	assert.Len(t, tracks, 1)
}

func TestFetchPlaylist(t *testing.T) {
	client, mux := newTestClient(t)
	serveResolve(mux, t, "https://soundcloud.com/alice/sets/summer-mix",
		fmt.Sprintf(`{"id": 7, "kind": "playlist", "title": "Summer Mix",
			"permalink_url": "https://soundcloud.com/alice/sets/summer-mix",
			"user": {"id": 1, "username": "Alice", "permalink": "alice"},
			"tracks": [%s]}`, trackJSON))

	fc := model.FeedContext{Username: "alice", Type: model.FeedPlaylist, PlaylistSlug: "summer-mix"}
	channel, tracks, err := client.Fetch(context.Background(), fc)
	require.NoError(t, err)

	assert.Equal(t, "Summer Mix", channel.Title)
	assert.Equal(t, "Alice", channel.Author)
	assert.Len(t, tracks, 1)
}

func TestFetchUpstreamError(t *testing.T) {
	client, mux := newTestClient(t)
	mux.HandleFunc("/resolve", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	fc := model.FeedContext{Username: "alice", Type: model.FeedTracks}
	_, _, err := client.Fetch(context.Background(), fc)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestStreamURLFallsBackToEmpty(t *testing.T) {
	client, _ := newTestClient(t)
	track := client.normalizeTrack(apiTrack{ID: 5, Title: "HLS only"})
	assert.Empty(t, track.MediaURL)
}
