package soundcloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"scpod/config"
	"scpod/logger"
	"scpod/model"
)

const (
	userAgent = "scpod/1.0 (SoundCloud podcast bridge)"
	pageLimit = 50
)

// ErrNotFound marks an unknown username, playlist or track. The HTTP
// layer maps it to 404; every other fetch failure becomes a 502.
var ErrNotFound = errors.New("soundcloud: not found")

// Client talks to the public SoundCloud API v2.
type Client struct {
	baseURL    string
	clientID   string
	httpClient *http.Client
}

// NewClient creates an API client from config.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:  cfg.SoundCloudAPIURL,
		clientID: cfg.SoundCloudClientID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Fetch retrieves the channel metadata and raw track list for fc.
func (c *Client) Fetch(ctx context.Context, fc model.FeedContext) (model.Channel, []model.Track, error) {
	if fc.Type == model.FeedPlaylist {
		return c.fetchPlaylist(ctx, fc.Username, fc.PlaylistSlug)
	}

	user, err := c.ResolveUser(ctx, fc.Username)
	if err != nil {
		return model.Channel{}, nil, err
	}

	var tracks []model.Track
	switch fc.Type {
	case model.FeedTracks:
		tracks, err = c.userTracks(ctx, user.ID)
	case model.FeedLikes:
		tracks, err = c.userLikes(ctx, user.ID)
	case model.FeedReposts:
		tracks, err = c.userReposts(ctx, user.ID)
	default:
		return model.Channel{}, nil, fmt.Errorf("unsupported feed type %q", fc.Type)
	}
	if err != nil {
		return model.Channel{}, nil, err
	}

	logger.Debug("fetched feed from SoundCloud",
		logger.String("username", fc.Username),
		logger.String("feed_type", string(fc.Type)),
		logger.Int("tracks", len(tracks)),
	)
	return channelForUser(user, fc.Type), tracks, nil
}

// ResolveUser looks up a user by permalink username.
func (c *Client) ResolveUser(ctx context.Context, username string) (*model.User, error) {
	var user apiUser
	if err := c.resolve(ctx, "https://soundcloud.com/"+username, &user); err != nil {
		return nil, err
	}
	if user.Kind != "user" || user.ID == 0 {
		return nil, fmt.Errorf("%q did not resolve to a user: %w", username, ErrNotFound)
	}
	return &model.User{
		ID:          user.ID,
		Username:    user.Permalink,
		DisplayName: user.Username,
		PageURL:     user.PermalinkURL,
		AvatarURL:   user.AvatarURL,
		Description: user.Description,
	}, nil
}

func (c *Client) userTracks(ctx context.Context, userID int64) ([]model.Track, error) {
	var page apiTrackPage
	path := fmt.Sprintf("/users/%d/tracks", userID)
	if err := c.get(ctx, path, nil, &page); err != nil {
		return nil, err
	}
	tracks := make([]model.Track, 0, len(page.Collection))
	for _, t := range page.Collection {
		tracks = append(tracks, c.normalizeTrack(t))
	}
	return tracks, nil
}

func (c *Client) userLikes(ctx context.Context, userID int64) ([]model.Track, error) {
	var page apiLikePage
	path := fmt.Sprintf("/users/%d/likes", userID)
	if err := c.get(ctx, path, nil, &page); err != nil {
		return nil, err
	}
	tracks := make([]model.Track, 0, len(page.Collection))
	for _, like := range page.Collection {
		if like.Track == nil {
			// Playlist likes show up in the same collection; skip them.
			continue
		}
		tracks = append(tracks, c.normalizeTrack(*like.Track))
	}
	return tracks, nil
}

func (c *Client) userReposts(ctx context.Context, userID int64) ([]model.Track, error) {
	var page apiStreamPage
	path := fmt.Sprintf("/stream/users/%d/reposts", userID)
	if err := c.get(ctx, path, nil, &page); err != nil {
		return nil, err
	}
	tracks := make([]model.Track, 0, len(page.Collection))
	for _, item := range page.Collection {
		if item.Track == nil {
			continue
		}
		tracks = append(tracks, c.normalizeTrack(*item.Track))
	}
	return tracks, nil
}

func (c *Client) fetchPlaylist(ctx context.Context, username, slug string) (model.Channel, []model.Track, error) {
	var playlist apiPlaylist
	setsURL := fmt.Sprintf("https://soundcloud.com/%s/sets/%s", username, slug)
	if err := c.resolve(ctx, setsURL, &playlist); err != nil {
		return model.Channel{}, nil, err
	}
	if playlist.Kind != "playlist" || playlist.ID == 0 {
		return model.Channel{}, nil, fmt.Errorf("%q did not resolve to a playlist: %w", setsURL, ErrNotFound)
	}

	tracks := make([]model.Track, 0, len(playlist.Tracks))
	for _, t := range playlist.Tracks {
		tracks = append(tracks, c.normalizeTrack(t))
	}

	ch := model.Channel{
		Title:       playlist.Title,
		Link:        playlist.PermalinkURL,
		Author:      playlist.User.Username,
		Description: playlist.Description,
		ImageURL:    playlist.ArtworkURL,
	}
	if ch.Description == "" {
		ch.Description = "SoundCloud playlist podcast feed"
	}
	return ch, tracks, nil
}

// resolve hits the /resolve endpoint for a public soundcloud.com URL.
func (c *Client) resolve(ctx context.Context, scURL string, out interface{}) error {
	query := url.Values{}
	query.Set("url", scURL)
	return c.get(ctx, "/resolve", query, out)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("client_id", c.clientID)
	if _, ok := query["limit"]; !ok && path != "/resolve" {
		query.Set("limit", strconv.Itoa(pageLimit))
	}

	endpoint := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to SoundCloud failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("SoundCloud API returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode SoundCloud response: %w", err)
	}
	return nil
}

func (c *Client) normalizeTrack(t apiTrack) model.Track {
	return model.Track{
		ID:          strconv.FormatInt(t.ID, 10),
		Title:       t.Title,
		Author:      t.User.Username,
		Description: t.Description,
		PublishedAt: parseTime(t.CreatedAt),
		Duration:    int(t.Duration / 1000),
		MediaURL:    c.streamURL(t),
		PageURL:     t.PermalinkURL,
		ArtworkURL:  t.ArtworkURL,
	}
}

// streamURL picks the progressive MP3 transcoding, the only format
// podcast clients can play directly. Tracks without one get no enclosure.
func (c *Client) streamURL(t apiTrack) string {
	for _, tc := range t.Media.Transcodings {
		if tc.Format.Protocol == "progressive" {
			return tc.URL + "?client_id=" + url.QueryEscape(c.clientID)
		}
	}
	return ""
}

// parseTime handles both timestamp formats the v2 API is known to emit.
func parseTime(s string) time.Time {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts.UTC()
	}
	if ts, err := time.Parse("2006/01/02 15:04:05 -0700", s); err == nil {
		return ts.UTC()
	}
	return time.Time{}
}

func channelForUser(user *model.User, feedType model.FeedType) model.Channel {
	title := user.DisplayName
	switch feedType {
	case model.FeedLikes:
		title += " (likes)"
	case model.FeedReposts:
		title += " (reposts)"
	}

	description := user.Description
	if description == "" {
		description = "SoundCloud channel podcast feed"
	}
	return model.Channel{
		Title:       title,
		Link:        user.PageURL,
		Author:      user.DisplayName,
		Description: description,
		ImageURL:    user.AvatarURL,
	}
}
