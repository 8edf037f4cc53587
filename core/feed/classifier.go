package feed

import (
	"errors"

	"scpod/model"
)

// ErrUnknownPath is returned for request paths that do not name a feed.
// The HTTP layer maps it to 404.
var ErrUnknownPath = errors.New("unknown feed path")

// Classify maps the request path segments to a feed context. Pure and
// total: the same segments always yield the same result, and every input
// maps to exactly one feed type or ErrUnknownPath.
//
// Recognized shapes:
//
//	{username}                -> tracks (default feed)
//	{username}/tracks         -> tracks
//	{username}/likes          -> likes
//	{username}/reposts        -> reposts
//	{username}/sets/{slug}    -> playlist
func Classify(segments []string) (model.FeedContext, error) {
	if len(segments) == 0 || segments[0] == "" {
		return model.FeedContext{}, ErrUnknownPath
	}
	username := segments[0]

	switch len(segments) {
	case 1:
		return model.FeedContext{Username: username, Type: model.FeedTracks}, nil
	case 2:
		switch segments[1] {
		case "tracks":
			return model.FeedContext{Username: username, Type: model.FeedTracks}, nil
		case "likes":
			return model.FeedContext{Username: username, Type: model.FeedLikes}, nil
		case "reposts":
			return model.FeedContext{Username: username, Type: model.FeedReposts}, nil
		}
	case 3:
		if segments[1] == "sets" && segments[2] != "" {
			return model.FeedContext{
				Username:     username,
				Type:         model.FeedPlaylist,
				PlaylistSlug: segments[2],
			}, nil
		}
	}
	return model.FeedContext{}, ErrUnknownPath
}
