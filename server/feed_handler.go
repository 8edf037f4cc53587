package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"scpod/core/feed"
	"scpod/core/soundcloud"
	"scpod/logger"
	"scpod/model"
)

// MetadataSource supplies the channel and raw tracks for a classified
// feed. Satisfied by *soundcloud.Client; tests substitute a fake.
type MetadataSource interface {
	Fetch(ctx context.Context, fc model.FeedContext) (model.Channel, []model.Track, error)
}

// FeedHandler turns a request path into a podcast RSS response.
type FeedHandler struct {
	source    MetadataSource
	assembler *feed.Assembler
}

func NewFeedHandler(source MetadataSource, assembler *feed.Assembler) *FeedHandler {
	return &FeedHandler{source: source, assembler: assembler}
}

// ServeFeed handles GET /{username}[/tracks|/likes|/reposts|/sets/{slug}].
// All path semantics live in the classifier; this handler only maps errors
// to status codes. Cache-layer failures never reach this point, so they
// can never produce a 5xx.
func (h *FeedHandler) ServeFeed(w http.ResponseWriter, r *http.Request) {
	fc, err := feed.Classify(pathSegments(r.URL.Path))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	channel, tracks, err := h.source.Fetch(r.Context(), fc)
	if errors.Is(err, soundcloud.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		logger.Error("metadata fetch failed",
			logger.String("username", fc.Username),
			logger.String("feed_type", string(fc.Type)),
			logger.ErrorField(err),
		)
		http.Error(w, "upstream metadata source unavailable", http.StatusBadGateway)
		return
	}

	items := h.assembler.Assemble(r.Context(), fc, tracks)

	body, err := feed.RenderRSS(channel, items)
	if err != nil {
		logger.Error("feed serialization failed",
			logger.String("username", fc.Username),
			logger.ErrorField(err),
		)
		http.Error(w, "failed to render feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Write(body)
}

func pathSegments(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
