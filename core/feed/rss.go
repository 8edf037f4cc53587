package feed

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strconv"

	"scpod/model"
)

const itunesNamespace = "http://www.itunes.com/dtds/podcast-1.0.dtd"

type rssEnclosure struct {
	URL  string `xml:"url,attr"`
	Type string `xml:"type,attr"`
}

type rssImage struct {
	Href string `xml:"href,attr"`
}

type rssItem struct {
	Title       string        `xml:"title"`
	Author      string        `xml:"itunes:author"`
	Description string        `xml:"description"`
	PubDate     string        `xml:"pubDate"`
	GUID        string        `xml:"guid"`
	Link        string        `xml:"link,omitempty"`
	Enclosure   *rssEnclosure `xml:"enclosure,omitempty"`
	Duration    string        `xml:"itunes:duration,omitempty"`
	Image       *rssImage     `xml:"itunes:image,omitempty"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Language    string    `xml:"language"`
	Author      string    `xml:"itunes:author"`
	Description string    `xml:"description"`
	Image       *rssImage `xml:"itunes:image,omitempty"`
	Items       []rssItem `xml:"item"`
}

type rssDoc struct {
	XMLName  xml.Name   `xml:"rss"`
	Version  string     `xml:"version,attr"`
	ItunesNS string     `xml:"xmlns:itunes,attr"`
	Channel  rssChannel `xml:"channel"`
}

// RenderRSS serializes a channel and its annotated items to podcast RSS.
// Pure formatting: pubDate comes from each item's resolved effective
// timestamp, never from the raw track record.
func RenderRSS(ch model.Channel, items []model.Item) ([]byte, error) {
	doc := rssDoc{
		Version:  "2.0",
		ItunesNS: itunesNamespace,
		Channel: rssChannel{
			Title:       ch.Title,
			Link:        ch.Link,
			Language:    "en-us",
			Author:      ch.Author,
			Description: ch.Description,
			Items:       make([]rssItem, 0, len(items)),
		},
	}
	if ch.ImageURL != "" {
		doc.Channel.Image = &rssImage{Href: ch.ImageURL}
	}

	for _, item := range items {
		out := rssItem{
			Title:       item.Title,
			Author:      item.Author,
			Description: item.Description,
			PubDate:     item.EffectiveTimestamp.UTC().Format(http.TimeFormat),
			GUID:        item.ID,
			Link:        item.PageURL,
		}
		if item.MediaURL != "" {
			out.Enclosure = &rssEnclosure{URL: item.MediaURL, Type: "audio/mpeg"}
		}
		if item.Duration > 0 {
			out.Duration = strconv.Itoa(item.Duration)
		}
		if item.ArtworkURL != "" {
			out.Image = &rssImage{Href: item.ArtworkURL}
		}
		doc.Channel.Items = append(doc.Channel.Items, out)
	}

	body, err := xml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize feed: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
