package discovery

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/nayeemjb/intelgrid/internal/intel"
)

// looksLikeFeed sniffs a fetched body for RSS/Atom markers so feed-backed
// sections skip the anchor heuristic. Only the leading bytes are inspected.
func looksLikeFeed(body []byte) bool {
	head := body
	if len(head) > 512 {
		head = head[:512]
	}
	s := strings.ToLower(string(head))
	if strings.Contains(s, "<!doctype html") || strings.Contains(s, "<html") {
		return false
	}
	return strings.Contains(s, "<rss") || strings.Contains(s, "<feed")
}

// candidatesFromFeed maps feed entries onto candidates under the same cap as
// the generic heuristic.
func candidatesFromFeed(body []byte) ([]intel.Candidate, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	var found []intel.Candidate
	seen := make(map[string]bool)
	for _, item := range feed.Items {
		if len(found) >= intel.DiscoveryCap {
			break
		}
		title := strings.TrimSpace(item.Title)
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" || seen[link] {
			continue
		}
		seen[link] = true
		found = append(found, intel.Candidate{Title: title, Link: link})
	}
	return found, nil
}
