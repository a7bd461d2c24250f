package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/nayeemjb/intelgrid/internal/intel"
	"github.com/nayeemjb/intelgrid/internal/metrics"
)

// collectionPageSize bounds how many stories one API call requests.
const collectionPageSize = 5

type collectionResponse struct {
	Items []struct {
		Story struct {
			Headline string `json:"headline"`
			Slug     string `json:"slug"`
		} `json:"story"`
	} `json:"items"`
}

// collectionSlug derives the API collection slug from a section URL path.
// Business and economy sections share one collection upstream, so both map
// to the "business" slug.
func collectionSlug(sectionURL string) string {
	if strings.Contains(sectionURL, "business") || strings.Contains(sectionURL, "economy") {
		return "business"
	}
	u, err := url.Parse(sectionURL)
	if err != nil {
		return ""
	}
	return strings.Trim(u.Path, "/")
}

// fromCollectionAPI queries the structured JSON endpoint for API-capable
// outlets. Any failure returns nil so the caller falls through to the
// generic heuristic.
func (d *Discoverer) fromCollectionAPI(ctx context.Context, sectionURL string) []intel.Candidate {
	slug := collectionSlug(sectionURL)
	if slug == "" {
		return nil
	}
	endpoint := fmt.Sprintf("%s/api/v1/collections/%s?offset=0&limit=%d",
		d.cfg.CollectionAPIBase, slug, collectionPageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil
	}
	if d.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", d.cfg.UserAgent)
	}
	client := &http.Client{Timeout: d.cfg.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		metrics.CountFetchFailure("api")
		d.logger.Debug("collection api unreachable", zap.String("slug", slug), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		metrics.CountFetchFailure("api")
		return nil
	}

	var payload collectionResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		d.logger.Debug("collection api decode failed", zap.String("slug", slug), zap.Error(err))
		return nil
	}

	var found []intel.Candidate
	for _, item := range payload.Items {
		if item.Story.Headline == "" {
			continue
		}
		found = append(found, intel.Candidate{
			Title: item.Story.Headline,
			Link:  fmt.Sprintf("%s/%s", d.cfg.CollectionLinkBase, item.Story.Slug),
		})
	}
	return found
}
