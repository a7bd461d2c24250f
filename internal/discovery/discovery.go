// Package discovery finds headline candidates on outlet section pages.
//
// It prefers a structured collection API for outlets that expose one, falls
// back to feed parsing when a section URL serves RSS/Atom, and otherwise runs
// a generic textual heuristic over anchor elements. It is a best-effort
// signal source: every failure degrades to an empty candidate list.
package discovery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/nayeemjb/intelgrid/internal/intel"
	"github.com/nayeemjb/intelgrid/internal/metrics"
	"github.com/nayeemjb/intelgrid/internal/oplog"
)

// Config controls fetch behavior and the structured-path endpoints.
type Config struct {
	UserAgent string
	Timeout   time.Duration

	// Collection API for the optimized outlet. Overridable for tests.
	CollectionAPIBase  string
	CollectionLinkBase string
}

const (
	defaultTimeout        = 12 * time.Second
	defaultCollectionBase = "https://www.prothomalo.com"
)

// Discoverer implements intel.Discoverer.
type Discoverer struct {
	cfg    Config
	base   *colly.Collector
	logger *zap.Logger
	ops    *oplog.Log
}

// New builds a Discoverer.
func New(cfg Config, logger *zap.Logger, ops *oplog.Log) *Discoverer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.CollectionAPIBase == "" {
		cfg.CollectionAPIBase = defaultCollectionBase
	}
	if cfg.CollectionLinkBase == "" {
		cfg.CollectionLinkBase = defaultCollectionBase
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := colly.NewCollector(colly.Async(false))
	c.SetRequestTimeout(cfg.Timeout)
	if cfg.UserAgent != "" {
		c.UserAgent = cfg.UserAgent
	}
	return &Discoverer{cfg: cfg, base: c, logger: logger, ops: ops}
}

// Discover returns up to intel.DiscoveryCap candidates for one section URL.
// Malformed URLs and unreachable outlets yield an empty slice, never an
// error; the sync cycle must not stall on a single dead section.
func (d *Discoverer) Discover(ctx context.Context, url, outletName string) []intel.Candidate {
	if url == "" {
		return nil
	}

	if strings.Contains(url, "prothomalo") {
		if found := d.fromCollectionAPI(ctx, url); len(found) > 0 {
			metrics.AddCandidates(outletName, "api", len(found))
			return found
		}
	}

	body, err := d.fetch(ctx, url)
	if err != nil {
		metrics.CountFetchFailure("section")
		d.note("INTERCEPT_FAILURE: %s unreachable.", outletName)
		d.logger.Warn("section fetch failed",
			zap.String("outlet", outletName),
			zap.String("url", url),
			zap.Error(err))
		return nil
	}

	if looksLikeFeed(body) {
		found, err := candidatesFromFeed(body)
		if err != nil {
			metrics.CountFetchFailure("feed")
			d.logger.Warn("feed parse failed", zap.String("url", url), zap.Error(err))
			return nil
		}
		metrics.AddCandidates(outletName, "feed", len(found))
		return found
	}

	found, err := headlineCandidates(url, body)
	if err != nil {
		d.logger.Warn("page parse failed", zap.String("url", url), zap.Error(err))
		return nil
	}
	metrics.AddCandidates(outletName, "heuristic", len(found))
	return found
}

// fetch executes a single GET through the colly collector and returns the
// response body.
func (d *Discoverer) fetch(ctx context.Context, url string) ([]byte, error) {
	var (
		body     []byte
		fetchErr error
	)
	c := d.base.Clone()
	c.SetRequestTimeout(d.cfg.Timeout)
	if d.cfg.UserAgent != "" {
		c.UserAgent = d.cfg.UserAgent
	}
	c.OnRequest(func(r *colly.Request) {
		select {
		case <-ctx.Done():
			r.Abort()
			fetchErr = ctx.Err()
		default:
		}
	})
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	c.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})
	if err := c.Visit(url); err != nil {
		return nil, fmt.Errorf("visit %s: %w", url, err)
	}
	c.Wait()
	if fetchErr != nil {
		return nil, fetchErr
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("visit %s: empty body", url)
	}
	return body, nil
}

func (d *Discoverer) note(format string, args ...any) {
	if d.ops != nil {
		d.ops.Append(format, args...)
	}
}
