// Package summarize turns article links into bounded AI summaries.
//
// The adapter never fails hard: when the model is still warming up, the
// article is too thin, or any fetch/inference step breaks, a fixed sentinel
// string is returned in place of a summary. A degraded item is still a valid
// snapshot item.
package summarize

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/nayeemjb/intelgrid/internal/metrics"
	"github.com/nayeemjb/intelgrid/internal/oplog"
)

// Sentinel strings returned in place of a summary when a precondition is not
// met. Callers and the UI treat these as informational, not as errors.
const (
	SentinelInitializing = "Summary unavailable: analysis model is still initializing."
	SentinelThinContent  = "Notice: link contains insufficient textual data for synthesis."
	SentinelInterrupted  = "Deep link analysis interrupted."
)

// Input bounds. At most maxParagraphs paragraph elements are read per
// article; fewer than minArticleRunes runes of text skips inference; the
// model input is truncated to maxInputRunes runes.
const (
	maxParagraphs   = 8
	minArticleRunes = 200
	maxInputRunes   = 2500
)

// Model generates a summary for prepared article text.
type Model interface {
	Generate(ctx context.Context, text string) (string, error)
}

// Config controls article fetching.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

// Summarizer implements intel.Summarizer over an HTTP article fetch and a
// Model backend.
type Summarizer struct {
	cfg    Config
	client *http.Client
	model  Model
	ready  atomic.Bool
	logger *zap.Logger
	ops    *oplog.Log
}

// New builds a Summarizer. It starts not-ready; call Warmup (usually in a
// goroutine) to flip readiness once the model answers.
func New(cfg Config, model Model, logger *zap.Logger, ops *oplog.Log) *Summarizer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Summarizer{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		model:  model,
		logger: logger,
		ops:    ops,
	}
}

// Ready reports whether the model has finished warming up.
func (s *Summarizer) Ready() bool {
	return s.ready.Load()
}

// Warmup probes the model backend until it answers or ctx ends, then flips
// the readiness flag. Other components treat not-ready as a normal state,
// so a slow model load only degrades summaries, never the sync cycle.
func (s *Summarizer) Warmup(ctx context.Context) {
	s.note("loading news synthesis model...")
	pinger, ok := s.model.(interface{ Ping(context.Context) error })
	if !ok {
		s.ready.Store(true)
		s.note("synthesis model online.")
		return
	}
	for {
		err := pinger.Ping(ctx)
		if err == nil {
			s.ready.Store(true)
			s.note("synthesis model online.")
			return
		}
		s.logger.Debug("model not ready", zap.Error(err))
		select {
		case <-ctx.Done():
			s.note("model warmup aborted: %v", ctx.Err())
			return
		case <-time.After(3 * time.Second):
		}
	}
}

// Summarize fetches the article behind link and synthesizes a summary.
// Every failure path returns a sentinel string; nothing escapes as an error.
func (s *Summarizer) Summarize(ctx context.Context, link string) string {
	if !s.ready.Load() {
		metrics.CountSummary("unready")
		return SentinelInitializing
	}

	text, err := s.articleText(ctx, link)
	if err != nil {
		metrics.CountFetchFailure("article")
		metrics.CountSummary("interrupted")
		s.logger.Warn("article fetch failed", zap.String("link", link), zap.Error(err))
		return SentinelInterrupted
	}
	if utf8.RuneCountInString(text) < minArticleRunes {
		metrics.CountSummary("thin")
		return SentinelThinContent
	}

	summary, err := s.model.Generate(ctx, truncateRunes(text, maxInputRunes))
	if err != nil {
		metrics.CountSummary("interrupted")
		s.logger.Warn("model inference failed", zap.String("link", link), zap.Error(err))
		return SentinelInterrupted
	}
	metrics.CountSummary("ok")
	return summary
}

// articleText fetches the article page and concatenates the text of its
// first maxParagraphs paragraph elements with single spaces.
func (s *Summarizer) articleText(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if s.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", s.cfg.UserAgent)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch article: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("fetch article: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse article: %w", err)
	}
	var parts []string
	doc.Find("p").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= maxParagraphs {
			return false
		}
		if t := strings.TrimSpace(sel.Text()); t != "" {
			parts = append(parts, t)
		}
		return true
	})
	return strings.Join(parts, " "), nil
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

func (s *Summarizer) note(format string, args ...any) {
	if s.ops != nil {
		s.ops.Append(format, args...)
	}
}
