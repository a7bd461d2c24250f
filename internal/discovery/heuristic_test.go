package discovery

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nayeemjb/intelgrid/internal/intel"
)

const fixturePage = `<html>
<head><title>Section</title><script>var tracking = 1;</script></head>
<body>
<nav><a href="/politics">Politics coverage and analysis from our newsroom desk</a></nav>
<header><a href="/top">Top stories curated by the editorial board this morning</a></header>
<div class="stories">
  <a href="/story/budget">Parliament passes the national budget after marathon session</a>
  <a href="/subscribe">Subscribe today</a>
  <a href="https://news.example.com/story/rates">Central bank raises interest rates amid inflation pressure</a>
  <a href="/story/budget">Parliament passes the national budget after marathon session</a>
  <a href="/about">About us</a>
  <a href="story/dialogue">Opposition leaders call for dialogue on election framework reform</a>
</div>
<footer><a href="/contact">Contact the editorial team for corrections and story tips today</a></footer>
</body>
</html>`

func TestHeadlineCandidatesFixture(t *testing.T) {
	found, err := headlineCandidates("https://news.example.com/politics", []byte(fixturePage))
	require.NoError(t, err)

	// Three qualifying anchors in document order, deduplicated by link; nav,
	// header, and footer anchors are stripped before scanning.
	require.Len(t, found, 3)
	assert.Equal(t, "Parliament passes the national budget after marathon session", found[0].Title)
	assert.Equal(t, "https://news.example.com/story/budget", found[0].Link)
	assert.Equal(t, "https://news.example.com/story/rates", found[1].Link)
	assert.Equal(t, "https://news.example.com/story/dialogue", found[2].Link)
}

func TestHeadlineCandidatesCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&b, `<a href="/story/%d">Distinct qualifying headline number %d with enough words here</a>`, i, i)
	}
	b.WriteString("</body></html>")

	found, err := headlineCandidates("https://news.example.com", []byte(b.String()))
	require.NoError(t, err)
	assert.Len(t, found, intel.DiscoveryCap)
}

func TestIsHeadlineBoundaries(t *testing.T) {
	len35spaces4 := "aaaaaaa bbbbbb cccccc dddddd eeeeee"
	len36spaces4 := "aaaaaaa bbbbbbb cccccc dddddd eeeeee"
	len36spaces3 := "aaaaaaaaa bbbbbbbb cccccccc dddddddd"

	require.Equal(t, 35, utf8.RuneCountInString(len35spaces4))
	require.Equal(t, 36, utf8.RuneCountInString(len36spaces4))
	require.Equal(t, 36, utf8.RuneCountInString(len36spaces3))

	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{name: "length exactly 35 rejected", title: len35spaces4, want: false},
		{name: "length 36 with 4 spaces accepted", title: len36spaces4, want: true},
		{name: "length 36 with 3 spaces rejected", title: len36spaces3, want: false},
		{name: "empty rejected", title: "", want: false},
		{name: "long but single word rejected", title: strings.Repeat("a", 80), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isHeadline(tt.title))
		})
	}
}

func TestHeadlineCandidatesCountsRunesNotBytes(t *testing.T) {
	// 36 runes, 4 spaces, but multibyte characters: must be accepted.
	title := "সরকার নতুন বাজেট ঘোষণা করেছে অধিবেশনে আজই"
	require.Greater(t, utf8.RuneCountInString(title), 35)
	require.GreaterOrEqual(t, strings.Count(title, " "), 4)
	assert.True(t, isHeadline(title))
}
