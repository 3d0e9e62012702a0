package extractor

import (
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profilescraper/pkg/logger"
)

const metaTagFixture = `<!DOCTYPE html>
<html>
<head>
<meta property="og:image" content="https://cdn.example.com/avatars/alice.jpg" />
<meta property="og:description" content="1,234 Followers, 56 Following, 78 Posts - alice" />
<title>alice</title>
</head>
<body></body>
</html>`

const structuralFixture = `<!DOCTYPE html>
<html>
<head><title>alice</title></head>
<body>
<header>
  <img src="https://cdn.example.com/avatars/alice-small.jpg" alt="alice's profile picture" />
</header>
<ul>
  <li><span>78 posts</span></li>
  <li><span>1,234 followers</span></li>
  <li><span>56 following</span></li>
</ul>
</body>
</html>`

const emptyFixture = `<!DOCTYPE html>
<html>
<head><title>Page not found</title></head>
<body><p>Sorry, this page isn't available.</p></body>
</html>`

func TestExtractMetaTier(t *testing.T) {
	e := New(logger.NewTestLogger())

	result, ok := e.Extract(metaTagFixture, "alice")
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/avatars/alice.jpg", result.AvatarURL)
	assert.Equal(t, 1234, result.FollowerCount)
}

func TestExtractMetaTierShortCircuitsFallback(t *testing.T) {
	structuralCalled := false
	e := NewWithStrategies(logger.NewTestLogger(),
		Strategy{Name: "meta", Extract: extractFromMetaTags},
		Strategy{Name: "structural", Extract: func(doc *goquery.Document, identifier string) (Result, bool) {
			structuralCalled = true
			return extractFromStructure(doc, identifier)
		}},
	)

	_, ok := e.Extract(metaTagFixture, "alice")
	require.True(t, ok)
	assert.False(t, structuralCalled, "fallback tier must not run when the meta tier succeeds")
}

func TestExtractStructuralTier(t *testing.T) {
	e := New(logger.NewTestLogger())

	result, ok := e.Extract(structuralFixture, "alice")
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/avatars/alice-small.jpg", result.AvatarURL)
	assert.Equal(t, 1234, result.FollowerCount)
}

func TestExtractStructuralMatchesIdentifierAlt(t *testing.T) {
	fixture := `<html><body>
<img src="https://cdn.example.com/a.jpg" alt="Photo by bob" />
<div>999 followers</div>
</body></html>`

	e := New(logger.NewTestLogger())

	result, ok := e.Extract(fixture, "bob")
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/a.jpg", result.AvatarURL)
	assert.Equal(t, 999, result.FollowerCount)
}

func TestExtractBothTiersFail(t *testing.T) {
	e := New(logger.NewTestLogger())

	result, ok := e.Extract(emptyFixture, "alice")
	assert.False(t, ok)
	assert.Empty(t, result.AvatarURL)
	assert.Zero(t, result.FollowerCount)
}

func TestExtractNoPartialMerge(t *testing.T) {
	// Meta avatar present but no follower count anywhere in meta tags;
	// structural markup has a count but no avatar image. Neither tier
	// completes, so the extractor reports absence instead of stitching
	// fields together.
	fixture := `<html>
<head><meta property="og:image" content="https://cdn.example.com/avatars/alice.jpg" /></head>
<body><span>1,234 followers</span></body>
</html>`

	e := New(logger.NewTestLogger())

	_, ok := e.Extract(fixture, "alice")
	assert.False(t, ok)
}

func TestExtractMetaTierZeroCountFails(t *testing.T) {
	fixture := `<html>
<head>
<meta property="og:image" content="https://cdn.example.com/avatars/alice.jpg" />
<meta property="og:description" content="0 Followers, 0 Following - alice" />
</head>
<body></body>
</html>`

	e := New(logger.NewTestLogger())

	_, ok := e.Extract(fixture, "alice")
	assert.False(t, ok)
}

func TestExtractDescriptionMetaFallback(t *testing.T) {
	fixture := `<html>
<head>
<meta property="og:image" content="https://cdn.example.com/avatars/alice.jpg" />
<meta name="description" content="alice has 2,500,000 followers on this platform" />
</head>
<body></body>
</html>`

	e := New(logger.NewTestLogger())

	result, ok := e.Extract(fixture, "alice")
	require.True(t, ok)
	assert.Equal(t, 2500000, result.FollowerCount)
}

func TestParseFollowerCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"plain", "42 followers", 42},
		{"thousands separators", "1,234,567 Followers, 10 Following", 1234567},
		{"uppercase", "99 FOLLOWERS", 99},
		{"no space", "512followers", 512},
		{"zero", "0 followers", 0},
		{"missing keyword", "1,234 friends", 0},
		{"no number", "many followers", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseFollowerCount(tt.text))
		})
	}
}
