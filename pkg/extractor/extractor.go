// Package extractor pulls structured profile fields out of unstructured
// page markup using an ordered chain of fallback strategies.
package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"profilescraper/pkg/logger"
)

// Result holds the structured fields pulled out of a profile page
type Result struct {
	AvatarURL     string
	FollowerCount int
}

// complete reports whether both fields were found. A tier only succeeds
// when it produces the full pair; partial fields are never merged across
// tiers.
func (r Result) complete() bool {
	return r.AvatarURL != "" && r.FollowerCount > 0
}

// Strategy is one independent approach to extracting profile fields from
// a document. Strategies are attempted in order until one produces a
// complete result.
type Strategy struct {
	Name    string
	Extract func(doc *goquery.Document, identifier string) (Result, bool)
}

// Extractor runs an ordered chain of extraction strategies
type Extractor struct {
	strategies []Strategy
	logger     logger.Logger
}

// New creates an Extractor with the default tier chain: meta tags first,
// structural markup search as the fallback
func New(log logger.Logger) *Extractor {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Extractor{
		strategies: []Strategy{
			{Name: "meta", Extract: extractFromMetaTags},
			{Name: "structural", Extract: extractFromStructure},
		},
		logger: log,
	}
}

// NewWithStrategies creates an Extractor with a custom strategy chain
func NewWithStrategies(log logger.Logger, strategies ...Strategy) *Extractor {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Extractor{
		strategies: strategies,
		logger:     log,
	}
}

// Extract parses the page body and runs the strategy chain. The first
// strategy to produce a complete avatar/follower pair wins; later
// strategies are not consulted. If every strategy fails, ok is false and
// the caller must treat the profile as unavailable rather than fabricate
// a partial result.
func (e *Extractor) Extract(body string, identifier string) (Result, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		e.logger.WarnWithFields("failed to parse profile page", map[string]interface{}{
			"identifier": identifier,
			"error":      err.Error(),
		})
		return Result{}, false
	}

	for _, strategy := range e.strategies {
		result, ok := strategy.Extract(doc, identifier)
		if ok && result.complete() {
			e.logger.DebugWithFields("extraction succeeded", map[string]interface{}{
				"identifier": identifier,
				"strategy":   strategy.Name,
				"followers":  result.FollowerCount,
			})
			return result, true
		}
		e.logger.DebugWithFields("extraction strategy failed", map[string]interface{}{
			"identifier": identifier,
			"strategy":   strategy.Name,
		})
	}

	return Result{}, false
}

// followerPattern matches the first thousands-separated integer
// immediately preceding the word "followers", case-insensitively.
var followerPattern = regexp.MustCompile(`(?i)([0-9][0-9,]*)\s*followers`)

// parseFollowerCount extracts a follower count from free text. Returns
// 0 when no usable count is present; a zero count fails the tier.
func parseFollowerCount(text string) int {
	matches := followerPattern.FindStringSubmatch(text)
	if len(matches) < 2 {
		return 0
	}

	digits := strings.ReplaceAll(matches[1], ",", "")
	count, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return count
}

// extractFromMetaTags is the primary tier. Profile pages advertise the
// avatar through an og:image meta tag and embed the follower count in the
// description meta text. Either field missing fails the tier as a whole.
func extractFromMetaTags(doc *goquery.Document, identifier string) (Result, bool) {
	avatarURL, _ := doc.Find(`meta[property="og:image"]`).Attr("content")
	if avatarURL == "" {
		return Result{}, false
	}

	description, exists := doc.Find(`meta[property="og:description"]`).Attr("content")
	if !exists || description == "" {
		description, _ = doc.Find(`meta[name="description"]`).Attr("content")
	}
	if description == "" {
		return Result{}, false
	}

	count := parseFollowerCount(description)
	if count <= 0 {
		return Result{}, false
	}

	return Result{AvatarURL: avatarURL, FollowerCount: count}, true
}

// extractFromStructure is the fallback tier for pages without usable meta
// tags. It looks for an image whose descriptive text names the profile
// picture or the identifier itself, and separately scans list and text
// elements for a follower count. Strictly less reliable than the meta
// tier and only attempted after it fails outright.
func extractFromStructure(doc *goquery.Document, identifier string) (Result, bool) {
	avatarURL := findAvatarImage(doc, identifier)
	if avatarURL == "" {
		return Result{}, false
	}

	count := findFollowerCount(doc)
	if count <= 0 {
		return Result{}, false
	}

	return Result{AvatarURL: avatarURL, FollowerCount: count}, true
}

// findAvatarImage searches img elements for one describing the profile
// picture, matching on alt text
func findAvatarImage(doc *goquery.Document, identifier string) string {
	ident := strings.ToLower(identifier)

	var avatarURL string
	doc.Find("img").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		alt := strings.ToLower(sel.AttrOr("alt", ""))
		if alt == "" {
			return true
		}
		if !strings.Contains(alt, "profile picture") && !strings.Contains(alt, ident) {
			return true
		}

		src := sel.AttrOr("src", "")
		if src == "" {
			return true
		}

		avatarURL = src
		return false
	})

	return avatarURL
}

// findFollowerCount scans generic list and text elements for a number
// adjacent to the word "followers"
func findFollowerCount(doc *goquery.Document) int {
	var count int
	doc.Find("li, span, div, a, title").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := collapsedText(sel)
		if text == "" {
			return true
		}

		if c := parseFollowerCount(text); c > 0 {
			count = c
			return false
		}
		return true
	})

	return count
}
