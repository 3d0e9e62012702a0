package scraper

import "context"

// PageFetcher abstracts the profile page client so tests can substitute
// a transport that counts or fails requests
type PageFetcher interface {
	// FetchProfilePage performs a single GET for the identifier's public
	// profile page and returns the raw body
	FetchProfilePage(ctx context.Context, identifier string) (string, error)
}
