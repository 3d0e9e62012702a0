package models

import "time"

// ScrapedProfile holds the structured fields pulled from an external
// public profile page. A profile is immutable once constructed; a fresh
// scrape produces a new value rather than mutating an old one in place.
type ScrapedProfile struct {
	Identifier    string    `json:"identifier"`
	AvatarURL     string    `json:"avatar_url"`
	FollowerCount int       `json:"follower_count"`
	FetchedAt     time.Time `json:"fetched_at"`
}
