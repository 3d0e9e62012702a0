// Package cache provides an in-memory TTL cache for scraped profile data.
//
// The store evicts lazily: an expired entry is removed the next time a
// lookup touches it, and never by a background goroutine. If the tracked
// key set ever grows past a few hundred identifiers, a periodic sweep or
// a bounded LRU policy would be the next step.
//
// Usage:
//
//	store := cache.New[*models.ScrapedProfile]()
//	store.Set("profile:alice", profile, 2*time.Hour)
//
//	if p, ok := store.Get("profile:alice"); ok {
//	    // fresh value
//	}
package cache
