// Package scraper orchestrates the external-profile acquisition pipeline.
//
// A request moves through a fixed sequence: cache check, throttle, fetch,
// extract, store. A cache hit short-circuits the whole pipeline. On a
// miss the scraper waits for the shared rate-limit gate, performs exactly
// one HTTP fetch, runs the tiered extraction chain and caches a complete
// result under "profile:{identifier}" for the configured TTL.
//
// All failures (network, non-2xx, extraction exhausted) are swallowed at
// this boundary and surface to callers as a nil profile. Consumers show a
// placeholder and try again later; an unavailable profile is routine, not
// exceptional.
package scraper
