// Package ratelimit paces outbound requests to the external profile host.
//
// The pipeline issues at most one request per configured interval across
// the whole process. Spacing requests out keeps the scraper from being
// throttled or blocked by the target.
//
// Interface:
//
// All rate limiters implement the Limiter interface:
//   - Wait(ctx) error - Block until a request is allowed
//   - Reset() - Reset the limiter state
//
// Usage:
//
//	// At most one request every 5 seconds
//	limiter := ratelimit.NewMinInterval(5 * time.Second)
//
//	if err := limiter.Wait(ctx); err != nil {
//	    return err // context cancelled while waiting
//	}
//	// Proceed with request
package ratelimit
