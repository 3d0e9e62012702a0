// Package fetch performs the outbound HTTP requests for the acquisition
// pipeline.
//
// The client sends a browser-realistic header set, follows a bounded
// number of redirects and enforces a request timeout. It performs exactly
// one attempt per call; retry decisions belong to the caller, and the
// orchestrator deliberately never retries.
package fetch
