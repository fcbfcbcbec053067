// Package backend provides an HTTP client for the scheduling backend API.
//
// # Overview
//
// The client never stores a base URL of its own. Every request asks a
// BaseResolver (normally *endpoint.Resolver) for the current base, which
// returns the cached origin or probes for one, and concatenates the API path.
//
// # API Endpoints
//
//   - GET /api/health: reachability, body ignored
//   - POST /api/seed: load sample data
//   - POST /api/generate: compute a timetable for {days, slots}
//   - GET /api/timetable: JSON array of schedule entries
//   - POST /api/upload: multipart form, field "file"
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation
//   - Set Accept: application/json and User-Agent: slotboard/0.1
//   - Carry a fresh X-Request-ID that is also logged
//   - Return wrapped errors naming the step that failed
//
// # Error Handling
//
//   - Resolution errors: wrapped with "resolve backend"
//   - Network errors: wrapped with "execute request"
//   - Non-2xx responses: *HTTPError, "HTTP {status}" plus " - {detail}" when
//     the body is JSON with a detail field; other bodies are ignored
//   - Undecodable success bodies: *MalformedError, never retried
//
// EnsureOK is exported so the endpoint prober can apply the same rules to
// health checks.
package backend
