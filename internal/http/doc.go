// Package http provides the HTTP client used for resource validation and
// image downloads.
//
// The Client in this package handles:
//   - Browser-like User-Agent headers (some image hosts reject requests
//     from default client identifiers)
//   - Redirect probing with a short timeout
//   - Content fetches with a long timeout
//
// # Basic Usage
//
//	client := http.NewClient()
//
//	// Follow redirects and learn where a URL finally lands (1s budget)
//	host, err := client.FinalHost(ctx, "https://youtu.be/abc123")
//
//	// Fetch content (60s budget)
//	status, body, err := client.Get(ctx, imageURL)
//
// # Status Classification
//
// Get reports the final status code and leaves its interpretation to the
// caller; only transport failures produce an error. The resource package
// classifies 1xx-3xx as success, 4xx as client errors and 5xx as server
// errors.
//
// # Timeouts
//
// The two operations use separate timeouts on purpose: a stalled host
// must not delay URL validation, while a large image download needs room
// to complete.
package http
