// Package resource validates and downloads the remote media a song
// references: audio and video streams via yt-dlp, cover and background
// images via plain HTTP.
//
// # Domain validation
//
// Every resource URL is checked against a fixed allow-list before any
// download, and checked again after following redirects, because allowed
// content is sometimes served through a CDN or mirror whose domain also
// must be vetted:
//
//	ok, offending := resource.CheckURL(ctx, client, url, logger)
//	if !ok {
//	    // offending names the rejected domain
//	}
//
// # Failure policy
//
// Nothing in this package escalates recoverable conditions: disallowed
// domains, transport failures, and HTTP error statuses are logged and
// yield an empty result. Callers only ever see "no file downloaded".
package resource
