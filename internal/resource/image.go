package resource

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mjhalwa/usdb-syncer/internal/http"
	"github.com/mjhalwa/usdb-syncer/internal/ioutils"
	"github.com/mjhalwa/usdb-syncer/internal/log"
	"github.com/mjhalwa/usdb-syncer/internal/meta"
	"github.com/mjhalwa/usdb-syncer/internal/model"
)

// DownloadImage validates url against the domain allow-list and fetches
// it. Returns nil on any failure; failures are logged, never returned.
func DownloadImage(ctx context.Context, client *http.Client, url string, logger *log.Logger) []byte {
	if allowed, forbiddenDomain := CheckURL(ctx, client, url, logger); !allowed {
		logger.Errorf("failed to download image (download from resource domain %q is restricted)", forbiddenDomain)
		return nil
	}
	return FetchImage(ctx, client, url, logger)
}

// FetchImage performs the GET without domain validation and classifies
// the response: 1xx, 2xx and 3xx are treated as success, 4xx and 5xx are
// logged as client and server errors. Anything but success yields nil.
func FetchImage(ctx context.Context, client *http.Client, url string, logger *log.Logger) []byte {
	status, body, err := client.Get(ctx, url)
	if err != nil {
		logger.Errorf("failed to retrieve %s; the server may be down or your internet connection is currently unavailable", url)
		return nil
	}
	switch {
	case status >= 100 && status < 400:
		return body
	case status >= 400 && status < 500:
		logger.Errorf("client error %d, failed to download %s", status, url)
	case status >= 500 && status < 600:
		logger.Errorf("server error %d, failed to download %s", status, url)
	default:
		logger.Errorf("unexpected status %d, failed to download %s", status, url)
	}
	return nil
}

// DownloadAndProcessImage downloads the cover or background image named
// by tags, processes it, and writes it to the song folder as
// "<stem> [CO].jpg" or "<stem> [BG].jpg".
//
// For covers the small USDB thumbnail is used as a fallback when the meta
// tags carry no image source. Returns the written filename, or "" when no
// image could be obtained.
func DownloadAndProcessImage(ctx context.Context, client *http.Client, images *ioutils.ImageService, song *model.Song, tags *meta.ImageMetaTags, folder, stem string, kind ImageKind, maxWidth int, logger *log.Logger) string {
	url := imageURL(song, tags, kind, logger)
	if url == "" {
		return ""
	}

	data := DownloadImage(ctx, client, url, logger)
	if data == nil {
		logger.Errorf("#%s: file does not exist at or cannot be loaded from url: %s", kind.Tag(), url)
		return ""
	}

	processed, err := images.Process(data, tags, maxWidth)
	if err != nil {
		logger.Warnf("could not process %s image, keeping it as downloaded: %v", kind, err)
		processed = data
	}

	fname := fmt.Sprintf("%s [%s].jpg", stem, kind.Tag())
	if err := ioutils.WriteFile(filepath.Join(folder, fname), processed); err != nil {
		logger.Errorf("could not save %s image: %v", kind, err)
		return ""
	}
	return fname
}

func imageURL(song *model.Song, tags *meta.ImageMetaTags, kind ImageKind, logger *log.Logger) string {
	if tags != nil && tags.Source != "" {
		url := tags.SourceURL()
		logger.Debugf("downloading %s from meta tags: %s", kind, url)
		return url
	}
	if kind == ImageKindCover && song.CoverURL != "" {
		logger.Warnf("no cover resource in meta tags, falling back to small USDB cover")
		return song.CoverURL
	}
	logger.Warnf("no %s resource found", kind)
	return ""
}
