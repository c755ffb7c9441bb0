package resource

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/lrstanley/go-ytdlp"

	"github.com/mjhalwa/usdb-syncer/internal/http"
	"github.com/mjhalwa/usdb-syncer/internal/log"
)

// DownloadVideo downloads an audio or video resource to pathStem plus the
// format-dependent extension, delegating the fetch to yt-dlp.
//
// resource may be a bare video id, a host path, or a full URL. browser
// selects the browser to read cookies from; empty means none.
//
// Returns the extension of the downloaded file (without dot), or "" if
// validation or the download failed. Download errors are logged, never
// returned.
func DownloadVideo(ctx context.Context, client *http.Client, resource string, options MediaOptions, browser, pathStem string, logger *log.Logger) string {
	url := URLFromVideoResource(resource)
	if allowed, forbiddenDomain := CheckURL(ctx, client, url, logger); !allowed {
		logger.Errorf("failed to download video (download from resource domain %q is restricted)", forbiddenDomain)
		return ""
	}

	dl := ytdlp.New().
		Format(options.YtdlpFormat()).
		Output(pathStem + ".%(ext)s").
		NoPlaylist().
		Print("after_move:filepath")
	if browser != "" {
		dl.CookiesFromBrowser(browser)
	}

	ext := ""
	if audio, ok := options.(AudioOptions); ok {
		dl.ExtractAudio().AudioFormat(audio.Format).AudioQuality("320K")
		// The printed filename does not account for the audio
		// postprocessor, so the extension is known up front.
		ext = audio.Format
	}

	result, err := dl.Run(ctx, url)
	if err != nil {
		logger.Debugf("error downloading video url: %s (%v)", url, err)
		return ""
	}

	if ext != "" {
		return ext
	}
	filename := strings.TrimSpace(result.Stdout)
	return strings.TrimPrefix(filepath.Ext(filename), ".")
}
