package resource

import "fmt"

// MediaOptions selects the yt-dlp format for a download.
type MediaOptions interface {
	// YtdlpFormat returns the value for yt-dlp's --format flag.
	YtdlpFormat() string
}

// AudioOptions describes an audio-only download. The stream is extracted
// and re-encoded to Format by yt-dlp's audio postprocessor.
type AudioOptions struct {
	// Format is the target container: "m4a", "mp3", "ogg" or "opus".
	Format string
}

func (o AudioOptions) YtdlpFormat() string {
	return "bestaudio"
}

// VideoOptions describes a video download.
type VideoOptions struct {
	// Container is the target extension, e.g. "mp4".
	Container string

	// MaxWidth and MaxFPS cap the selected stream; 0 means no cap.
	MaxWidth int
	MaxFPS   int
}

func (o VideoOptions) YtdlpFormat() string {
	format := "bestvideo*"
	if o.Container != "" {
		format += fmt.Sprintf("[ext=%s]", o.Container)
	}
	if o.MaxWidth > 0 {
		format += fmt.Sprintf("[width<=%d]", o.MaxWidth)
	}
	if o.MaxFPS > 0 {
		format += fmt.Sprintf("[fps<=%d]", o.MaxFPS)
	}
	return format
}
