package meta

import (
	"fmt"
	"strconv"
	"strings"
)

const fanartURLPrefix = "https://images.fanart.tv/fanart/"

// CropMetaTags is a crop box in pixels, addressed from the top-left corner.
type CropMetaTags struct {
	Left  int
	Upper int
	Right int
	Lower int
}

// ResizeMetaTags is a target size in pixels.
type ResizeMetaTags struct {
	Width  int
	Height int
}

// ImageMetaTags describes one image resource and its processing directives.
type ImageMetaTags struct {
	// Source is either a full URL or a bare fanart.tv id.
	Source string

	// Rotate is a counter-clockwise rotation in degrees; 0 means none.
	Rotate float64

	Crop   *CropMetaTags
	Resize *ResizeMetaTags

	// ContrastAuto selects histogram auto-contrast; otherwise Contrast is
	// a linear enhancement factor (0 means no contrast change).
	ContrastAuto bool
	Contrast     float64
}

// SourceURL expands a bare fanart id into the full image URL.
func (i *ImageMetaTags) SourceURL() string {
	if strings.Contains(i.Source, "://") {
		return i.Source
	}
	return fanartURLPrefix + i.Source
}

// ImageProcessing reports whether any processing directive is set.
func (i *ImageMetaTags) ImageProcessing() bool {
	return i.Rotate != 0 || i.Crop != nil || i.Resize != nil || i.ContrastAuto || i.Contrast != 0
}

// MedleyTag marks the medley section in beats.
type MedleyTag struct {
	Start int
	End   int
}

// MetaTags is the decoded #VIDEO header value.
type MetaTags struct {
	// Video and Audio are download resources: YouTube ids, host paths or
	// full URLs. An empty Audio means the audio is extracted from Video.
	Video string
	Audio string

	Cover      *ImageMetaTags
	Background *ImageMetaTags

	Player1 string
	Player2 string

	// Preview is the preview start in seconds; 0 means unset.
	Preview float64

	Medley *MedleyTag
}

// Parse decodes a #VIDEO header value. Unknown or malformed pairs are
// skipped, so any input yields a usable (possibly empty) result; this
// mirrors how the rest of the system treats bad remote metadata.
func Parse(value string) *MetaTags {
	tags := &MetaTags{}
	for _, pair := range strings.Split(value, ",") {
		key, val, found := strings.Cut(pair, "=")
		if !found || val == "" {
			continue
		}
		tags.setTag(strings.TrimSpace(key), strings.TrimSpace(val))
	}
	return tags
}

func (t *MetaTags) setTag(key, value string) {
	switch key {
	case "v":
		t.Video = value
	case "a":
		t.Audio = value
	case "co":
		t.cover().Source = value
	case "co-rotate":
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			t.cover().Rotate = f
		}
	case "co-crop":
		if crop := parseCrop(value); crop != nil {
			t.cover().Crop = crop
		}
	case "co-resize":
		if resize := parseResize(value); resize != nil {
			t.cover().Resize = resize
		}
	case "co-contrast":
		if value == "auto" {
			t.cover().ContrastAuto = true
		} else if f, err := strconv.ParseFloat(value, 64); err == nil {
			t.cover().Contrast = f
		}
	case "bg":
		t.background().Source = value
	case "bg-crop":
		if crop := parseCrop(value); crop != nil {
			t.background().Crop = crop
		}
	case "bg-resize":
		if resize := parseResize(value); resize != nil {
			t.background().Resize = resize
		}
	case "p1":
		t.Player1 = value
	case "p2":
		t.Player2 = value
	case "preview":
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			t.Preview = f
		}
	case "medley":
		if parts := splitInts(value, 2); parts != nil {
			t.Medley = &MedleyTag{Start: parts[0], End: parts[1]}
		}
	}
}

func (t *MetaTags) cover() *ImageMetaTags {
	if t.Cover == nil {
		t.Cover = &ImageMetaTags{}
	}
	return t.Cover
}

func (t *MetaTags) background() *ImageMetaTags {
	if t.Background == nil {
		t.Background = &ImageMetaTags{}
	}
	return t.Background
}

// parseCrop parses "left-upper-width-height".
func parseCrop(value string) *CropMetaTags {
	parts := splitInts(value, 4)
	if parts == nil {
		return nil
	}
	return &CropMetaTags{
		Left:  parts[0],
		Upper: parts[1],
		Right: parts[0] + parts[2],
		Lower: parts[1] + parts[3],
	}
}

// parseResize parses "width-height" or a single value for square sizes.
func parseResize(value string) *ResizeMetaTags {
	if parts := splitInts(value, 2); parts != nil {
		return &ResizeMetaTags{Width: parts[0], Height: parts[1]}
	}
	if parts := splitInts(value, 1); parts != nil {
		return &ResizeMetaTags{Width: parts[0], Height: parts[0]}
	}
	return nil
}

func splitInts(value string, n int) []int {
	fields := strings.Split(value, "-")
	if len(fields) != n {
		return nil
	}
	ints := make([]int, n)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil
		}
		ints[i] = v
	}
	return ints
}

// String encodes the tags in canonical key order, ready to be prefixed
// with "#VIDEO:".
func (t *MetaTags) String() string {
	var parts []string
	add := func(key, value string) {
		if value != "" {
			parts = append(parts, key+"="+value)
		}
	}

	add("v", t.Video)
	add("a", t.Audio)
	if c := t.Cover; c != nil {
		add("co", strings.TrimPrefix(c.Source, fanartURLPrefix))
		addImage(&parts, "co", c)
		if c.ContrastAuto {
			add("co-contrast", "auto")
		} else if c.Contrast != 0 {
			add("co-contrast", formatFloat(c.Contrast))
		}
	}
	if b := t.Background; b != nil {
		add("bg", strings.TrimPrefix(b.Source, fanartURLPrefix))
		addImage(&parts, "bg", b)
	}
	add("p1", t.Player1)
	add("p2", t.Player2)
	if t.Preview != 0 {
		add("preview", formatFloat(t.Preview))
	}
	if t.Medley != nil {
		add("medley", fmt.Sprintf("%d-%d", t.Medley.Start, t.Medley.End))
	}

	return strings.Join(parts, ",")
}

func addImage(parts *[]string, prefix string, img *ImageMetaTags) {
	if img.Rotate != 0 {
		*parts = append(*parts, fmt.Sprintf("%s-rotate=%s", prefix, formatFloat(img.Rotate)))
	}
	if c := img.Crop; c != nil {
		*parts = append(*parts, fmt.Sprintf("%s-crop=%d-%d-%d-%d", prefix, c.Left, c.Upper, c.Right-c.Left, c.Lower-c.Upper))
	}
	if r := img.Resize; r != nil {
		*parts = append(*parts, fmt.Sprintf("%s-resize=%d-%d", prefix, r.Width, r.Height))
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
