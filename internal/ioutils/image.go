package ioutils

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/mjhalwa/usdb-syncer/internal/meta"
)

// ImageService applies the image processing directives from song meta tags.
//
// Example usage:
//
//	svc := NewImageService()
//	processed, err := svc.Process(rawBytes, tags.Cover, 1920)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// Process applies the directives in tags (rotate, crop, resize, contrast)
// and scales the result down to maxWidth if it is wider. The processed
// image is JPEG-encoded; if nothing needed to be done the input bytes are
// returned untouched so an already-fine JPEG is not re-encoded.
func (s *ImageService) Process(data []byte, tags *meta.ImageMetaTags, maxWidth int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	processed := false
	if tags != nil && tags.ImageProcessing() {
		processed = true
		if tags.Rotate != 0 {
			img = rotate(img, tags.Rotate)
		}
		if crop := tags.Crop; crop != nil {
			img = cropBox(img, crop)
		}
		if resize := tags.Resize; resize != nil {
			img = scale(img, resize.Width, resize.Height)
		}
		if tags.ContrastAuto {
			img = autoContrast(img, 5)
		} else if tags.Contrast != 0 {
			img = adjustContrast(img, tags.Contrast)
		}
	}

	if width := img.Bounds().Dx(); maxWidth > 0 && width > maxWidth {
		processed = true
		height := int(math.Round(float64(img.Bounds().Dy()) * float64(maxWidth) / float64(width)))
		img = scale(img, maxWidth, height)
	}

	if !processed {
		return data, nil
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// scale resizes to exactly width x height using Catmull-Rom interpolation.
func scale(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// rotate rotates counter-clockwise by degrees, expanding the canvas to the
// rotated bounding box.
func rotate(img image.Image, degrees float64) image.Image {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)

	sr := img.Bounds()
	w, h := float64(sr.Dx()), float64(sr.Dy())
	dw := math.Abs(w*cos) + math.Abs(h*sin)
	dh := math.Abs(w*sin) + math.Abs(h*cos)

	dw, dh = math.Round(dw), math.Round(dh)
	dst := image.NewRGBA(image.Rect(0, 0, int(dw), int(dh)))

	// Map source space to destination space: rotate about the source
	// center, then recenter on the destination canvas. Positive angles
	// rotate counter-clockwise in the y-down image coordinate system.
	scx, scy := float64(sr.Min.X)+w/2, float64(sr.Min.Y)+h/2
	dcx, dcy := dw/2, dh/2
	m := f64.Aff3{
		cos, sin, dcx - cos*scx - sin*scy,
		-sin, cos, dcy + sin*scx - cos*scy,
	}
	draw.CatmullRom.Transform(dst, m, img, sr, draw.Over, nil)
	return dst
}

// cropBox crops to the given box, clamped to the image bounds.
func cropBox(img image.Image, crop *meta.CropMetaTags) image.Image {
	b := img.Bounds()
	box := image.Rect(
		b.Min.X+crop.Left, b.Min.Y+crop.Upper,
		b.Min.X+crop.Right, b.Min.Y+crop.Lower,
	).Intersect(b)
	if box.Empty() {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, box.Dx(), box.Dy()))
	draw.Copy(dst, image.Point{}, img, box, draw.Over, nil)
	return dst
}

// adjustContrast linearly scales each channel around the midpoint by
// factor: 1 leaves the image unchanged, >1 increases contrast.
func adjustContrast(img image.Image, factor float64) image.Image {
	return mapChannels(img, func(c uint8) uint8 {
		return clampU8(128 + factor*(float64(c)-128))
	})
}

// autoContrast stretches each channel's histogram so that the given
// percentage of the darkest and brightest pixels saturates.
func autoContrast(img image.Image, cutoffPercent int) image.Image {
	rgba := toRGBA(img)
	b := rgba.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return rgba
	}
	cutoff := total * cutoffPercent / 100

	var lut [3][256]uint8
	for ch := 0; ch < 3; ch++ {
		var hist [256]int
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				hist[rgba.Pix[rgba.PixOffset(x, y)+ch]]++
			}
		}
		lo, hi := percentileBounds(hist, cutoff)
		for v := 0; v < 256; v++ {
			if hi <= lo {
				lut[ch][v] = uint8(v)
			} else {
				lut[ch][v] = clampU8(float64(v-lo) * 255 / float64(hi-lo))
			}
		}
	}

	out := image.NewRGBA(b)
	copy(out.Pix, rgba.Pix)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			off := out.PixOffset(x, y)
			for ch := 0; ch < 3; ch++ {
				out.Pix[off+ch] = lut[ch][out.Pix[off+ch]]
			}
		}
	}
	return out
}

// percentileBounds finds the lowest and highest channel values after
// discarding cutoff pixels from each end of the histogram.
func percentileBounds(hist [256]int, cutoff int) (lo, hi int) {
	remaining := cutoff
	for lo = 0; lo < 255; lo++ {
		remaining -= hist[lo]
		if remaining < 0 {
			break
		}
	}
	remaining = cutoff
	for hi = 255; hi > 0; hi-- {
		remaining -= hist[hi]
		if remaining < 0 {
			break
		}
	}
	return lo, hi
}

func mapChannels(img image.Image, f func(uint8) uint8) image.Image {
	rgba := toRGBA(img)
	b := rgba.Bounds()
	out := image.NewRGBA(b)
	copy(out.Pix, rgba.Pix)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			off := out.PixOffset(x, y)
			for ch := 0; ch < 3; ch++ {
				out.Pix[off+ch] = f(out.Pix[off+ch])
			}
		}
	}
	return out
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Copy(rgba, b.Min, img, b, draw.Over, nil)
	return rgba
}

func clampU8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
