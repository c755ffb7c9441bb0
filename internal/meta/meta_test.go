package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tags := Parse("v=dQw4w9WgXcQ,a=xyz123,co=some-fanart-id,co-rotate=90,co-crop=10-20-500-400,co-resize=1920-1080,co-contrast=auto,bg=https://images.fanart.tv/fanart/bg-id,p1=Alice,p2=Bob,preview=12.5,medley=100-200")

	assert.Equal(t, "dQw4w9WgXcQ", tags.Video)
	assert.Equal(t, "xyz123", tags.Audio)

	require.NotNil(t, tags.Cover)
	assert.Equal(t, "some-fanart-id", tags.Cover.Source)
	assert.Equal(t, "https://images.fanart.tv/fanart/some-fanart-id", tags.Cover.SourceURL())
	assert.Equal(t, 90.0, tags.Cover.Rotate)
	require.NotNil(t, tags.Cover.Crop)
	assert.Equal(t, &CropMetaTags{Left: 10, Upper: 20, Right: 510, Lower: 420}, tags.Cover.Crop)
	assert.Equal(t, &ResizeMetaTags{Width: 1920, Height: 1080}, tags.Cover.Resize)
	assert.True(t, tags.Cover.ContrastAuto)
	assert.True(t, tags.Cover.ImageProcessing())

	require.NotNil(t, tags.Background)
	assert.Equal(t, "https://images.fanart.tv/fanart/bg-id", tags.Background.SourceURL())
	assert.False(t, tags.Background.ImageProcessing())

	assert.Equal(t, "Alice", tags.Player1)
	assert.Equal(t, "Bob", tags.Player2)
	assert.Equal(t, 12.5, tags.Preview)
	assert.Equal(t, &MedleyTag{Start: 100, End: 200}, tags.Medley)
}

func TestParse_TolerantOnGarbage(t *testing.T) {
	tags := Parse("novalue=,=nokey,junk,co-crop=1-2,co-rotate=abc,v=ok")
	assert.Equal(t, "ok", tags.Video)
	assert.Nil(t, tags.Cover)
	assert.Nil(t, tags.Background)
}

func TestParse_SquareResize(t *testing.T) {
	tags := Parse("co=x,co-resize=500")
	require.NotNil(t, tags.Cover)
	assert.Equal(t, &ResizeMetaTags{Width: 500, Height: 500}, tags.Cover.Resize)
}

func TestString_RoundTrip(t *testing.T) {
	value := "v=dQw4w9WgXcQ,a=xyz123,co=cover-id,co-rotate=90,co-crop=10-20-500-400,co-contrast=auto,bg=bg-id,bg-resize=1920-1080,p1=Alice,p2=Bob,preview=12.5,medley=100-200"
	assert.Equal(t, value, Parse(value).String())
}

func TestString_StripsFanartPrefix(t *testing.T) {
	tags := &MetaTags{Cover: &ImageMetaTags{Source: "https://images.fanart.tv/fanart/abc"}}
	assert.Equal(t, "co=abc", tags.String())
}
