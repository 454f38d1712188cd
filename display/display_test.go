package display

import (
	"image"
	"image/png"
	"os"
	"path"
	"testing"

	"gotest.tools/v3/assert"
)

func TestLoadProfile(t *testing.T) {
	p, err := LoadProfile("mock")
	assert.NilError(t, err)
	assert.Equal(t, p.Width, 800)
	assert.Equal(t, p.Height, 480)
	assert.Equal(t, p.Mono, false)

	p, err = LoadProfile("waveshare_epd7in5_v2")
	assert.NilError(t, err)
	assert.Equal(t, p.Width, 800)
	assert.Equal(t, p.Height, 480)
	assert.Equal(t, p.Mono, true)

	_, err = LoadProfile("nonexistent_panel")
	assert.ErrorContains(t, err, "unknown display type")
}

func TestFileDisplayRender(t *testing.T) {
	profile := Profile{Name: "mock", Width: 16, Height: 8}
	out := path.Join(t.TempDir(), "frames", "artframe.png")
	d := NewFileDisplay(profile, out)
	assert.Equal(t, d.Width(), 16)
	assert.Equal(t, d.Height(), 8)

	assert.NilError(t, d.Render(image.NewRGBA(image.Rect(0, 0, 16, 8))))
	assert.NilError(t, d.Close())

	f, err := os.Open(out)
	assert.NilError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	assert.NilError(t, err)
	assert.Equal(t, img.Bounds().Dx(), 16)
	assert.Equal(t, img.Bounds().Dy(), 8)
}

func TestFileDisplayMono(t *testing.T) {
	profile := Profile{Name: "waveshare_epd4in2", Width: 8, Height: 8, Mono: true}
	out := path.Join(t.TempDir(), "mono.png")
	d := NewFileDisplay(profile, out)

	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	assert.NilError(t, d.Render(src))

	f, err := os.Open(out)
	assert.NilError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	assert.NilError(t, err)
	_, isGray := img.(*image.Gray)
	assert.Assert(t, isGray, "mono panel output is not grayscale, got %T", img)
}
