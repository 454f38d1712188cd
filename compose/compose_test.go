package compose

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/sirupsen/logrus"
	"gotest.tools/v3/assert"

	"github.com/hannesrauhe/artframe/acquire"
	"github.com/hannesrauhe/artframe/base"
	"github.com/hannesrauhe/artframe/geometry"
	"github.com/hannesrauhe/artframe/icons"
)

func newTestContext(t *testing.T) *base.Context {
	t.Helper()
	ctx, cancel := base.NewBaseContext(logrus.StandardLogger())
	t.Cleanup(cancel)
	return ctx
}

func uniformImage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Rect, image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func newTestComposer() *Composer {
	return &Composer{
		Canvas: CanvasSpec{Width: 200, Height: 100},
		Text: TextConfig{
			Enabled:    true,
			TitleSize:  20,
			ArtistSize: 14,
			TitleLoc:   30,
			ArtistLoc:  10,
			Padding:    5,
			Opacity:    0xff,
			BoxToFloor: true,
			BoxToEdge:  true,
		},
		Icons: IconConfig{
			Corner:  geometry.TopRight,
			Padding: 10,
			Size:    20,
			Gap:     5,
			Stroke:  3,
			Opacity: 0xff,
			Color:   "#ffffff",
		},
	}
}

var black = color.RGBA{A: 0xff}
var white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

func TestComposeCaptionBox(t *testing.T) {
	c := newTestComposer()
	meta := acquire.Meta{Title: "Test Title", Artist: "Test Artist"}
	dst, err := c.Compose(newTestContext(t), uniformImage(200, 100, black), meta, nil, nil)
	assert.NilError(t, err)

	// box snapped to floor and edges covers the bottom-left corner
	assert.Equal(t, dst.RGBAAt(2, 95), white)
	// the image above the box is untouched
	assert.Equal(t, dst.RGBAAt(2, 10), black)
}

func TestComposeWithoutCaptions(t *testing.T) {
	c := newTestComposer()
	dst, err := c.Compose(newTestContext(t), uniformImage(200, 100, black), acquire.Meta{}, nil, nil)
	assert.NilError(t, err)
	assert.Equal(t, dst.RGBAAt(2, 95), black)
}

func TestComposeIconStrip(t *testing.T) {
	c := newTestComposer()
	c.Text.Enabled = false
	seq := &icons.Sequence{}
	seq.Append(icons.Exception)
	dst, err := c.Compose(newTestContext(t), uniformImage(200, 100, black), acquire.Meta{}, seq, nil)
	assert.NilError(t, err)

	// first top-right slot starts at x=170, the exclamation bar is at the slot center
	assert.Equal(t, dst.RGBAAt(180, 12), white)
}

func TestComposeStatusShape(t *testing.T) {
	c := newTestComposer()
	c.Text.Enabled = false
	shape := icons.Square
	dst, err := c.Compose(newTestContext(t), uniformImage(200, 100, black), acquire.Meta{}, nil, &shape)
	assert.NilError(t, err)

	// the shape sits top-left regardless of the strip corner
	assert.Equal(t, dst.RGBAAt(10, 10), white)
}

func TestComposeScalesDown(t *testing.T) {
	c := newTestComposer()
	c.Text.Enabled = false
	red := color.RGBA{R: 0xff, A: 0xff}
	dst, err := c.Compose(newTestContext(t), uniformImage(400, 200, red), acquire.Meta{}, nil, nil)
	assert.NilError(t, err)

	assert.Equal(t, dst.Bounds().Dx(), 200)
	assert.Equal(t, dst.Bounds().Dy(), 100)
	assert.Equal(t, dst.RGBAAt(100, 50), red)
	assert.Equal(t, dst.RGBAAt(2, 50), red)
}

func TestComposeCentersSmallContent(t *testing.T) {
	c := newTestComposer()
	c.Text.Enabled = false
	dst, err := c.Compose(newTestContext(t), uniformImage(100, 40, black), acquire.Meta{}, nil, nil)
	assert.NilError(t, err)

	// centered content with white borders, nothing upscaled
	assert.Equal(t, dst.RGBAAt(100, 50), black)
	assert.Equal(t, dst.RGBAAt(10, 50), white)
	assert.Equal(t, dst.RGBAAt(100, 5), white)
}

func TestComposeWideContentIsLetterboxed(t *testing.T) {
	c := newTestComposer()
	c.Text.Enabled = false
	// 600x200 shrinks to 200x66 and is centered vertically
	red := color.RGBA{R: 0xff, A: 0xff}
	dst, err := c.Compose(newTestContext(t), uniformImage(600, 200, red), acquire.Meta{}, nil, nil)
	assert.NilError(t, err)
	assert.Equal(t, dst.RGBAAt(100, 50), red)
	assert.Equal(t, dst.RGBAAt(100, 5), white)
	assert.Equal(t, dst.RGBAAt(100, 95), white)
}
