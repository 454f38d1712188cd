// Package compose turns an acquired image into the final frame raster:
// scale and center-crop to the panel, overlay the icon strip and the
// caption box with title and artist text.
package compose

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/hannesrauhe/artframe/acquire"
	"github.com/hannesrauhe/artframe/base"
	"github.com/hannesrauhe/artframe/geometry"
	"github.com/hannesrauhe/artframe/icons"
	"github.com/hannesrauhe/artframe/utils"
)

// CanvasSpec is the resolution of the target panel
type CanvasSpec struct {
	Width  int
	Height int
}

// TextConfig controls the caption box
type TextConfig struct {
	Enabled    bool
	FontFile   string
	TitleSize  float64
	ArtistSize float64
	// TitleLoc and ArtistLoc are the anchor offsets in pixels from the bottom edge
	TitleLoc  int
	ArtistLoc int
	Padding   int
	Opacity   uint8
	// BoxToFloor extends the caption box down to the bottom edge
	BoxToFloor bool
	// BoxToEdge extends the caption box to the full canvas width
	BoxToEdge bool
}

// IconConfig controls the icon strip
type IconConfig struct {
	Corner  geometry.Corner
	Padding int
	Size    int
	Gap     int
	Stroke  int
	Opacity uint8
	Color   string
}

// Composer applies the composition geometry to produce the frame raster
type Composer struct {
	Canvas CanvasSpec
	Text   TextConfig
	Icons  IconConfig
}

// Compose crops img to the panel, centers it on a white canvas and draws
// the icon strip, the optional status shape and the caption box. The
// input image is never upscaled.
func (c *Composer) Compose(ctx *base.Context, img image.Image, meta acquire.Meta, seq *icons.Sequence, shape *icons.Icon) (*image.RGBA, error) {
	img = scaleToFit(img, c.Canvas.Width, c.Canvas.Height)

	bounds := img.Bounds()
	crop := geometry.CropToFit(bounds.Dx(), bounds.Dy(), c.Canvas.Width, c.Canvas.Height)

	dst := image.NewRGBA(image.Rect(0, 0, c.Canvas.Width, c.Canvas.Height))
	draw.Draw(dst, dst.Rect, image.NewUniform(color.White), image.Point{}, draw.Src)

	// center the cropped region on the canvas, a crop clamped to a small
	// content leaves white borders instead of inventing pixels
	offset := image.Pt((c.Canvas.Width-crop.Width())/2, (c.Canvas.Height-crop.Height())/2)
	target := image.Rectangle{Min: offset, Max: offset.Add(image.Pt(crop.Width(), crop.Height()))}
	draw.Draw(dst, target, img, bounds.Min.Add(image.Pt(crop.Left, crop.Top)), draw.Src)

	c.drawIcons(ctx, dst, seq, shape)

	if c.Text.Enabled {
		c.drawCaptions(ctx, dst, meta)
	}
	return dst, nil
}

// scaleToFit shrinks img so it fits within maxW x maxH, keeping the aspect
// ratio. Smaller images are returned unchanged.
func scaleToFit(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return img
	}
	scaledW := maxW
	scaledH := h * maxW / w
	if scaledH > maxH {
		scaledH = maxH
		scaledW = w * maxH / h
	}
	scaled := image.NewRGBA(image.Rect(0, 0, scaledW, scaledH))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Rect, img, b, xdraw.Src, nil)
	return scaled
}

func (c *Composer) drawIcons(ctx *base.Context, dst *image.RGBA, seq *icons.Sequence, shape *icons.Icon) {
	iconColor := color.Color(color.White)
	if c.Icons.Color != "" {
		parsed, err := utils.ParseHexColor(c.Icons.Color)
		if err != nil {
			ctx.GetLogger().Warnf("Invalid icon color, using white: %v", err)
		} else {
			iconColor = parsed
		}
	}

	if seq != nil {
		for i, ic := range seq.Icons() {
			slot := geometry.IconSlot(i, c.Icons.Size, c.Icons.Gap, c.Icons.Padding, c.Icons.Corner, c.Canvas.Width, c.Canvas.Height)
			icons.Draw(dst, ic, slot, c.Icons.Stroke, iconColor, c.Icons.Opacity)
		}
	}

	// the status shape always sits top-left, opposite the icon strip's default corner
	if shape != nil {
		slot := geometry.IconSlot(0, c.Icons.Size, c.Icons.Gap, c.Icons.Padding, geometry.TopLeft, c.Canvas.Width, c.Canvas.Height)
		icons.Draw(dst, *shape, slot, c.Icons.Stroke, iconColor, c.Icons.Opacity)
	}
}

// drawCaptions measures title and artist anchored at their bottom-center,
// unions and pads the boxes, applies the configured snapping and draws the
// translucent box with both text lines. Nothing is drawn when both
// captions are empty.
func (c *Composer) drawCaptions(ctx *base.Context, dst *image.RGBA, meta acquire.Meta) {
	titleFace := loadFace(ctx, c.Text.FontFile, c.Text.TitleSize)
	artistFace := loadFace(ctx, c.Text.FontFile, c.Text.ArtistSize)

	anchorX := c.Canvas.Width / 2
	boxes := make([]geometry.Rect, 0, 2)
	if meta.Title != "" {
		boxes = append(boxes, textBox(titleFace, meta.Title, anchorX, c.Canvas.Height-c.Text.TitleLoc))
	}
	if meta.Artist != "" {
		boxes = append(boxes, textBox(artistFace, meta.Artist, anchorX, c.Canvas.Height-c.Text.ArtistLoc))
	}
	if len(boxes) == 0 {
		return
	}

	box := geometry.Expand(geometry.Union(boxes), c.Text.Padding)
	if c.Text.BoxToFloor {
		box = geometry.SnapToFloor(box, c.Canvas.Height)
	}
	if c.Text.BoxToEdge {
		box = geometry.SnapToSides(box, 0, c.Canvas.Width)
	}

	fill := image.NewUniform(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: c.Text.Opacity})
	draw.Draw(dst, box.ImageRect(), fill, image.Point{}, draw.Over)

	if meta.Artist != "" {
		drawBottomCentered(dst, artistFace, meta.Artist, anchorX, c.Canvas.Height-c.Text.ArtistLoc)
	}
	if meta.Title != "" {
		drawBottomCentered(dst, titleFace, meta.Title, anchorX, c.Canvas.Height-c.Text.TitleLoc)
	}
}

// textBox returns the bounding box of text rendered with its bottom-center
// at the anchor point
func textBox(face font.Face, text string, anchorX, anchorY int) geometry.Rect {
	bounds, adv := font.BoundString(face, text)
	width := adv.Ceil()
	height := (bounds.Max.Y - bounds.Min.Y).Ceil()
	left := anchorX - width/2
	return geometry.Rect{Left: left, Top: anchorY - height, Right: left + width, Bottom: anchorY}
}

func drawBottomCentered(dst *image.RGBA, face font.Face, text string, anchorX, anchorY int) {
	adv := font.MeasureString(face, text)
	descent := face.Metrics().Descent.Ceil()
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}
	d.Dot.X = fixed.I(anchorX) - adv/2
	d.Dot.Y = fixed.I(anchorY - descent)
	d.DrawString(text)
}
