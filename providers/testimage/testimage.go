// Package testimage synthesizes a placeholder frame. It is the fallback
// source when no real source carries any weight and never touches the
// network or the filesystem.
package testimage

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hannesrauhe/artframe/acquire"
	"github.com/hannesrauhe/artframe/base"
)

type Provider struct{}

var _ acquire.Provider = &Provider{}

// Fetch returns a shaded placeholder with captions pointing the user at
// the config file
func (p *Provider) Fetch(ctx *base.Context, req acquire.Request) (image.Image, acquire.Result, error) {
	w, h := req.Width, req.Height
	if w <= 0 || h <= 0 {
		w, h = 800, 480
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		// vertical shade on the base tone so the panel visibly updates
		shade := uint8(y * 60 / h)
		c := color.RGBA{R: 85 + shade, G: 149, B: 194 - shade, A: 0xff}
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	res := acquire.Result{
		Title:  "It Works! Explore the config to customise!",
		Artist: fmt.Sprintf("I could have been '%s'", req.Prompt),
	}
	return img, res, nil
}
