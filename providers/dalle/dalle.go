// Package dalle generates an image through the OpenAI image API. The API
// only offers square resolutions, so the provider requests the smallest
// square covering the panel and can optionally widen the result with an
// infill edit pass instead of letting the composer crop it.
package dalle

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hannesrauhe/artframe/acquire"
	"github.com/hannesrauhe/artframe/base"
)

type Config struct {
	Key string
	// Host overrides the API base URL, e.g. for a proxy. Empty uses the
	// official endpoint.
	Host string
	// Infill requests a second edit pass that paints the side regions the
	// panel would otherwise show as borders or crop away
	Infill bool
	// InfillPercent is how much of the square is reserved for infill
	InfillPercent int
}

type Provider struct {
	cfg    Config
	client *openai.Client
}

var _ acquire.Provider = &Provider{}

func NewProvider(cfg Config) *Provider {
	clientCfg := openai.DefaultConfig(cfg.Key)
	if cfg.Host != "" {
		clientCfg.BaseURL = cfg.Host
	}
	return &Provider{cfg: cfg, client: openai.NewClientWithConfig(clientCfg)}
}

// squareSize picks the smallest supported square resolution covering the panel
func squareSize(width, height int) string {
	longest := width
	if height > longest {
		longest = height
	}
	switch {
	case longest <= 256:
		return openai.CreateImageSize256x256
	case longest <= 512:
		return openai.CreateImageSize512x512
	default:
		return openai.CreateImageSize1024x1024
	}
}

func (p *Provider) Fetch(ctx *base.Context, req acquire.Request) (image.Image, acquire.Result, error) {
	resp, err := p.client.CreateImage(ctx.GoContext, openai.ImageRequest{
		Prompt:         req.Prompt,
		N:              1,
		Size:           squareSize(req.Width, req.Height),
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, acquire.Result{}, fmt.Errorf("image request failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, acquire.Result{}, fmt.Errorf("image response contains no image")
	}
	img, err := decodeB64Image(resp.Data[0].B64JSON)
	if err != nil {
		return nil, acquire.Result{}, err
	}

	if p.cfg.Infill && p.cfg.InfillPercent > 0 {
		filled, err := p.infill(ctx, req.Prompt, img)
		if err != nil {
			ctx.GetLogger().Warnf("Infill pass failed, using the plain image: %v", err)
		} else {
			img = filled
		}
	}
	return img, acquire.Result{}, nil
}

// infill shrinks the generated image onto a transparent square and asks the
// edit endpoint to paint the exposed margins in the same style
func (p *Provider) infill(ctx *base.Context, promptText string, img image.Image) (image.Image, error) {
	b := img.Bounds()
	side := b.Dx()
	if b.Dy() > side {
		side = b.Dy()
	}

	keep := side * (100 - p.cfg.InfillPercent) / 100
	if keep <= 0 {
		return nil, fmt.Errorf("infill percent %v leaves no image", p.cfg.InfillPercent)
	}
	canvas := image.NewRGBA(image.Rect(0, 0, side, side))
	offset := (side - keep) / 2
	target := image.Rect(offset, offset, offset+keep, offset+keep)
	draw.Draw(canvas, target, resizeNearest(img, keep, keep), image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, err
	}

	resp, err := p.client.CreateEditImage(ctx.GoContext, openai.ImageEditRequest{
		Image:          openai.WrapReader(&buf, "image.png", "image/png"),
		Prompt:         promptText,
		N:              1,
		Size:           fmt.Sprintf("%vx%v", side, side),
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("edit response contains no image")
	}
	return decodeB64Image(resp.Data[0].B64JSON)
}

func resizeNearest(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		sy := b.Min.Y + y*b.Dy()/h
		for x := 0; x < w; x++ {
			dst.Set(x, y, img.At(b.Min.X+x*b.Dx()/w, sy))
		}
	}
	return dst
}

func decodeB64Image(b64 string) (image.Image, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decoding image payload: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}
