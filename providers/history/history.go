// Package history serves a random image that a previous run generated and
// saved, restoring its captions from the embedded PNG metadata.
package history

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/hannesrauhe/artframe/acquire"
	"github.com/hannesrauhe/artframe/base"
	"github.com/hannesrauhe/artframe/pngtext"
	"github.com/hannesrauhe/artframe/utils"
)

type Config struct {
	Location string
}

type Provider struct {
	cfg Config
	rnd *rand.Rand
}

var _ acquire.Provider = &Provider{}

func NewProvider(cfg Config, rnd *rand.Rand) *Provider {
	return &Provider{cfg: cfg, rnd: rnd}
}

func (p *Provider) Fetch(ctx *base.Context, req acquire.Request) (image.Image, acquire.Result, error) {
	path, err := utils.RandomFileOfType(p.rnd, p.cfg.Location, []string{"png"})
	if err != nil {
		return nil, acquire.Result{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, acquire.Result{}, err
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, acquire.Result{}, fmt.Errorf("decoding %v: %w", path, err)
	}

	res := acquire.Result{Title: filepath.Base(path)}
	meta, err := pngtext.Decode(bytes.NewReader(raw))
	if err != nil {
		ctx.GetLogger().Warnf("Could not read metadata of %q: %v", path, err)
		return img, res, nil
	}
	if title, ok := meta[pngtext.KeyTitle]; ok && title != "" {
		res.Title = title
	} else if prompt, ok := meta[pngtext.KeyPrompt]; ok && prompt != "" {
		res.Title = prompt
	}
	if artist, ok := meta[pngtext.KeyArtist]; ok {
		res.Artist = artist
	}
	return img, res, nil
}
