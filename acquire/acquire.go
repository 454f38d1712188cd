// Package acquire obtains a usable image for the current run: it draws a
// source from the weighted table, dispatches to the matching provider and
// permanently excludes sources that fail until one succeeds or every
// source is exhausted.
package acquire

import (
	"errors"
	"fmt"
	"image"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/hannesrauhe/artframe/base"
	"github.com/hannesrauhe/artframe/icons"
	"github.com/hannesrauhe/artframe/pngtext"
	"github.com/hannesrauhe/artframe/prompt"
	"github.com/hannesrauhe/artframe/selector"
)

// ErrAllSourcesExhausted is returned when every configured source failed
// during this run, the caller must not update the display in that case
var ErrAllSourcesExhausted = errors.New("all image sources exhausted")

// Request is handed to a provider to fetch one image
type Request struct {
	Prompt string
	Width  int
	Height int
}

// Result carries captions a provider derived itself, file-based providers
// fill these from filenames or embedded metadata
type Result struct {
	Title  string
	Artist string
}

// Provider fetches an image from one source
type Provider interface {
	Fetch(ctx *base.Context, req Request) (image.Image, Result, error)
}

// Meta is the caption metadata of an acquired image
type Meta struct {
	Title  string
	Artist string
	Prompt string
}

const filePreamble = "artframe - "

// Orchestrator drives source selection, prompt building and the
// exclusion-and-reselect loop
type Orchestrator struct {
	Providers  map[selector.Source]Provider
	Prompts    *prompt.Builder
	PromptMode prompt.Mode
	Icons      *icons.Sequence
	Width      int
	Height     int
	// SaveLocation is the history folder for generated images, empty disables saving
	SaveLocation string

	rnd *rand.Rand
}

// NewOrchestrator wires the orchestrator for one run
func NewOrchestrator(providers map[selector.Source]Provider, prompts *prompt.Builder, mode prompt.Mode, iconSeq *icons.Sequence, width, height int, rnd *rand.Rand) *Orchestrator {
	return &Orchestrator{
		Providers:  providers,
		Prompts:    prompts,
		PromptMode: mode,
		Icons:      iconSeq,
		Width:      width,
		Height:     height,
		rnd:        rnd,
	}
}

func isGenerative(src selector.Source) bool {
	switch src {
	case selector.SourceStability, selector.SourceDalle, selector.SourceAutomatic, selector.SourceTest:
		return true
	}
	return false
}

// AcquireImage runs the select/fetch/exclude loop over the table. Each
// failed source is removed from circulation for the rest of the run and
// marked with an exception icon; the loop is bounded by the number of
// live sources plus the single fallback attempt.
func (o *Orchestrator) AcquireImage(ctx *base.Context, table selector.Table) (image.Image, Meta, selector.Source, error) {
	maxAttempts := table.Live() + 1
	for attempt := 0; attempt < maxAttempts; attempt++ {
		src := table.Choose(o.rnd)
		img, meta, err := o.fetch(ctx, src)
		if err == nil {
			return img, meta, src, nil
		}
		ctx.GetLogger().Warnf("Image failed to load on source %q, removing from circulation for this run: %v", src, err)
		o.Icons.Append(icons.Exception)
		if src == selector.SourceTest {
			// the fallback itself failed, nothing left to try
			break
		}
		table = table.Exclude(ctx.GetLogger(), src)
	}
	return nil, Meta{}, "", ErrAllSourcesExhausted
}

func (o *Orchestrator) fetch(ctx *base.Context, src selector.Source) (image.Image, Meta, error) {
	p, ok := o.Providers[src]
	if !ok {
		return nil, Meta{}, fmt.Errorf("no provider registered for source %q", src)
	}

	req := Request{Width: o.Width, Height: o.Height}
	meta := Meta{}
	if isGenerative(src) {
		promptText, artist, title, err := o.Prompts.Build(ctx.GetLogger(), o.PromptMode)
		if err != nil {
			// the built-in test image still works without prompt files
			if src != selector.SourceTest {
				return nil, Meta{}, fmt.Errorf("building prompt: %w", err)
			}
			ctx.GetLogger().Warnf("Could not build a prompt for the test image: %v", err)
		} else {
			meta = Meta{Title: title, Artist: artist, Prompt: promptText}
			req.Prompt = promptText
			ctx.GetLogger().Infof("Requesting %q from %v", promptText, src)
		}
	}

	img, res, err := p.Fetch(ctx, req)
	if err != nil {
		return nil, Meta{}, err
	}
	if img == nil {
		return nil, Meta{}, fmt.Errorf("source %q returned no image", src)
	}
	if res.Title != "" {
		meta.Title = res.Title
	}
	if res.Artist != "" {
		meta.Artist = res.Artist
	}

	if o.SaveLocation != "" && isGenerative(src) && src != selector.SourceTest {
		if err := o.saveGenerated(img, meta); err != nil {
			ctx.GetLogger().Warnf("Could not save generated image: %v", err)
		}
	}
	return img, meta, nil
}

// saveGenerated stores the image in the history folder with its caption
// metadata so the history source can show it again later
func (o *Orchestrator) saveGenerated(img image.Image, meta Meta) error {
	if err := os.MkdirAll(o.SaveLocation, 0o755); err != nil {
		return err
	}
	name := filePreamble + strings.ReplaceAll(meta.Prompt, string(os.PathSeparator), "-") + ".png"
	f, err := os.Create(filepath.Join(o.SaveLocation, name))
	if err != nil {
		return err
	}
	defer f.Close()
	return pngtext.Encode(f, img, map[string]string{
		pngtext.KeyTitle:  meta.Title,
		pngtext.KeyArtist: meta.Artist,
		pngtext.KeyPrompt: meta.Prompt,
	})
}
