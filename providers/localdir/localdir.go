// Package localdir serves a random image from a local folder, typically
// filled by the user over the network. Captions can be parsed out of the
// filename.
package localdir

import (
	"fmt"
	"image"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/hannesrauhe/artframe/acquire"
	"github.com/hannesrauhe/artframe/base"
	"github.com/hannesrauhe/artframe/utils"
)

var imageExtensions = []string{"png", "jpg", "jpeg"}

type Config struct {
	Location string
	// ParseText derives title and artist captions from the filename
	ParseText bool
	// PreambleRegex matches a filename prefix to strip before the title
	PreambleRegex string
	// ArtistRegex matches the separator between title and artist
	ArtistRegex string
	// RemoveText entries are removed wherever they occur in the captions
	RemoveText []string
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
	path, err := utils.RandomFileOfType(p.rnd, p.cfg.Location, imageExtensions)
	if err != nil {
		return nil, acquire.Result{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, acquire.Result{}, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, acquire.Result{}, fmt.Errorf("decoding %v: %w", path, err)
	}

	res := acquire.Result{Title: filepath.Base(path)}
	if p.cfg.ParseText {
		title, artist, err := p.captionsFromFilename(filepath.Base(path))
		if err != nil {
			ctx.GetLogger().Warnf("Could not parse captions from %q: %v", path, err)
		} else {
			res.Title, res.Artist = title, artist
		}
	}
	return img, res, nil
}

// captionsFromFilename strips the extension and the preamble, then splits
// the rest into title and artist on the artist separator
func (p *Provider) captionsFromFilename(name string) (string, string, error) {
	name = strings.TrimSuffix(name, filepath.Ext(name))

	if p.cfg.PreambleRegex != "" {
		re, err := regexp.Compile(p.cfg.PreambleRegex)
		if err != nil {
			return "", "", fmt.Errorf("invalid preamble regex: %w", err)
		}
		name = re.ReplaceAllString(name, "")
	}

	title, artist := name, ""
	if p.cfg.ArtistRegex != "" {
		re, err := regexp.Compile(p.cfg.ArtistRegex)
		if err != nil {
			return "", "", fmt.Errorf("invalid artist regex: %w", err)
		}
		if parts := re.Split(name, 2); len(parts) == 2 {
			title, artist = parts[0], parts[1]
		}
	}

	for _, remove := range p.cfg.RemoveText {
		title = strings.ReplaceAll(title, remove, "")
		artist = strings.ReplaceAll(artist, remove, "")
	}
	return titleCase(title), titleCase(artist), nil
}

// titleCase capitalizes the first letter of every word, the rest is lowered
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
