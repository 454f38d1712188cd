package testimage

import (
	"testing"

	"github.com/sirupsen/logrus"
	"gotest.tools/v3/assert"

	"github.com/hannesrauhe/artframe/acquire"
	"github.com/hannesrauhe/artframe/base"
)

func TestFetch(t *testing.T) {
	ctx, cancel := base.NewBaseContext(logrus.StandardLogger())
	defer cancel()

	p := &Provider{}
	img, res, err := p.Fetch(ctx, acquire.Request{Prompt: "a calm sea", Width: 100, Height: 50})
	assert.NilError(t, err)
	assert.Equal(t, img.Bounds().Dx(), 100)
	assert.Equal(t, img.Bounds().Dy(), 50)
	assert.Equal(t, res.Title, "It Works! Explore the config to customise!")
	assert.Equal(t, res.Artist, "I could have been 'a calm sea'")

	// zero dimensions fall back to a sane panel size
	img, _, err = p.Fetch(ctx, acquire.Request{})
	assert.NilError(t, err)
	assert.Equal(t, img.Bounds().Dx(), 800)
	assert.Equal(t, img.Bounds().Dy(), 480)
}
