package localdir

import (
	"image"
	"image/png"
	"math/rand"
	"os"
	"path"
	"testing"

	"github.com/sirupsen/logrus"
	"gotest.tools/v3/assert"

	"github.com/hannesrauhe/artframe/acquire"
	"github.com/hannesrauhe/artframe/base"
)

func writePNG(t *testing.T, dir, name string) {
	t.Helper()
	f, err := os.Create(path.Join(dir, name))
	assert.NilError(t, err)
	defer f.Close()
	assert.NilError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 4))))
}

func newTestContext(t *testing.T) *base.Context {
	t.Helper()
	ctx, cancel := base.NewBaseContext(logrus.StandardLogger())
	t.Cleanup(cancel)
	return ctx
}

func TestFetchParsesCaptions(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "artframe - test subject by test artist.png")

	p := NewProvider(Config{
		Location:      dir,
		ParseText:     true,
		PreambleRegex: ".*- ",
		ArtistRegex:   " by ",
	}, rand.New(rand.NewSource(1)))

	img, res, err := p.Fetch(newTestContext(t), acquire.Request{})
	assert.NilError(t, err)
	assert.Assert(t, img != nil)
	assert.Equal(t, res.Title, "Test Subject")
	assert.Equal(t, res.Artist, "Test Artist")
}

func TestFetchWithoutParsing(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "holiday.png")

	p := NewProvider(Config{Location: dir}, rand.New(rand.NewSource(1)))
	_, res, err := p.Fetch(newTestContext(t), acquire.Request{})
	assert.NilError(t, err)
	assert.Equal(t, res.Title, "holiday.png")
	assert.Equal(t, res.Artist, "")
}

func TestFetchRemoveText(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "a vivid painting of a lake by claude monet.png")

	p := NewProvider(Config{
		Location:    dir,
		ParseText:   true,
		ArtistRegex: " by ",
		RemoveText:  []string{"a vivid painting of "},
	}, rand.New(rand.NewSource(1)))

	_, res, err := p.Fetch(newTestContext(t), acquire.Request{})
	assert.NilError(t, err)
	assert.Equal(t, res.Title, "A Lake")
	assert.Equal(t, res.Artist, "Claude Monet")
}

func TestFetchEmptyFolder(t *testing.T) {
	p := NewProvider(Config{Location: t.TempDir()}, rand.New(rand.NewSource(1)))
	_, _, err := p.Fetch(newTestContext(t), acquire.Request{})
	assert.Assert(t, err != nil)
}
