package utils

import (
	"math/rand"
	"os"
	"path"
	"testing"

	"gotest.tools/v3/assert"
)

func TestRandomFileOfType(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.JPG", "notes.txt"} {
		assert.NilError(t, os.WriteFile(path.Join(dir, name), []byte("x"), 0o644))
	}
	assert.NilError(t, os.Mkdir(path.Join(dir, "sub.png"), 0o755))

	rnd := rand.New(rand.NewSource(1))
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		p, err := RandomFileOfType(rnd, dir, []string{"png", "jpg"})
		assert.NilError(t, err)
		seen[path.Base(p)] = true
	}
	assert.Equal(t, len(seen), 2)
	assert.Assert(t, seen["a.png"] && seen["b.JPG"])

	_, err := RandomFileOfType(rnd, dir, []string{"gif"})
	assert.ErrorContains(t, err, "no [gif] files")
}
