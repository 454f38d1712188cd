package utils

import (
	"image/color"
	"testing"

	"gotest.tools/v3/assert"
)

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ff8000")
	assert.NilError(t, err)
	assert.Equal(t, c, color.Color(color.RGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}))

	c, err = ParseHexColor("ffffff")
	assert.NilError(t, err)
	assert.Equal(t, GetHexColor(c), "#ffffff")

	_, err = ParseHexColor("#fff")
	assert.ErrorContains(t, err, "not a hex color")
	_, err = ParseHexColor("#zzzzzz")
	assert.ErrorContains(t, err, "not a hex color")
}
