package compose

import (
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"

	"github.com/hannesrauhe/artframe/base"
)

// loadFace opens the configured TTF at the given size. A missing or broken
// font file logs a warning and falls back to the built-in fixed face so a
// run never fails over captions.
func loadFace(ctx *base.Context, fontFile string, size float64) font.Face {
	if fontFile == "" {
		return basicfont.Face7x13
	}
	fontBytes, err := os.ReadFile(fontFile)
	if err != nil {
		ctx.GetLogger().Warnf("Font file not readable, using default font: %v", err)
		return basicfont.Face7x13
	}
	f, err := opentype.Parse(fontBytes)
	if err != nil {
		ctx.GetLogger().Warnf("Font file not parsable, using default font: %v", err)
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		ctx.GetLogger().Warnf("Could not create font face, using default font: %v", err)
		return basicfont.Face7x13
	}
	return face
}
