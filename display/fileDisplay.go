package display

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
)

// FileDisplay writes the composed frame to a PNG file instead of real
// hardware. It backs the mock profile and is also handy for previewing a
// config on a desktop machine.
type FileDisplay struct {
	profile Profile
	path    string
}

var _ Display = &FileDisplay{}

// NewFileDisplay creates a FileDisplay rendering to path
func NewFileDisplay(profile Profile, path string) *FileDisplay {
	return &FileDisplay{profile: profile, path: path}
}

func (d *FileDisplay) Width() int {
	return d.profile.Width
}

func (d *FileDisplay) Height() int {
	return d.profile.Height
}

func (d *FileDisplay) Render(img image.Image) error {
	if d.profile.Mono {
		img = toGray(img)
	}
	if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(d.path)
	if err != nil {
		return fmt.Errorf("creating display output file: %w", err)
	}
	defer f.Close()
	return png.Encode(f, img)
}

// toGray mimics what a mono panel driver does with the frame
func toGray(img image.Image) image.Image {
	b := img.Bounds()
	gray := image.NewGray(b)
	draw.Draw(gray, b, img, b.Min, draw.Src)
	return gray
}

func (d *FileDisplay) Close() error {
	return nil
}
