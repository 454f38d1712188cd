// Package display abstracts the e-paper panel the composed frame is sent
// to. Panel resolutions come from an embedded device registry; the file
// display stands in for real hardware in tests and headless runs.
package display

import "image"

// Display is the render target of a frame run
type Display interface {
	Width() int
	Height() int
	// Render shows the finished frame, it must only be called with a
	// fully composed raster
	Render(img image.Image) error
	// Close releases the panel, real drivers send it to deep sleep
	Close() error
}
