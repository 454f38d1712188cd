// Package icons manages the strip of status glyphs drawn along one corner
// of the frame: a configurable status shape, the battery level and an
// error marker for every source that failed during the run.
package icons

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/hannesrauhe/artframe/geometry"
)

// Icon identifies one glyph of the strip
type Icon int

const (
	Square Icon = iota
	Cross
	Triangle
	Circle
	Battery20
	Battery40
	Battery60
	Battery80
	Battery100
	BatteryError
	// Exception marks a failed image source
	Exception
)

// Sequence is the append-only icon list of one run, icons are rendered
// in the order they were appended
type Sequence struct {
	icons []Icon
}

func (s *Sequence) Append(ic Icon) {
	s.icons = append(s.icons, ic)
}

// Icons returns the icons in append order
func (s *Sequence) Icons() []Icon {
	result := make([]Icon, len(s.icons))
	copy(result, s.icons)
	return result
}

// BatteryIcon buckets a charge percentage into a battery glyph,
// readings outside 0-100 count as a read error
func BatteryIcon(chargePercent int) Icon {
	switch {
	case chargePercent < 0 || chargePercent > 100:
		return BatteryError
	case chargePercent <= 20:
		return Battery20
	case chargePercent <= 40:
		return Battery40
	case chargePercent <= 60:
		return Battery60
	case chargePercent <= 80:
		return Battery80
	default:
		return Battery100
	}
}

// Draw renders the icon into its slot on dst. The glyph is built as an
// alpha mask and blended in one pass so opacity applies uniformly.
func Draw(dst *image.RGBA, ic Icon, slot geometry.Rect, stroke int, c color.Color, opacity uint8) {
	size := slot.Width()
	if size <= 0 {
		return
	}
	if stroke < 1 {
		stroke = 1
	}

	var mask *image.Alpha
	switch ic {
	case Square:
		mask = maskSquare(size, stroke)
	case Cross:
		mask = maskCross(size, stroke)
	case Triangle:
		mask = maskTriangle(size, stroke)
	case Circle:
		mask = maskCircle(size, stroke)
	case Battery20, Battery40, Battery60, Battery80, Battery100:
		mask = maskBattery(size, stroke, batteryFill(ic))
	case BatteryError:
		mask = maskBattery(size, stroke, 0)
	case Exception:
		mask = maskException(size, stroke)
	default:
		return
	}

	r, g, b, _ := c.RGBA()
	src := image.NewUniform(color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: opacity})
	draw.DrawMask(dst, slot.ImageRect(), src, image.Point{}, mask, image.Point{}, draw.Over)
}

func batteryFill(ic Icon) int {
	switch ic {
	case Battery20:
		return 20
	case Battery40:
		return 40
	case Battery60:
		return 60
	case Battery80:
		return 80
	case Battery100:
		return 100
	}
	return 0
}

func newMask(size int) *image.Alpha {
	return image.NewAlpha(image.Rect(0, 0, size, size))
}

func maskSquare(size, stroke int) *image.Alpha {
	m := newMask(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if x < stroke || y < stroke || x >= size-stroke || y >= size-stroke {
				m.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}
	return m
}

func maskCross(size, stroke int) *image.Alpha {
	m := newMask(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if abs(x-y) < stroke || abs(x+y-(size-1)) < stroke {
				m.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}
	return m
}

func maskCircle(size, stroke int) *image.Alpha {
	m := newMask(size)
	outer := size * size / 4
	rInner := size/2 - stroke
	inner := rInner * rInner
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := 2*x - size + 1
			dy := 2*y - size + 1
			d := (dx*dx + dy*dy) / 4
			if d <= outer && d >= inner {
				m.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}
	return m
}

func maskTriangle(size, stroke int) *image.Alpha {
	m := newMask(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if inTriangle(x, y, size) && !inTriangle(x, y, size-4*stroke) {
				m.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}
	return m
}

// inTriangle tests against an upward triangle of edge length edge centered in the slot
func inTriangle(x, y, edge int) bool {
	if edge <= 0 {
		return false
	}
	// translate into the centered triangle's coordinates
	cx := x - edge/2
	cy := y
	if cy < 0 || cy >= edge {
		return false
	}
	halfWidth := cy / 2
	return cx >= -halfWidth && cx <= halfWidth
}

func maskBattery(size, stroke, fillPercent int) *image.Alpha {
	m := newMask(size)
	// battery body uses the middle half of the slot height, plus a terminal nub
	top := size / 4
	bottom := size - size/4
	nub := size / 8
	bodyRight := size - nub
	for y := top; y < bottom; y++ {
		for x := 0; x < bodyRight; x++ {
			border := x < stroke || x >= bodyRight-stroke || y < top+stroke || y >= bottom-stroke
			filled := x < stroke+(bodyRight-2*stroke)*fillPercent/100
			if border || filled {
				m.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}
	for y := size/2 - nub; y < size/2+nub; y++ {
		for x := bodyRight; x < size; x++ {
			m.SetAlpha(x, y, color.Alpha{A: 0xff})
		}
	}
	return m
}

func maskException(size, stroke int) *image.Alpha {
	m := newMask(size)
	barLeft := size/2 - stroke
	barRight := size/2 + stroke
	for y := 0; y < size*2/3; y++ {
		for x := barLeft; x < barRight; x++ {
			m.SetAlpha(x, y, color.Alpha{A: 0xff})
		}
	}
	for y := size - 2*stroke - 1; y < size; y++ {
		for x := barLeft; x < barRight; x++ {
			m.SetAlpha(x, y, color.Alpha{A: 0xff})
		}
	}
	return m
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
