package icons

import (
	"image"
	"image/color"
	"testing"

	"github.com/hannesrauhe/artframe/geometry"
	"gotest.tools/v3/assert"
)

func TestBatteryIcon(t *testing.T) {
	assert.Equal(t, BatteryIcon(-1), BatteryError)
	assert.Equal(t, BatteryIcon(101), BatteryError)
	assert.Equal(t, BatteryIcon(0), Battery20)
	assert.Equal(t, BatteryIcon(20), Battery20)
	assert.Equal(t, BatteryIcon(21), Battery40)
	assert.Equal(t, BatteryIcon(55), Battery60)
	assert.Equal(t, BatteryIcon(80), Battery80)
	assert.Equal(t, BatteryIcon(100), Battery100)
}

func TestSequence(t *testing.T) {
	s := &Sequence{}
	s.Append(Exception)
	s.Append(Battery80)
	assert.DeepEqual(t, s.Icons(), []Icon{Exception, Battery80})

	// the returned slice is a copy
	s.Icons()[0] = Circle
	assert.DeepEqual(t, s.Icons(), []Icon{Exception, Battery80})
}

func TestDraw(t *testing.T) {
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	slot := geometry.Rect{Left: 10, Top: 10, Right: 30, Bottom: 30}

	for _, ic := range []Icon{Square, Cross, Triangle, Circle, Battery60, BatteryError, Exception} {
		dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
		Draw(dst, ic, slot, 3, white, 0xff)

		touched := 0
		for y := 0; y < 40; y++ {
			for x := 0; x < 40; x++ {
				if dst.RGBAAt(x, y).R == 0 {
					continue
				}
				touched++
				// nothing is drawn outside the slot
				assert.Assert(t, x >= slot.Left && x < slot.Right && y >= slot.Top && y < slot.Bottom,
					"icon %v drew at (%v,%v)", ic, x, y)
			}
		}
		assert.Assert(t, touched > 0, "icon %v drew nothing", ic)
	}
}

func TestDrawOpacity(t *testing.T) {
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	slot := geometry.Rect{Left: 0, Top: 0, Right: 20, Bottom: 20}
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	Draw(dst, Square, slot, 3, white, 100)

	// the border pixel is blended, not fully white
	px := dst.RGBAAt(0, 0)
	assert.Assert(t, px.R > 0 && px.R < 0xff, "got %v", px)
}
