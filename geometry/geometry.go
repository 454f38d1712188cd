// Package geometry contains the pure layout math for composing a frame:
// centered crops, caption box rectangles and icon strip slots. No I/O,
// no randomness.
package geometry

import "image"

// Rect is a pixel rectangle with Left <= Right and Top <= Bottom
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

// ImageRect converts to the stdlib representation
func (r Rect) ImageRect() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}

// CropToFit computes the centered crop of the content that matches the
// canvas as closely as possible. Each crop dimension is the smaller of
// content and canvas, so the crop has exactly the canvas aspect whenever
// the content is large enough and is clamped to the content bound
// otherwise - no padding is invented and nothing is upscaled.
func CropToFit(contentW, contentH, canvasW, canvasH int) Rect {
	cropW := contentW
	if canvasW < cropW {
		cropW = canvasW
	}
	cropH := contentH
	if canvasH < cropH {
		cropH = canvasH
	}
	left := (contentW - cropW) / 2
	top := (contentH - cropH) / 2
	return Rect{Left: left, Top: top, Right: left + cropW, Bottom: top + cropH}
}

// Union returns the minimal rectangle covering all given rectangles
func Union(rects []Rect) Rect {
	if len(rects) == 0 {
		return Rect{}
	}
	u := rects[0]
	for _, r := range rects[1:] {
		if r.Left < u.Left {
			u.Left = r.Left
		}
		if r.Top < u.Top {
			u.Top = r.Top
		}
		if r.Right > u.Right {
			u.Right = r.Right
		}
		if r.Bottom > u.Bottom {
			u.Bottom = r.Bottom
		}
	}
	return u
}

// Expand grows the rectangle by padding on every side
func Expand(r Rect, padding int) Rect {
	return Rect{Left: r.Left - padding, Top: r.Top - padding, Right: r.Right + padding, Bottom: r.Bottom + padding}
}

// SnapToFloor extends the rectangle down to the bottom edge of the canvas
func SnapToFloor(r Rect, canvasHeight int) Rect {
	r.Bottom = canvasHeight
	return r
}

// SnapToSides sets the horizontal extent of the rectangle
func SnapToSides(r Rect, leftEdge, rightEdge int) Rect {
	r.Left = leftEdge
	r.Right = rightEdge
	return r
}

// Corner of the canvas the icon strip grows from
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

// IconSlot places the index-th icon of the strip. Icons are laid out
// horizontally from the chosen corner inward, each offset by
// iconSize+gap from the previous one and inset by padding from the
// canvas edges. Slots never overlap; keeping the strip inside the
// canvas is the caller's responsibility.
func IconSlot(index, iconSize, gap, padding int, corner Corner, canvasW, canvasH int) Rect {
	offset := index * (iconSize + gap)
	var left, top int
	switch corner {
	case TopLeft:
		left = padding + offset
		top = padding
	case TopRight:
		left = canvasW - padding - iconSize - offset
		top = padding
	case BottomLeft:
		left = padding + offset
		top = canvasH - padding - iconSize
	case BottomRight:
		left = canvasW - padding - iconSize - offset
		top = canvasH - padding - iconSize
	}
	return Rect{Left: left, Top: top, Right: left + iconSize, Bottom: top + iconSize}
}
