package sheet

import "image"

// Layout maps frame indices onto spritesheet grid cells. Frames fill the
// grid left to right, top to bottom. Columns <= 0 lays every frame out in
// a single horizontal strip.
type Layout struct {
	SpriteSize int
	Columns    int
}

func (l Layout) cols(n int) int {
	if l.Columns > 0 && l.Columns < n {
		return l.Columns
	}
	if n < 1 {
		return 1
	}
	return n
}

// Rows returns the number of grid rows needed for n frames.
func (l Layout) Rows(n int) int {
	cols := l.cols(n)
	return (n + cols - 1) / cols
}

// Bounds returns the canvas rectangle for n frames.
func (l Layout) Bounds(n int) image.Rectangle {
	cols := l.cols(n)
	if n < cols {
		cols = n
	}
	return image.Rect(0, 0, l.SpriteSize*cols, l.SpriteSize*l.Rows(n))
}

// Cell returns the destination rectangle of frame i.
func (l Layout) Cell(i, n int) image.Rectangle {
	cols := l.cols(n)
	x := l.SpriteSize * (i % cols)
	y := l.SpriteSize * (i / cols)
	return image.Rect(x, y, x+l.SpriteSize, y+l.SpriteSize)
}
