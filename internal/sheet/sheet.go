package sheet

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// Load decodes a rendered frame from disk.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open frame: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode frame %s: %w", path, err)
	}
	return img, nil
}

// Save encodes the canvas as a PNG file.
func Save(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode sheet %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write sheet %s: %w", path, err)
	}
	return nil
}

// Paste copies a frame into its cell. A frame that already matches the
// cell is copied byte for byte; anything else is resampled to fit.
//
// The canvas is non-premultiplied, like the PNGs on both sides of it.
// Routing same-size frames through draw.Draw would round-trip them via
// premultiplied alpha, which clips color values on partially transparent
// pixels — the antialiased edges every rendered sprite has.
func Paste(dst *image.NRGBA, frame image.Image, cell image.Rectangle) {
	fb := frame.Bounds()
	if fb.Dx() != cell.Dx() || fb.Dy() != cell.Dy() {
		xdraw.CatmullRom.Scale(dst, cell, frame, fb, xdraw.Src, nil)
		return
	}

	if src, ok := frame.(*image.NRGBA); ok {
		rowLen := 4 * fb.Dx()
		for y := 0; y < fb.Dy(); y++ {
			di := dst.PixOffset(cell.Min.X, cell.Min.Y+y)
			si := src.PixOffset(fb.Min.X, fb.Min.Y+y)
			copy(dst.Pix[di:di+rowLen], src.Pix[si:si+rowLen])
		}
		return
	}

	// Non-NRGBA frames (palette or grayscale PNGs) have no alpha to lose.
	draw.Draw(dst, cell, frame, fb.Min, draw.Src)
}
