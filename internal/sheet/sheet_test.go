package sheet

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func solidFrame(size int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func TestPaste_SingleRow(t *testing.T) {
	colors := []color.NRGBA{
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
	}

	layout := Layout{SpriteSize: 8}
	canvas := image.NewNRGBA(layout.Bounds(len(colors)))
	for i, c := range colors {
		Paste(canvas, solidFrame(8, c), layout.Cell(i, len(colors)))
	}

	bounds := canvas.Bounds()
	if bounds.Dx() != 24 || bounds.Dy() != 8 {
		t.Fatalf("canvas = %dx%d, want 24x8", bounds.Dx(), bounds.Dy())
	}

	// Every pixel of cell j must match source frame j exactly.
	for j, c := range colors {
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				got := canvas.NRGBAAt(8*j+x, y)
				if got != c {
					t.Fatalf("pixel (%d,%d) of cell %d = %v, want %v", x, y, j, got, c)
				}
			}
		}
	}
}

func TestPaste_GridWrap(t *testing.T) {
	layout := Layout{SpriteSize: 4, Columns: 2}
	canvas := image.NewNRGBA(layout.Bounds(5))
	for i := 0; i < 5; i++ {
		Paste(canvas, solidFrame(4, color.NRGBA{uint8(i * 40), 0, 0, 255}), layout.Cell(i, 5))
	}

	bounds := canvas.Bounds()
	if bounds.Dx() != 8 || bounds.Dy() != 12 {
		t.Fatalf("canvas = %dx%d, want 8x12", bounds.Dx(), bounds.Dy())
	}

	// Frame 4 lands on row 2, column 0.
	got := canvas.NRGBAAt(1, 9)
	want := color.NRGBA{160, 0, 0, 255}
	if got != want {
		t.Errorf("frame 4 pixel = %v, want %v", got, want)
	}
}

func TestPaste_KeepsPartialAlphaExact(t *testing.T) {
	// A half-transparent pixel like this one cannot survive a premultiply/
	// unpremultiply round trip (201 at alpha 128 comes back as 199), so an
	// exact match proves the paste copies raw bytes.
	c := color.NRGBA{R: 201, G: 117, B: 54, A: 128}
	canvas := image.NewNRGBA(image.Rect(0, 0, 8, 8))

	Paste(canvas, solidFrame(8, c), image.Rect(0, 0, 8, 8))

	if got := canvas.NRGBAAt(3, 5); got != c {
		t.Fatalf("pasted pixel = %v, want %v", got, c)
	}
}

func TestPaste_ScalesMismatchedFrame(t *testing.T) {
	canvas := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	// 16x16 source into an 8x8 cell: resampled, solid color survives.
	frame := solidFrame(16, color.NRGBA{200, 100, 50, 255})

	Paste(canvas, frame, image.Rect(0, 0, 8, 8))

	got := canvas.NRGBAAt(4, 4)
	if got.A != 255 || got.R == 0 {
		t.Errorf("scaled paste produced %v, want opaque non-black", got)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "walk.png")

	// Partial alpha must survive the PNG round trip byte for byte.
	c := color.NRGBA{10, 20, 30, 90}
	src := solidFrame(8, c)
	if err := Save(path, src); err != nil {
		t.Fatalf("Save: %v", err)
	}

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Bounds() != src.Bounds() {
		t.Errorf("bounds = %v, want %v", img.Bounds(), src.Bounds())
	}
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		t.Fatalf("decoded as %T, want *image.NRGBA", img)
	}
	if got := nrgba.NRGBAAt(2, 2); got != c {
		t.Errorf("pixel = %v, want %v", got, c)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/frame.png"); err == nil {
		t.Fatal("missing frame should be an error")
	}
}

func TestLoad_NotPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(path, []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("garbage file should be an error")
	}
}
