package testutil

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"sync"

	"github.com/luckystreak96/pizzatopia-mirror/internal/render"
)

// MockRenderer implements render.Renderer for testing. Each rendered
// frame is a solid-color PNG whose color is derived from the scene frame
// number, so composited sheets can be checked pixel for pixel.
type MockRenderer struct {
	mu sync.Mutex

	// Size is the square frame edge in pixels. Zero means 8.
	Size int
	// ResolutionErr is returned from Resolution when set.
	ResolutionErr error
	// FailAtFrame makes RenderFrame fail for that scene frame. Zero
	// disables the failure.
	FailAtFrame int
	// Frames records the scene frames rendered, in call order.
	Frames []int
}

var _ render.Renderer = (*MockRenderer)(nil)

func (m *MockRenderer) size() int {
	if m.Size > 0 {
		return m.Size
	}
	return 8
}

func (m *MockRenderer) Resolution(_ context.Context) (int, error) {
	if m.ResolutionErr != nil {
		return 0, m.ResolutionErr
	}
	return m.size(), nil
}

func (m *MockRenderer) RenderFrame(_ context.Context, frame int, outPath string) error {
	m.mu.Lock()
	m.Frames = append(m.Frames, frame)
	m.mu.Unlock()

	if m.FailAtFrame != 0 && frame == m.FailAtFrame {
		return fmt.Errorf("mock render failure at frame %d", frame)
	}

	size := m.size()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	c := FrameColor(frame)
	// Fill the pixel buffer directly so the stored bytes are exactly the
	// frame color, alpha channel included.
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}

	f, err := os.Create(outPath + ".png")
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// RenderedFrames returns the recorded scene frames in a thread-safe manner.
func (m *MockRenderer) RenderedFrames() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.Frames...)
}

// FrameColor is the fill color MockRenderer uses for a scene frame. The
// alpha channel cycles through partially transparent values so sheet
// checks catch compositing paths that only survive for opaque pixels.
func FrameColor(frame int) color.NRGBA {
	return color.NRGBA{
		R: uint8(frame * 7),
		G: uint8(frame * 29),
		B: uint8(frame * 83),
		A: uint8(255 - (frame%4)*45),
	}
}
