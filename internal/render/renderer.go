package render

import "context"

// Renderer produces individual animation frames from the scene.
// CLI implements this interface. Tests can provide mock implementations.
type Renderer interface {
	// Resolution reports the scene's horizontal render resolution in
	// pixels. Frames are square, so this doubles as the sprite size.
	Resolution(ctx context.Context) (int, error)

	// RenderFrame renders the given scene frame to outPath. The renderer
	// appends the ".png" extension itself, so the file that appears on
	// disk is outPath + ".png".
	RenderFrame(ctx context.Context, frame int, outPath string) error
}
