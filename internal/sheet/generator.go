package sheet

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/luckystreak96/pizzatopia-mirror/internal/manifest"
	"github.com/luckystreak96/pizzatopia-mirror/internal/render"
)

// Generator runs the render-composite-cleanup pipeline for a manifest's
// animations. Rendering is strictly sequential: every render call mutates
// the renderer's shared scene state (current frame, output path) before
// the render that consumes it.
type Generator struct {
	Renderer render.Renderer

	// OutDir is the base directory for finished sheets.
	OutDir string
	// Image is the intermediate frame name prefix.
	Image string
	// SpriteSize overrides the probed scene resolution when positive.
	SpriteSize int
	// KeepFrames leaves intermediate frames on disk for debugging.
	KeepFrames bool

	// Events, when non-nil, receives progress events. The caller owns the
	// channel and closes it after Run returns.
	Events chan<- Event
}

// Result describes one finished (or skipped) animation.
type Result struct {
	Animation string
	Path      string
	Frames    int
	Width     int
	Height    int
	Skipped   bool
}

func (g *Generator) emit(e Event) {
	if g.Events != nil {
		g.Events <- e
	}
}

// Run renders and composites every animation in order. The first failure
// aborts the run; there are no retries and no partial sheets.
func (g *Generator) Run(ctx context.Context, anims []manifest.Animation) ([]Result, error) {
	if len(anims) == 0 {
		return nil, nil
	}

	size := g.SpriteSize
	if size <= 0 {
		var err error
		size, err = g.Renderer.Resolution(ctx)
		if err != nil {
			return nil, fmt.Errorf("sprite size: %w", err)
		}
	}

	if err := os.MkdirAll(g.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	results := make([]Result, 0, len(anims))
	for _, anim := range anims {
		res, err := g.runAnimation(ctx, anim, size)
		if err != nil {
			g.emit(Event{Type: EventFailed, Animation: anim.Name, Err: err})
			return results, fmt.Errorf("animation %q: %w", anim.Name, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (g *Generator) runAnimation(ctx context.Context, anim manifest.Animation, size int) (Result, error) {
	length := anim.Length()
	if length == 0 {
		g.emit(Event{Type: EventSkipped, Animation: anim.Name})
		return Result{Animation: anim.Name, Skipped: true}, nil
	}

	scratch := filepath.Join(g.OutDir, ".frames-"+uuid.NewString())
	if err := os.MkdirAll(scratch, 0755); err != nil {
		return Result{}, fmt.Errorf("scratch dir: %w", err)
	}
	cleanup := true
	defer func() {
		if cleanup && !g.KeepFrames {
			os.RemoveAll(scratch)
		}
	}()

	prefix := filepath.Join(scratch, g.Image)

	// Render pass: frame i of the strip is scene frame startFrame + i.
	// endFrame itself is never rendered; the range is half-open.
	for i := 0; i < length; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if err := g.Renderer.RenderFrame(ctx, anim.StartFrame+i, prefix+strconv.Itoa(i)); err != nil {
			return Result{}, err
		}
		g.emit(Event{Type: EventFrameRendered, Animation: anim.Name, Frame: i + 1, Total: length})
	}

	// Composite pass: paste each frame into its cell, then delete the
	// intermediate before touching the next one.
	layout := Layout{SpriteSize: size, Columns: anim.Columns}
	canvas := image.NewNRGBA(layout.Bounds(length))
	for i := 0; i < length; i++ {
		framePath := prefix + strconv.Itoa(i) + ".png"
		frame, err := Load(framePath)
		if err != nil {
			return Result{}, err
		}
		Paste(canvas, frame, layout.Cell(i, length))

		if !g.KeepFrames {
			if err := os.Remove(framePath); err != nil {
				return Result{}, fmt.Errorf("remove frame: %w", err)
			}
		}
	}

	if !g.KeepFrames {
		if err := os.Remove(scratch); err != nil {
			return Result{}, fmt.Errorf("remove scratch dir: %w", err)
		}
		cleanup = false
	}

	outPath := filepath.Join(g.OutDir, anim.Name+".png")
	if err := Save(outPath, canvas); err != nil {
		return Result{}, err
	}

	bounds := canvas.Bounds()
	g.emit(Event{Type: EventSheetSaved, Animation: anim.Name, Frame: length, Total: length, Path: outPath})

	return Result{
		Animation: anim.Name,
		Path:      outPath,
		Frames:    length,
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
	}, nil
}
