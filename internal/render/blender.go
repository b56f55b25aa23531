package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// resolutionMarker prefixes the line the probe expression prints, so the
// value can be picked out of Blender's banner and addon chatter.
const resolutionMarker = "SHEETGEN_RESX="

// Default timeouts, overridable through the config file.
const (
	DefaultFrameTimeout = 2 * time.Minute
	DefaultProbeTimeout = 30 * time.Second
)

// CLI drives Blender in background mode for a single scene file.
type CLI struct {
	// Bin is the Blender executable. Empty means "blender".
	Bin string
	// Scene is the .blend file to render from.
	Scene string
	// FrameTimeout bounds a single frame render. Zero means DefaultFrameTimeout.
	FrameTimeout time.Duration
	// ProbeTimeout bounds the resolution probe. Zero means DefaultProbeTimeout.
	ProbeTimeout time.Duration
}

var _ Renderer = (*CLI)(nil)

func (c *CLI) bin() string {
	if c.Bin != "" {
		return c.Bin
	}
	return "blender"
}

// blenderCmd builds a background-mode Blender command for the scene.
func (c *CLI) blenderCmd(ctx context.Context, args ...string) *exec.Cmd {
	args = append([]string{"-b", c.Scene}, args...)
	return exec.CommandContext(ctx, c.bin(), args...)
}

// run executes the command, folding Blender's stderr into the error.
func run(cmd *exec.Cmd, what string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		return "", fmt.Errorf("%s: %s", what, errMsg)
	}
	return stdout.String(), nil
}

// probeExpr prints the scene's horizontal resolution behind a marker.
func probeExpr() string {
	return fmt.Sprintf(
		`import bpy; print("%s%%d" %% bpy.context.scene.render.resolution_x)`,
		resolutionMarker)
}

// renderExpr positions the timeline on frame, points the render output at
// path and renders a single still, exactly the sequence the scene expects:
// the renderer's current-frame and filepath state are mutated before every
// render call.
func renderExpr(frame int, path string) string {
	return fmt.Sprintf(
		`import bpy; s = bpy.context.scene; s.frame_current = %d; s.render.filepath = %s; bpy.ops.render.render(write_still=True)`,
		frame, pyString(path))
}

// pyString quotes a value as a Python string literal. Go's %q escaping is
// a subset of Python's, so the result is safe to splice into an expression.
func pyString(s string) string {
	return strconv.Quote(s)
}

// Resolution reads resolution_x from the scene.
func (c *CLI) Resolution(ctx context.Context) (int, error) {
	timeout := c.ProbeTimeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := run(c.blenderCmd(ctx, "--python-expr", probeExpr()), "probe resolution")
	if err != nil {
		return 0, err
	}
	return parseResolution(out)
}

// parseResolution extracts the marked resolution value from probe output.
func parseResolution(out string) (int, error) {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, resolutionMarker) {
			continue
		}
		value := strings.TrimPrefix(line, resolutionMarker)
		res, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("parse resolution %q: %w", value, err)
		}
		if res <= 0 {
			return 0, fmt.Errorf("scene resolution must be positive, got %d", res)
		}
		return res, nil
	}
	return 0, fmt.Errorf("resolution marker not found in renderer output")
}

// RenderFrame renders a single frame to outPath + ".png". The call blocks
// until Blender has written the file.
func (c *CLI) RenderFrame(ctx context.Context, frame int, outPath string) error {
	timeout := c.FrameTimeout
	if timeout <= 0 {
		timeout = DefaultFrameTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	what := fmt.Sprintf("render frame %d", frame)
	if _, err := run(c.blenderCmd(ctx, "--python-expr", renderExpr(frame, outPath)), what); err != nil {
		return err
	}

	// Blender exits zero even when the render silently failed, so check
	// that the still actually landed.
	if _, err := os.Stat(outPath + ".png"); err != nil {
		return fmt.Errorf("%s: renderer wrote no file at %s.png", what, outPath)
	}
	return nil
}

// CheckRendererCLI verifies that the renderer binary is accessible.
func CheckRendererCLI(bin string) error {
	if bin == "" {
		bin = "blender"
	}
	if _, err := exec.LookPath(bin); err != nil {
		return fmt.Errorf("renderer %q not found in PATH", bin)
	}
	return nil
}
