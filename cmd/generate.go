package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/luckystreak96/pizzatopia-mirror/internal/config"
	"github.com/luckystreak96/pizzatopia-mirror/internal/manifest"
	"github.com/luckystreak96/pizzatopia-mirror/internal/notify"
	"github.com/luckystreak96/pizzatopia-mirror/internal/render"
	"github.com/luckystreak96/pizzatopia-mirror/internal/sheet"
	"github.com/luckystreak96/pizzatopia-mirror/internal/tui"
)

const defaultManifest = "./animations.yml"

var (
	outDir     string
	spriteSize int
	keepFrames bool
	plain      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [manifest]",
	Short: "Render animation frames and composite them into spritesheets",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(args)
	},
}

func init() {
	generateCmd.Flags().StringVarP(&outDir, "out", "o", "", "Base directory for finished sheets (default from config)")
	generateCmd.Flags().IntVar(&spriteSize, "sprite-size", 0, "Override the sprite size probed from the scene")
	generateCmd.Flags().BoolVar(&keepFrames, "keep-frames", false, "Leave intermediate frame files on disk")
	generateCmd.Flags().BoolVar(&plain, "plain", false, "Line output instead of the progress view")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	bin := rendererBin
	if bin == "" {
		bin = cfg.Renderer.Bin
	}
	if err := render.CheckRendererCLI(bin); err != nil {
		return err
	}

	manifestPath := defaultManifest
	if len(args) > 0 {
		manifestPath = args[0]
	}
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	out := outDir
	if out == "" {
		out = cfg.Output.Dir
	}

	events := make(chan sheet.Event, 16)
	gen := &sheet.Generator{
		Renderer: &render.CLI{
			Bin:          bin,
			Scene:        m.Scene,
			FrameTimeout: cfg.Renderer.FrameTimeout.Duration,
			ProbeTimeout: cfg.Renderer.ProbeTimeout.Duration,
		},
		OutDir:     out,
		Image:      m.Image,
		SpriteSize: spriteSize,
		KeepFrames: keepFrames,
		Events:     events,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		results []sheet.Result
		runErr  error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		results, runErr = gen.Run(ctx, m.Animations)
		close(events)
	}()

	if plain {
		for e := range events {
			printEvent(e)
		}
		<-done
	} else {
		bar := notify.NewBar(20)
		model := tui.NewProgress(m.Animations, events,
			tui.WithCancel(cancel),
			tui.WithNotifyBar(bar),
		)

		_, uiErr := tea.NewProgram(model).Run()
		// The view may have quit before the pipeline: cancel it and keep
		// the event channel drained until the generator returns.
		cancel()
		go func() {
			for range events {
			}
		}()
		<-done
		if uiErr != nil {
			return fmt.Errorf("progress view: %w", uiErr)
		}
	}

	ringBell(cfg.Notifications, runErr)

	if runErr != nil {
		return runErr
	}
	return printSummary(results)
}

func printEvent(e sheet.Event) {
	switch e.Type {
	case sheet.EventFrameRendered:
		fmt.Printf("%s: frame %d/%d\n", e.Animation, e.Frame, e.Total)
	case sheet.EventSheetSaved:
		fmt.Printf("%s: saved %s\n", e.Animation, e.Path)
	case sheet.EventSkipped:
		fmt.Printf("%s: empty frame range, skipped\n", e.Animation)
	case sheet.EventFailed:
		fmt.Fprintf(os.Stderr, "%s: failed: %v\n", e.Animation, e.Err)
	}
}

func ringBell(cfg config.NotificationConfig, runErr error) {
	if !cfg.TerminalBell {
		return
	}
	state := tui.StatusDone
	if runErr != nil {
		state = tui.StatusFailed
	}
	bell := notify.NewBell(cfg.BellDebounce.Duration, cfg.BellOnStates)
	bell.Ring(state, time.Now())
}

func printSummary(results []sheet.Result) error {
	if len(results) == 0 {
		fmt.Println("Nothing to render.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ANIMATION\tFRAMES\tSIZE\tOUTPUT")
	fmt.Fprintln(w, "─────────\t──────\t────\t──────")
	for _, r := range results {
		if r.Skipped {
			fmt.Fprintf(w, "%s\t0\t—\tskipped\n", r.Animation)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%dx%d\t%s\n", r.Animation, r.Frames, r.Width, r.Height, r.Path)
	}
	return w.Flush()
}
