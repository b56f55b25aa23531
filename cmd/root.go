package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luckystreak96/pizzatopia-mirror/internal/config"
)

var (
	cfgPath     string
	rendererBin string
)

var rootCmd = &cobra.Command{
	Use:   "sheetgen",
	Short: "Spritesheet generator for the pizzatopia content pipeline",
	Long: `sheetgen drives a Blender scene through the frames of each animation
declared in a manifest, composites the rendered stills into spritesheet
images and deletes the intermediate frames.

Run without arguments to generate from ./animations.yml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(nil)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to the sheetgen config file")
	rootCmd.PersistentFlags().StringVarP(&rendererBin, "renderer", "r", "", "Renderer binary to invoke (default from config)")
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

// loadConfig reads the config file, honoring the --config override.
func loadConfig() (config.Config, error) {
	if cfgPath != "" {
		return config.LoadFrom(cfgPath)
	}
	return config.Load()
}
