package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luckystreak96/pizzatopia-mirror/internal/manifest"
	"github.com/luckystreak96/pizzatopia-mirror/internal/respack"
)

var (
	packManifest string
	packSheets   string
	packOut      string
)

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Pack generated spritesheets into an engine resource file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		m, err := manifest.Load(packManifest)
		if err != nil {
			return err
		}

		sheetsDir := packSheets
		if sheetsDir == "" {
			sheetsDir = cfg.Output.Dir
		}

		if err := respack.Pack(packOut, sheetsDir, m); err != nil {
			return err
		}

		packed := 0
		for _, a := range m.Animations {
			if a.Length() > 0 {
				packed++
			}
		}
		fmt.Printf("Packed %d animations into %s\n", packed, packOut)
		return nil
	},
}

func init() {
	packCmd.Flags().StringVar(&packManifest, "manifest", defaultManifest, "Path to the animations manifest")
	packCmd.Flags().StringVar(&packSheets, "sheets", "", "Directory holding generated sheets (default from config)")
	packCmd.Flags().StringVar(&packOut, "out", "./stage.res", "Resource file to store spritesheets and animations")
	rootCmd.AddCommand(packCmd)
}
