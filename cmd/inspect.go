package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/luckystreak96/pizzatopia-mirror/internal/respack"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <resource-file>",
	Short: "List the contents of a resource file (non-interactive)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := respack.List(args[0])
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("Resource file is empty.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "BUCKET\tKEY\tSIZE")
		fmt.Fprintln(w, "──────\t───\t────")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%d\n", e.Bucket, e.Key, e.Size)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
