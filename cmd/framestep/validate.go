package main

import (
	"fmt"

	"github.com/plus3/framestep/sequence"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <sequence.yaml>...",
	Short: "Check sequence definition files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, path := range args {
			def, err := sequence.LoadDefinition(path)
			if err != nil {
				return err
			}

			var total int64
			for _, d := range def.FrameDurations() {
				total += d.Milliseconds()
			}
			fmt.Fprintf(out, "%s: %q ok, %d frames, %d actions, cycle %dms\n",
				path, def.Name, len(def.Durations), len(def.Actions), total)
		}
		return nil
	},
}
