// Command framestep cycles an entity through timed frames and prints a
// message as each frame becomes active.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "framestep",
	Short:         "Timed frame sequencer",
	Long:          "framestep holds each frame of a sequence for its duration and prints a message on frame entry.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
