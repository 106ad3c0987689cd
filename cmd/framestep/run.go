package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/profile"
	"github.com/plus3/framestep/internal/config"
	"github.com/plus3/framestep/internal/display"
	"github.com/plus3/framestep/internal/logging"
	"github.com/plus3/framestep/internal/sim"
	"github.com/spf13/cobra"
)

var (
	runConfigPath string
	runProfile    string
	runViper      = config.New()
)

func init() {
	rootCmd.AddCommand(runCmd)

	flags := runCmd.Flags()
	flags.StringVarP(&runConfigPath, "config", "c", "", "config file (YAML)")
	flags.StringVar(&runProfile, "profile", "", "write a cpu or mem profile to the working directory")
	flags.String("sequence", "", "sequence definition file, overrides the configured sequence")
	flags.Duration("tick", 0, "interval between updates in headless mode")
	flags.Bool("window", false, "drive the sequence from a window instead of a ticker")
	flags.String("log-level", "", "log level (trace, debug, info, warn, error)")

	mustBind("sequence_file", "sequence")
	mustBind("tick", "tick")
	mustBind("window", "window")
	mustBind("log_level", "log-level")
}

func mustBind(key, flag string) {
	if err := runViper.BindPFlag(key, runCmd.Flags().Lookup(flag)); err != nil {
		panic(err)
	}
}

// profileMode maps the --profile flag to a pkg/profile mode. An empty name
// disables profiling and returns nil.
func profileMode(name string) (func(*profile.Profile), error) {
	switch name {
	case "":
		return nil, nil
	case "cpu":
		return profile.CPUProfile, nil
	case "mem":
		return profile.MemProfileAllocs, nil
	default:
		return nil, fmt.Errorf("unknown profile mode %q (want cpu or mem)", name)
	}
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the sequence until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(runViper, runConfigPath)
		if err != nil {
			return err
		}

		logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
		if err != nil {
			return err
		}

		mode, err := profileMode(runProfile)
		if err != nil {
			return err
		}
		if mode != nil {
			defer profile.Start(mode, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
		}

		def, err := cfg.Definition()
		if err != nil {
			return err
		}

		app, err := sim.New(def, cmd.OutOrStdout(), logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if cfg.Window {
			return display.Run(ctx, app, "framestep: "+def.Name, logger)
		}
		app.Run(ctx, cfg.Tick)
		return nil
	},
}
