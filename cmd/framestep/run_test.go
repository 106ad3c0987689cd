package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/framestep/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetRunFlags restores the package-level run flags after a test.
func resetRunFlags(t *testing.T) {
	t.Cleanup(func() {
		runProfile = ""
		runConfigPath = ""
		for _, name := range []string{"tick", "sequence", "window", "log-level", "profile"} {
			f := runCmd.Flags().Lookup(name)
			require.NoError(t, f.Value.Set(f.DefValue))
			f.Changed = false
		}
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
}

func TestProfileMode(t *testing.T) {
	tests := []struct {
		name    string
		wantNil bool
		wantErr bool
	}{
		{"", true, false},
		{"cpu", false, false},
		{"mem", false, false},
		{"bogus", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, err := profileMode(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "bogus")
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantNil, mode == nil)
		})
	}
}

func TestRunRejectsUnknownProfile(t *testing.T) {
	resetRunFlags(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"run", "--profile", "bogus"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown profile mode "bogus"`)
	assert.NotContains(t, out.String(), "hello world!")
}

func TestRunFlagsOverrideConfig(t *testing.T) {
	resetRunFlags(t)

	cfg, err := config.Load(runViper, "")
	require.NoError(t, err)
	assert.Equal(t, 16*time.Millisecond, cfg.Tick)
	assert.False(t, cfg.Window)

	require.NoError(t, runCmd.Flags().Parse([]string{"--tick", "5ms", "--window", "--log-level", "debug"}))

	cfg, err = config.Load(runViper, "")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Millisecond, cfg.Tick)
	assert.True(t, cfg.Window)
	assert.Equal(t, "debug", cfg.LogLevel)
}
