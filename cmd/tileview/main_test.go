package main

import (
	"errors"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vovakirdan/tileview/internal/config"
)

func loadWithArgs(t *testing.T, args ...string) (config.Config, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())

	// Flags are package globals shared by every test
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})

	var (
		cfg config.Config
		err error
	)
	c := &cobra.Command{
		Use:           "test",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err = loadConfig(cmd)
			return nil
		},
	}
	c.Flags().AddFlagSet(rootCmd.PersistentFlags())
	c.SetArgs(args)
	if execErr := c.Execute(); execErr != nil {
		t.Fatalf("Execute() failed: %v", execErr)
	}
	return cfg, err
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadWithArgs(t)
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	def := config.Default()
	if cfg.World != def.World || cfg.View.FPS != def.View.FPS {
		t.Errorf("loadConfig() = %+v, expected defaults", cfg.World)
	}
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	cfg, err := loadWithArgs(t,
		"--width", "1000", "--height", "500",
		"--generator", "perlin", "--seed", "42",
		"--layout", "chunked", "--fps", "30", "--log-level", "debug",
	)
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}

	w := cfg.World
	if w.Width != 1000 || w.Height != 500 || w.Generator != "perlin" || w.Seed != 42 || w.Layout != "chunked" {
		t.Errorf("World = %+v, flags not applied", w)
	}
	if cfg.View.FPS != 30 {
		t.Errorf("FPS = %d, expected 30", cfg.View.FPS)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, expected debug", cfg.Log.Level)
	}
}

func TestLoadConfigRejectsInvalidFlags(t *testing.T) {
	_, err := loadWithArgs(t, "--width", "0")
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("loadConfig() error = %v, expected ErrInvalid", err)
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{"view": false, "serve": false, "bench": false, "history": false, "inspect": false, "list": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

// chdir changes the working directory for the duration of the test,
// like testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
