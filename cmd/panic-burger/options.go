package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/lixenwraith/panic-burger/config"
)

// envFile is loaded from the working directory when present
const envFile = ".env"

// cliOptions holds parsed command-line flags
type cliOptions struct {
	configPath string
	fsmPath    string
	keymapPath string
	feedAddr   string
	seed       uint64
	debug      bool
	mute       bool
	sensorless bool
	dumpConfig bool
	noWatch    bool

	// Flags given explicitly; only these override the config file
	set map[string]bool
}

func parseFlags(fset *flag.FlagSet, args []string) (*cliOptions, error) {
	o := &cliOptions{}
	fset.StringVar(&o.configPath, "config", config.DefaultPath, "Game config file (YAML)")
	fset.StringVar(&o.fsmPath, "fsm", "", "Phase graph file (YAML), embedded graph when empty")
	fset.StringVar(&o.keymapPath, "keys", "", "Keymap override file (YAML)")
	fset.StringVar(&o.feedAddr, "feed", "", "HTTP pose/input feed address, e.g. :8080")
	fset.Uint64Var(&o.seed, "seed", 0, "Random seed for orders and customers, 0 picks one")
	fset.BoolVar(&o.debug, "debug", false, "Write logs to logs/ and show the metrics line")
	fset.BoolVar(&o.mute, "mute", false, "Start with audio muted")
	fset.BoolVar(&o.sensorless, "sensorless", false, "No pose sensor, use the squat key for power")
	fset.BoolVar(&o.dumpConfig, "dump-config", false, "Print the effective config and exit")
	fset.BoolVar(&o.noWatch, "no-watch", false, "Do not reload the config file on change")

	if err := fset.Parse(args); err != nil {
		return nil, err
	}
	o.set = make(map[string]bool)
	fset.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, nil
}

// apply overlays explicitly set flags onto cfg and revalidates
func (o *cliOptions) apply(cfg *config.Config) error {
	if o.set["feed"] {
		cfg.FeedAddr = o.feedAddr
	}
	if o.set["seed"] {
		cfg.Seed = o.seed
	}
	if o.set["mute"] {
		cfg.Muted = o.mute
	}
	if o.set["sensorless"] {
		cfg.Sensorless = o.sensorless
	}
	return cfg.Validate()
}

// loadConfig resolves defaults < config file < .env and environment < flags
// The default config path may be absent; an explicit -config must exist
func (o *cliOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist) && !o.set["config"]:
		cfg = config.Default()
	default:
		return nil, err
	}

	if err := config.LoadEnv(cfg, envFile); err != nil {
		return nil, err
	}
	if err := o.apply(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// reloaded re-applies environment and flags to a config read by the watcher
func (o *cliOptions) reloaded(cfg *config.Config) (*config.Config, error) {
	if err := config.ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, fmt.Errorf("reloaded config: %w", err)
	}
	if err := o.apply(cfg); err != nil {
		return nil, fmt.Errorf("reloaded config: %w", err)
	}
	return cfg, nil
}

// configExists reports whether the config file is on disk, the watcher needs it
func (o *cliOptions) configExists() bool {
	_, err := os.Stat(o.configPath)
	return err == nil
}
