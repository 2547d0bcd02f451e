package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/panic-burger/constants"
	"github.com/lixenwraith/panic-burger/systems"
)

// ErrInvalid marks a config that loaded but holds inconsistent values
var ErrInvalid = errors.New("invalid config")

// DefaultPath is the optional game config file next to the binary
const DefaultPath = "panic-burger.yaml"

// RoundConfig holds clock and scoring rules
type RoundConfig struct {
	StartTime                int `yaml:"start_time"`
	FrameTick                int `yaml:"frame_tick"`
	OrderBonusSeconds        int `yaml:"order_bonus_seconds"`
	OrderScore               int `yaml:"order_score"`
	InstructionsTimeoutTicks int `yaml:"instructions_timeout_ticks"`
}

// SquatConfig holds detector tunables
type SquatConfig struct {
	CalibrationFrames int     `yaml:"calibration_frames"`
	Threshold         float64 `yaml:"threshold"`
	ReleaseRatio      float64 `yaml:"release_ratio"`
	PowerPerRep       int     `yaml:"power_per_rep"`
	MaxPower          int     `yaml:"max_power"`
	MinConfidence     float64 `yaml:"min_confidence"`
}

// OrderConfig holds order length bounds, max exclusive
type OrderConfig struct {
	MinItems int `yaml:"min_items"`
	MaxItems int `yaml:"max_items"`
}

// PatienceConfig holds customer patience in ticks
type PatienceConfig struct {
	AngryTicks int `yaml:"angry_ticks"`
	LeaveTicks int `yaml:"leave_ticks"`
	ExitTicks  int `yaml:"exit_ticks"`
}

// Config is the complete game configuration
type Config struct {
	Round    RoundConfig    `yaml:"round"`
	Squat    SquatConfig    `yaml:"squat"`
	Orders   OrderConfig    `yaml:"orders"`
	Patience PatienceConfig `yaml:"patience"`

	Seed       uint64 `yaml:"seed"` // 0 picks a random seed
	LogLevel   string `yaml:"log_level"`
	FeedAddr   string `yaml:"feed_addr"` // empty disables the HTTP feed
	Muted      bool   `yaml:"muted"`
	Sensorless bool   `yaml:"sensorless"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Round: RoundConfig{
			StartTime:                constants.StartTime,
			FrameTick:                constants.FrameTick,
			OrderBonusSeconds:        constants.OrderBonusSeconds,
			OrderScore:               constants.OrderScore,
			InstructionsTimeoutTicks: constants.InstructionsTimeoutTicks,
		},
		Squat: SquatConfig{
			CalibrationFrames: constants.CalibrationFrames,
			Threshold:         constants.SquatThreshold,
			ReleaseRatio:      constants.SquatReleaseRatio,
			PowerPerRep:       constants.PowerPerRep,
			MaxPower:          constants.MaxPower,
			MinConfidence:     constants.MinHipConfidence,
		},
		Orders: OrderConfig{
			MinItems: constants.MinOrderItems,
			MaxItems: constants.MaxOrderItems,
		},
		Patience: PatienceConfig{
			AngryTicks: constants.CustomerAngryTicks,
			LeaveTicks: constants.CustomerLeaveTicks,
			ExitTicks:  constants.CustomerExitTicks,
		},
		LogLevel: "info",
	}
}

// Load reads a YAML file over the defaults and validates the result
// A missing file is reported with an error wrapping fs.ErrNotExist
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal encodes the config as YAML
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate reports every inconsistent value, each wrapping ErrInvalid
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Round.StartTime > 0, "round.start_time must be positive, got %d", c.Round.StartTime)
	check(c.Round.FrameTick > 0, "round.frame_tick must be positive, got %d", c.Round.FrameTick)
	check(c.Round.OrderBonusSeconds >= 0, "round.order_bonus_seconds must not be negative, got %d", c.Round.OrderBonusSeconds)
	check(c.Round.OrderScore >= 0, "round.order_score must not be negative, got %d", c.Round.OrderScore)
	check(c.Round.InstructionsTimeoutTicks > 0, "round.instructions_timeout_ticks must be positive, got %d", c.Round.InstructionsTimeoutTicks)

	check(c.Squat.CalibrationFrames > 0, "squat.calibration_frames must be positive, got %d", c.Squat.CalibrationFrames)
	check(c.Squat.Threshold > 0, "squat.threshold must be positive, got %g", c.Squat.Threshold)
	check(c.Squat.ReleaseRatio >= 0 && c.Squat.ReleaseRatio < 1, "squat.release_ratio must be in [0,1), got %g", c.Squat.ReleaseRatio)
	check(c.Squat.PowerPerRep > 0, "squat.power_per_rep must be positive, got %d", c.Squat.PowerPerRep)
	check(c.Squat.MaxPower > 0, "squat.max_power must be positive, got %d", c.Squat.MaxPower)
	check(c.Squat.MinConfidence >= 0 && c.Squat.MinConfidence <= 1, "squat.min_confidence must be in [0,1], got %g", c.Squat.MinConfidence)

	check(c.Orders.MinItems > 0, "orders.min_items must be positive, got %d", c.Orders.MinItems)
	check(c.Orders.MaxItems > c.Orders.MinItems, "orders.max_items (%d) must exceed orders.min_items (%d)", c.Orders.MaxItems, c.Orders.MinItems)

	check(c.Patience.AngryTicks > 0, "patience.angry_ticks must be positive, got %d", c.Patience.AngryTicks)
	check(c.Patience.LeaveTicks > c.Patience.AngryTicks, "patience.leave_ticks (%d) must exceed patience.angry_ticks (%d)", c.Patience.LeaveTicks, c.Patience.AngryTicks)
	check(c.Patience.ExitTicks > 0, "patience.exit_ticks must be positive, got %d", c.Patience.ExitTicks)

	_, err := zerolog.ParseLevel(c.LogLevel)
	check(err == nil, "log_level %q is not a zerolog level", c.LogLevel)

	return errors.Join(errs...)
}

// Detector converts the squat section for the power detector
func (c *Config) Detector() systems.DetectorConfig {
	return systems.DetectorConfig{
		CalibrationFrames: c.Squat.CalibrationFrames,
		Threshold:         c.Squat.Threshold,
		ReleaseRatio:      c.Squat.ReleaseRatio,
		PowerPerRep:       c.Squat.PowerPerRep,
		MaxPower:          c.Squat.MaxPower,
		MinConfidence:     c.Squat.MinConfidence,
	}
}

// PatienceRules converts the patience section for the customer tracker
func (c *Config) PatienceRules() systems.PatienceConfig {
	return systems.PatienceConfig{
		AngryTicks: c.Patience.AngryTicks,
		LeaveTicks: c.Patience.LeaveTicks,
		ExitTicks:  c.Patience.ExitTicks,
	}
}

// Level returns the parsed log level, info when unparseable
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Clone returns an independent copy
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
