package sched

import (
	"errors"
	"fmt"
	"os"
	"time"

	yaml "github.com/goccy/go-yaml"
)

// Config mirrors schedsim.yml
type Config struct {
	SystemHZ  int            `yaml:"system_hz"` // 8 (by default), ticks per quantum and per arrival
	TickMS    int            `yaml:"tick_ms"`   // 0 (by default), real-time pacing per tick
	Debug     bool           `yaml:"debug"`     // push the event trace to the sink
	CSVPath   string         `yaml:"csv_path"`  // optional CSV event log
	Policies  []string       `yaml:"policies"`  // all four (by default)
	Scenarios [][]int64      `yaml:"scenarios"` // empty = built-in scenarios
	Random    RandomWorkload `yaml:"random"`
}

// RandomWorkload asks for generated scenarios on top of the listed ones.
type RandomWorkload struct {
	Count  int   `yaml:"count"`  // number of scenarios, 0 disables generation
	Length int   `yaml:"length"` // processes per scenario
	Min    int64 `yaml:"min"`    // shortest burst
	Max    int64 `yaml:"max"`    // longest burst
	Seed   int64 `yaml:"seed"`
}

const (
	DefaultSystemHZ = 8
	// DemoTickMS paces live terminal runs at 50 ticks per second.
	DemoTickMS = 1000 / 50
)

var ErrInvalidHZ = errors.New("system_hz must be at least 1")

// DefaultConfig is used when no config file is present.
func DefaultConfig() Config {
	return Config{
		SystemHZ: DefaultSystemHZ,
		Policies: []string{"FCFS", "RR", "SJF", "SRTF"},
		Random: RandomWorkload{
			Length: 8,
			Min:    1,
			Max:    64,
		},
	}
}

// Load reads YAML and overrides defaults; empty path or missing file = defaults only
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	// sanity clamps
	if cfg.TickMS < 0 {
		cfg.TickMS = 0
	}
	if len(cfg.Policies) == 0 {
		cfg.Policies = DefaultConfig().Policies
	}
	if cfg.Random.Min <= 0 {
		cfg.Random.Min = 1
	}
	if cfg.Random.Max < cfg.Random.Min {
		cfg.Random.Max = cfg.Random.Min
	}
	if cfg.Random.Length <= 0 {
		cfg.Random.Length = DefaultConfig().Random.Length
	}

	return cfg, cfg.Validate()
}

// Validate reports settings no run can start with.
func (c Config) Validate() error {
	if c.SystemHZ < 1 {
		return fmt.Errorf("%w, got %d", ErrInvalidHZ, c.SystemHZ)
	}
	for _, name := range c.Policies {
		if _, err := ParsePolicy(name); err != nil {
			return err
		}
	}
	for i, s := range c.Scenarios {
		if err := ValidateScenario(s); err != nil {
			return fmt.Errorf("scenario %d: %w", i, err)
		}
	}
	return nil
}

// TickDuration is the real-time pacing per tick, 0 when disabled.
func (c Config) TickDuration() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

// ParsedPolicies resolves the configured policy names.
func (c Config) ParsedPolicies() ([]Policy, error) {
	out := make([]Policy, 0, len(c.Policies))
	for _, name := range c.Policies {
		p, err := ParsePolicy(name)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
