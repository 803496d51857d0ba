package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"IssuanceSentinel/internal/collector"
	"IssuanceSentinel/internal/engine"
	"IssuanceSentinel/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Schedule struct {
		Block           uint64 `yaml:"block"`
		InitialPerBlock uint64 `yaml:"initial_per_block"`
		Epoch           uint64 `yaml:"epoch"`
	} `yaml:"schedule"`
	Policy struct {
		Cap struct {
			SMax uint64 `yaml:"s_max"`
		} `yaml:"cap"`
		Throttle    Throttle `yaml:"throttle"`
		FreezeAtCap bool     `yaml:"freeze_at_cap"`
	} `yaml:"policy"`
	Spend struct {
		PerBlock uint64 `yaml:"per_block"`
	} `yaml:"spend"`
	Run struct {
		From    uint64 `yaml:"from"`
		To      uint64 `yaml:"to"`
		Unit    string `yaml:"unit"`
		Verbose bool   `yaml:"verbose"`
	} `yaml:"run"`
	Follow struct {
		Cron string `yaml:"cron"`
	} `yaml:"follow"`
	Sweep    []SweepVariant `yaml:"sweep"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level string `yaml:"level"`
		Path  string `yaml:"path"`
	} `yaml:"log"`
}

// Throttle mirrors model.Throttle in the manifest layout.
type Throttle struct {
	WindowBlocks  uint64  `yaml:"window_blocks"`
	Target        uint64  `yaml:"target"`
	Beta          float64 `yaml:"beta"`
	MinMultiplier float64 `yaml:"min_multiplier"`
	BurnRequired  struct {
		Rate     float64 `yaml:"rate"`
		BurnAddr string  `yaml:"burn_addr"`
	} `yaml:"burn_required"`
}

// SweepVariant overrides parts of the base policy. Nil fields inherit.
type SweepVariant struct {
	Label         string   `yaml:"label"`
	SMax          *uint64  `yaml:"s_max"`
	WindowBlocks  *uint64  `yaml:"window_blocks"`
	Target        *uint64  `yaml:"target"`
	Beta          *float64 `yaml:"beta"`
	MinMultiplier *float64 `yaml:"min_multiplier"`
	FreezeAtCap   *bool    `yaml:"freeze_at_cap"`
}

// Default returns the configuration of the reference deployment.
func Default() *Config {
	cfg := &Config{}
	cfg.Schedule.Block = 929929
	cfg.Schedule.InitialPerBlock = 5_000_000
	cfg.Schedule.Epoch = 210_000
	cfg.Policy.Cap.SMax = 2_100_000_000_000
	cfg.Policy.Throttle.WindowBlocks = 2016
	cfg.Policy.Throttle.Target = 100_000_000
	cfg.Policy.Throttle.Beta = 0.5
	cfg.Policy.Throttle.MinMultiplier = 0.25
	cfg.Policy.Throttle.BurnRequired.Rate = 0.005
	cfg.Policy.Throttle.BurnRequired.BurnAddr = "1BitcoinEaterAddressDontSendf59kuE"
	cfg.Spend.PerBlock = collector.DefaultSpendPerBlock
	cfg.Run.From = 929929
	cfg.Run.To = 930028
	cfg.Run.Unit = "CASH"
	cfg.Run.Verbose = true
	cfg.Follow.Cron = "@every 10m"
	cfg.Log.Level = "info"
	return cfg
}

// Load reads config from a YAML file over the defaults, then applies
// environment variable overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_PATH"); v != "" {
		cfg.Log.Path = v
	}
	if v := os.Getenv("FOLLOW_CRON"); v != "" {
		cfg.Follow.Cron = v
	}
	if v := os.Getenv("SPEND_PER_BLOCK"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse SPEND_PER_BLOCK: %w", err)
		}
		cfg.Spend.PerBlock = n
	}

	return cfg, nil
}

// RewardSchedule returns the configured schedule.
func (c *Config) RewardSchedule() model.RewardSchedule {
	return model.RewardSchedule{
		ActivationHeight: c.Schedule.Block,
		InitialPerBlock:  c.Schedule.InitialPerBlock,
		HalvingInterval:  c.Schedule.Epoch,
	}
}

// PolicyParameters returns the configured base policy.
func (c *Config) PolicyParameters() model.PolicyParameters {
	th := c.Policy.Throttle
	return model.PolicyParameters{
		SupplyCap: c.Policy.Cap.SMax,
		Throttle: model.Throttle{
			WindowBlocks:  th.WindowBlocks,
			Target:        th.Target,
			Beta:          th.Beta,
			MinMultiplier: th.MinMultiplier,
			Burn: model.BurnRequirement{
				Rate:    th.BurnRequired.Rate,
				Address: th.BurnRequired.BurnAddr,
			},
		},
		FreezeAtCap: c.Policy.FreezeAtCap,
	}
}

// VariantPolicy applies v on top of the base policy.
func (c *Config) VariantPolicy(v SweepVariant) model.PolicyParameters {
	p := c.PolicyParameters()
	if v.SMax != nil {
		p.SupplyCap = *v.SMax
	}
	if v.WindowBlocks != nil {
		p.Throttle.WindowBlocks = *v.WindowBlocks
	}
	if v.Target != nil {
		p.Throttle.Target = *v.Target
	}
	if v.Beta != nil {
		p.Throttle.Beta = *v.Beta
	}
	if v.MinMultiplier != nil {
		p.Throttle.MinMultiplier = *v.MinMultiplier
	}
	if v.FreezeAtCap != nil {
		p.FreezeAtCap = *v.FreezeAtCap
	}
	return p
}

// Validate checks that the configuration describes a runnable schedule.
func (c *Config) Validate() error {
	if err := engine.ValidateSchedule(c.RewardSchedule()); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	if err := engine.ValidatePolicy(c.PolicyParameters()); err != nil {
		return fmt.Errorf("policy: %w", err)
	}
	if c.Run.From < c.Schedule.Block {
		return fmt.Errorf("run.from %d precedes schedule.block %d", c.Run.From, c.Schedule.Block)
	}
	if c.Run.To < c.Run.From {
		return fmt.Errorf("run.to %d precedes run.from %d", c.Run.To, c.Run.From)
	}
	seen := make(map[string]bool, len(c.Sweep))
	for i, v := range c.Sweep {
		if v.Label == "" {
			return fmt.Errorf("sweep[%d].label is required", i)
		}
		if seen[v.Label] {
			return fmt.Errorf("sweep label %q is duplicated", v.Label)
		}
		seen[v.Label] = true
		if err := engine.ValidatePolicy(c.VariantPolicy(v)); err != nil {
			return fmt.Errorf("sweep %q: %w", v.Label, err)
		}
	}
	return nil
}
