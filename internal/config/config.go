package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/bungee/internal/physics"
)

const (
	DefaultDt        = 0.001
	DefaultHeight    = 80.0
	DefaultGravity   = 9.8
	DefaultMass      = 75.0
	DefaultArea      = 1.0
	DefaultDensity   = 1.2
	DefaultTerminal  = 60.0
	DefaultCord      = 25.0
	DefaultStiffness = 40.0
	DefaultDuration  = 20.0
)

type Config struct {
	Integrator string       `yaml:"integrator"`
	Dt         float64      `yaml:"dt"`
	Tolerance  float64      `yaml:"tolerance"`
	Adaptive   bool         `yaml:"adaptive"`
	Jump       JumpConfig   `yaml:"jump"`
	Solver     SolverConfig `yaml:"solver"`
}

type JumpConfig struct {
	AttachmentHeight float64 `yaml:"attachment_height"`
	InitPosition     float64 `yaml:"init_position"`
	InitVelocity     float64 `yaml:"init_velocity"`
	Gravity          float64 `yaml:"gravity"`
	Mass             float64 `yaml:"mass"`
	Area             float64 `yaml:"area"`
	AirDensity       float64 `yaml:"air_density"`
	TerminalVelocity float64 `yaml:"terminal_velocity"`
	CordLength       float64 `yaml:"cord_length"`
	SpringConstant   float64 `yaml:"spring_constant"`
	Duration         float64 `yaml:"duration"`
}

type SolverConfig struct {
	TargetHeight float64 `yaml:"target_height"`
	BracketLo    float64 `yaml:"bracket_lo"`
	BracketHi    float64 `yaml:"bracket_hi"`
	Tolerance    float64 `yaml:"tolerance"`
	MaxIter      int     `yaml:"max_iterations"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: "rk4",
		Dt:         DefaultDt,
		Tolerance:  1e-6,
		Jump: JumpConfig{
			AttachmentHeight: DefaultHeight,
			InitPosition:     DefaultHeight,
			Gravity:          DefaultGravity,
			Mass:             DefaultMass,
			Area:             DefaultArea,
			AirDensity:       DefaultDensity,
			TerminalVelocity: DefaultTerminal,
			CordLength:       DefaultCord,
			SpringConstant:   DefaultStiffness,
			Duration:         DefaultDuration,
		},
		Solver: SolverConfig{
			TargetHeight: 0,
			BracketLo:    DefaultCord,
			BracketHi:    60.0,
			Tolerance:    1e-6,
			MaxIter:      100,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) JumpParams() physics.Params {
	return physics.Params{
		AttachmentHeight: c.Jump.AttachmentHeight,
		InitPosition:     c.Jump.InitPosition,
		InitVelocity:     c.Jump.InitVelocity,
		Gravity:          c.Jump.Gravity,
		Mass:             c.Jump.Mass,
		Area:             c.Jump.Area,
		AirDensity:       c.Jump.AirDensity,
		TerminalVelocity: c.Jump.TerminalVelocity,
		CordLength:       c.Jump.CordLength,
		SpringConstant:   c.Jump.SpringConstant,
		Duration:         c.Jump.Duration,
	}
}
