package gekko

import (
	"errors"
	"fmt"
	"os"

	"github.com/gekko3d/gekko-physics/collision"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFixedStep   = 1.0 / 60.0
	DefaultMaxSubSteps = 8
)

var ErrInvalidConfig = errors.New("physics: invalid config")

// Config holds the tunables of a PhysicsWorld.
type Config struct {
	Gravity       mgl32.Vec3 `yaml:"gravity"`
	GroundLevel   float32    `yaml:"ground_level"`
	MaxIterations int        `yaml:"max_iterations"`
	FixedStep     float32    `yaml:"fixed_step"`
	MaxSubSteps   int        `yaml:"max_sub_steps"`
	Debug         bool       `yaml:"debug"`
}

func DefaultConfig() *Config {
	return &Config{
		Gravity:       DefaultGravity,
		GroundLevel:   DefaultGroundLevel,
		MaxIterations: collision.DefaultMaxIterations,
		FixedStep:     DefaultFixedStep,
		MaxSubSteps:   DefaultMaxSubSteps,
	}
}

// LoadConfig reads a YAML config. Missing keys keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: max_iterations %d must be positive", ErrInvalidConfig, c.MaxIterations)
	}
	if !(c.FixedStep > 0) {
		return fmt.Errorf("%w: fixed_step %v must be positive", ErrInvalidConfig, c.FixedStep)
	}
	if c.MaxSubSteps <= 0 {
		return fmt.Errorf("%w: max_sub_steps %d must be positive", ErrInvalidConfig, c.MaxSubSteps)
	}
	return nil
}
