package ambient

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LiquidConfig controls the liquid cursor-trail sketch.
type LiquidConfig struct {
	// MouseForce scales spawn velocity and the random spread.
	MouseForce float64 `yaml:"mouseForce"`
	// CursorSize is the base radius; particles get 20%..70% of it.
	CursorSize float64 `yaml:"cursorSize"`
	// Resolution is accepted for compatibility and has no effect.
	Resolution float64 `yaml:"resolution"`
	// AutoDemo enables the autonomous Lissajous spawn path.
	AutoDemo bool `yaml:"autoDemo"`
	// AutoSpeed multiplies the autonomous path's clock.
	AutoSpeed float64 `yaml:"autoSpeed"`
	// AutoIntensity is accepted for compatibility and has no effect.
	AutoIntensity float64 `yaml:"autoIntensity"`
	// MaxParticles is the population cap.
	MaxParticles int `yaml:"maxParticles"`
	// Damping is the per-frame velocity multiplier.
	Damping float64 `yaml:"damping"`
	// Seed fixes the random sequence. Zero picks a random seed.
	Seed uint64 `yaml:"seed"`
}

// DefaultLiquidConfig returns the stock liquid settings.
func DefaultLiquidConfig() LiquidConfig {
	return LiquidConfig{
		MouseForce:    20,
		CursorSize:    150,
		Resolution:    0.5,
		AutoDemo:      true,
		AutoSpeed:     0.3,
		AutoIntensity: 2,
		MaxParticles:  200,
		Damping:       0.96,
	}
}

// Validate checks the liquid settings.
func (c *LiquidConfig) Validate() error {
	if c.MouseForce <= 0 {
		return fmt.Errorf("mouseForce must be positive, got %v", c.MouseForce)
	}
	if c.CursorSize <= 0 {
		return fmt.Errorf("cursorSize must be positive, got %v", c.CursorSize)
	}
	if c.AutoSpeed < 0 {
		return fmt.Errorf("autoSpeed must not be negative, got %v", c.AutoSpeed)
	}
	if c.MaxParticles <= 0 {
		return fmt.Errorf("maxParticles must be positive, got %d", c.MaxParticles)
	}
	if c.Damping <= 0 || c.Damping > 1 {
		return fmt.Errorf("damping must be in (0, 1], got %v", c.Damping)
	}
	return nil
}

// withDefaults fills the fields whose zero value is invalid from
// DefaultLiquidConfig, so a partial literal such as
// LiquidConfig{MouseForce: 40} behaves like the stock sketch with one
// override. AutoDemo and AutoSpeed are taken as given.
func (c LiquidConfig) withDefaults() LiquidConfig {
	def := DefaultLiquidConfig()
	if c.MouseForce == 0 {
		c.MouseForce = def.MouseForce
	}
	if c.CursorSize == 0 {
		c.CursorSize = def.CursorSize
	}
	if c.MaxParticles == 0 {
		c.MaxParticles = def.MaxParticles
	}
	if c.Damping == 0 {
		c.Damping = def.Damping
	}
	return c
}

// TechConfig controls the circuit background sketch.
type TechConfig struct {
	// Density is the canvas area per particle, in square pixels.
	Density float64 `yaml:"density"`
	// LinkDistance is the max distance for particle-to-particle lines.
	LinkDistance float64 `yaml:"linkDistance"`
	// PointerLinkDistance is the max distance for pointer-to-particle lines.
	PointerLinkDistance float64 `yaml:"pointerLinkDistance"`
	// RepelRadius is the pointer repulsion radius.
	RepelRadius float64 `yaml:"repelRadius"`
	// Damping is the per-frame velocity multiplier.
	Damping float64 `yaml:"damping"`
	// Decorations toggles the hex grid, circuit lines and binary rain.
	Decorations bool `yaml:"decorations"`
	// Seed fixes the random sequence. Zero picks a random seed.
	Seed uint64 `yaml:"seed"`
}

// DefaultTechConfig returns the stock tech settings.
func DefaultTechConfig() TechConfig {
	return TechConfig{
		Density:             15000,
		LinkDistance:        120,
		PointerLinkDistance: 150,
		RepelRadius:         100,
		Damping:             0.99,
		Decorations:         true,
	}
}

// Validate checks the tech settings.
func (c *TechConfig) Validate() error {
	if c.Density <= 0 {
		return fmt.Errorf("density must be positive, got %v", c.Density)
	}
	if c.LinkDistance <= 0 || c.PointerLinkDistance <= 0 {
		return fmt.Errorf("link distances must be positive, got %v and %v",
			c.LinkDistance, c.PointerLinkDistance)
	}
	if c.RepelRadius < 0 {
		return fmt.Errorf("repelRadius must not be negative, got %v", c.RepelRadius)
	}
	if c.Damping <= 0 || c.Damping > 1 {
		return fmt.Errorf("damping must be in (0, 1], got %v", c.Damping)
	}
	return nil
}

// withDefaults fills the fields whose zero value is invalid from
// DefaultTechConfig. RepelRadius and Decorations are taken as given.
func (c TechConfig) withDefaults() TechConfig {
	def := DefaultTechConfig()
	if c.Density == 0 {
		c.Density = def.Density
	}
	if c.LinkDistance == 0 {
		c.LinkDistance = def.LinkDistance
	}
	if c.PointerLinkDistance == 0 {
		c.PointerLinkDistance = def.PointerLinkDistance
	}
	if c.Damping == 0 {
		c.Damping = def.Damping
	}
	return c
}

// Config is the top-level file format:
//
//	liquid:
//	  mouseForce: 20
//	  autoDemo: true
//	tech:
//	  density: 15000
//	theme:
//	  primary: "#5227ff"
type Config struct {
	Liquid LiquidConfig `yaml:"liquid"`
	Tech   TechConfig   `yaml:"tech"`
	Theme  Theme        `yaml:"theme"`
}

// DefaultConfig returns a Config populated with every default.
func DefaultConfig() *Config {
	return &Config{
		Liquid: DefaultLiquidConfig(),
		Tech:   DefaultTechConfig(),
		Theme:  DefaultTheme(),
	}
}

// ParseConfig decodes YAML on top of DefaultConfig, so omitted keys keep
// their defaults, and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse ambient config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ambient config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ambient config: %w", err)
	}
	return ParseConfig(data)
}

// Validate checks both sketch sections.
func (c *Config) Validate() error {
	if err := c.Liquid.Validate(); err != nil {
		return fmt.Errorf("liquid: %w", err)
	}
	if err := c.Tech.Validate(); err != nil {
		return fmt.Errorf("tech: %w", err)
	}
	return nil
}
