// Package config provides YAML-based game configuration loading and
// validation. A FlappyConfig is loaded once, validated, and then passed by
// value into every simulation component; nothing reads global constants.
package config

// FlappyConfig contains all configuration for the game.
type FlappyConfig struct {
	Window WindowConfig `yaml:"window"`
	Timing TimingConfig `yaml:"timing"`
	Bird   BirdConfig   `yaml:"bird"`
	Pipes  PipesConfig  `yaml:"pipes"`
}

// WindowConfig is the size of the simulated play field in pixels.
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TimingConfig defines the frame clock.
type TimingConfig struct {
	FPS int `yaml:"fps"`
}

// BirdConfig defines the bird's spawn point, size and kinematics.
// Speeds are in pixels per millisecond, durations in milliseconds.
type BirdConfig struct {
	X              float64 `yaml:"x"`
	Y              float64 `yaml:"y"`
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	SinkSpeed      float64 `yaml:"sink_speed"`
	ClimbSpeed     float64 `yaml:"climb_speed"`
	ClimbDuration  float64 `yaml:"climb_duration_ms"`
	InitialClimb   float64 `yaml:"initial_climb_ms"`
	WingPeriod     float64 `yaml:"wing_period_ms"`
	HitboxInset    float64 `yaml:"hitbox_inset"`
	WingUpHitboxDY float64 `yaml:"wing_up_hitbox_dy"`
}

// PipesConfig defines obstacle geometry, cadence and scroll speed.
type PipesConfig struct {
	Width         float64 `yaml:"width"`
	PieceHeight   float64 `yaml:"piece_height"`
	AddInterval   int     `yaml:"add_interval"`
	BaseSpeed     float64 `yaml:"base_speed"`
	SpeedPerPoint float64 `yaml:"speed_per_point"`
	SpeedCap      float64 `yaml:"speed_cap"`
}

// TotalPieces is the number of pipe body pieces shared between the top and
// bottom stacks of every pair. Clearance of three bird heights and three
// pieces is reserved so the gap always fits the bird.
func (c FlappyConfig) TotalPieces() int {
	free := float64(c.Window.Height) - 3*c.Bird.Height - 3*c.Pipes.PieceHeight
	if c.Pipes.PieceHeight <= 0 {
		return 0
	}
	return int(free / c.Pipes.PieceHeight)
}

// FrameMillis is the simulated time covered by a single frame.
func (c FlappyConfig) FrameMillis() float64 {
	return 1000.0 / float64(c.Timing.FPS)
}

// Speed returns the scroll speed curve of the pipes.
func (c FlappyConfig) Speed() SpeedCurve {
	return SpeedCurve{
		Base:     c.Pipes.BaseSpeed,
		PerPoint: c.Pipes.SpeedPerPoint,
		Cap:      c.Pipes.SpeedCap,
	}
}
