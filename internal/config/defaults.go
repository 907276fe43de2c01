package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the reference configuration.
// It mirrors defaults/flappy.yaml and is used when the embedded file
// cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Window: WindowConfig{
			Width:  1000,
			Height: 720,
		},
		Timing: TimingConfig{
			FPS: 60,
		},
		Bird: BirdConfig{
			X:              50,
			Y:              350,
			Width:          40,
			Height:         40,
			SinkSpeed:      0.15,
			ClimbSpeed:     0.3,
			ClimbDuration:  150,
			InitialClimb:   2,
			WingPeriod:     500,
			HitboxInset:    2,
			WingUpHitboxDY: 2,
		},
		Pipes: PipesConfig{
			Width:         80,
			PieceHeight:   32,
			AddInterval:   150,
			BaseSpeed:     0.15,
			SpeedPerPoint: 0.01,
			SpeedCap:      2.0,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
