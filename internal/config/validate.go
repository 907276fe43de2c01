package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks that the configuration can produce a playable run.
// Pipe generation is undefined when fewer than one body piece fits, so such
// configurations are rejected here instead of per frame.
func (c FlappyConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
		}
	}

	check(c.Window.Width > 0, "window.width must be positive, got %d", c.Window.Width)
	check(c.Window.Height > 0, "window.height must be positive, got %d", c.Window.Height)
	check(c.Timing.FPS > 0, "timing.fps must be positive, got %d", c.Timing.FPS)

	check(c.Bird.Width > 0, "bird.width must be positive, got %g", c.Bird.Width)
	check(c.Bird.Height > 0, "bird.height must be positive, got %g", c.Bird.Height)
	check(c.Bird.SinkSpeed > 0, "bird.sink_speed must be positive, got %g", c.Bird.SinkSpeed)
	check(c.Bird.ClimbSpeed > 0, "bird.climb_speed must be positive, got %g", c.Bird.ClimbSpeed)
	check(c.Bird.ClimbDuration > 0, "bird.climb_duration_ms must be positive, got %g", c.Bird.ClimbDuration)
	check(c.Bird.InitialClimb >= 0, "bird.initial_climb_ms must not be negative, got %g", c.Bird.InitialClimb)
	check(c.Bird.WingPeriod > 0, "bird.wing_period_ms must be positive, got %g", c.Bird.WingPeriod)
	check(c.Bird.HitboxInset >= 0 && 2*c.Bird.HitboxInset < c.Bird.Width && 2*c.Bird.HitboxInset < c.Bird.Height,
		"bird.hitbox_inset %g leaves no hitbox", c.Bird.HitboxInset)
	check(c.Bird.X >= 0 && c.Bird.X <= float64(c.Window.Width)-c.Bird.Width,
		"bird.x %g spawns the bird out of bounds", c.Bird.X)
	check(c.Bird.Y >= 0 && c.Bird.Y <= float64(c.Window.Height)-c.Bird.Height,
		"bird.y %g spawns the bird out of bounds", c.Bird.Y)

	check(c.Pipes.Width > 0, "pipes.width must be positive, got %g", c.Pipes.Width)
	check(c.Pipes.PieceHeight > 0, "pipes.piece_height must be positive, got %g", c.Pipes.PieceHeight)
	check(c.Pipes.AddInterval > 0, "pipes.add_interval must be positive, got %d", c.Pipes.AddInterval)
	check(c.Pipes.BaseSpeed > 0, "pipes.base_speed must be positive, got %g", c.Pipes.BaseSpeed)
	check(c.Pipes.SpeedPerPoint >= 0, "pipes.speed_per_point must not be negative, got %g", c.Pipes.SpeedPerPoint)
	check(c.Pipes.SpeedCap >= c.Pipes.BaseSpeed, "pipes.speed_cap %g is below base_speed %g", c.Pipes.SpeedCap, c.Pipes.BaseSpeed)

	if c.Pipes.PieceHeight > 0 {
		check(c.TotalPieces() >= 1, "window height %d leaves no room for pipe pieces (total pieces %d)",
			c.Window.Height, c.TotalPieces())
	}

	return errors.Join(errs...)
}
