package config

import "math"

// SpeedCurve maps the current score to the horizontal pipe speed in
// pixels per millisecond. Speed grows linearly per point up to Cap; it is
// the only difficulty mechanism of the game.
type SpeedCurve struct {
	Base     float64
	PerPoint float64
	Cap      float64
}

// Speed returns min(Base + score*PerPoint, Cap).
func (s SpeedCurve) Speed(score int) float64 {
	return math.Min(s.Base+float64(score)*s.PerPoint, s.Cap)
}

// CappedAt returns the first score at which the cap is reached, or -1 if
// the speed never grows.
func (s SpeedCurve) CappedAt() int {
	if s.PerPoint <= 0 {
		if s.Base >= s.Cap {
			return 0
		}
		return -1
	}
	if s.Base >= s.Cap {
		return 0
	}
	return int(math.Ceil((s.Cap - s.Base) / s.PerPoint))
}
