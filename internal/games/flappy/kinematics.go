package flappy

import "math"

// FramesToMillis converts a frame count to elapsed milliseconds at fps.
func FramesToMillis(frames, fps float64) float64 {
	return 1000.0 * frames / fps
}

// MillisToFrames converts elapsed milliseconds to a (fractional) frame count at fps.
func MillisToFrames(millis, fps float64) float64 {
	return fps * millis / 1000.0
}

// ClimbDisplacement is the upward distance covered during one step of a
// climb. The (1 - cos) profile turns a flap into a burst instead of a
// linear rise; remaining/duration gives the fraction of the climb left.
func ClimbDisplacement(climbSpeed, elapsedMillis, remainingMillis, durationMillis float64) float64 {
	done := 1 - remainingMillis/durationMillis
	return climbSpeed * elapsedMillis * (1 - math.Cos(done*math.Pi))
}

// SinkDisplacement is the downward distance covered while not climbing.
// Sinking is linear, there is no acceleration.
func SinkDisplacement(sinkSpeed, elapsedMillis float64) float64 {
	return sinkSpeed * elapsedMillis
}
