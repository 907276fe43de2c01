package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Stream is the FIFO of live pipe pairs. New pairs enter at the tail on the
// right; pairs leave from the head once they scroll off the left edge.
// Pairs are created and become invisible in the same order, so only the
// head ever needs checking.
type Stream struct {
	cfg   config.FlappyConfig
	rng   *rand.Rand
	pairs []*PipePair
}

// NewStream creates an empty stream drawing gap positions from rng.
func NewStream(cfg config.FlappyConfig, rng *rand.Rand) *Stream {
	return &Stream{
		cfg:   cfg,
		rng:   rng,
		pairs: make([]*PipePair, 0, 8),
	}
}

// MaybeSpawn appends a new pair when frame is on the spawn cadence.
// The caller must not call it while paused.
func (s *Stream) MaybeSpawn(frame int) bool {
	if frame%s.cfg.Pipes.AddInterval != 0 {
		return false
	}
	s.pairs = append(s.pairs, NewPipePair(s.cfg, s.rng))
	return true
}

// EvictInvisible drops pairs from the head while they are off-screen and
// returns how many were removed.
func (s *Stream) EvictInvisible() int {
	n := 0
	for len(s.pairs) > 0 && !s.pairs[0].Visible() {
		s.pairs[0] = nil
		s.pairs = s.pairs[1:]
		n++
	}
	return n
}

// Update scrolls every pair, oldest first.
func (s *Stream) Update(deltaFrames, score int) {
	for _, p := range s.pairs {
		p.Update(deltaFrames, score)
	}
}

// CollidesWith reports whether any pair hits the bird.
func (s *Stream) CollidesWith(b *Bird) bool {
	for _, p := range s.pairs {
		if p.CollidesWith(b) {
			return true
		}
	}
	return false
}

// Score marks every unscored pair whose trailing edge is left of anchorX
// and returns how many were newly scored.
func (s *Stream) Score(anchorX float64) int {
	n := 0
	for _, p := range s.pairs {
		if p.scoreIfPassed(anchorX) {
			n++
		}
	}
	return n
}

// Pairs returns the live pairs, oldest first. Callers must not modify the slice.
func (s *Stream) Pairs() []*PipePair {
	return s.pairs
}

// Len returns the number of live pairs.
func (s *Stream) Len() int {
	return len(s.pairs)
}
