package replay

import (
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Recording is everything needed to reproduce a run, plus the outcome
// that was observed live.
type Recording struct {
	Seed   int64
	Config config.FlappyConfig
	Log    Log
	Score  int
	Quit   bool // the run ended on a quit rather than a collision
}

// Result is the outcome of a re-simulation.
type Result struct {
	Score  int
	Frames int
	Ticks  int
	State  flappy.State
	Quit   bool
}

// Simulate replays a log headless against a fresh run.
func Simulate(cfg config.FlappyConfig, seed int64, l Log) Result {
	run := flappy.NewRun(cfg, seed)
	p := NewPlayer(l)

	res := Result{}
	for !p.Done() {
		tr := run.Tick(p.Next())
		res.Ticks++
		if tr.Quit {
			res.Quit = true
			break
		}
	}

	res.Score = run.Score()
	res.Frames = run.Frame()
	res.State = run.State()
	return res
}

// Verify re-simulates a recording and checks that it ends the same way:
// same score, every tick consumed, and on a collision or quit as recorded.
func Verify(rec Recording) (Result, error) {
	res := Simulate(rec.Config, rec.Seed, rec.Log)
	switch {
	case res.Score != rec.Score:
		return res, fmt.Errorf("%w: score %d, recorded %d", ErrMismatch, res.Score, rec.Score)
	case res.Ticks != rec.Log.Ticks:
		return res, fmt.Errorf("%w: stopped after %d of %d ticks", ErrMismatch, res.Ticks, rec.Log.Ticks)
	case rec.Quit && !res.Quit:
		return res, fmt.Errorf("%w: recorded quit was not reached", ErrMismatch)
	case !rec.Quit && res.State != flappy.StateDead:
		return res, fmt.Errorf("%w: run ended %s, recorded dead", ErrMismatch, res.State)
	}
	return res, nil
}

// Stored converts a recording to a journal row for player.
func (rec Recording) Stored(gameID, player string) (storage.Run, error) {
	cfgYAML, err := config.Marshal(rec.Config)
	if err != nil {
		return storage.Run{}, fmt.Errorf("replay: %w", err)
	}
	inputs, err := Encode(rec.Log)
	if err != nil {
		return storage.Run{}, err
	}

	reason := storage.EndDead
	if rec.Quit {
		reason = storage.EndQuit
	}

	return storage.Run{
		GameID:    gameID,
		Player:    player,
		Seed:      rec.Seed,
		Config:    cfgYAML,
		Inputs:    inputs,
		Ticks:     rec.Log.Ticks,
		Score:     rec.Score,
		EndReason: reason,
	}, nil
}

// FromStored rebuilds a recording from a journal row.
func FromStored(r storage.Run) (Recording, error) {
	cfg, err := config.Parse(r.Config)
	if err != nil {
		return Recording{}, fmt.Errorf("replay: run %d: %w", r.ID, err)
	}
	l, err := Decode(r.Inputs)
	if err != nil {
		return Recording{}, fmt.Errorf("run %d: %w", r.ID, err)
	}
	if l.Ticks != r.Ticks {
		return Recording{}, fmt.Errorf("%w: run %d has %d ticks, log has %d", ErrCorrupt, r.ID, r.Ticks, l.Ticks)
	}

	return Recording{
		Seed:   r.Seed,
		Config: cfg,
		Log:    l,
		Score:  r.Score,
		Quit:   r.EndReason == storage.EndQuit,
	}, nil
}
