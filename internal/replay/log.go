// Package replay records the per-tick input of a run and re-simulates it.
// A run is fully determined by its config, its seed and the ordered input
// of every tick, so those three are all that is stored.
package replay

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// FormatVersion is bumped whenever the encoded log layout changes.
const FormatVersion = 1

var (
	// ErrCorrupt is returned when an input log cannot be decoded.
	ErrCorrupt = errors.New("replay: corrupt input log")
	// ErrMismatch is returned when a re-simulation disagrees with the record.
	ErrMismatch = errors.New("replay: simulation does not match record")
)

// Frame is the input of one tick that carried at least one action.
type Frame struct {
	Tick    int           `msgpack:"t"`
	Actions []core.Action `msgpack:"a"`
}

// Log is the input of a whole run. Ticks without input are not stored;
// Ticks is the total number of ticks stepped.
type Log struct {
	Version int     `msgpack:"v"`
	Ticks   int     `msgpack:"n"`
	Frames  []Frame `msgpack:"f"`
}

// Encode serializes a log with msgpack.
func Encode(l Log) ([]byte, error) {
	if l.Version == 0 {
		l.Version = FormatVersion
	}
	data, err := msgpack.Marshal(&l)
	if err != nil {
		return nil, fmt.Errorf("replay: encode: %w", err)
	}
	return data, nil
}

// Decode parses and checks an encoded log.
func Decode(data []byte) (Log, error) {
	var l Log
	if err := msgpack.Unmarshal(data, &l); err != nil {
		return Log{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := l.check(); err != nil {
		return Log{}, err
	}
	return l, nil
}

// check enforces strictly increasing ticks inside [0, Ticks).
func (l Log) check() error {
	if l.Version != FormatVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrCorrupt, l.Version)
	}
	if l.Ticks < 0 {
		return fmt.Errorf("%w: negative tick count", ErrCorrupt)
	}
	prev := -1
	for _, f := range l.Frames {
		if f.Tick <= prev || f.Tick >= l.Ticks {
			return fmt.Errorf("%w: frame tick %d out of order", ErrCorrupt, f.Tick)
		}
		if len(f.Actions) == 0 {
			return fmt.Errorf("%w: empty frame at tick %d", ErrCorrupt, f.Tick)
		}
		prev = f.Tick
	}
	return nil
}

// Recorder captures the input handed to each tick of a run.
type Recorder struct {
	log Log
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{log: Log{Version: FormatVersion}}
}

// Record appends the input of the next tick.
func (r *Recorder) Record(in core.InputFrame) {
	if in.Len() > 0 {
		r.log.Frames = append(r.log.Frames, Frame{
			Tick:    r.log.Ticks,
			Actions: in.Clone().Actions(),
		})
	}
	r.log.Ticks++
}

// Ticks returns the number of recorded ticks.
func (r *Recorder) Ticks() int {
	return r.log.Ticks
}

// Log returns the recorded log.
func (r *Recorder) Log() Log {
	return r.log
}

// Reset discards everything recorded so far.
func (r *Recorder) Reset() {
	r.log = Log{Version: FormatVersion}
}

// Player feeds a log back one tick at a time.
type Player struct {
	log  Log
	tick int
	next int // index of the next frame
}

// NewPlayer creates a player positioned at tick 0.
func NewPlayer(l Log) *Player {
	return &Player{log: l}
}

// Next returns the input for the current tick and advances.
func (p *Player) Next() core.InputFrame {
	in := core.NewInputFrame()
	if p.next < len(p.log.Frames) && p.log.Frames[p.next].Tick == p.tick {
		in = core.NewInputFrame(p.log.Frames[p.next].Actions...)
		p.next++
	}
	p.tick++
	return in
}

// Done reports whether every recorded tick has been played.
func (p *Player) Done() bool {
	return p.tick >= p.log.Ticks
}

// Tick returns the index of the next tick to play.
func (p *Player) Tick() int {
	return p.tick
}
