package replay

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// playLive runs a scripted game the way the terminal does, recording every
// tick until the run dies or quits.
func playLive(t *testing.T, seed int64, quitAt int) Recording {
	t.Helper()
	cfg := config.DefaultFlappyConfig()
	run := flappy.NewRun(cfg, seed)
	rec := NewRecorder()

	for tick := 0; tick < 5000; tick++ {
		in := core.NewInputFrame()
		if tick%17 == 0 {
			in.Set(core.ActionJump)
		}
		if tick == 40 {
			in.Set(core.ActionPause)
		}
		if tick == 55 {
			in.Set(core.ActionPause)
		}
		if tick == quitAt {
			in.Set(core.ActionQuit)
		}

		rec.Record(in)
		res := run.Tick(in)
		if res.Quit {
			return Recording{Seed: seed, Config: cfg, Log: rec.Log(), Score: run.Score(), Quit: true}
		}
		if res.Died {
			return Recording{Seed: seed, Config: cfg, Log: rec.Log(), Score: run.Score()}
		}
	}
	t.Fatal("scripted run never ended")
	return Recording{}
}

func TestRecorderSkipsEmptyTicks(t *testing.T) {
	r := NewRecorder()
	r.Record(core.NewInputFrame())
	r.Record(core.NewInputFrame(core.ActionJump))
	r.Record(core.NewInputFrame())
	r.Record(core.NewInputFrame(core.ActionPause, core.ActionJump))

	l := r.Log()
	if l.Ticks != 4 || r.Ticks() != 4 {
		t.Errorf("ticks = %d, want 4", l.Ticks)
	}
	want := []Frame{
		{Tick: 1, Actions: []core.Action{core.ActionJump}},
		{Tick: 3, Actions: []core.Action{core.ActionPause, core.ActionJump}},
	}
	if !reflect.DeepEqual(l.Frames, want) {
		t.Errorf("frames = %+v, want %+v", l.Frames, want)
	}

	r.Reset()
	if r.Ticks() != 0 || len(r.Log().Frames) != 0 {
		t.Error("Reset should clear the recorder")
	}
}

func TestRecorderCopiesInput(t *testing.T) {
	r := NewRecorder()
	in := core.NewInputFrame(core.ActionJump)
	r.Record(in)
	in.Clear()
	in.Set(core.ActionQuit)

	if got := r.Log().Frames[0].Actions[0]; got != core.ActionJump {
		t.Errorf("recorded action = %v, want Jump", got)
	}
}

func TestEncodeDecode(t *testing.T) {
	l := Log{
		Ticks: 10,
		Frames: []Frame{
			{Tick: 0, Actions: []core.Action{core.ActionJump}},
			{Tick: 9, Actions: []core.Action{core.ActionPause, core.ActionQuit}},
		},
	}

	data, err := Encode(l)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}

	l.Version = FormatVersion
	if !reflect.DeepEqual(got, l) {
		t.Errorf("Decode(Encode(l)) = %+v, want %+v", got, l)
	}
}

func TestDecodeRejectsCorrupt(t *testing.T) {
	encode := func(l Log) []byte {
		data, err := msgpack.Marshal(&l)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		return data
	}
	jump := []core.Action{core.ActionJump}

	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte{0xc1, 0xff, 0x00}},
		{"wrong version", encode(Log{Version: 99, Ticks: 1})},
		{"negative ticks", encode(Log{Version: FormatVersion, Ticks: -1})},
		{"frame past end", encode(Log{Version: FormatVersion, Ticks: 2, Frames: []Frame{{Tick: 2, Actions: jump}}})},
		{"frames out of order", encode(Log{Version: FormatVersion, Ticks: 9, Frames: []Frame{{Tick: 5, Actions: jump}, {Tick: 3, Actions: jump}}})},
		{"empty frame", encode(Log{Version: FormatVersion, Ticks: 9, Frames: []Frame{{Tick: 5}}})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.data); !errors.Is(err, ErrCorrupt) {
				t.Errorf("Decode() error = %v, want ErrCorrupt", err)
			}
		})
	}
}

func TestPlayerFeedsRecordedTicks(t *testing.T) {
	p := NewPlayer(Log{
		Version: FormatVersion,
		Ticks:   4,
		Frames:  []Frame{{Tick: 2, Actions: []core.Action{core.ActionJump}}},
	})

	var got []int
	for !p.Done() {
		got = append(got, p.Next().Len())
	}
	if !reflect.DeepEqual(got, []int{0, 0, 1, 0}) {
		t.Errorf("per-tick action counts = %v", got)
	}
	if p.Tick() != 4 {
		t.Errorf("Tick() = %d, want 4", p.Tick())
	}
}

func TestVerifyLiveRun(t *testing.T) {
	rec := playLive(t, 2024, -1)

	res, err := Verify(rec)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if res.State != flappy.StateDead {
		t.Errorf("replayed state = %v, want dead", res.State)
	}
	if res.Ticks != rec.Log.Ticks {
		t.Errorf("replayed %d ticks, recorded %d", res.Ticks, rec.Log.Ticks)
	}
}

func TestVerifyQuitRun(t *testing.T) {
	rec := playLive(t, 7, 120)
	if !rec.Quit {
		t.Fatal("expected the scripted run to quit")
	}

	res, err := Verify(rec)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if !res.Quit || res.Ticks != 121 {
		t.Errorf("quit=%v ticks=%d, want quit after 121 ticks", res.Quit, res.Ticks)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	rec := playLive(t, 2024, -1)

	wrongScore := rec
	wrongScore.Score++
	if _, err := Verify(wrongScore); !errors.Is(err, ErrMismatch) {
		t.Errorf("tampered score: error = %v, want ErrMismatch", err)
	}

	// Cut the log short so the run never reaches its collision.
	short := rec
	short.Log = Log{Version: FormatVersion, Ticks: 30}
	for _, f := range rec.Log.Frames {
		if f.Tick < 30 {
			short.Log.Frames = append(short.Log.Frames, f)
		}
	}
	short.Score = 0
	if _, err := Verify(short); !errors.Is(err, ErrMismatch) {
		t.Errorf("truncated log: error = %v, want ErrMismatch", err)
	}

	claimsQuit := rec
	claimsQuit.Quit = true
	if _, err := Verify(claimsQuit); !errors.Is(err, ErrMismatch) {
		t.Errorf("missing quit: error = %v, want ErrMismatch", err)
	}
}

func TestStoredRoundTrip(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	rec := playLive(t, 99, -1)
	row, err := rec.Stored("flappy", "tester")
	if err != nil {
		t.Fatalf("Stored() failed: %v", err)
	}
	if row.EndReason != storage.EndDead {
		t.Errorf("end reason = %q, want %q", row.EndReason, storage.EndDead)
	}

	id, err := store.SaveRun(row)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	loaded, err := store.Run(id)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	back, err := FromStored(loaded)
	if err != nil {
		t.Fatalf("FromStored() failed: %v", err)
	}
	if back.Seed != rec.Seed || back.Score != rec.Score || back.Config != rec.Config {
		t.Errorf("FromStored() = seed %d score %d, want seed %d score %d", back.Seed, back.Score, rec.Seed, rec.Score)
	}
	if _, err := Verify(back); err != nil {
		t.Errorf("Verify() after storage failed: %v", err)
	}
}

func TestFromStoredRejectsTickMismatch(t *testing.T) {
	rec := playLive(t, 99, -1)
	row, err := rec.Stored("flappy", "tester")
	if err != nil {
		t.Fatalf("Stored() failed: %v", err)
	}
	row.Ticks++

	if _, err := FromStored(row); !errors.Is(err, ErrCorrupt) {
		t.Errorf("FromStored() error = %v, want ErrCorrupt", err)
	}
}
