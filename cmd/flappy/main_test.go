package main

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/replay"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// execute runs the root command with flags back at their defaults and the
// journal in a temp dir.
func execute(t *testing.T, dbPath string, args ...string) error {
	t.Helper()
	flagFPS, flagSeed, flagConfig = 0, 0, ""
	flagLogLevel, flagLogFile = "info", ""
	flagRunsLimit, flagRunsPlayer, flagRunsDelete = 20, "", 0
	flagVerify, flagConfigDefaults = false, false

	rootCmd.SetArgs(append(args, "--db", dbPath))
	return rootCmd.Execute()
}

// saveQuitRun journals a run that idles for a second and then quits.
func saveQuitRun(t *testing.T, dbPath string) int64 {
	t.Helper()
	rec := replay.NewRecorder()
	for i := 0; i < 60; i++ {
		rec.Record(core.NewInputFrame())
	}
	rec.Record(core.NewInputFrame(core.ActionQuit))

	row, err := replay.Recording{
		Seed:   42,
		Config: config.DefaultFlappyConfig(),
		Log:    rec.Log(),
		Quit:   true,
	}.Stored("flappy", "alice")
	if err != nil {
		t.Fatalf("Stored() failed: %v", err)
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	id, err := store.SaveRun(row)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	return id
}

func TestCommandErrorsAreReturned(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{name: "delete unknown run", args: []string{"runs", "--delete", "42"}, wantErr: storage.ErrRunNotFound},
		{name: "verify unknown run", args: []string{"replay", "7", "--verify"}, wantErr: storage.ErrRunNotFound},
		{name: "bad run id", args: []string{"replay", "seven"}, wantMsg: `invalid run id "seven"`},
		{name: "bad log level", args: []string{"runs", "--log-level", "loud"}, wantMsg: "invalid --log-level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, filepath.Join(t.TempDir(), "runs.db"), tt.args...)
			if err == nil {
				t.Fatal("expected an error, command succeeded")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestCommandsReleaseTheJournal(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	id := strconv.FormatInt(saveQuitRun(t, dbPath), 10)

	if err := execute(t, dbPath, "runs", "--delete", "999"); err == nil {
		t.Fatal("deleting a missing run should fail")
	}
	// The failed command closed its handle, so the journal is still usable.
	if err := execute(t, dbPath, "replay", id, "--verify"); err != nil {
		t.Fatalf("verify after a failed command: %v", err)
	}
	if err := execute(t, dbPath, "runs", "--delete", id); err != nil {
		t.Fatalf("delete run %s: %v", id, err)
	}
	if err := execute(t, dbPath, "replay", id, "--verify"); !errors.Is(err, storage.ErrRunNotFound) {
		t.Errorf("verify of a deleted run = %v, want ErrRunNotFound", err)
	}
}

func TestVerifiedLine(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Timing.FPS = 30
	rec := replay.Recording{Config: cfg}

	got := verifiedLine(3, rec, replay.Result{Score: 4, Ticks: 450})
	want := "Run 3 verified: score 4 after 450 ticks (15.0s)"
	if got != want {
		t.Errorf("verifiedLine() = %q, want %q", got, want)
	}
}

func TestSpeedNote(t *testing.T) {
	tests := []struct {
		name  string
		curve func(c *config.FlappyConfig)
		want  string
	}{
		{"defaults", func(*config.FlappyConfig) {}, "# pipes reach speed_cap at score 185\n"},
		{"flat", func(c *config.FlappyConfig) { c.Pipes.SpeedPerPoint = 0 }, "# pipe speed stays below speed_cap at every score\n"},
		{"starts capped", func(c *config.FlappyConfig) { c.Pipes.BaseSpeed = c.Pipes.SpeedCap }, "# pipes start at speed_cap\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultFlappyConfig()
			tt.curve(&cfg)
			if got := speedNote(cfg); got != tt.want {
				t.Errorf("speedNote() = %q, want %q", got, tt.want)
			}
		})
	}
}
