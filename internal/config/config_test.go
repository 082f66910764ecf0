package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/onbeat/internal/beat"
	"git.lost.host/meutraa/onbeat/internal/game"
)

func TestParseDefaults(t *testing.T) {
	dir := t.TempDir()
	o, err := Parse([]string{dir}, File{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if o.Command != CommandPlay || o.Directory != dir {
		t.Fatalf("command %q directory %q", o.Command, o.Directory)
	}
	if o.Rate != 1 || o.Tolerance != 100*time.Millisecond || o.WarmUp != 4 || o.Delay != 1500*time.Millisecond {
		t.Fatalf("defaults %+v", o)
	}
}

func TestParseHistory(t *testing.T) {
	dir := t.TempDir()
	o, err := Parse([]string{"history", dir, "--db", "scores.db"}, File{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if o.Command != CommandHistory || o.Database != "scores.db" {
		t.Fatalf("options %+v", o)
	}
}

func TestFileValuesAreDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `[play]
rate = 1.5
tolerance = "80ms"
warm-up = 8
keys = "fj"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	o, err := Parse([]string{dir, "-w", "2"}, f)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if o.Rate != 1.5 || o.Tolerance != 80*time.Millisecond || o.Keys != "fj" {
		t.Fatalf("file values not applied: %+v", o)
	}
	if o.WarmUp != 2 {
		t.Fatalf("flag should win over the file, warm-up %v", o.WarmUp)
	}
}

func TestParseSerial(t *testing.T) {
	dir := t.TempDir()
	o, err := Parse([]string{dir, "--serial", "/dev/ttyACM0"}, File{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if o.Serial != "/dev/ttyACM0" || o.Baud != 115200 {
		t.Fatalf("serial %q baud %v", o.Serial, o.Baud)
	}
}

func TestLoadFileMissing(t *testing.T) {
	f, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if f.Play.Rate != nil {
		t.Fatalf("unexpected values %+v", f)
	}
	if _, err := LoadFile(""); err == nil {
		t.Fatal("expected an error for an empty path")
	}
}

func TestLoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[play\nrate = "), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestParseValidation(t *testing.T) {
	dir := t.TempDir()
	tests := [][]string{
		{dir, "--rate", "0"},
		{dir, "--tolerance=-5ms"},
		{dir, "--frame-period", "0s"},
		{dir, "--serial", "/dev/ttyACM0", "--baud", "0"},
		{filepath.Join(dir, "missing")},
	}
	for _, args := range tests {
		if _, err := Parse(args, File{}); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}
}

func TestBeatConfig(t *testing.T) {
	o := &Options{Offset: 20 * time.Millisecond, Tolerance: 50 * time.Millisecond, WarmUp: 2}
	c, err := o.BeatConfig(&game.Song{Title: "t", BPM: 132, Offset: 0.13})
	if err != nil {
		t.Fatalf("beat config: %v", err)
	}
	if c.Tempo != 132 || math.Abs(c.Offset-0.15) > 1e-9 || c.Tolerance != 0.05 || c.WarmUp != 2 {
		t.Fatalf("config %+v", c)
	}

	_, err = o.BeatConfig(&game.Song{Title: "t", BPM: 0})
	if !errors.Is(err, beat.ErrTempo) {
		t.Fatalf("expected a tempo error, got %v", err)
	}
}

func TestJudgements(t *testing.T) {
	o := &Options{Tolerance: 45 * time.Millisecond}
	js := o.Judgements()
	names := []string{"Exact", "Ridiculous", "Marvelous", "Great", "Okay", "Miss"}
	if len(js) != len(names) {
		t.Fatalf("judgements %v", js)
	}
	for i, name := range names {
		if js[i].Name != name {
			t.Fatalf("judgement %v is %v, expected %v", i, js[i].Name, name)
		}
	}
	if _, j := game.Grade(js, 45*time.Millisecond); j.Name != "Okay" {
		t.Fatalf("the tolerance edge should be Okay, got %v", j.Name)
	}
}
