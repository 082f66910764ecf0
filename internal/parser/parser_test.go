package parser

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

const chart = `#TITLE:Level 3;
#ARTIST:Ducky;
#MUSIC:level_3.ogg;
#OFFSET:0.130;
#BPMS:0.000=132.000
,64.000=140.000;
#STOPS:;

//---------------dance-single - ----------------
#NOTES:
     dance-single:
     :
     Hard:
     9:
     0.000,0.000,0.000,0.000,0.000:
1000
0100
0010
0001
;
`

const sidecar = `title: Level 3
artist: Ducky
music: level_3.mp3
bpm: 132
offset: -0.25
`

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %v: %v", name, err)
	}
	return p
}

func TestParseChart(t *testing.T) {
	dir := t.TempDir()
	file := write(t, dir, "level.sm", chart)

	song, err := ForFile(file).Parse(file)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if song.Title != "Level 3" || song.Artist != "Ducky" || song.Music != "level_3.ogg" {
		t.Fatalf("metadata %+v", song)
	}
	if song.BPM != 132 || song.BPMChanges != 1 || math.Abs(song.Offset-0.13) > 1e-9 {
		t.Fatalf("timing %+v", song)
	}
	if song.Source != file {
		t.Fatalf("source %v, expected %v", song.Source, file)
	}
}

func TestParseChartWithoutBPM(t *testing.T) {
	dir := t.TempDir()
	file := write(t, dir, "level.sm", "#TITLE:Nothing;\n#OFFSET:0;\n")
	if _, err := (&DefaultParser{}).Parse(file); err == nil {
		t.Fatal("expected an error for a chart without bpms")
	}
}

func TestParseChartBadOffset(t *testing.T) {
	dir := t.TempDir()
	file := write(t, dir, "level.sm", "#OFFSET:soon;\n#BPMS:0=120;\n")
	if _, err := (&DefaultParser{}).Parse(file); err == nil {
		t.Fatal("expected an error for a malformed offset")
	}
}

func TestParseSidecar(t *testing.T) {
	dir := t.TempDir()
	file := write(t, dir, "song.yaml", sidecar)

	p := ForFile(file)
	if _, ok := p.(*YAMLParser); !ok {
		t.Fatalf("%v parsed by %T", file, p)
	}
	song, err := p.Parse(file)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if song.Title != "Level 3" || song.Music != "level_3.mp3" || song.BPM != 132 || song.Offset != -0.25 {
		t.Fatalf("song %+v", song)
	}
	if song.String() != "Ducky - Level 3" {
		t.Fatalf("name %q", song.String())
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	audio := write(t, dir, "level_3.ogg", "")
	write(t, dir, "song.yaml", sidecar)
	sm := write(t, dir, "level.sm", chart)

	files, err := Find(dir)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if files.Audio != audio || files.Chart != sm {
		t.Fatalf("files %+v", files)
	}
	if m := Music(dir, "level_3.ogg", files); m != audio {
		t.Fatalf("music %v", m)
	}
	if m := Music(dir, "missing.mp3", files); m != audio {
		t.Fatalf("missing music should fall back, got %v", m)
	}
}

func TestFindSidecarOnly(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "track.mp3", "")
	yml := write(t, dir, "song.yml", sidecar)

	files, err := Find(dir)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if files.Chart != yml {
		t.Fatalf("chart %v, expected %v", files.Chart, yml)
	}
}

func TestFindNothing(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "notes.txt", "")
	if _, err := Find(dir); err == nil {
		t.Fatal("expected an error for an empty song directory")
	}
}
