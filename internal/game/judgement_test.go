package game

import (
	"testing"
	"time"
)

var judgements = []Judgement{
	{Time: 20 * time.Millisecond, Name: "Marvelous"},
	{Time: 40 * time.Millisecond, Name: "Great"},
	{Time: 100 * time.Millisecond, Name: "Okay"},
	{Name: "Miss"},
}

var gradeTests = map[time.Duration]string{
	0:                       "Marvelous",
	19 * time.Millisecond:   "Marvelous",
	20 * time.Millisecond:   "Great",
	99 * time.Millisecond:   "Okay",
	100 * time.Millisecond:  "Okay",
	2000 * time.Millisecond: "Okay",
}

func TestGrade(t *testing.T) {
	for d, expected := range gradeTests {
		_, j := Grade(judgements, d)
		if j == nil || j.Name != expected {
			t.Log("Distance", d)
			t.Log("Grade   ", j)
			t.Log("Expected", expected)
			t.Fail()
		}
	}
	if i, j := Grade(judgements[:1], 0); i != -1 || j != nil {
		t.Fatalf("grading without a miss tier should fail, got %v %v", i, j)
	}
}

func TestMiss(t *testing.T) {
	i, j := Miss(judgements)
	if i != 3 || j.Name != "Miss" {
		t.Fatalf("miss tier %v %v", i, j)
	}
}

func TestDownbeat(t *testing.T) {
	for beat, expected := range map[int]bool{0: true, 1: false, 3: false, 4: true, 17: false, 32: true} {
		if Downbeat(beat) != expected {
			t.Errorf("beat %v: downbeat %v", beat, !expected)
		}
	}
}
