package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/atlascore/scenario"
)

func TestParseWorkers(t *testing.T) {
	got, err := parseWorkers(" 1, 2,,8 ")
	if err != nil || len(got) != 3 || got[2] != 8 {
		t.Errorf("Expected [1 2 8], got %v (%v)", got, err)
	}
	for _, bad := range []string{"", "0", "x", "2,-1"} {
		if _, err := parseWorkers(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}

func TestBenchFrameLimit(t *testing.T) {
	reg := scenario.Builtins()
	a, err := bench(reg, "fluid", 1, time.Minute, 20)
	if err != nil {
		t.Fatal(err)
	}
	b, err := bench(reg, "fluid", 3, time.Minute, 20)
	if err != nil {
		t.Fatal(err)
	}
	if a.frames != 20 || b.frames != 20 {
		t.Errorf("Expected 20 frames each, got %d and %d", a.frames, b.frames)
	}
	if a.hash != b.hash {
		t.Errorf("Expected worker count not to change the result, got %016x and %016x", a.hash, b.hash)
	}

	var out bytes.Buffer
	report(&out, "fluid", []result{a, {workers: 9}})
	if !strings.Contains(out.String(), "workers=1  frames=20") || !strings.Contains(out.String(), "workers=9  no frames") {
		t.Errorf("Unexpected report:\n%s", out.String())
	}

	if _, err := bench(reg, "nope", 1, time.Second, 1); err == nil {
		t.Error("Expected error for unknown scenario")
	}
}
