package main

import (
	"strings"
	"testing"

	"github.com/LdDl/roadnet"
)

func TestParseStrokes(t *testing.T) {
	input := `# x1;y1;x2;y2;oneway
0;0;10;0
5;-5;5;5;true
`
	requests, err := parseStrokes(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(requests) != 2 {
		t.Fatalf("Number of strokes must be %d, but got %d", 2, len(requests))
	}
	if requests[0].OneWay {
		t.Errorf("Stroke without flag must be two-way")
	}
	if !requests[1].OneWay {
		t.Errorf("Stroke with flag must be one-way")
	}
	correct := []roadnet.GridPosition{roadnet.Pos(5, -5), roadnet.Pos(5, 5)}
	for i, pos := range requests[1].Positions {
		if pos != correct[i] {
			t.Errorf("Position #%d must be %s, but got %s", i, correct[i], pos)
		}
	}
}

func TestParseStrokesMalformed(t *testing.T) {
	malformed := []string{
		"0;0;10\n",
		"0;0;a;0\n",
		"0;0;10;0;maybe\n",
	}
	for _, input := range malformed {
		_, err := parseStrokes(strings.NewReader(input))
		if err == nil {
			t.Errorf("Parsing '%s' must fail", strings.TrimSpace(input))
		}
	}
}
