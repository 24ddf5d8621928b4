package graphio

import (
	"strings"
	"testing"

	"github.com/spanview/spanview/pkg/layout"
)

func buildSampleLayout(t *testing.T) *layout.GraphLayout {
	t.Helper()
	l, err := layout.Build(sampleSnapshot())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return l
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(buildSampleLayout(t), DOTOptions{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("DOT should open a digraph, got %q", dot[:20])
	}
	for _, want := range []string{
		`label="a"`,
		`label="ab"`,
		"2 -> 0;",
		"2 -> 1;",
		"shape=ellipse", // atoms render as ellipses
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTTierColors(t *testing.T) {
	dot := ToDOT(buildSampleLayout(t), DOTOptions{})

	// Atoms fill white, the widest compound fills loud.
	if !strings.Contains(dot, `fillcolor="white"`) {
		t.Errorf("atoms should fill white:\n%s", dot)
	}
	if !strings.Contains(dot, `fillcolor="tomato"`) {
		t.Errorf("widest compound should fill tomato:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	plain := ToDOT(buildSampleLayout(t), DOTOptions{})
	detailed := ToDOT(buildSampleLayout(t), DOTOptions{Detailed: true})

	if strings.Contains(plain, "width:") {
		t.Error("plain labels should not include width")
	}
	if !strings.Contains(detailed, "width: 2") || !strings.Contains(detailed, "tier: error") {
		t.Errorf("detailed labels should include width and tier:\n%s", detailed)
	}
}
