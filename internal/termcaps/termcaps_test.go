package termcaps

import (
	"testing"

	"github.com/framegrace/bim/internal/editor"
)

func TestProbeLinuxDisablesScroll(t *testing.T) {
	caps := ProbeByTermName(editor.DefaultCapabilities(), "linux")
	if caps.Scroll {
		t.Fatalf("expected scroll disabled under linux")
	}
	if !caps.Mouse {
		t.Fatalf("expected mouse untouched under linux")
	}
}

func TestProbeCons25DisablesSeveral(t *testing.T) {
	caps := ProbeByTermName(editor.DefaultCapabilities(), "cons25")
	if caps.HideShow || caps.AltScreen || caps.Mouse || caps.Unicode || caps.Bright {
		t.Fatalf("expected cons25 to disable hide/show, altscreen, mouse, unicode, bright: %+v", caps)
	}
	if !caps.Syntax {
		t.Fatalf("expected syntax untouched under cons25")
	}
}

func TestUnknownTermLeavesCapabilitiesAlone(t *testing.T) {
	caps := ProbeByTermName(editor.DefaultCapabilities(), "xterm-256color")
	if caps != editor.DefaultCapabilities() {
		t.Fatalf("expected unknown term to leave capabilities at default")
	}
}

func TestApplyFlagHistoryReenables(t *testing.T) {
	caps := editor.DefaultCapabilities()
	caps.History = false
	caps = ApplyFlag(caps, "history")
	if !caps.History {
		t.Fatalf("expected history re-enabled")
	}
}

func TestKnownFlag(t *testing.T) {
	if !KnownFlag("nomouse") || KnownFlag("bogus") {
		t.Fatalf("KnownFlag misclassified")
	}
}
