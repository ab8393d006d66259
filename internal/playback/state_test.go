// internal/playback/state_test.go
package playback

import "testing"

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseIdle, "Idle"},
		{PhaseLoading, "Loading"},
		{PhasePlaying, "Playing"},
		{PhasePaused, "Paused"},
		{PhaseError, "Error"},
		{Phase(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestPhase_IsActive(t *testing.T) {
	tests := []struct {
		phase Phase
		want  bool
	}{
		{PhaseIdle, false},
		{PhaseLoading, false},
		{PhasePlaying, true},
		{PhasePaused, true},
		{PhaseError, false},
	}
	for _, tt := range tests {
		if got := tt.phase.IsActive(); got != tt.want {
			t.Errorf("%v.IsActive() = %v, want %v", tt.phase, got, tt.want)
		}
	}
}

func TestDisplayMode_Toggle(t *testing.T) {
	if got := DisplayCompact.Toggle(); got != DisplayExpanded {
		t.Errorf("Compact.Toggle() = %v, want Expanded", got)
	}
	if got := DisplayExpanded.Toggle(); got != DisplayCompact {
		t.Errorf("Expanded.Toggle() = %v, want Compact", got)
	}
	if got := DisplayMode(99).String(); got != "Unknown" {
		t.Errorf("DisplayMode(99).String() = %q, want Unknown", got)
	}
}

func TestTrack_WithStream(t *testing.T) {
	tr := Track{ID: "abc", Title: "Pasoori"}
	got := tr.WithStream("https://stream/abc")

	if tr.Resolved() {
		t.Error("original track should stay unresolved")
	}
	if !got.Resolved() || got.StreamURL != "https://stream/abc" {
		t.Errorf("WithStream() = %+v", got)
	}
	if got.ID != tr.ID || got.Title != tr.Title {
		t.Errorf("WithStream() changed identity: %+v", got)
	}
}
