package dashboard

import (
	"errors"
	"testing"
)

func TestMutationTrackerKeepsOneStatusPerID(t *testing.T) {
	tracker := NewMutationTracker()
	if got := tracker.Status("t1"); got != StatusIdle {
		t.Fatalf("expected idle, got %s", got)
	}

	tracker.Begin("t1")
	tracker.Begin("t2")
	tracker.Succeed("t1")
	if got := tracker.Status("t1"); got != StatusSaved {
		t.Fatalf("expected saved, got %s", got)
	}
	if got := tracker.Status("t2"); got != StatusSaving {
		t.Fatalf("expected saving, got %s", got)
	}

	boom := errors.New("conflict")
	err := tracker.Track("t2", func() error { return boom })
	if !errors.Is(err, boom) || tracker.Status("t2") != StatusError || !errors.Is(tracker.Err("t2"), boom) {
		t.Fatalf("expected t2 to record the failure, got %s/%v", tracker.Status("t2"), tracker.Err("t2"))
	}

	snapshot := tracker.Snapshot()
	if len(snapshot) != 2 {
		t.Fatalf("expected two tracked ids, got %v", snapshot)
	}

	tracker.Reset("t2")
	if got := tracker.Status("t2"); got != StatusIdle || tracker.Err("t2") != nil {
		t.Fatalf("expected reset to idle, got %s", got)
	}
}
