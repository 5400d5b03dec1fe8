package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/hexvoid/voidpanel/internal/voidshell"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	stats := &voidshell.Stats{CPUTemp: 48, SOCTemp: 55, ActiveApp: "PPSA01234"}

	before := time.Now()
	s.Update(stats, nil)
	s.SetLibrary([]voidshell.Game{{ID: "PPSA01234", Name: "Game A"}, {ID: "CUSA0001"}})

	snap := s.Snapshot()
	if !snap.HasStats || snap.Stats.CPUTemp != 48 {
		t.Fatalf("snapshot stats = %#v, want cpu=48 HasStats=true", snap.Stats)
	}
	if len(snap.Library) != 2 || snap.Library[0].ID != "PPSA01234" {
		t.Fatalf("snapshot library = %#v, want 2 items", snap.Library)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Library[0].ID = "mutated"
	snap2 := s.Snapshot()
	if snap2.Library[0].ID != "PPSA01234" {
		t.Fatalf("Snapshot should clone library; got %q", snap2.Library[0].ID)
	}
}

func TestStore_UpdateErrorKeepsPreviousTelemetry(t *testing.T) {
	var s Store

	s.Update(&voidshell.Stats{CPUTemp: 40}, nil)
	prev := s.Snapshot()

	origErr := errors.New("boom")
	s.Update(nil, origErr)

	snap := s.Snapshot()
	if snap.HasStats != prev.HasStats || snap.Stats.CPUTemp != prev.Stats.CPUTemp {
		t.Fatalf("telemetry changed on error: got %#v want %#v", snap.Stats, prev.Stats)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatal("Snapshot should clone error instance")
	}
}

func TestStore_OfflineHysteresis(t *testing.T) {
	var s Store

	if s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}

	// One failure is not enough to flip offline.
	s.Update(nil, errors.New("fail 1"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure: failures=%d offline=%v, want 1/false",
			snap.ConsecutiveFailures, snap.IsOffline())
	}

	// A success in between resets the streak entirely.
	s.Update(&voidshell.Stats{}, nil)
	s.Update(nil, errors.New("fail again"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("streak not reset by success: failures=%d", snap.ConsecutiveFailures)
	}

	// Second consecutive failure declares offline.
	s.Update(nil, errors.New("fail 2"))
	if snap := s.Snapshot(); !snap.IsOffline() {
		t.Fatalf("IsOffline() = false after %d failures, want true", snap.ConsecutiveFailures)
	}

	// Still offline on further failures.
	s.Update(nil, errors.New("fail 3"))
	if !s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = false, want true with 3 failures")
	}

	// A single success flips straight back online.
	s.Update(&voidshell.Stats{}, nil)
	if snap := s.Snapshot(); snap.IsOffline() || snap.ConsecutiveFailures != 0 {
		t.Fatalf("recovery failed: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}
}
