package confstore

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeRW is an in-memory stand-in for the daemon's raw-config pair.
type fakeRW struct {
	mu       sync.Mutex
	text     string
	fetchErr error
	saveErr  error
	saves    []string
	saved    chan struct{}
}

func newFakeRW(text string) *fakeRW {
	return &fakeRW{text: text, saved: make(chan struct{}, 16)}
}

func (f *fakeRW) FetchRawConfig(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return "", f.fetchErr
	}
	return f.text, nil
}

func (f *fakeRW) SaveRawConfig(ctx context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves = append(f.saves, text)
	select {
	case f.saved <- struct{}{}:
	default:
	}
	return nil
}

func (f *fakeRW) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

func (f *fakeRW) lastSave() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.saves) == 0 {
		return ""
	}
	return f.saves[len(f.saves)-1]
}

func TestLoad_EnsuresWellKnownSections(t *testing.T) {
	rw := newFakeRW("[FanControl]\nEnabled=true\n")
	s := New(rw)

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := s.Scalar(SectionFan, "Enabled"); got != "true" {
		t.Fatalf("FanControl.Enabled = %q, want true", got)
	}
	for _, name := range wellKnownSections {
		if sec := s.SectionSnapshot(name); sec == nil {
			t.Fatalf("section %s missing after Load", name)
		}
	}
}

func TestLoad_FailsSoftWithSkeleton(t *testing.T) {
	rw := newFakeRW("")
	rw.fetchErr = errors.New("connection refused")
	s := New(rw)

	err := s.Load(context.Background())
	if err == nil {
		t.Fatal("Load returned nil error, want surfaced fetch failure")
	}

	// Editor must remain usable: skeleton present, edits accepted.
	s.SetScalar(SectionSettings, "AutoKill", true)
	if got := s.Scalar(SectionSettings, "AutoKill"); got != "true" {
		t.Fatalf("Scalar after failed load = %q, want true", got)
	}
}

func TestSetScalar_StringifiesAndStaysLocal(t *testing.T) {
	rw := newFakeRW("")
	s := New(rw)

	s.SetScalar(SectionFan, "TargetTemp", 65)
	s.SetScalar(SectionFan, "Enabled", true)

	if got := s.Scalar(SectionFan, "TargetTemp"); got != "65" {
		t.Fatalf("TargetTemp = %q, want 65", got)
	}
	if got := s.Scalar(SectionFan, "Enabled"); got != "true" {
		t.Fatalf("Enabled = %q, want true", got)
	}
	if rw.saveCount() != 0 {
		t.Fatalf("SetScalar issued %d network writes, want 0", rw.saveCount())
	}
}

func TestSave_WritesFullDocument(t *testing.T) {
	rw := newFakeRW("[Settings]\nScanInterval=5\n")
	s := New(rw)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	s.SetScalar(SectionFan, "TargetTemp", 70)
	if err := s.Save(context.Background()); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	doc := rw.lastSave()
	if !strings.Contains(doc, "[Settings]") || !strings.Contains(doc, "ScanInterval=5") {
		t.Fatalf("saved document lost untouched section:\n%s", doc)
	}
	if !strings.Contains(doc, "TargetTemp=70") {
		t.Fatalf("saved document missing edit:\n%s", doc)
	}
}

func TestSave_FailureIsSurfacedNotRetried(t *testing.T) {
	rw := newFakeRW("")
	rw.saveErr = errors.New("500")
	s := New(rw)

	if err := s.Save(context.Background()); err == nil {
		t.Fatal("Save returned nil error, want failure")
	}
	if rw.saveCount() != 0 {
		t.Fatalf("failed save recorded %d writes", rw.saveCount())
	}
}

func TestScheduleSave_CoalescesBurstIntoOneWrite(t *testing.T) {
	rw := newFakeRW("")
	s := New(rw)
	s.SetDebounce(40 * time.Millisecond)

	// Three rapid edits to the same control inside the quiet window.
	s.SetScalar(SectionFan, "TargetTemp", 60)
	s.ScheduleSave()
	time.Sleep(10 * time.Millisecond)
	s.SetScalar(SectionFan, "TargetTemp", 63)
	s.ScheduleSave()
	time.Sleep(10 * time.Millisecond)
	s.SetScalar(SectionFan, "TargetTemp", 66)
	s.ScheduleSave()

	select {
	case <-rw.saved:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced save never fired")
	}
	// Allow any (incorrect) extra timers to fire before counting.
	time.Sleep(100 * time.Millisecond)

	if got := rw.saveCount(); got != 1 {
		t.Fatalf("burst produced %d writes, want exactly 1", got)
	}
	doc := rw.lastSave()
	if !strings.Contains(doc, "TargetTemp=66") {
		t.Fatalf("persisted document missing final value:\n%s", doc)
	}
	if strings.Contains(doc, "TargetTemp=60") || strings.Contains(doc, "TargetTemp=63") {
		t.Fatalf("persisted document carries intermediate value:\n%s", doc)
	}
}

func TestScheduleSave_ReportsOutcome(t *testing.T) {
	rw := newFakeRW("")
	rw.saveErr = errors.New("boom")
	s := New(rw)
	s.SetDebounce(10 * time.Millisecond)

	got := make(chan error, 1)
	s.OnSaved(func(err error) { got <- err })

	s.ScheduleSave()
	select {
	case err := <-got:
		if err == nil {
			t.Fatal("OnSaved received nil, want save failure")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("OnSaved never called")
	}
}

func TestClose_CancelsPendingSave(t *testing.T) {
	rw := newFakeRW("")
	s := New(rw)
	s.SetDebounce(30 * time.Millisecond)

	s.ScheduleSave()
	s.Close()

	time.Sleep(100 * time.Millisecond)
	if got := rw.saveCount(); got != 0 {
		t.Fatalf("save fired after Close: %d writes", got)
	}

	// Scheduling after Close stays inert.
	s.ScheduleSave()
	time.Sleep(100 * time.Millisecond)
	if got := rw.saveCount(); got != 0 {
		t.Fatalf("ScheduleSave after Close fired: %d writes", got)
	}
}
