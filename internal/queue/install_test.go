package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// recordingInstaller captures call order and can fail chosen paths.
type recordingInstaller struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error
}

func (r *recordingInstaller) install(ctx context.Context, path string) error {
	r.mu.Lock()
	r.calls = append(r.calls, path)
	err := r.fail[path]
	r.mu.Unlock()
	return err
}

func (r *recordingInstaller) called() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func TestToggle_FlipsMembership(t *testing.T) {
	q := NewInstallQueue(nil)

	if got := q.Toggle("/a.pkg"); !got {
		t.Fatal("first toggle should queue")
	}
	if got := q.Toggle("/a.pkg"); got {
		t.Fatal("second toggle should unqueue")
	}
	if q.Len() != 0 {
		t.Fatalf("Len = %d, want 0", q.Len())
	}

	q.Toggle("/a.pkg")
	q.Toggle("/b.pkg")
	if got := q.Queued(); len(got) != 2 || got[0] != "/a.pkg" || got[1] != "/b.pkg" {
		t.Fatalf("Queued = %v", got)
	}
	if !q.Contains("/b.pkg") || q.Contains("/c.pkg") {
		t.Fatal("Contains mismatch")
	}
}

func TestStart_StrictOrderAndFailureContinues(t *testing.T) {
	ri := &recordingInstaller{fail: map[string]error{"/b.pkg": errors.New("disk full")}}
	q := NewInstallQueue(ri.install)
	q.SetPacing(time.Millisecond)
	q.QueueAll([]string{"/a.pkg", "/b.pkg", "/c.pkg"})

	results, err := q.Start(context.Background())
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	got := ri.called()
	if len(got) != 3 || got[0] != "/a.pkg" || got[1] != "/b.pkg" || got[2] != "/c.pkg" {
		t.Fatalf("call order = %v", got)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d entries, want 3", len(results))
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Fatalf("healthy jobs reported errors: %v", results)
	}
	if results[1].Err == nil {
		t.Fatal("failed job reported no error")
	}
	if q.Len() != 0 {
		t.Fatalf("queue not cleared after run: %d left", q.Len())
	}
}

func TestStart_NeverOverlapsRequests(t *testing.T) {
	var inFlight, maxSeen int32
	install := func(ctx context.Context, path string) error {
		n := atomic.AddInt32(&inFlight, 1)
		if n > atomic.LoadInt32(&maxSeen) {
			atomic.StoreInt32(&maxSeen, n)
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return nil
	}
	q := NewInstallQueue(install)
	q.SetPacing(time.Millisecond)
	q.QueueAll([]string{"/a.pkg", "/b.pkg", "/c.pkg", "/d.pkg"})

	if _, err := q.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if got := atomic.LoadInt32(&maxSeen); got != 1 {
		t.Fatalf("max concurrent requests = %d, want 1", got)
	}
}

func TestStart_EmptyAndBusy(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	install := func(ctx context.Context, path string) error {
		close(started)
		<-release
		return nil
	}
	q := NewInstallQueue(install)
	q.SetPacing(time.Millisecond)

	if _, err := q.Start(context.Background()); !errors.Is(err, ErrEmpty) {
		t.Fatalf("empty Start error = %v, want ErrEmpty", err)
	}

	q.QueueAll([]string{"/a.pkg"})
	done := make(chan struct{})
	go func() {
		q.Start(context.Background())
		close(done)
	}()
	<-started

	if _, err := q.Start(context.Background()); !errors.Is(err, ErrBusy) {
		t.Fatalf("concurrent Start error = %v, want ErrBusy", err)
	}
	close(release)
	<-done
}

func TestStart_CancelStopsBetweenItems(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ri := &recordingInstaller{}
	q := NewInstallQueue(func(c context.Context, path string) error {
		err := ri.install(c, path)
		cancel() // cancel lands while the first job is settling
		return err
	})
	q.SetPacing(time.Millisecond)
	q.QueueAll([]string{"/a.pkg", "/b.pkg", "/c.pkg"})

	results, err := q.Start(ctx)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if got := ri.called(); len(got) != 1 || got[0] != "/a.pkg" {
		t.Fatalf("calls after cancel = %v, want only /a.pkg", got)
	}
	if len(results) != 1 {
		t.Fatalf("results = %v, want the settled job only", results)
	}
	if q.Len() != 0 {
		t.Fatal("queue not cleared after cancelled run")
	}
}

func TestStart_PacesAfterFinalItem(t *testing.T) {
	pacing := 30 * time.Millisecond
	q := NewInstallQueue(func(ctx context.Context, path string) error { return nil })
	q.SetPacing(pacing)
	q.QueueAll([]string{"/only.pkg"})

	begin := time.Now()
	if _, err := q.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if elapsed := time.Since(begin); elapsed < pacing {
		t.Fatalf("run finished in %v, want the %v delay after the last settle", elapsed, pacing)
	}
}
