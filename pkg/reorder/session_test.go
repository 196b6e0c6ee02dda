package reorder

import (
	"sync"
	"testing"
)

func TestSessionLifecycle(t *testing.T) {
	s := NewSession()
	if s.Active() {
		t.Fatal("new session should be idle")
	}
	if _, ok := s.OriginIndex(); ok {
		t.Error("idle session should not report an origin")
	}
	if s.Accepts("") {
		t.Error("idle session should not accept any group")
	}

	s.Begin(3, "fruit")
	if idx, ok := s.OriginIndex(); !ok || idx != 3 {
		t.Errorf("OriginIndex() = (%d, %v), want (3, true)", idx, ok)
	}
	if g, ok := s.Group(); !ok || g != "fruit" {
		t.Errorf("Group() = (%q, %v)", g, ok)
	}
	if !s.Accepts("fruit") || s.Accepts("veg") {
		t.Error("Accepts should compare group names")
	}

	s.Begin(5, "veg")
	if idx, _ := s.OriginIndex(); idx != 5 {
		t.Error("a new Begin should overwrite stale state")
	}
	if s.Gestures() != 2 {
		t.Errorf("Gestures() = %d, want 2", s.Gestures())
	}

	s.End()
	s.End()
	if s.Active() {
		t.Error("End should idle the session")
	}
}

func TestThreadSessionPerGoroutine(t *testing.T) {
	mine := ThreadSession()
	if ThreadSession() != mine {
		t.Error("ThreadSession should be stable within a goroutine")
	}
	defer ReleaseThreadSession()

	var other *Session
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer ReleaseThreadSession()
		other = ThreadSession()
	}()
	wg.Wait()

	if other == mine {
		t.Error("different goroutines should get different sessions")
	}
}

func TestControllersShareThreadSession(t *testing.T) {
	defer ReleaseThreadSession()
	a := NewController()
	b := NewController()
	if a.Session() != b.Session() {
		t.Error("controllers created on one goroutine should share its session")
	}
}

func threadSessionCount() int {
	n := 0
	threadSessions.Range(func(any, any) bool {
		n++
		return true
	})
	return n
}

func TestShortLivedGoroutinesReleaseSessions(t *testing.T) {
	before := threadSessionCount()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer ReleaseThreadSession()
			NewController()
		}()
	}
	wg.Wait()
	if got := threadSessionCount(); got != before {
		t.Errorf("thread sessions = %d after release, want %d", got, before)
	}
}

func TestReleaseThreadSession(t *testing.T) {
	first := ThreadSession()
	ReleaseThreadSession()
	defer ReleaseThreadSession()
	if ThreadSession() == first {
		t.Error("release should drop the goroutine's session")
	}
}
