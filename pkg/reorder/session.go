package reorder

import (
	"sync"

	"github.com/petermattis/goid"
)

// Session is the state shared by every element taking part in one drag
// gesture. The origin element writes it once at drag-start; every other
// bound element reads it while the pointer moves over it.
//
// A Session is driven from a single UI thread and is not locked. Each
// [Controller] holds one; controllers that should coordinate (two lists
// that accept drags from each other) must share it.
type Session struct {
	originIndex int
	group       string
	active      bool
	gestures    uint64
}

// NewSession returns an idle session.
func NewSession() *Session {
	return &Session{originIndex: NoIndex}
}

// Begin records the origin of a new gesture, replacing any stale state.
func (s *Session) Begin(originIndex int, group string) {
	s.originIndex = originIndex
	s.group = group
	s.active = true
	s.gestures++
}

// End clears the gesture. It is idempotent.
func (s *Session) End() {
	s.originIndex = NoIndex
	s.group = ""
	s.active = false
}

// Active reports whether a gesture is in progress.
func (s *Session) Active() bool { return s.active }

// OriginIndex returns the ordinal index of the dragged element.
func (s *Session) OriginIndex() (int, bool) {
	return s.originIndex, s.active
}

// Group returns the group of the dragged element.
func (s *Session) Group() (string, bool) {
	return s.group, s.active
}

// Accepts reports whether an element in group is a valid target for the
// current gesture.
func (s *Session) Accepts(group string) bool {
	return s.active && s.group == group
}

// Gestures returns how many gestures the session has started.
func (s *Session) Gestures() uint64 { return s.gestures }

var threadSessions sync.Map

// ThreadSession returns the session owned by the calling goroutine,
// creating it on first use. UI hosts dispatch every event from one
// goroutine, so all controllers created on it coordinate through the same
// session, while tests running in parallel goroutines stay isolated.
//
// Sessions are not dropped when their goroutine exits. A goroutine that is
// done with its session calls [ReleaseThreadSession].
func ThreadSession() *Session {
	gid := goid.Get()
	if s, ok := threadSessions.Load(gid); ok {
		return s.(*Session)
	}
	s := NewSession()
	actual, _ := threadSessions.LoadOrStore(gid, s)
	return actual.(*Session)
}

// ReleaseThreadSession drops the calling goroutine's session.
func ReleaseThreadSession() {
	threadSessions.Delete(goid.Get())
}
