package dom

import (
	"slices"
	"testing"

	"github.com/go-drift/reorder/pkg/errors"
)

func TestDispatchBubbles(t *testing.T) {
	root := NewElement("div")
	mid := NewElement("ul")
	leaf := NewElement("li")
	root.AppendChild(mid.AppendChild(leaf))

	var order []string
	for _, n := range []*Node{root, mid, leaf} {
		n.AddEventListener(EventDrop, func(ev *Event) {
			order = append(order, ev.CurrentTarget.Tag())
			if ev.Target != leaf {
				t.Errorf("Target = %s, want li", ev.Target)
			}
		})
	}

	leaf.Dispatch(NewEvent(EventDrop))
	if !slices.Equal(order, []string{"li", "ul", "div"}) {
		t.Errorf("bubble order = %v", order)
	}
}

func TestDispatchStopPropagation(t *testing.T) {
	parent := NewElement("ul")
	child := NewElement("li")
	parent.AppendChild(child)

	parentCalled := false
	parent.AddEventListener(EventDrop, func(*Event) { parentCalled = true })
	child.AddEventListener(EventDrop, func(ev *Event) { ev.StopPropagation() })

	ev := NewEvent(EventDrop)
	child.Dispatch(ev)
	if parentCalled {
		t.Error("parent listener ran after StopPropagation")
	}
	if !ev.PropagationStopped() {
		t.Error("expected PropagationStopped to report true")
	}
}

func TestCustomEventDoesNotBubble(t *testing.T) {
	parent := NewElement("ul")
	child := NewElement("li")
	parent.AppendChild(child)

	parentCalled := false
	parent.AddEventListener("drag-row", func(*Event) { parentCalled = true })

	var detail any
	child.AddEventListener("drag-row", func(ev *Event) { detail = ev.Detail })

	child.Dispatch(NewCustomEvent("drag-row", 7))
	if detail != 7 {
		t.Errorf("detail = %v, want 7", detail)
	}
	if parentCalled {
		t.Error("custom events should not bubble")
	}
}

func TestDispatchReportsPreventDefault(t *testing.T) {
	n := NewElement("li")
	if !n.Dispatch(NewEvent(EventDragOver)) {
		t.Error("Dispatch without listeners should return true")
	}
	n.AddEventListener(EventDragOver, func(ev *Event) { ev.PreventDefault() })
	ev := NewEvent(EventDragOver)
	if n.Dispatch(ev) {
		t.Error("Dispatch should return false after PreventDefault")
	}
	if !ev.DefaultPrevented() {
		t.Error("DefaultPrevented should be true")
	}
}

func TestListenerRemove(t *testing.T) {
	n := NewElement("li")
	calls := 0
	l := n.AddEventListener(EventDragEnter, func(*Event) { calls++ })
	n.AddEventListener(EventDragLeave, func(*Event) {})

	if got := n.ListenerCount(""); got != 2 {
		t.Errorf("ListenerCount() = %d, want 2", got)
	}

	l.Remove()
	l.Remove()
	n.Dispatch(NewEvent(EventDragEnter))
	if calls != 0 {
		t.Error("removed listener was called")
	}
	if got := n.ListenerCount(EventDragEnter); got != 0 {
		t.Errorf("ListenerCount(dragenter) = %d, want 0", got)
	}
}

func TestRemoveEventListenerIgnoresForeignListener(t *testing.T) {
	a := NewElement("li")
	b := NewElement("li")
	l := a.AddEventListener(EventDrop, func(*Event) {})

	b.RemoveEventListener(l)
	if got := a.ListenerCount(EventDrop); got != 1 {
		t.Fatalf("foreign remove dropped the listener: count = %d", got)
	}
	a.RemoveEventListener(l)
	if got := a.ListenerCount(EventDrop); got != 0 {
		t.Errorf("ListenerCount(drop) = %d, want 0", got)
	}
	a.RemoveEventListener(nil)
}

func TestListenerRemovedDuringDispatch(t *testing.T) {
	n := NewElement("li")
	var second *Listener
	secondCalled := false
	n.AddEventListener(EventDrop, func(*Event) { second.Remove() })
	second = n.AddEventListener(EventDrop, func(*Event) { secondCalled = true })

	n.Dispatch(NewEvent(EventDrop))
	if secondCalled {
		t.Error("listener removed mid-dispatch should not run")
	}
}

func TestDispatchRecoversListenerPanic(t *testing.T) {
	var captured *errors.PanicError
	old := errors.DefaultHandler
	errors.SetHandler(panicCapture(func(p *errors.PanicError) { captured = p }))
	defer errors.SetHandler(old)

	n := NewElement("li")
	after := false
	n.AddEventListener(EventDragStart, func(*Event) { panic("listener bug") })
	n.AddEventListener(EventDragStart, func(*Event) { after = true })

	n.Dispatch(NewEvent(EventDragStart))

	if captured == nil {
		t.Fatal("expected panic to be reported")
	}
	if captured.Op != "dom.Dispatch(dragstart)" {
		t.Errorf("Op = %q", captured.Op)
	}
	if !after {
		t.Error("listeners after a panicking one should still run")
	}
}

type panicCapture func(*errors.PanicError)

func (f panicCapture) HandleError(*errors.ReorderError)   {}
func (f panicCapture) HandlePanic(err *errors.PanicError) { f(err) }
