package dom

import (
	"slices"

	"github.com/go-drift/reorder/pkg/errors"
)

// Event types dispatched by host platforms.
const (
	EventPointerDown = "pointerdown"
	EventPointerUp   = "pointerup"
	EventDragStart   = "dragstart"
	EventDragEnter   = "dragenter"
	EventDragLeave   = "dragleave"
	EventDragOver    = "dragover"
	EventDrop        = "drop"
	EventDragEnd     = "dragend"
)

// Button identifies the pointer button of a pointer event.
type Button int

const (
	// ButtonPrimary is the main button, usually the left mouse button.
	ButtonPrimary Button = iota
	// ButtonAuxiliary is usually the wheel or middle button.
	ButtonAuxiliary
	// ButtonSecondary is usually the right mouse button.
	ButtonSecondary
)

// Event is a tree event. Host platforms create events with [NewEvent] or
// [NewCustomEvent] and deliver them with [Node.Dispatch].
type Event struct {
	// Type is the event name.
	Type string
	// Target is the node the event was dispatched on.
	Target *Node
	// CurrentTarget is the node whose listener is running.
	CurrentTarget *Node
	// From is the node the pointer left (enter/leave events), if known.
	From *Node
	// To is the node the pointer entered (enter/leave events), if known.
	To *Node
	// Button is the pointer button for pointer events.
	Button Button
	// Detail is the payload of a custom event.
	Detail any
	// Bubbles controls whether the event propagates to ancestors.
	Bubbles bool

	defaultPrevented   bool
	propagationStopped bool
}

// NewEvent creates a bubbling event of the given type.
func NewEvent(typ string) *Event {
	return &Event{Type: typ, Bubbles: true}
}

// NewCustomEvent creates a non-bubbling event carrying detail.
func NewCustomEvent(typ string, detail any) *Event {
	return &Event{Type: typ, Detail: detail}
}

// PreventDefault marks the event as handled so the platform skips its
// default action. For dragover this signals that a drop is allowed.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation keeps the event from reaching further ancestors.
func (e *Event) StopPropagation() { e.propagationStopped = true }

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool { return e.propagationStopped }

// Listener is a registered event callback. Keep it to remove the callback.
type Listener struct {
	typ     string
	fn      func(*Event)
	node    *Node
	removed bool
}

// Remove unregisters the listener. It is safe to call more than once.
func (l *Listener) Remove() {
	if l == nil || l.removed {
		return
	}
	l.removed = true
	n := l.node
	list := n.listeners[l.typ]
	if i := slices.Index(list, l); i >= 0 {
		n.listeners[l.typ] = slices.Delete(list, i, i+1)
	}
	if len(n.listeners[l.typ]) == 0 {
		delete(n.listeners, l.typ)
	}
}

// AddEventListener registers fn for events of type typ on n.
func (n *Node) AddEventListener(typ string, fn func(*Event)) *Listener {
	if n.listeners == nil {
		n.listeners = make(map[string][]*Listener)
	}
	l := &Listener{typ: typ, fn: fn, node: n}
	n.listeners[typ] = append(n.listeners[typ], l)
	return l
}

// RemoveEventListener unregisters l if it was registered on n.
func (n *Node) RemoveEventListener(l *Listener) {
	if l == nil || l.node != n {
		return
	}
	l.Remove()
}

// ListenerCount returns the number of listeners registered for typ.
// An empty typ counts listeners of every type.
func (n *Node) ListenerCount(typ string) int {
	if typ != "" {
		return len(n.listeners[typ])
	}
	total := 0
	for _, list := range n.listeners {
		total += len(list)
	}
	return total
}

// Dispatch delivers ev to n and, for bubbling events, to each ancestor until
// a listener stops propagation. Listeners run synchronously in registration
// order. A panicking listener is recovered and reported; the remaining
// listeners still run. Dispatch returns false if a listener called
// PreventDefault.
func (n *Node) Dispatch(ev *Event) bool {
	ev.Target = n
	for cur := n; cur != nil; cur = cur.parent {
		ev.CurrentTarget = cur
		// Snapshot so listeners may add or remove listeners while running.
		for _, l := range slices.Clone(cur.listeners[ev.Type]) {
			if l.removed {
				continue
			}
			invoke(l, ev)
		}
		if ev.propagationStopped || !ev.Bubbles {
			break
		}
	}
	ev.CurrentTarget = nil
	return !ev.defaultPrevented
}

func invoke(l *Listener, ev *Event) {
	defer errors.Recover("dom.Dispatch(" + ev.Type + ")")
	l.fn(ev)
}
