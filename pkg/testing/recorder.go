package testing

import (
	"github.com/go-drift/reorder/pkg/dom"
	"github.com/go-drift/reorder/pkg/reorder"
)

// Recorder collects reorder notifications from a set of nodes.
type Recorder struct {
	moves     []reorder.MoveEvent
	targets   []*dom.Node
	listeners []*dom.Listener
}

// NewRecorder subscribes to drag-row notifications on each node.
func NewRecorder(nodes ...*dom.Node) *Recorder {
	r := &Recorder{}
	for _, n := range nodes {
		r.Watch(n)
	}
	return r
}

// Record subscribes a new recorder to every node matched by finder.
func (t *Tester) Record(finder Finder) *Recorder {
	return NewRecorder(t.Find(finder).All()...)
}

// Watch adds node to the recorded set.
func (r *Recorder) Watch(node *dom.Node) {
	r.listeners = append(r.listeners, node.AddEventListener(reorder.EventDragRow, func(ev *dom.Event) {
		if mv, ok := ev.Detail.(reorder.MoveEvent); ok {
			r.moves = append(r.moves, mv)
			r.targets = append(r.targets, ev.Target)
		}
	}))
}

// Moves returns the recorded notifications in delivery order.
func (r *Recorder) Moves() []reorder.MoveEvent { return r.moves }

// Targets returns the node each notification was dispatched on.
func (r *Recorder) Targets() []*dom.Node { return r.targets }

// Count returns the number of recorded notifications.
func (r *Recorder) Count() int { return len(r.moves) }

// Last returns the most recent notification.
func (r *Recorder) Last() (reorder.MoveEvent, bool) {
	if len(r.moves) == 0 {
		return reorder.MoveEvent{}, false
	}
	return r.moves[len(r.moves)-1], true
}

// Reset clears recorded notifications but keeps listening.
func (r *Recorder) Reset() {
	r.moves = nil
	r.targets = nil
}

// Stop unsubscribes from every watched node.
func (r *Recorder) Stop() {
	for _, l := range r.listeners {
		l.Remove()
	}
	r.listeners = nil
}
