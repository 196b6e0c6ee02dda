package reorder

import "github.com/go-drift/reorder/pkg/dom"

// EventDragRow is the name of the reorder notification dispatched on the
// drop target.
const EventDragRow = "drag-row"

// MoveEvent is the payload of [EventDragRow]. The receiver owns the list
// and is expected to move the item at OldIndex to NewIndex.
type MoveEvent struct {
	OldIndex int `json:"oldIndex" yaml:"oldIndex"`
	NewIndex int `json:"newIndex" yaml:"newIndex"`
}

// OnMove subscribes fn to reorder notifications dispatched on node.
func OnMove(node *dom.Node, fn func(MoveEvent)) *dom.Listener {
	return node.AddEventListener(EventDragRow, func(ev *dom.Event) {
		if mv, ok := ev.Detail.(MoveEvent); ok {
			fn(mv)
		}
	})
}

func emitMove(target *dom.Node, mv MoveEvent) {
	target.Dispatch(dom.NewCustomEvent(EventDragRow, mv))
}
