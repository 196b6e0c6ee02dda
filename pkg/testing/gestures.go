package testing

import (
	"errors"
	"fmt"

	"github.com/go-drift/reorder/pkg/dom"
	"github.com/go-drift/reorder/pkg/reorder"
)

// ErrNotArmed is returned by Drag when pressing the source's handle did
// not make the element draggable, so a platform would never start a drag.
var ErrNotArmed = errors.New("drag source was not armed by its handle")

func (t *Tester) first(op string, finder Finder) (*dom.Node, error) {
	result := t.Find(finder)
	if !result.Exists() {
		return nil, fmt.Errorf("%s: finder matched no nodes: %s", op, finder.Description())
	}
	return result.First(), nil
}

func (t *Tester) send(op string, finder Finder, ev *dom.Event) (*dom.Event, error) {
	node, err := t.first(op, finder)
	if err != nil {
		return nil, err
	}
	node.Dispatch(ev)
	return ev, nil
}

// PointerDown presses the primary button on the first node matched by finder.
func (t *Tester) PointerDown(finder Finder) error {
	return t.PointerDownButton(finder, dom.ButtonPrimary)
}

// PointerDownButton presses button on the first node matched by finder.
func (t *Tester) PointerDownButton(finder Finder, button dom.Button) error {
	ev := dom.NewEvent(dom.EventPointerDown)
	ev.Button = button
	_, err := t.send("PointerDown", finder, ev)
	return err
}

// PointerUp releases the pointer over the first node matched by finder.
func (t *Tester) PointerUp(finder Finder) error {
	_, err := t.send("PointerUp", finder, dom.NewEvent(dom.EventPointerUp))
	return err
}

// DragStart dispatches dragstart on the first node matched by finder,
// whether or not it is armed.
func (t *Tester) DragStart(finder Finder) error {
	_, err := t.send("DragStart", finder, dom.NewEvent(dom.EventDragStart))
	return err
}

// DragEnter dispatches dragenter on the first node matched by finder. from
// is the node the pointer came from and may be nil.
func (t *Tester) DragEnter(finder Finder, from *dom.Node) error {
	node, err := t.first("DragEnter", finder)
	if err != nil {
		return err
	}
	ev := dom.NewEvent(dom.EventDragEnter)
	ev.From, ev.To = from, node
	node.Dispatch(ev)
	return nil
}

// DragLeave dispatches dragleave on the first node matched by finder with
// the given endpoints. Either endpoint may be nil.
func (t *Tester) DragLeave(finder Finder, from, to *dom.Node) error {
	ev := dom.NewEvent(dom.EventDragLeave)
	ev.From, ev.To = from, to
	_, err := t.send("DragLeave", finder, ev)
	return err
}

// DragOver dispatches dragover on the first node matched by finder and
// reports whether a drop would be allowed there.
func (t *Tester) DragOver(finder Finder) (bool, error) {
	ev, err := t.send("DragOver", finder, dom.NewEvent(dom.EventDragOver))
	if err != nil {
		return false, err
	}
	return ev.DefaultPrevented(), nil
}

// Drop dispatches drop on the first node matched by finder.
func (t *Tester) Drop(finder Finder) error {
	_, err := t.send("Drop", finder, dom.NewEvent(dom.EventDrop))
	return err
}

// DragEnd dispatches dragend on the first node matched by finder.
func (t *Tester) DragEnd(finder Finder) error {
	_, err := t.send("DragEnd", finder, dom.NewEvent(dom.EventDragEnd))
	return err
}

// Drag performs a full gesture from the draggable element around the
// first match of from to the first match of to, the way a platform drag
// backend sequences it: press the handle, start, enter the source, leave
// it for the target, enter the target, hover, drop if the hover was
// accepted, then end on the source.
//
// It reports whether a drop was delivered. The source must be armed by
// its handle press, otherwise ErrNotArmed is returned and no drag events
// are sent.
func (t *Tester) Drag(from, to Finder) (bool, error) {
	fromNode, err := t.first("Drag", from)
	if err != nil {
		return false, err
	}
	target, err := t.first("Drag", to)
	if err != nil {
		return false, err
	}
	source := fromNode.ClosestFunc(reorder.IsDraggable)
	if source == nil {
		return false, fmt.Errorf("Drag: %s is not inside a draggable element", fromNode)
	}

	handle := source
	if opts, ok := t.Controller().OptionsOf(source); ok {
		if h, err := reorder.Resolve(source, &opts); err == nil {
			handle = h
		}
	}
	press := dom.NewEvent(dom.EventPointerDown)
	press.Button = dom.ButtonPrimary
	handle.Dispatch(press)
	if !reorder.IsArmed(source) {
		handle.Dispatch(dom.NewEvent(dom.EventPointerUp))
		return false, ErrNotArmed
	}

	source.Dispatch(dom.NewEvent(dom.EventDragStart))
	dispatchCrossing(dom.EventDragEnter, source, handle, source)
	if !source.Contains(target) {
		dispatchCrossing(dom.EventDragLeave, source, source, target)
		dispatchCrossing(dom.EventDragEnter, target, source, target)
	}

	over := dom.NewEvent(dom.EventDragOver)
	target.Dispatch(over)
	dropped := over.DefaultPrevented()
	if dropped {
		target.Dispatch(dom.NewEvent(dom.EventDrop))
	}
	source.Dispatch(dom.NewEvent(dom.EventDragEnd))
	return dropped, nil
}

// Cancel aborts a drag from the draggable element around the first match
// of finder: only dragend is delivered, as when the user presses Escape.
func (t *Tester) Cancel(finder Finder) error {
	node, err := t.first("Cancel", finder)
	if err != nil {
		return err
	}
	if source := node.ClosestFunc(reorder.IsDraggable); source != nil {
		node = source
	}
	node.Dispatch(dom.NewEvent(dom.EventDragEnd))
	return nil
}

func dispatchCrossing(typ string, on, from, to *dom.Node) {
	ev := dom.NewEvent(typ)
	ev.From, ev.To = from, to
	on.Dispatch(ev)
}
