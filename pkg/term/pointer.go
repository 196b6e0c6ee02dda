package term

import (
	"github.com/go-drift/reorder/pkg/dom"
	"github.com/go-drift/reorder/pkg/reorder"
)

// Pointer turns raw press, motion and release input over tree nodes into
// the pointer and drag events a native drag backend would deliver.
//
// A drag starts on the first motion after a press that armed a draggable
// element. Pressing anywhere else and moving does nothing.
type Pointer struct {
	pressed *dom.Node
	source  *dom.Node
	hover   *dom.Node
}

// Dragging reports whether a drag gesture is in progress.
func (p *Pointer) Dragging() bool { return p.source != nil }

// Source returns the element being dragged, or nil.
func (p *Pointer) Source() *dom.Node { return p.source }

// Hover returns the node currently under a dragging pointer, or nil.
func (p *Pointer) Hover() *dom.Node { return p.hover }

// Press delivers a primary-button pointerdown on target.
func (p *Pointer) Press(target *dom.Node) {
	if target == nil || p.source != nil {
		return
	}
	p.pressed = target
	ev := dom.NewEvent(dom.EventPointerDown)
	ev.Button = dom.ButtonPrimary
	target.Dispatch(ev)
}

// Move handles pointer motion over target, which is nil outside every
// known node.
func (p *Pointer) Move(target *dom.Node) {
	if p.source == nil && !p.start() {
		return
	}
	p.cross(target)
	if p.hover != nil {
		p.hover.Dispatch(dom.NewEvent(dom.EventDragOver))
	}
}

// Release ends the gesture over target and reports whether a drop was
// delivered. Without a drag in progress it is a plain pointerup.
func (p *Pointer) Release(target *dom.Node) bool {
	if p.source == nil {
		if p.pressed != nil {
			p.pressed.Dispatch(dom.NewEvent(dom.EventPointerUp))
			p.pressed = nil
		}
		return false
	}

	p.cross(target)
	dropped := false
	if target != nil {
		over := dom.NewEvent(dom.EventDragOver)
		target.Dispatch(over)
		if over.DefaultPrevented() {
			target.Dispatch(dom.NewEvent(dom.EventDrop))
			dropped = true
		}
	}
	p.end()
	return dropped
}

// Cancel aborts a drag in progress: the hovered node gets a dragleave
// toward nothing, then the source gets dragend. No drop is delivered.
func (p *Pointer) Cancel() bool {
	if p.source == nil {
		return false
	}
	p.cross(nil)
	p.end()
	return true
}

func (p *Pointer) start() bool {
	if p.pressed == nil {
		return false
	}
	row := p.pressed.ClosestFunc(reorder.IsDraggable)
	if !reorder.IsArmed(row) {
		return false
	}
	p.source = row
	p.hover = nil
	row.Dispatch(dom.NewEvent(dom.EventDragStart))
	p.cross(p.pressed)
	return true
}

// cross moves the hover to target, delivering leave on the old node and
// enter on the new one.
func (p *Pointer) cross(target *dom.Node) {
	if target == p.hover {
		return
	}
	from := p.hover
	if from != nil {
		ev := dom.NewEvent(dom.EventDragLeave)
		ev.From, ev.To = from, target
		from.Dispatch(ev)
	}
	if target != nil {
		ev := dom.NewEvent(dom.EventDragEnter)
		ev.From, ev.To = from, target
		target.Dispatch(ev)
	}
	p.hover = target
}

func (p *Pointer) end() {
	source := p.source
	p.source, p.pressed, p.hover = nil, nil, nil
	source.Dispatch(dom.NewEvent(dom.EventDragEnd))
}
