package reorder

import "github.com/go-drift/reorder/pkg/dom"

// Styling hooks. External stylesheets and host renderers depend on these
// names, so they are part of the public contract.
const (
	// ClassDraggable marks every element whose options resolved. It is added
	// once and never removed.
	ClassDraggable = "draggable-element"
	// ClassMoving is present on the origin element during a gesture.
	ClassMoving = "moving"
	// ClassOver is present on a group-matching element while it is hovered.
	ClassOver = "over"
)

// AttrDraggable is the capability attribute the host platform checks
// before it starts a native drag from an element.
const AttrDraggable = "draggable"

var draggableSelector = dom.MustParseSelector("." + ClassDraggable)

// IsDraggable reports whether node is a resolved draggable element.
func IsDraggable(node *dom.Node) bool {
	return node != nil && node.HasClass(ClassDraggable)
}

// IsArmed reports whether node currently allows a native drag to start.
func IsArmed(node *dom.Node) bool {
	if node == nil {
		return false
	}
	v, ok := node.Attribute(AttrDraggable)
	return ok && v == "true"
}

// nearestDraggable returns the closest inclusive ancestor carrying
// ClassDraggable, or nil.
func nearestDraggable(node *dom.Node) *dom.Node {
	if node == nil {
		return nil
	}
	return node.Closest(draggableSelector)
}

// clearState removes gesture state from node, keeping the structural marker.
func clearState(node *dom.Node) {
	node.RemoveClass(ClassMoving).RemoveClass(ClassOver)
	disarm(node)
}

func arm(node *dom.Node)    { node.SetAttribute(AttrDraggable, "true") }
func disarm(node *dom.Node) { node.RemoveAttribute(AttrDraggable) }

// clearSiblings removes the gesture classes from every draggable element
// that shares node's parent, node included.
func clearSiblings(node *dom.Node) {
	parent := node.Parent()
	if parent == nil {
		node.RemoveClass(ClassOver).RemoveClass(ClassMoving)
		return
	}
	for _, row := range parent.QuerySelectorAll(draggableSelector) {
		row.RemoveClass(ClassOver).RemoveClass(ClassMoving)
	}
}
