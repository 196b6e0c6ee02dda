// Package term hosts reorderable lists in a terminal.
//
// A [Board] mounts lists into a document with the draggable directive and
// applies every drag-row notification to its own item order. The [Pointer]
// is the drag backend: it turns press, motion and release over tree nodes
// into pointer and drag events. [Model] wires both into bubbletea, using
// bubblezone to find the node under the mouse.
package term
