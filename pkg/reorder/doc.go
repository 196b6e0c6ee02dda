// Package reorder implements drag-to-reorder behavior for elements of a
// [dom] tree.
//
// Elements are attached to a [Controller] with [Options] describing their
// position in a list, an optional handle selector and an optional group.
// When the user drags one attached element onto another element of the same
// group and releases, the drop target dispatches a single [EventDragRow]
// event carrying a [MoveEvent]. The package never touches the list itself;
// the subscriber moves its own data and re-renders.
//
//	ctrl := reorder.NewController()
//	for i, row := range rows {
//	    ctrl.Attach(row, &reorder.Options{HandleSelector: ".handle", OrdinalIndex: i})
//	    reorder.OnMove(row, func(mv reorder.MoveEvent) {
//	        items = move(items, mv.OldIndex, mv.NewIndex)
//	    })
//	}
//
// # Gesture
//
// Pointer-down on the handle sets the draggable attribute so the host
// platform may start a native drag. Drag-start records the origin in the
// controller's [Session] and adds [ClassMoving]. Drag-enter and drag-leave
// toggle [ClassOver] on elements of the dragged group. Drop compares the
// origin with the target and emits the move; drag-end clears the gesture
// whether or not a drop happened.
//
// # Inert configurations
//
// Nil options, [NoIndex] and handle selectors that are malformed or match
// nothing leave the element untouched. Group mismatches and drops onto the
// origin position are silent no-ops. No path returns an error to the host.
package reorder
