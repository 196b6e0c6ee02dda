// Package testing provides a test harness for drag-to-reorder lists.
//
// # Quick Start
//
// Create a tester, mount a list, drive a gesture and assert on the result:
//
//	func TestMoveRow(t *testing.T) {
//	    tester := reordertest.NewTesterWithT(t)
//	    tester.Mount(reordertest.List("fruit", "", "apple", "banana", "cherry"))
//
//	    moves := tester.Record(reordertest.BySelector("li"))
//	    dropped, err := tester.Drag(reordertest.ByID("fruit-apple"), reordertest.ByID("fruit-cherry"))
//	    if err != nil || !dropped {
//	        t.Fatalf("Drag = (%v, %v)", dropped, err)
//	    }
//	    if mv, _ := moves.Last(); mv.OldIndex != 0 || mv.NewIndex != 2 {
//	        t.Errorf("unexpected move %+v", mv)
//	    }
//	}
//
// Each gesture step is also available on its own (PointerDown, DragStart,
// DragEnter, DragLeave, DragOver, Drop, DragEnd) for tests that need to
// interleave events the way a platform may deliver them.
//
// # Snapshot Testing
//
// Capture and compare the tree including drag classes:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/list.snapshot.json")
//
// Update snapshots with:
//
//	REORDER_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import reordertest "github.com/go-drift/reorder/pkg/testing"
package testing
