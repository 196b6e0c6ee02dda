package testing

import (
	"testing"

	"github.com/go-drift/reorder/pkg/binding"
	"github.com/go-drift/reorder/pkg/dom"
	"github.com/go-drift/reorder/pkg/reorder"
)

func TestTester_MountBinds(t *testing.T) {
	tester := NewTesterWithT(t)
	list := List("fruit", "", "apple", "banana")

	if tester.Controller().Len() != 0 {
		t.Fatal("nothing should be bound before mount")
	}
	tester.Mount(list)
	if tester.Controller().Len() != 2 {
		t.Errorf("expected 2 bound rows, got %d", tester.Controller().Len())
	}
	if list.Document() != tester.Document() {
		t.Error("mounted list should belong to the tester's document")
	}
}

func TestTester_Cleanup(t *testing.T) {
	tester := NewTester()
	list := List("fruit", "", "apple", "banana")
	tester.Mount(list)
	tester.DragStart(ByID("fruit-apple"))

	tester.Cleanup()

	if tester.Controller().Len() != 0 {
		t.Errorf("cleanup should unbind every row, %d left", tester.Controller().Len())
	}
	if len(tester.Body().Children()) != 0 {
		t.Error("cleanup should empty the body")
	}
	if tester.Session().Active() {
		t.Error("cleanup should end the session")
	}
	if n := list.Children()[0].ListenerCount(""); n != 0 {
		t.Errorf("row kept %d listeners", n)
	}
}

func TestTester_IndependentSessions(t *testing.T) {
	a := NewTesterWithT(t)
	b := NewTesterWithT(t)
	a.Mount(List("fruit", "", "apple", "banana"))
	b.Mount(List("fruit", "", "apple", "banana"))

	a.DragStart(ByID("fruit-apple"))
	if b.Session().Active() {
		t.Error("a gesture in one tester should not leak into another")
	}
	if allowed, _ := b.DragOver(ByID("fruit-banana")); allowed {
		t.Error("the other tester should not accept drops")
	}
	a.DragEnd(ByID("fruit-apple"))
}

func TestTester_CustomDirectiveName(t *testing.T) {
	tester := NewTesterWithT(t, binding.WithName("sortable"))
	row := dom.NewElement("li").SetID("r0")
	row.SetDirective("sortable", reorder.Options{OrdinalIndex: 0})
	tester.Mount(dom.NewElement("ul").AppendChild(row))

	if !tester.Controller().Bound(row) {
		t.Error("row should bind under the custom directive name")
	}
}

func TestList_Structure(t *testing.T) {
	list := List("fruit", "g", "apple", "banana")

	if list.Tag() != "ul" || list.ID() != "fruit" {
		t.Errorf("unexpected list %s", list)
	}
	rows := list.Children()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	value, ok := rows[1].DirectiveValue(binding.DefaultName)
	if !ok {
		t.Fatal("rows should carry the directive value")
	}
	if opts := value.(reorder.Options); opts.OrdinalIndex != 1 || opts.GroupName != "g" {
		t.Errorf("unexpected options %v", opts)
	}
}
