package binding

import (
	"slices"
	"testing"

	"github.com/go-drift/reorder/pkg/dom"
	"github.com/go-drift/reorder/pkg/reorder"
)

func newDoc(t *testing.T, opts ...InstallOption) (*dom.Document, *Directive) {
	t.Helper()
	doc := dom.NewDocument()
	opts = append([]InstallOption{WithController(reorder.NewController(reorder.WithSession(reorder.NewSession())))}, opts...)
	return doc, Install(doc, opts...)
}

func row(id string) *dom.Node {
	return dom.NewElement("li").SetID(id).AppendChild(dom.NewElement("span").AddClass("handle"))
}

func TestBindOnAttach(t *testing.T) {
	doc, d := newDoc(t)
	r := row("r0")
	r.SetDirective(DefaultName, reorder.Options{HandleSelector: ".handle", OrdinalIndex: 0})

	if r.HasClass(reorder.ClassDraggable) {
		t.Fatal("behavior resolved before the row joined the document")
	}
	doc.Body().AppendChild(r)
	if !r.HasClass(reorder.ClassDraggable) {
		t.Error("expected draggable-element after attach")
	}
	if !d.Controller().Bound(r) {
		t.Error("controller should track the row")
	}
}

func TestNilValueIsInert(t *testing.T) {
	doc, d := newDoc(t)
	r := row("r0")
	r.SetDirective(DefaultName, nil)
	doc.Body().AppendChild(r)
	if r.HasClass(reorder.ClassDraggable) || d.Controller().Bound(r) {
		t.Error("nil value should leave the row inert")
	}
}

func TestUnbindOnRemoval(t *testing.T) {
	doc, d := newDoc(t)
	list := dom.NewElement("ul")
	r := row("r0")
	list.AppendChild(r)
	r.SetDirective(DefaultName, &reorder.Options{OrdinalIndex: 0})
	doc.Body().AppendChild(list)

	doc.Body().RemoveChild(list)
	if d.Controller().Bound(r) {
		t.Error("removing an ancestor should unbind the row")
	}
	if r.ListenerCount("") != 0 {
		t.Errorf("row kept %d listeners after removal", r.ListenerCount(""))
	}
}

func TestUpdateReResolves(t *testing.T) {
	doc, d := newDoc(t)
	r := row("r0")
	doc.Body().AppendChild(r)

	r.SetDirective(DefaultName, reorder.Options{HandleSelector: ".missing", OrdinalIndex: 0})
	if d.Controller().Bound(r) {
		t.Fatal("unresolvable handle should be inert")
	}
	r.SetDirective(DefaultName, reorder.Options{HandleSelector: ".handle", OrdinalIndex: 2})
	opts, ok := d.Controller().OptionsOf(r)
	if !ok || opts.OrdinalIndex != 2 {
		t.Errorf("OptionsOf = (%+v, %v), want index 2", opts, ok)
	}
}

func TestCustomName(t *testing.T) {
	doc, _ := newDoc(t, WithName("sortable"))
	r := row("r0")
	r.SetDirective("sortable", 0)
	doc.Body().AppendChild(r)
	if !r.HasClass(reorder.ClassDraggable) {
		t.Error("directive installed under a custom name should bind")
	}

	other := row("r1")
	other.SetDirective(DefaultName, 1)
	doc.Body().AppendChild(other)
	if other.HasClass(reorder.ClassDraggable) {
		t.Error("the default name should not be registered")
	}
}

// TestReorderRoundTrip plays the consumer role: it moves its own items on
// drag-row and re-renders indices through the directive.
func TestReorderRoundTrip(t *testing.T) {
	doc, _ := newDoc(t)
	items := []string{"apple", "banana", "cherry"}
	list := dom.NewElement("ul")
	var rows []*dom.Node
	for i, name := range items {
		r := row(name)
		r.SetDirective(DefaultName, map[string]any{"handleSelector": ".handle", "ordinalIndex": i})
		reorder.OnMove(r, func(mv reorder.MoveEvent) {
			item := items[mv.OldIndex]
			items = slices.Delete(items, mv.OldIndex, mv.OldIndex+1)
			items = slices.Insert(items, mv.NewIndex, item)
		})
		list.AppendChild(r)
		rows = append(rows, r)
	}
	doc.Body().AppendChild(list)

	rows[0].Dispatch(dom.NewEvent(dom.EventDragStart))
	rows[2].Dispatch(dom.NewEvent(dom.EventDrop))
	rows[0].Dispatch(dom.NewEvent(dom.EventDragEnd))

	if want := []string{"banana", "cherry", "apple"}; !slices.Equal(items, want) {
		t.Fatalf("items = %v, want %v", items, want)
	}
	if rows[0].HasClass(reorder.ClassMoving) {
		t.Error("origin still moving after drag-end")
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  *reorder.Options
	}{
		{"nil", nil, nil},
		{"nil pointer", (*reorder.Options)(nil), nil},
		{"int", 4, &reorder.Options{OrdinalIndex: 4}},
		{"struct", reorder.Options{GroupName: "g", OrdinalIndex: 1}, &reorder.Options{GroupName: "g", OrdinalIndex: 1}},
		{"camel map", map[string]any{"handleSelector": ".h", "groupName": "g", "ordinalIndex": 2},
			&reorder.Options{HandleSelector: ".h", GroupName: "g", OrdinalIndex: 2}},
		{"snake map", map[string]any{"handle_selector": ".h", "group_name": "g", "ordinal_index": int64(3)},
			&reorder.Options{HandleSelector: ".h", GroupName: "g", OrdinalIndex: 3}},
		{"legacy index key", map[string]any{"handleSelector": ".h", "index": float64(5)},
			&reorder.Options{HandleSelector: ".h", OrdinalIndex: 5}},
		{"map without index", map[string]any{"groupName": "g"},
			&reorder.Options{GroupName: "g", OrdinalIndex: reorder.NoIndex}},
		{"yaml v2 style map", map[any]any{"ordinalIndex": 1}, &reorder.Options{OrdinalIndex: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.value)
			if err != nil {
				t.Fatalf("Decode error: %v", err)
			}
			if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
				t.Errorf("Decode = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, v := range []any{
		"row",
		map[string]any{"ordinalIndex": 1.5},
		map[string]any{"ordinalIndex": []int{1}},
		map[string]any{"groupName": 7},
		map[string]any{"handleSelector": true},
	} {
		if _, err := Decode(v); err == nil {
			t.Errorf("Decode(%#v) expected error", v)
		}
	}
}

func TestUndecodableValueIsInert(t *testing.T) {
	doc, d := newDoc(t)
	r := row("r0")
	r.SetDirective(DefaultName, "not options")
	doc.Body().AppendChild(r)
	if d.Controller().Bound(r) {
		t.Error("undecodable value should leave the row inert")
	}
}
