package dom

import (
	"slices"
	"testing"
)

type recordingDirective struct {
	calls []string
	seen  []any
	// children records how many children the node had at Bind time.
	children []int
}

func (d *recordingDirective) Bind(n *Node, b Binding) {
	d.calls = append(d.calls, "bind:"+n.ID())
	d.seen = append(d.seen, b.Value)
	d.children = append(d.children, len(n.Children()))
}

func (d *recordingDirective) Update(n *Node, b Binding) {
	d.calls = append(d.calls, "update:"+n.ID())
	d.seen = append(d.seen, b.OldValue, b.Value)
}

func (d *recordingDirective) Unbind(n *Node, b Binding) {
	d.calls = append(d.calls, "unbind:"+n.ID())
}

func TestDirectiveBindOnAttach(t *testing.T) {
	doc := NewDocument()
	dir := &recordingDirective{}
	doc.RegisterDirective("draggable", dir)

	row := NewElement("li").SetID("r1")
	row.AppendChild(NewElement("span").AddClass("handle"))
	row.SetDirective("draggable", 1)
	if len(dir.calls) != 0 {
		t.Fatal("directive bound before the node joined the document")
	}

	list := NewElement("ul").AppendChild(row)
	doc.Body().AppendChild(list)

	if !slices.Equal(dir.calls, []string{"bind:r1"}) {
		t.Fatalf("calls = %v", dir.calls)
	}
	if dir.children[0] != 1 {
		t.Error("Bind should see the rendered children")
	}
	if row.Document() != doc {
		t.Error("attached node should report its document")
	}
}

func TestDirectiveUpdateAndUnbind(t *testing.T) {
	doc := NewDocument()
	dir := &recordingDirective{}
	doc.RegisterDirective("draggable", dir)

	row := NewElement("li").SetID("r1")
	doc.Body().AppendChild(row)
	row.SetDirective("draggable", "a")
	row.SetDirective("draggable", "b")

	if v, ok := row.DirectiveValue("draggable"); !ok || v != "b" {
		t.Errorf("DirectiveValue = (%v, %v)", v, ok)
	}

	row.Remove()
	if !slices.Equal(dir.calls, []string{"bind:r1", "update:r1", "unbind:r1"}) {
		t.Errorf("calls = %v", dir.calls)
	}
	if !slices.Equal(dir.seen, []any{"a", "a", "b"}) {
		t.Errorf("values = %v", dir.seen)
	}
	if row.Document() != nil {
		t.Error("removed node should have no document")
	}
}

func TestDirectiveUnbindOnAncestorRemoval(t *testing.T) {
	doc := NewDocument()
	dir := &recordingDirective{}
	doc.RegisterDirective("draggable", dir)

	list := NewElement("ul")
	for _, id := range []string{"r1", "r2"} {
		row := NewElement("li").SetID(id)
		row.SetDirective("draggable", id)
		list.AppendChild(row)
	}
	doc.Body().AppendChild(list)
	doc.Body().RemoveChild(list)

	want := []string{"bind:r1", "bind:r2", "unbind:r1", "unbind:r2"}
	if !slices.Equal(dir.calls, want) {
		t.Errorf("calls = %v, want %v", dir.calls, want)
	}
}

func TestRemoveDirective(t *testing.T) {
	doc := NewDocument()
	dir := &recordingDirective{}
	doc.RegisterDirective("draggable", dir)

	row := NewElement("li").SetID("r1")
	doc.Body().AppendChild(row)
	row.SetDirective("draggable", 0)
	row.RemoveDirective("draggable")
	row.RemoveDirective("draggable")

	if !slices.Equal(dir.calls, []string{"bind:r1", "unbind:r1"}) {
		t.Errorf("calls = %v", dir.calls)
	}
	if _, ok := row.DirectiveValue("draggable"); ok {
		t.Error("value should be forgotten")
	}
}

func TestRegisterDirectiveLate(t *testing.T) {
	doc := NewDocument()
	row := NewElement("li").SetID("r1")
	row.SetDirective("draggable", 3)
	doc.Body().AppendChild(row)

	dir := &recordingDirective{}
	doc.RegisterDirective("draggable", dir)
	if !slices.Equal(dir.calls, []string{"bind:r1"}) {
		t.Errorf("calls = %v", dir.calls)
	}
}

func TestDocumentQuery(t *testing.T) {
	doc := NewDocument()
	doc.Body().AppendChild(NewElement("ul").SetID("list"))

	got, err := doc.Query("#list")
	if err != nil || got == nil || got.ID() != "list" {
		t.Errorf("Query(#list) = (%v, %v)", got, err)
	}
	body, _ := doc.Query("body")
	if body != doc.Body() {
		t.Error("Query(body) should return the body")
	}
}
