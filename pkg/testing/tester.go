package testing

import (
	"testing"

	"github.com/go-drift/reorder/pkg/binding"
	"github.com/go-drift/reorder/pkg/dom"
	"github.com/go-drift/reorder/pkg/reorder"
)

// Tester hosts a document with the draggable directive installed and
// plays the role of the platform: it delivers pointer and drag events the
// way a native drag backend would.
//
// Each Tester owns its own [reorder.Session], so tests never observe a
// gesture started by another test.
type Tester struct {
	doc       *dom.Document
	directive *binding.Directive
	session   *reorder.Session
}

// NewTester creates a tester with an empty document.
// Call Cleanup() when done, or use NewTesterWithT() instead.
func NewTester(opts ...binding.InstallOption) *Tester {
	session := reorder.NewSession()
	doc := dom.NewDocument()
	ctrl := reorder.NewController(reorder.WithSession(session))
	opts = append([]binding.InstallOption{binding.WithController(ctrl)}, opts...)
	return &Tester{
		doc:       doc,
		directive: binding.Install(doc, opts...),
		session:   session,
	}
}

// NewTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t testing.TB, opts ...binding.InstallOption) *Tester {
	tester := NewTester(opts...)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts everything, which unbinds every directive.
func (t *Tester) Cleanup() {
	body := t.doc.Body()
	for _, c := range body.Children() {
		body.RemoveChild(c)
	}
	t.session.End()
}

// Document returns the hosted document.
func (t *Tester) Document() *dom.Document { return t.doc }

// Body returns the document body.
func (t *Tester) Body() *dom.Node { return t.doc.Body() }

// Controller returns the controller behind the directive.
func (t *Tester) Controller() *reorder.Controller { return t.directive.Controller() }

// Session returns the tester's drag session.
func (t *Tester) Session() *reorder.Session { return t.session }

// Mount appends nodes to the document body, binding their directives.
func (t *Tester) Mount(nodes ...*dom.Node) {
	t.doc.Body().Append(nodes...)
}

// Find evaluates finder against the document body.
func (t *Tester) Find(finder Finder) FinderResult {
	return FinderResult{nodes: finder.Evaluate(t.doc.Body()), finder: finder}
}

// List builds a <ul id=id> whose rows are <li> elements with a .handle and
// a .label child, bound with the draggable directive at their position.
// The list is not mounted.
func List(id, group string, labels ...string) *dom.Node {
	list := dom.NewElement("ul").SetID(id)
	for i, label := range labels {
		row := dom.NewElement("li").SetID(id + "-" + label).Append(
			dom.NewElement("span").AddClass("handle").SetText("⠿"),
			dom.NewElement("span").AddClass("label").SetText(label),
		)
		row.SetDirective(binding.DefaultName, reorder.Options{
			HandleSelector: ".handle",
			GroupName:      group,
			OrdinalIndex:   i,
		})
		list.AppendChild(row)
	}
	return list
}
