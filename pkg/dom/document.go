package dom

import (
	"github.com/go-drift/reorder/pkg/errors"
)

// Directive is a reusable behavior attached to nodes by name, with a
// lifecycle driven by the document:
//
//   - Bind runs when a node carrying the directive joins the document, or
//     when the directive is first set on an attached node.
//   - Update runs when the directive value is set again on a bound node.
//   - Unbind runs when the node leaves the document or the directive is removed.
//
// Bind runs after the node's subtree is attached, so selectors against
// descendants see the rendered children.
type Directive interface {
	Bind(node *Node, binding Binding)
	Update(node *Node, binding Binding)
	Unbind(node *Node, binding Binding)
}

// Binding carries the directive value to a [Directive] hook.
type Binding struct {
	// Name is the name the directive was registered under.
	Name string
	// Value is the current value.
	Value any
	// OldValue is the previous value (Update only).
	OldValue any
}

type directiveSlot struct {
	value any
	bound Directive
}

// Document owns a node tree and the directives available to it.
type Document struct {
	body       *Node
	directives map[string]Directive
}

// NewDocument creates an empty document with a body element.
func NewDocument() *Document {
	d := &Document{directives: make(map[string]Directive)}
	d.body = NewElement("body")
	d.body.doc = d
	return d
}

// Body returns the root element of the document.
func (d *Document) Body() *Node { return d.body }

// RegisterDirective makes a directive available under name. Nodes already
// carrying that name are bound immediately.
func (d *Document) RegisterDirective(name string, dir Directive) {
	d.directives[name] = dir
	d.body.Walk(func(n *Node) bool {
		if slot, ok := n.directives[name]; ok && slot.bound == nil {
			n.bindDirective(name, slot)
		}
		return true
	})
}

// Directive returns the directive registered under name.
func (d *Document) Directive(name string) (Directive, bool) {
	dir, ok := d.directives[name]
	return dir, ok
}

// Query returns the first element in the document matching selector.
func (d *Document) Query(selector string) (*Node, error) {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil, err
	}
	if sel.Match(d.body) {
		return d.body, nil
	}
	return d.body.QuerySelector(sel), nil
}

// SetDirective sets the value of a named directive on n. When n is attached
// to a document that knows the directive, the directive is bound on the
// first call and updated on later calls.
func (n *Node) SetDirective(name string, value any) {
	if n.directives == nil {
		n.directives = make(map[string]*directiveSlot)
	}
	slot, ok := n.directives[name]
	if !ok {
		slot = &directiveSlot{value: value}
		n.directives[name] = slot
		if n.doc != nil {
			n.bindDirective(name, slot)
		}
		return
	}
	old := slot.value
	slot.value = value
	if slot.bound != nil {
		n.runHook("dom.Directive.Update", func() {
			slot.bound.Update(n, Binding{Name: name, Value: value, OldValue: old})
		})
	} else if n.doc != nil {
		n.bindDirective(name, slot)
	}
}

// RemoveDirective unbinds and forgets a named directive.
func (n *Node) RemoveDirective(name string) {
	slot, ok := n.directives[name]
	if !ok {
		return
	}
	delete(n.directives, name)
	if slot.bound != nil {
		n.runHook("dom.Directive.Unbind", func() {
			slot.bound.Unbind(n, Binding{Name: name, Value: slot.value})
		})
	}
}

// DirectiveValue returns the value last set for a directive.
func (n *Node) DirectiveValue(name string) (any, bool) {
	slot, ok := n.directives[name]
	if !ok {
		return nil, false
	}
	return slot.value, true
}

func (n *Node) bindDirective(name string, slot *directiveSlot) {
	dir, ok := n.doc.directives[name]
	if !ok {
		return
	}
	slot.bound = dir
	n.runHook("dom.Directive.Bind", func() {
		dir.Bind(n, Binding{Name: name, Value: slot.value})
	})
}

// attach sets the document on the subtree, then binds directives in
// pre-order once the whole subtree is reachable.
func (n *Node) attach(doc *Document) {
	n.Walk(func(c *Node) bool {
		c.doc = doc
		return true
	})
	n.Walk(func(c *Node) bool {
		for name, slot := range c.directives {
			if slot.bound == nil {
				c.bindDirective(name, slot)
			}
		}
		return true
	})
}

func (n *Node) detach() {
	n.Walk(func(c *Node) bool {
		for name, slot := range c.directives {
			if slot.bound == nil {
				continue
			}
			dir := slot.bound
			slot.bound = nil
			c.runHook("dom.Directive.Unbind", func() {
				dir.Unbind(c, Binding{Name: name, Value: slot.value})
			})
		}
		return true
	})
	n.Walk(func(c *Node) bool {
		c.doc = nil
		return true
	})
}

func (n *Node) runHook(op string, fn func()) {
	defer errors.Recover(op)
	fn()
}
