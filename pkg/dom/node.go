package dom

import (
	"slices"
	"strings"
)

// Node is an element in a retained UI tree.
//
// Nodes carry a tag, an optional id, an ordered class list, string
// attributes and optional text. A node becomes part of a [Document] when it
// (or an ancestor) is appended under the document body; directives set on
// the node are bound at that point and unbound when it leaves the document.
//
// Node is not safe for concurrent use. Like the rest of a UI tree it is
// owned by the thread that dispatches its events.
type Node struct {
	tag      string
	id       string
	text     string
	classes  []string
	attrs    map[string]string
	parent   *Node
	children []*Node
	doc      *Document

	listeners  map[string][]*Listener
	directives map[string]*directiveSlot
}

// NewElement creates a detached element with the given tag.
func NewElement(tag string) *Node {
	return &Node{tag: strings.ToLower(tag)}
}

// Tag returns the element tag name.
func (n *Node) Tag() string { return n.tag }

// ID returns the element id, or "" when unset.
func (n *Node) ID() string { return n.id }

// SetID sets the element id and returns the node for chaining.
func (n *Node) SetID(id string) *Node {
	n.id = id
	return n
}

// Text returns the node's own text content.
func (n *Node) Text() string { return n.text }

// SetText sets the node's own text content and returns the node for chaining.
func (n *Node) SetText(text string) *Node {
	n.text = text
	return n
}

// Parent returns the parent node, or nil for a detached or root node.
func (n *Node) Parent() *Node { return n.parent }

// Document returns the document the node is attached to, or nil.
func (n *Node) Document() *Document { return n.doc }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// VisitChildren calls visitor for each direct child in order.
func (n *Node) VisitChildren(visitor func(*Node)) {
	for _, c := range n.children {
		visitor(c)
	}
}

// Walk visits n and all of its descendants in depth-first pre-order.
// Returning false from visit skips the subtree of that node.
func (n *Node) Walk(visit func(*Node) bool) {
	if !visit(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(visit)
	}
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// Index returns the position of n among its parent's children, or -1.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	return slices.Index(n.parent.children, n)
}

// AppendChild appends child to n, detaching it from its previous parent
// first. Appending an ancestor of n panics.
func (n *Node) AppendChild(child *Node) *Node {
	n.InsertChild(len(n.children), child)
	return n
}

// Append appends several children and returns n for chaining.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

// InsertChild inserts child at position i among n's children.
func (n *Node) InsertChild(i int, child *Node) {
	if child == nil {
		return
	}
	if child.Contains(n) {
		panic("dom: cannot insert a node into its own subtree")
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	i = max(0, min(i, len(n.children)))
	n.children = slices.Insert(n.children, i, child)
	child.parent = n
	if n.doc != nil {
		child.attach(n.doc)
	}
}

// RemoveChild detaches child from n. Directives bound anywhere in the
// child's subtree are unbound. Removing a node that is not a child is a no-op.
func (n *Node) RemoveChild(child *Node) {
	i := slices.Index(n.children, child)
	if i < 0 {
		return
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = nil
	if child.doc != nil {
		child.detach()
	}
}

// Remove detaches n from its parent.
func (n *Node) Remove() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// --- classes ---

// AddClass adds the class if it is not already present.
func (n *Node) AddClass(class string) *Node {
	if class != "" && !slices.Contains(n.classes, class) {
		n.classes = append(n.classes, class)
	}
	return n
}

// RemoveClass removes the class if present.
func (n *Node) RemoveClass(class string) *Node {
	if i := slices.Index(n.classes, class); i >= 0 {
		n.classes = slices.Delete(n.classes, i, i+1)
	}
	return n
}

// ToggleClass adds or removes the class depending on on.
func (n *Node) ToggleClass(class string, on bool) *Node {
	if on {
		return n.AddClass(class)
	}
	return n.RemoveClass(class)
}

// HasClass reports whether the class is present.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.classes, class)
}

// Classes returns a copy of the class list in insertion order.
func (n *Node) Classes() []string {
	return slices.Clone(n.classes)
}

// --- attributes ---

// SetAttribute sets an attribute value.
func (n *Node) SetAttribute(name, value string) *Node {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
	return n
}

// RemoveAttribute deletes an attribute.
func (n *Node) RemoveAttribute(name string) {
	delete(n.attrs, name)
}

// Attribute returns an attribute value and whether it is set.
func (n *Node) Attribute(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// HasAttribute reports whether the attribute is set.
func (n *Node) HasAttribute(name string) bool {
	_, ok := n.attrs[name]
	return ok
}

// String renders the node as tag#id.class1.class2.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	var sb strings.Builder
	sb.WriteString(n.tag)
	if n.id != "" {
		sb.WriteByte('#')
		sb.WriteString(n.id)
	}
	for _, c := range n.classes {
		sb.WriteByte('.')
		sb.WriteString(c)
	}
	return sb.String()
}

// Outline renders the subtree rooted at n, one node per line, indented by depth.
func (n *Node) Outline() string {
	var sb strings.Builder
	var walk func(*Node, int)
	walk = func(node *Node, depth int) {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(node.String())
		if node.text != "" {
			sb.WriteString(" ")
			sb.WriteString(strings.TrimSpace(node.text))
		}
		sb.WriteByte('\n')
		for _, c := range node.children {
			walk(c, depth+1)
		}
	}
	walk(n, 0)
	return sb.String()
}
