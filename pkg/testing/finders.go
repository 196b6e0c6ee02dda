package testing

import (
	"fmt"
	"strings"

	"github.com/go-drift/reorder/pkg/dom"
)

// Finder locates nodes in the tree.
type Finder interface {
	// Evaluate returns all matching nodes under root (depth-first pre-order).
	Evaluate(root *dom.Node) []*dom.Node
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	nodes  []*dom.Node
	finder Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() *dom.Node {
	if len(r.nodes) == 0 {
		panic(fmt.Sprintf("Finder found no nodes: %s", r.describe()))
	}
	return r.nodes[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() *dom.Node {
	if len(r.nodes) == 0 {
		return nil
	}
	return r.nodes[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) *dom.Node {
	if index < 0 || index >= len(r.nodes) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.nodes), r.describe()))
	}
	return r.nodes[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []*dom.Node {
	return r.nodes
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.nodes)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.nodes) > 0
}

func (r FinderResult) describe() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// --- Concrete finders ---

// selectorFinder matches nodes against a parsed selector.
type selectorFinder struct {
	source string
	sel    *dom.Selector
	err    error
}

func (f *selectorFinder) Evaluate(root *dom.Node) []*dom.Node {
	if f.err != nil {
		return nil
	}
	return collectMatches(root, f.sel.Match)
}

func (f *selectorFinder) Description() string {
	if f.err != nil {
		return fmt.Sprintf("BySelector(%q): %v", f.source, f.err)
	}
	return fmt.Sprintf("BySelector(%q)", f.source)
}

// BySelector returns a finder that matches nodes against a selector.
// A malformed selector matches nothing and says so in its description.
func BySelector(selector string) Finder {
	sel, err := dom.ParseSelector(selector)
	return &selectorFinder{source: selector, sel: sel, err: err}
}

// idFinder matches the node with the given id.
type idFinder struct {
	id string
}

func (f *idFinder) Evaluate(root *dom.Node) []*dom.Node {
	return collectMatches(root, func(n *dom.Node) bool { return n.ID() == f.id })
}

func (f *idFinder) Description() string {
	return fmt.Sprintf("ByID(%q)", f.id)
}

// ByID returns a finder that matches nodes with the given id.
func ByID(id string) Finder {
	return &idFinder{id: id}
}

// classFinder matches nodes carrying a class.
type classFinder struct {
	class string
}

func (f *classFinder) Evaluate(root *dom.Node) []*dom.Node {
	return collectMatches(root, func(n *dom.Node) bool { return n.HasClass(f.class) })
}

func (f *classFinder) Description() string {
	return fmt.Sprintf("ByClass(%q)", f.class)
}

// ByClass returns a finder that matches nodes carrying class.
func ByClass(class string) Finder {
	return &classFinder{class: class}
}

// textFinder matches nodes by exact own text.
type textFinder struct {
	text string
}

func (f *textFinder) Evaluate(root *dom.Node) []*dom.Node {
	return collectMatches(root, func(n *dom.Node) bool { return n.Text() == f.text })
}

func (f *textFinder) Description() string {
	return fmt.Sprintf("ByText(%q)", f.text)
}

// ByText returns a finder that matches nodes whose own text equals text.
func ByText(text string) Finder {
	return &textFinder{text: text}
}

// textContainingFinder matches nodes whose own text contains a substring.
type textContainingFinder struct {
	substring string
}

func (f *textContainingFinder) Evaluate(root *dom.Node) []*dom.Node {
	return collectMatches(root, func(n *dom.Node) bool {
		return strings.Contains(n.Text(), f.substring)
	})
}

func (f *textContainingFinder) Description() string {
	return fmt.Sprintf("ByTextContaining(%q)", f.substring)
}

// ByTextContaining returns a finder that matches nodes whose own text
// contains substring.
func ByTextContaining(substring string) Finder {
	return &textContainingFinder{substring: substring}
}

// predicateFinder matches nodes satisfying a predicate.
type predicateFinder struct {
	fn   func(*dom.Node) bool
	desc string
}

func (f *predicateFinder) Evaluate(root *dom.Node) []*dom.Node {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches nodes satisfying fn.
func ByPredicate(fn func(*dom.Node) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// nodeFinder matches one known node.
type nodeFinder struct {
	node *dom.Node
}

func (f *nodeFinder) Evaluate(root *dom.Node) []*dom.Node {
	if f.node != nil && root.Contains(f.node) {
		return []*dom.Node{f.node}
	}
	return nil
}

func (f *nodeFinder) Description() string {
	return fmt.Sprintf("ByNode(%s)", f.node)
}

// ByNode returns a finder that matches node if it is in the tree.
func ByNode(node *dom.Node) Finder {
	return &nodeFinder{node: node}
}

// descendantFinder finds nodes matching 'matching' that are descendants
// of nodes matching 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root *dom.Node) []*dom.Node {
	var results []*dom.Node
	seen := make(map[*dom.Node]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		// Search within each ancestor's subtree, skipping the ancestor itself.
		ancestor.VisitChildren(func(child *dom.Node) {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
		})
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches nodes found by matching within
// the subtrees of nodes found by of.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

func collectMatches(root *dom.Node, match func(*dom.Node) bool) []*dom.Node {
	if root == nil {
		return nil
	}
	var out []*dom.Node
	root.Walk(func(n *dom.Node) bool {
		if match(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}
