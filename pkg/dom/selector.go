package dom

import (
	"fmt"
	"strings"
)

// Selector is a parsed selector list. The supported grammar is a subset of
// CSS selectors:
//
//	tag  *  #id  .class  [attr]  [attr=value]  [attr="value"]
//	compound sequences (li.row#first)
//	descendant (a b) and child (a > b) combinators
//	selector lists (a, b)
type Selector struct {
	source string
	groups []complexSelector
}

type combinator int

const (
	combDescendant combinator = iota
	combChild
)

// complexSelector is stored right to left: parts[0] is the subject and
// combs[i] links parts[i] to parts[i+1].
type complexSelector struct {
	parts []compound
	combs []combinator
}

type attrTest struct {
	name     string
	value    string
	hasValue bool
}

type compound struct {
	tag     string
	id      string
	classes []string
	attrs   []attrTest
}

// SelectorError reports a selector that could not be parsed.
type SelectorError struct {
	Selector string
	Offset   int
	Reason   string
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("invalid selector %q at offset %d: %s", e.Selector, e.Offset, e.Reason)
}

// ParseSelector parses a selector list.
func ParseSelector(source string) (*Selector, error) {
	p := &selectorParser{src: source}
	sel := &Selector{source: source}
	for {
		p.skipSpace()
		group, err := p.complex()
		if err != nil {
			return nil, err
		}
		sel.groups = append(sel.groups, group)
		p.skipSpace()
		if p.eof() {
			break
		}
		if p.peek() != ',' {
			return nil, p.fail("expected ',' or end of selector")
		}
		p.pos++
	}
	return sel, nil
}

// MustParseSelector is like ParseSelector but panics on error. It is meant
// for package-level selector constants.
func MustParseSelector(source string) *Selector {
	sel, err := ParseSelector(source)
	if err != nil {
		panic(err)
	}
	return sel
}

// String returns the selector source.
func (s *Selector) String() string { return s.source }

// Match reports whether n matches any selector in the list.
func (s *Selector) Match(n *Node) bool {
	if s == nil || n == nil {
		return false
	}
	for _, g := range s.groups {
		if g.match(n) {
			return true
		}
	}
	return false
}

func (c complexSelector) match(n *Node) bool {
	if !c.parts[0].match(n) {
		return false
	}
	return c.matchFrom(n, 0)
}

// matchFrom checks the remaining combinators given that n matched parts[i].
func (c complexSelector) matchFrom(n *Node, i int) bool {
	if i == len(c.combs) {
		return true
	}
	next := c.parts[i+1]
	switch c.combs[i] {
	case combChild:
		p := n.parent
		return p != nil && next.match(p) && c.matchFrom(p, i+1)
	default:
		for p := n.parent; p != nil; p = p.parent {
			if next.match(p) && c.matchFrom(p, i+1) {
				return true
			}
		}
		return false
	}
}

func (c compound) match(n *Node) bool {
	if c.tag != "" && c.tag != "*" && c.tag != n.tag {
		return false
	}
	if c.id != "" && c.id != n.id {
		return false
	}
	for _, cls := range c.classes {
		if !n.HasClass(cls) {
			return false
		}
	}
	for _, a := range c.attrs {
		v, ok := n.Attribute(a.name)
		if !ok || (a.hasValue && v != a.value) {
			return false
		}
	}
	return true
}

// --- queries ---

// QuerySelector returns the first descendant of n (in pre-order, excluding
// n itself) matching sel, or nil.
func (n *Node) QuerySelector(sel *Selector) *Node {
	var found *Node
	for _, c := range n.children {
		c.Walk(func(d *Node) bool {
			if found != nil {
				return false
			}
			if sel.Match(d) {
				found = d
				return false
			}
			return true
		})
		if found != nil {
			break
		}
	}
	return found
}

// QuerySelectorAll returns every descendant of n matching sel in pre-order.
func (n *Node) QuerySelectorAll(sel *Selector) []*Node {
	var out []*Node
	for _, c := range n.children {
		c.Walk(func(d *Node) bool {
			if sel.Match(d) {
				out = append(out, d)
			}
			return true
		})
	}
	return out
}

// Query parses selector and returns the first matching descendant.
func (n *Node) Query(selector string) (*Node, error) {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil, err
	}
	return n.QuerySelector(sel), nil
}

// QueryAll parses selector and returns all matching descendants.
func (n *Node) QueryAll(selector string) ([]*Node, error) {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil, err
	}
	return n.QuerySelectorAll(sel), nil
}

// Matches reports whether n matches selector. Invalid selectors never match.
func (n *Node) Matches(selector string) bool {
	sel, err := ParseSelector(selector)
	if err != nil {
		return false
	}
	return sel.Match(n)
}

// Closest returns the nearest inclusive ancestor of n matching sel, or nil.
func (n *Node) Closest(sel *Selector) *Node {
	return n.ClosestFunc(sel.Match)
}

// ClosestFunc returns the nearest inclusive ancestor for which pred holds.
func (n *Node) ClosestFunc(pred func(*Node) bool) *Node {
	for p := n; p != nil; p = p.parent {
		if pred(p) {
			return p
		}
	}
	return nil
}

// --- parser ---

type selectorParser struct {
	src string
	pos int
}

func (p *selectorParser) eof() bool  { return p.pos >= len(p.src) }
func (p *selectorParser) peek() byte { return p.src[p.pos] }

func (p *selectorParser) fail(reason string) error {
	return &SelectorError{Selector: p.src, Offset: p.pos, Reason: reason}
}

func (p *selectorParser) skipSpace() bool {
	start := p.pos
	for !p.eof() && isSpace(p.peek()) {
		p.pos++
	}
	return p.pos > start
}

func (p *selectorParser) complex() (complexSelector, error) {
	var parts []compound
	var combs []combinator
	first, err := p.compound()
	if err != nil {
		return complexSelector{}, err
	}
	parts = append(parts, first)
	for {
		spaced := p.skipSpace()
		if p.eof() || p.peek() == ',' {
			break
		}
		comb := combDescendant
		if p.peek() == '>' {
			comb = combChild
			p.pos++
			p.skipSpace()
		} else if !spaced {
			return complexSelector{}, p.fail("unexpected character")
		}
		next, err := p.compound()
		if err != nil {
			return complexSelector{}, err
		}
		parts = append(parts, next)
		combs = append(combs, comb)
	}
	// Reverse so the subject comes first.
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	for i, j := 0, len(combs)-1; i < j; i, j = i+1, j-1 {
		combs[i], combs[j] = combs[j], combs[i]
	}
	return complexSelector{parts: parts, combs: combs}, nil
}

func (p *selectorParser) compound() (compound, error) {
	var c compound
	start := p.pos
	if !p.eof() && p.peek() == '*' {
		c.tag = "*"
		p.pos++
	} else if !p.eof() && isIdentStart(p.peek()) {
		c.tag = strings.ToLower(p.ident())
	}
	for !p.eof() {
		switch p.peek() {
		case '#':
			p.pos++
			id := p.ident()
			if id == "" {
				return c, p.fail("expected id after '#'")
			}
			c.id = id
		case '.':
			p.pos++
			cls := p.ident()
			if cls == "" {
				return c, p.fail("expected class name after '.'")
			}
			c.classes = append(c.classes, cls)
		case '[':
			p.pos++
			a, err := p.attr()
			if err != nil {
				return c, err
			}
			c.attrs = append(c.attrs, a)
		default:
			if p.pos == start {
				return c, p.fail("expected selector")
			}
			return c, nil
		}
	}
	if p.pos == start {
		return c, p.fail("expected selector")
	}
	return c, nil
}

func (p *selectorParser) attr() (attrTest, error) {
	p.skipSpace()
	name := p.ident()
	if name == "" {
		return attrTest{}, p.fail("expected attribute name")
	}
	p.skipSpace()
	if p.eof() {
		return attrTest{}, p.fail("unterminated attribute selector")
	}
	a := attrTest{name: name}
	if p.peek() == '=' {
		p.pos++
		p.skipSpace()
		v, err := p.attrValue()
		if err != nil {
			return attrTest{}, err
		}
		a.value, a.hasValue = v, true
		p.skipSpace()
	}
	if p.eof() || p.peek() != ']' {
		return attrTest{}, p.fail("expected ']'")
	}
	p.pos++
	return a, nil
}

func (p *selectorParser) attrValue() (string, error) {
	if p.eof() {
		return "", p.fail("expected attribute value")
	}
	if q := p.peek(); q == '"' || q == '\'' {
		p.pos++
		end := strings.IndexByte(p.src[p.pos:], q)
		if end < 0 {
			return "", p.fail("unterminated string")
		}
		v := p.src[p.pos : p.pos+end]
		p.pos += end + 1
		return v, nil
	}
	v := p.ident()
	if v == "" {
		return "", p.fail("expected attribute value")
	}
	return v, nil
}

func (p *selectorParser) ident() string {
	start := p.pos
	for !p.eof() && isIdentChar(p.peek()) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func isIdentStart(b byte) bool {
	return b == '_' || b == '-' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isIdentChar(b byte) bool {
	return isIdentStart(b) || b >= '0' && b <= '9'
}
