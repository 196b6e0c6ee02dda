package term

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/go-drift/reorder/internal/config"
	"github.com/go-drift/reorder/pkg/binding"
	"github.com/go-drift/reorder/pkg/dom"
	"github.com/go-drift/reorder/pkg/logging"
	"github.com/go-drift/reorder/pkg/reorder"
)

// HandleGlyph is the text of every row handle.
const HandleGlyph = "⠿"

// List is one reorderable list on a board. The board owns the item order
// and keeps the rows in step with it.
type List struct {
	ID     string
	Group  string
	Handle string

	items []string
	node  *dom.Node
	rows  []*dom.Node
}

// Items returns the current item order.
func (l *List) Items() []string { return slices.Clone(l.items) }

// Rows returns the row elements in item order.
func (l *List) Rows() []*dom.Node { return slices.Clone(l.rows) }

// Node returns the list element.
func (l *List) Node() *dom.Node { return l.node }

// Move is one reorder the board applied. Old and New are positions within
// the From and To lists.
type Move struct {
	Item string
	From string
	To   string
	Old  int
	New  int
}

// Board hosts reorderable lists in a document and plays the consumer role:
// it applies every drag-row notification to its own item order.
type Board struct {
	doc       *dom.Document
	directive string
	root      *dom.Node
	lists     []*List
	handles   map[*dom.Node]*dom.Node
	pointer   Pointer
	moves     []Move
	seq       int
	log       zerolog.Logger
}

type boardConfig struct {
	doc       *dom.Document
	directive string
	ctrl      *reorder.Controller
	log       *zerolog.Logger
}

// BoardOption configures NewBoard.
type BoardOption func(*boardConfig)

// WithDocument mounts the board into an existing document whose directive
// is already installed.
func WithDocument(doc *dom.Document) BoardOption {
	return func(c *boardConfig) { c.doc = doc }
}

// WithDirectiveName sets the directive name rows are bound with.
func WithDirectiveName(name string) BoardOption {
	return func(c *boardConfig) {
		if name != "" {
			c.directive = name
		}
	}
}

// WithController backs a board-owned document with ctrl.
func WithController(ctrl *reorder.Controller) BoardOption {
	return func(c *boardConfig) { c.ctrl = ctrl }
}

// WithBoardLogger overrides the board logger.
func WithBoardLogger(log zerolog.Logger) BoardOption {
	return func(c *boardConfig) { c.log = &log }
}

// NewBoard builds and mounts a board for lists.
func NewBoard(lists []config.ListConfig, opts ...BoardOption) *Board {
	cfg := boardConfig{directive: binding.DefaultName}
	for _, opt := range opts {
		opt(&cfg)
	}
	doc := cfg.doc
	if doc == nil {
		doc = dom.NewDocument()
		ctrl := cfg.ctrl
		if ctrl == nil {
			ctrl = reorder.NewController(reorder.WithSession(reorder.NewSession()))
		}
		binding.Install(doc, binding.WithName(cfg.directive), binding.WithController(ctrl))
	}
	log := logging.For("term")
	if cfg.log != nil {
		log = *cfg.log
	}

	b := &Board{
		doc:       doc,
		directive: cfg.directive,
		root:      dom.NewElement("div").AddClass("board"),
		handles:   make(map[*dom.Node]*dom.Node),
		log:       log,
	}
	for _, lc := range lists {
		l := &List{
			ID:     lc.ID,
			Group:  lc.Group,
			Handle: lc.Handle,
			items:  slices.Clone(lc.Items),
			node:   dom.NewElement("ul").SetID(lc.ID),
		}
		if l.Handle == "" {
			l.Handle = config.DefaultHandle
		}
		for _, item := range l.items {
			row := b.newRow(l, item)
			l.rows = append(l.rows, row)
			l.node.AppendChild(row)
		}
		b.lists = append(b.lists, l)
		b.root.AppendChild(l.node)
	}
	doc.Body().AppendChild(b.root)
	for _, l := range b.lists {
		if b.first(l.Group) == l {
			b.reindex(l.Group)
		}
	}
	return b
}

func (b *Board) newRow(l *List, item string) *dom.Node {
	b.seq++
	handle := dom.NewElement("span").AddClass("handle").SetText(HandleGlyph)
	if class, ok := strings.CutPrefix(l.Handle, "."); ok && isPlainClass(class) {
		handle.AddClass(class)
	}
	row := dom.NewElement("li").SetID(fmt.Sprintf("row-%d", b.seq)).Append(
		handle,
		dom.NewElement("span").AddClass("label").SetText(item),
	)
	b.handles[row] = handle
	reorder.OnMove(row, func(mv reorder.MoveEvent) { b.applyMove(row, mv) })
	return row
}

func isPlainClass(s string) bool {
	return s != "" && !strings.ContainsAny(s, " .#[]>,*:")
}

// Document returns the document the board is mounted in.
func (b *Board) Document() *dom.Document { return b.doc }

// Lists returns the board's lists.
func (b *Board) Lists() []*List { return b.lists }

// List returns the list with id.
func (b *Board) List(id string) (*List, bool) {
	for _, l := range b.lists {
		if l.ID == id {
			return l, true
		}
	}
	return nil, false
}

// Pointer returns the board's drag backend.
func (b *Board) Pointer() *Pointer { return &b.pointer }

// HandleOf returns the handle element rendered in row.
func (b *Board) HandleOf(row *dom.Node) *dom.Node { return b.handles[row] }

// Moves returns every reorder the board has applied.
func (b *Board) Moves() []Move { return slices.Clone(b.moves) }

// listOf returns the list containing row.
func (b *Board) listOf(row *dom.Node) *List {
	if row == nil {
		return nil
	}
	for _, l := range b.lists {
		if row.Parent() == l.node {
			return l
		}
	}
	return nil
}

// first returns the first list of group in board order.
func (b *Board) first(group string) *List {
	for _, l := range b.lists {
		if l.Group == group {
			return l
		}
	}
	return nil
}

// offset returns the ordinal of the first row of l. Rows of one group
// share an ordinal space: each list continues numbering where the previous
// list of the group stopped, so no two rows a drag can connect carry the
// same index.
func (b *Board) offset(l *List) int {
	n := 0
	for _, other := range b.lists {
		if other == l {
			break
		}
		if other.Group == l.Group {
			n += len(other.items)
		}
	}
	return n
}

// locate maps a group ordinal back to a list and a position in it.
func (b *Board) locate(group string, ordinal int) (*List, int, bool) {
	if ordinal < 0 {
		return nil, 0, false
	}
	for _, l := range b.lists {
		if l.Group != group {
			continue
		}
		if ordinal < len(l.items) {
			return l, ordinal, true
		}
		ordinal -= len(l.items)
	}
	return nil, 0, false
}

// applyMove moves the dragged item in front of target, the row that
// received the notification.
func (b *Board) applyMove(target *dom.Node, mv reorder.MoveEvent) {
	dst := b.listOf(target)
	if dst == nil {
		return
	}
	src, from, ok := b.locate(dst.Group, mv.OldIndex)
	to := slices.Index(dst.rows, target)
	if !ok || to < 0 || b.offset(dst)+to != mv.NewIndex {
		b.log.Warn().
			Str("group", dst.Group).
			Int("old", mv.OldIndex).
			Int("new", mv.NewIndex).
			Msg("move out of range")
		return
	}

	item, row := src.items[from], src.rows[from]
	src.items = slices.Delete(src.items, from, from+1)
	src.rows = slices.Delete(src.rows, from, from+1)
	at := min(to, len(dst.items))
	dst.items = slices.Insert(dst.items, at, item)
	dst.rows = slices.Insert(dst.rows, at, row)
	dst.node.InsertChild(at, row)

	b.reindex(dst.Group)
	b.moves = append(b.moves, Move{Item: item, From: src.ID, To: dst.ID, Old: from, New: at})
	b.log.Info().
		Str("item", item).
		Str("from", src.ID).
		Str("to", dst.ID).
		Int("old", from).
		Int("new", at).
		Msg("moved")
}

// reindex binds every row of group with its current ordinal.
func (b *Board) reindex(group string) {
	n := 0
	for _, l := range b.lists {
		if l.Group != group {
			continue
		}
		for _, row := range l.rows {
			row.SetDirective(b.directive, reorder.Options{
				HandleSelector: l.Handle,
				GroupName:      l.Group,
				OrdinalIndex:   n,
			})
			n++
		}
	}
}
// String renders every list as "id: a, b, c", one per line.
func (b *Board) String() string {
	var sb strings.Builder
	for i, l := range b.lists {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s: %s", l.ID, strings.Join(l.items, ", "))
	}
	return sb.String()
}
