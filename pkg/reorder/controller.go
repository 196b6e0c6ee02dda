package reorder

import (
	"github.com/rs/zerolog"

	"github.com/go-drift/reorder/pkg/dom"
	"github.com/go-drift/reorder/pkg/errors"
	"github.com/go-drift/reorder/pkg/logging"
)

// Controller attaches drag-to-reorder behavior to elements and coordinates
// them through a shared [Session].
//
// Each attached element is tracked in a registry keyed by node identity
// together with the listeners it registered, so [Controller.Detach] leaves
// no reactions behind.
type Controller struct {
	session *Session
	members map[*dom.Node]*member
	log     zerolog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithSession makes the controller use s instead of the calling goroutine's
// [ThreadSession].
func WithSession(s *Session) Option {
	return func(c *Controller) {
		if s != nil {
			c.session = s
		}
	}
}

// WithLogger overrides the controller logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// NewController creates a controller with no attached elements.
//
// Without [WithSession] the controller uses the calling goroutine's
// [ThreadSession]. That session lives until the goroutine calls
// [ReleaseThreadSession]; hosts and tests that create controllers on
// short-lived goroutines should either release it or pass their own session.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		members: make(map[*dom.Node]*member),
		log:     logging.For("reorder"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.session == nil {
		c.session = ThreadSession()
	}
	return c
}

// Session returns the session the controller coordinates through.
func (c *Controller) Session() *Session { return c.session }

// Len returns the number of attached elements.
func (c *Controller) Len() int { return len(c.members) }

// Bound reports whether node is attached.
func (c *Controller) Bound(node *dom.Node) bool {
	_, ok := c.members[node]
	return ok
}

// OptionsOf returns the options node was attached with.
func (c *Controller) OptionsOf(node *dom.Node) (Options, bool) {
	m, ok := c.members[node]
	if !ok {
		return Options{}, false
	}
	return m.opts, true
}

// Attach resolves opts against node and, on success, marks the node with
// [ClassDraggable] and registers its reactions. It reports whether the
// behavior is active. Attaching an already attached node replaces its
// configuration.
func (c *Controller) Attach(node *dom.Node, opts *Options) bool {
	replaced := c.detach(node)
	handle, err := Resolve(node, opts)
	if err != nil {
		if replaced {
			clearState(node)
		}
		c.reportResolve(node, err)
		return false
	}

	m := &member{c: c, node: node, handle: handle, opts: *opts}
	m.register()
	c.members[node] = m
	node.AddClass(ClassDraggable)

	c.log.Debug().
		Stringer("node", node).
		Stringer("options", m.opts).
		Msg("attached")
	return true
}

// Update re-resolves node with new options. Identical options are a no-op.
func (c *Controller) Update(node *dom.Node, opts *Options) bool {
	if m, ok := c.members[node]; ok && opts != nil && m.opts == *opts {
		return true
	}
	return c.Attach(node, opts)
}

// Detach removes every reaction registered for node and clears its
// gesture state: [ClassMoving], [ClassOver] and the armed [AttrDraggable].
// The structural [ClassDraggable] marker stays on the node.
func (c *Controller) Detach(node *dom.Node) {
	if c.detach(node) {
		clearState(node)
	}
}

// detach drops node's listeners. Visual state is left alone so a
// reconfigured member picks up a gesture in progress.
func (c *Controller) detach(node *dom.Node) bool {
	m, ok := c.members[node]
	if !ok {
		return false
	}
	for _, l := range m.listeners {
		l.Remove()
	}
	delete(c.members, node)
	c.log.Trace().Stringer("node", node).Msg("detached")
	return true
}

// DetachAll removes every attached element.
func (c *Controller) DetachAll() {
	for node := range c.members {
		c.Detach(node)
	}
}

func (c *Controller) reportResolve(node *dom.Node, err error) {
	if errors.Is(err, errors.ErrInactive) {
		c.log.Trace().Stringer("node", node).Msg("inactive")
		return
	}
	errors.Report(&errors.ReorderError{
		Op:   "reorder.Resolve",
		Kind: errors.KindSelector,
		Err:  err,
		Node: node.String(),
	})
}

// member is the per-element state of an attached node.
type member struct {
	c         *Controller
	node      *dom.Node
	handle    *dom.Node
	opts      Options
	listeners []*dom.Listener
}

func (m *member) register() {
	m.listen(m.handle, dom.EventPointerDown, m.pointerDown)
	m.listen(m.handle, dom.EventPointerUp, m.pointerUp)
	m.listen(m.node, dom.EventDragStart, m.dragStart)
	m.listen(m.node, dom.EventDragEnter, m.dragEnter)
	m.listen(m.node, dom.EventDragLeave, m.dragLeave)
	m.listen(m.node, dom.EventDragOver, m.dragOver)
	m.listen(m.node, dom.EventDrop, m.drop)
	m.listen(m.node, dom.EventDragEnd, m.dragEnd)
}

func (m *member) listen(node *dom.Node, typ string, fn func(*dom.Event)) {
	m.listeners = append(m.listeners, node.AddEventListener(typ, fn))
}

// owns reports whether ev concerns this element rather than a nested
// draggable element whose event bubbled up.
func (m *member) owns(ev *dom.Event) bool {
	return nearestDraggable(ev.Target) == m.node
}

// accepts reports whether the current gesture may target this element.
func (m *member) accepts() bool {
	return m.c.session.Accepts(m.opts.GroupName)
}

func (m *member) pointerDown(ev *dom.Event) {
	if ev.Button != dom.ButtonPrimary {
		return
	}
	arm(m.node)
}

func (m *member) pointerUp(*dom.Event) {
	disarm(m.node)
}

func (m *member) dragStart(ev *dom.Event) {
	if !m.owns(ev) {
		return
	}
	m.node.AddClass(ClassMoving)
	m.c.session.Begin(m.opts.OrdinalIndex, m.opts.GroupName)
	m.c.log.Debug().
		Int("origin", m.opts.OrdinalIndex).
		Str("group", m.opts.GroupName).
		Msg("drag start")
}

func (m *member) dragEnter(ev *dom.Event) {
	if !m.owns(ev) || !m.accepts() {
		return
	}
	m.node.AddClass(ClassOver)
}

func (m *member) dragLeave(ev *dom.Event) {
	if !m.owns(ev) || !m.accepts() {
		return
	}
	if ev.From != nil && ev.To != nil {
		// Moving between the element and its own children fires leave on
		// the element even though the pointer is still inside it.
		if shared := nearestDraggable(ev.From); shared != nil && shared == nearestDraggable(ev.To) {
			return
		}
	}
	m.node.RemoveClass(ClassOver)
}

func (m *member) dragOver(ev *dom.Event) {
	if !m.owns(ev) || !m.accepts() {
		return
	}
	ev.PreventDefault()
}

func (m *member) drop(ev *dom.Event) {
	if !m.owns(ev) {
		return
	}
	ev.StopPropagation()
	m.node.RemoveClass(ClassOver)
	if !m.accepts() {
		m.c.log.Trace().Int("target", m.opts.OrdinalIndex).Msg("drop rejected: group mismatch")
		return
	}
	origin, _ := m.c.session.OriginIndex()
	if origin == m.opts.OrdinalIndex {
		return
	}
	mv := MoveEvent{OldIndex: origin, NewIndex: m.opts.OrdinalIndex}
	m.c.log.Debug().
		Int("old", mv.OldIndex).
		Int("new", mv.NewIndex).
		Str("group", m.opts.GroupName).
		Msg("drop")
	emitMove(m.node, mv)
}

func (m *member) dragEnd(ev *dom.Event) {
	if !m.owns(ev) {
		return
	}
	m.node.RemoveClass(ClassMoving)
	disarm(m.node)
	clearSiblings(m.node)
	m.c.session.End()
	m.c.log.Debug().Int("origin", m.opts.OrdinalIndex).Msg("drag end")
}
