package reorder

import (
	"fmt"

	"github.com/go-drift/reorder/pkg/dom"
	"github.com/go-drift/reorder/pkg/errors"
)

// NoIndex is the ordinal index sentinel that keeps an element inert.
const NoIndex = -1

// Options configure one bound element.
//
// Non-nil options with a zero OrdinalIndex activate the element at position
// 0. Hosts that render rows without a position pass nil or [NoIndex].
type Options struct {
	// HandleSelector selects the descendant whose pointer-down arms the
	// drag. Empty means the whole element is the handle.
	HandleSelector string `yaml:"handleSelector,omitempty" toml:"handle_selector,omitempty" json:"handleSelector,omitempty"`
	// GroupName scopes valid drop targets. Elements only accept drags that
	// started in the same group. Empty is a group of its own.
	GroupName string `yaml:"groupName,omitempty" toml:"group_name,omitempty" json:"groupName,omitempty"`
	// OrdinalIndex is the element's position in its list. It is reported
	// verbatim in [MoveEvent] and never interpreted otherwise.
	OrdinalIndex int `yaml:"ordinalIndex" toml:"ordinal_index" json:"ordinalIndex"`
}

// Active reports whether the options can activate the behavior at all.
func (o *Options) Active() bool {
	return o != nil && o.OrdinalIndex != NoIndex
}

func (o Options) String() string {
	return fmt.Sprintf("{handle=%q group=%q index=%d}", o.HandleSelector, o.GroupName, o.OrdinalIndex)
}

// Resolve decides whether the behavior activates on node and returns the
// handle element. It never panics: nil or inactive options yield
// [errors.ErrInactive], a malformed selector yields a [*dom.SelectorError]
// and a selector without matches yields [errors.ErrNoHandle]. Only the first
// matching descendant acts as the handle.
func Resolve(node *dom.Node, opts *Options) (*dom.Node, error) {
	if node == nil || !opts.Active() {
		return nil, errors.ErrInactive
	}
	if opts.HandleSelector == "" {
		return node, nil
	}
	sel, err := dom.ParseSelector(opts.HandleSelector)
	if err != nil {
		return nil, err
	}
	handle := node.QuerySelector(sel)
	if handle == nil {
		return nil, errors.ErrNoHandle
	}
	return handle, nil
}
