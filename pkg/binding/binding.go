// Package binding exposes drag-to-reorder as a [dom.Directive].
//
// Install registers the directive on a document; rows then opt in by
// setting a directive value:
//
//	binding.Install(doc)
//	row.SetDirective("draggable", reorder.Options{HandleSelector: ".handle", OrdinalIndex: i})
//
// The directive follows the document lifecycle: the behavior is resolved
// when the row joins the document, re-resolved when the value changes and
// removed when the row leaves the document.
package binding

import (
	"fmt"
	"math"
	"strconv"

	"github.com/go-drift/reorder/pkg/dom"
	"github.com/go-drift/reorder/pkg/errors"
	"github.com/go-drift/reorder/pkg/reorder"
)

// DefaultName is the name the directive is installed under.
const DefaultName = "draggable"

// Directive adapts a [reorder.Controller] to the [dom.Directive] lifecycle.
type Directive struct {
	ctrl *reorder.Controller
}

// New returns a directive backed by ctrl. A nil ctrl gets a controller on
// the calling goroutine's thread session.
func New(ctrl *reorder.Controller) *Directive {
	if ctrl == nil {
		ctrl = reorder.NewController()
	}
	return &Directive{ctrl: ctrl}
}

// Controller returns the controller the directive drives.
func (d *Directive) Controller() *reorder.Controller { return d.ctrl }

// Bind implements dom.Directive.
func (d *Directive) Bind(node *dom.Node, b dom.Binding) {
	d.ctrl.Attach(node, optionsFor(node, b.Value))
}

// Update implements dom.Directive.
func (d *Directive) Update(node *dom.Node, b dom.Binding) {
	d.ctrl.Update(node, optionsFor(node, b.Value))
}

// Unbind implements dom.Directive.
func (d *Directive) Unbind(node *dom.Node, _ dom.Binding) {
	d.ctrl.Detach(node)
}

type installConfig struct {
	name string
	ctrl *reorder.Controller
}

// InstallOption configures Install.
type InstallOption func(*installConfig)

// WithName installs the directive under a custom name.
func WithName(name string) InstallOption {
	return func(c *installConfig) {
		if name != "" {
			c.name = name
		}
	}
}

// WithController backs the directive with an existing controller, for
// example one sharing a session with another document.
func WithController(ctrl *reorder.Controller) InstallOption {
	return func(c *installConfig) {
		c.ctrl = ctrl
	}
}

// Install registers the directive on doc and returns it.
func Install(doc *dom.Document, opts ...InstallOption) *Directive {
	cfg := installConfig{name: DefaultName}
	for _, opt := range opts {
		opt(&cfg)
	}
	d := New(cfg.ctrl)
	doc.RegisterDirective(cfg.name, d)
	return d
}

// Decode converts a directive value into options. Accepted values are nil,
// reorder.Options, *reorder.Options, an int (ordinal index with defaults)
// and string-keyed maps as produced by YAML or JSON decoders. Map keys are
// handleSelector, groupName and ordinalIndex; the snake_case spellings and
// the older index key are accepted too. Nil options mean inactive.
func Decode(value any) (*reorder.Options, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case *reorder.Options:
		if v == nil {
			return nil, nil
		}
		opts := *v
		return &opts, nil
	case reorder.Options:
		return &v, nil
	case int:
		return &reorder.Options{OrdinalIndex: v}, nil
	case map[string]any:
		return decodeMap(v)
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			m[fmt.Sprint(k)] = val
		}
		return decodeMap(m)
	default:
		return nil, fmt.Errorf("unsupported directive value %T", value)
	}
}

func decodeMap(m map[string]any) (*reorder.Options, error) {
	opts := reorder.Options{OrdinalIndex: reorder.NoIndex}
	for key, raw := range m {
		switch key {
		case "handleSelector", "handle_selector", "handle":
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("%s: want string, got %T", key, raw)
			}
			opts.HandleSelector = s
		case "groupName", "group_name", "group":
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("%s: want string, got %T", key, raw)
			}
			opts.GroupName = s
		case "ordinalIndex", "ordinal_index", "index":
			n, err := toInt(raw)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			opts.OrdinalIndex = n
		}
	}
	return &opts, nil
}

func toInt(raw any) (int, error) {
	switch n := raw.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("want integer, got %v", n)
		}
		return int(n), nil
	case string:
		return strconv.Atoi(n)
	default:
		return 0, fmt.Errorf("want integer, got %T", raw)
	}
}

// optionsFor decodes a value and reports decode failures. Undecodable
// values leave the element inert.
func optionsFor(node *dom.Node, value any) *reorder.Options {
	opts, err := Decode(value)
	if err != nil {
		errors.Report(&errors.ReorderError{
			Op:   "binding.Decode",
			Kind: errors.KindConfig,
			Err:  err,
			Node: node.String(),
		})
		return nil
	}
	return opts
}
