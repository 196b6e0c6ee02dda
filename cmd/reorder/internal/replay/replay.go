// Package replay runs scripted drag gestures against a board and reports
// the notifications they produce.
package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/reorder/internal/config"
	"github.com/go-drift/reorder/pkg/binding"
	"github.com/go-drift/reorder/pkg/dom"
	"github.com/go-drift/reorder/pkg/term"
	reordertest "github.com/go-drift/reorder/pkg/testing"
)

// Script is a sequence of gestures.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step drags the row referenced by From onto the row referenced by To.
// A reference is "list/index" or "list/label". With Cancel set the drag is
// aborted over To instead of dropped.
type Step struct {
	From   string `yaml:"from"`
	To     string `yaml:"to"`
	Cancel bool   `yaml:"cancel,omitempty"`
}

// Load reads a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return Parse(data)
}

// Parse decodes a script. Unknown keys are rejected.
func Parse(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var s Script
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	for i, step := range s.Steps {
		if step.From == "" || step.To == "" {
			return nil, fmt.Errorf("steps[%d]: from and to are required", i)
		}
	}
	return &s, nil
}

// Outcome describes what one step did.
type Outcome int

const (
	// Moved means a drop produced a move.
	Moved Outcome = iota
	// InPlace means the drop landed on the dragged row.
	InPlace
	// Rejected means the target did not accept the drop.
	Rejected
	// Cancelled means the drag was aborted.
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case InPlace:
		return "dropped in place"
	case Rejected:
		return "rejected"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Result is the record of one step.
type Result struct {
	Step    Step
	Outcome Outcome
	// Old and New are positions within the From and To lists.
	Old int
	New int
}

func (r Result) String() string {
	if r.Outcome == Moved {
		return fmt.Sprintf("%s -> %s: moved (%d -> %d)", r.Step.From, r.Step.To, r.Old, r.New)
	}
	return fmt.Sprintf("%s -> %s: %s", r.Step.From, r.Step.To, r.Outcome)
}

// Runner replays scripts against lists hosted in a test document.
type Runner struct {
	tester *reordertest.Tester
	board  *term.Board
	moves  *reordertest.Recorder
}

// NewRunner mounts the resolved lists into a fresh document.
func NewRunner(cfg *config.Resolved) *Runner {
	tester := reordertest.NewTester(binding.WithName(cfg.Directive))
	board := term.NewBoard(cfg.Lists,
		term.WithDocument(tester.Document()),
		term.WithDirectiveName(cfg.Directive),
	)
	return &Runner{
		tester: tester,
		board:  board,
		moves:  tester.Record(reordertest.BySelector("li")),
	}
}

// Board returns the board the runner drives.
func (r *Runner) Board() *term.Board { return r.board }

// Close unmounts everything.
func (r *Runner) Close() {
	r.moves.Stop()
	r.tester.Cleanup()
}

// Run replays every step, writing one line per step and the final order to
// out.
func (r *Runner) Run(script *Script, out io.Writer) ([]Result, error) {
	results := make([]Result, 0, len(script.Steps))
	for i, step := range script.Steps {
		res, err := r.Step(step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		results = append(results, res)
		fmt.Fprintf(out, "step %d: %s\n", i+1, res)
	}
	fmt.Fprintln(out, r.board.String())
	return results, nil
}

// Step replays a single step.
func (r *Runner) Step(step Step) (Result, error) {
	from, err := r.resolve(step.From)
	if err != nil {
		return Result{}, err
	}
	to, err := r.resolve(step.To)
	if err != nil {
		return Result{}, err
	}
	res := Result{Step: step}

	if step.Cancel {
		if err := r.tester.PointerDown(reordertest.ByNode(r.board.HandleOf(from))); err != nil {
			return res, err
		}
		if err := r.tester.DragStart(reordertest.ByNode(from)); err != nil {
			return res, err
		}
		if err := r.tester.DragEnter(reordertest.ByNode(to), from); err != nil {
			return res, err
		}
		if err := r.tester.DragLeave(reordertest.ByNode(to), to, nil); err != nil {
			return res, err
		}
		res.Outcome = Cancelled
		return res, r.tester.Cancel(reordertest.ByNode(from))
	}

	before, applied := r.moves.Count(), len(r.board.Moves())
	dropped, err := r.tester.Drag(reordertest.ByNode(from), reordertest.ByNode(to))
	if err != nil {
		return res, err
	}
	switch {
	case r.moves.Count() > before:
		res.Outcome = Moved
		if moves := r.board.Moves(); len(moves) > applied {
			res.Old, res.New = moves[applied].Old, moves[applied].New
		}
	case dropped:
		res.Outcome = InPlace
	default:
		res.Outcome = Rejected
	}
	return res, nil
}

// resolve finds the row for "list/index" or "list/label".
func (r *Runner) resolve(ref string) (*dom.Node, error) {
	listID, key, ok := strings.Cut(ref, "/")
	if !ok {
		return nil, fmt.Errorf("bad row reference %q (want list/index or list/label)", ref)
	}
	l, ok := r.board.List(listID)
	if !ok {
		return nil, fmt.Errorf("unknown list %q", listID)
	}
	rows := l.Rows()
	if n, err := strconv.Atoi(key); err == nil {
		if n < 0 || n >= len(rows) {
			return nil, fmt.Errorf("%s: index %d out of range (%d rows)", ref, n, len(rows))
		}
		return rows[n], nil
	}
	for i, item := range l.Items() {
		if item == key {
			return rows[i], nil
		}
	}
	return nil, fmt.Errorf("%s: no item %q", ref, key)
}
