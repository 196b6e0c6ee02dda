package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/reorder/pkg/dom"
	"github.com/go-drift/reorder/pkg/reorder"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the tree structure with the classes and attributes the
// drag behavior toggles.
type Snapshot struct {
	Tree *SnapshotNode `json:"tree"`
}

// SnapshotNode represents a node in the serialized tree.
type SnapshotNode struct {
	Ref      string            `json:"ref"`
	ID       string            `json:"id,omitempty"`
	Classes  []string          `json:"classes,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Text     string            `json:"text,omitempty"`
	Children []*SnapshotNode   `json:"children,omitempty"`
}

// attributeWhitelist lists the attributes serialized into snapshots.
var attributeWhitelist = []string{reorder.AttrDraggable}

// UpdateEnv names the environment variable that switches MatchesFile into
// update mode.
const UpdateEnv = "REORDER_UPDATE_SNAPSHOTS"

// CaptureSnapshot captures the document body.
func (t *Tester) CaptureSnapshot() *Snapshot {
	return CaptureSnapshot(t.doc.Body())
}

// CaptureSnapshot captures the subtree rooted at root.
func CaptureSnapshot(root *dom.Node) *Snapshot {
	snap := &Snapshot{}
	if root != nil {
		snap.Tree = captureNode(root, &tagCounter{})
	}
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When REORDER_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateEnv, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this snapshot and other. Returns
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return lineDiff(string(b), string(a))
}

// tagCounter assigns stable refs like "li#0", "li#1".
type tagCounter struct {
	counts map[string]int
}

func (c *tagCounter) next(tag string) string {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	n := c.counts[tag]
	c.counts[tag] = n + 1
	return fmt.Sprintf("%s#%d", tag, n)
}

func captureNode(n *dom.Node, counter *tagCounter) *SnapshotNode {
	out := &SnapshotNode{
		Ref:     counter.next(n.Tag()),
		ID:      n.ID(),
		Classes: n.Classes(),
		Text:    n.Text(),
	}
	for _, name := range attributeWhitelist {
		if v, ok := n.Attribute(name); ok {
			if out.Attrs == nil {
				out.Attrs = make(map[string]string)
			}
			out.Attrs[name] = v
		}
	}
	n.VisitChildren(func(child *dom.Node) {
		out.Children = append(out.Children, captureNode(child, counter))
	})
	return out
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// lineDiff reports differing lines position by position.
func lineDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	for i := range max(len(expectedLines), len(actualLines)) {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e == a {
			continue
		}
		if i < len(expectedLines) {
			fmt.Fprintf(&buf, "-%s\n", e)
		}
		if i < len(actualLines) {
			fmt.Fprintf(&buf, "+%s\n", a)
		}
	}
	return buf.String()
}
