package viz

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/YuminosukeSato/scitree/dataset"
	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/pkg/log"
	"github.com/YuminosukeSato/scitree/tree"
)

func fittedTree(t *testing.T) *tree.Tree {
	t.Helper()
	f, err := dataset.Infer(
		[]string{"outlook", "temp", "play"},
		[][]string{
			{"sunny", "30", "no"},
			{"sunny", "25", "no"},
			{"rain", "20", "yes"},
			{"rain", "15", "yes"},
		},
		"play", dataset.Classification)
	if err != nil {
		t.Fatalf("Infer failed: %v", err)
	}
	logger, _ := log.NewTestLogger(log.LevelError)
	tr, err := tree.New(f, tree.DefaultConfig(), tree.WithLogger(logger))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := tr.Fit(); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	return tr
}

func TestWriteDOT(t *testing.T) {
	tr := fittedTree(t)

	var buf bytes.Buffer
	if err := WriteDOT(&buf, tr); err != nil {
		t.Fatalf("WriteDOT() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"digraph G",
		`"Splitting on\noutlook=rain"`,
		`"Predicting: yes"`,
		`"Predicting: no"`,
		"rectangle",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT output missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "->"); got != 2 {
		t.Errorf("edge count = %d, want 2:\n%s", got, out)
	}
}

func TestDOTStructure(t *testing.T) {
	tr := fittedTree(t)

	g, err := DOT(tr)
	if err != nil {
		t.Fatalf("DOT() error = %v", err)
	}
	if len(g.Nodes.Nodes) != tr.NNodes() {
		t.Errorf("nodes = %d, want %d", len(g.Nodes.Nodes), tr.NNodes())
	}
	if len(g.Edges.Edges) != tr.NNodes()-1 {
		t.Errorf("edges = %d, want %d", len(g.Edges.Edges), tr.NNodes()-1)
	}
	if !g.Directed {
		t.Error("graph should be directed")
	}
}

func TestDOTNotFitted(t *testing.T) {
	f, err := dataset.Infer([]string{"x", "y"}, [][]string{{"1", "a"}, {"2", "b"}}, "y", dataset.Classification)
	if err != nil {
		t.Fatalf("Infer failed: %v", err)
	}
	tr, err := tree.New(f, tree.DefaultConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var notFitted *scierrors.NotFittedError
	if _, err := DOT(tr); !scierrors.As(err, &notFitted) {
		t.Errorf("DOT() error = %v, want NotFittedError", err)
	}
	if err := WriteImportances(&bytes.Buffer{}, tr, "svg"); !scierrors.As(err, &notFitted) {
		t.Errorf("WriteImportances() error = %v, want NotFittedError", err)
	}
}

func TestImportancePlot(t *testing.T) {
	tests := []struct {
		name        string
		names       []string
		importances []float64
		wantErr     bool
	}{
		{"two features", []string{"a", "b"}, []float64{0.75, 0.25}, false},
		{"length mismatch", []string{"a"}, []float64{0.5, 0.5}, true},
		{"empty", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ImportancePlot(tt.names, tt.importances)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ImportancePlot() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && p.Title.Text == "" {
				t.Error("plot should have a title")
			}
		})
	}
}

func TestWriteImportancesSVG(t *testing.T) {
	tr := fittedTree(t)

	var buf bytes.Buffer
	if err := WriteImportances(&buf, tr, "svg"); err != nil {
		t.Fatalf("WriteImportances() error = %v", err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Error("output is not an SVG document")
	}

	if err := WriteImportances(&buf, tr, "bmp-unknown"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestSaveImportances(t *testing.T) {
	tr := fittedTree(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "importances.png")
	if err := SaveImportances(path, tr); err != nil {
		t.Fatalf("SaveImportances() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Error("saved image is empty")
	}

	if err := SaveImportances(filepath.Join(dir, "noext"), tr); err == nil {
		t.Error("expected error for a path without extension")
	}
}
