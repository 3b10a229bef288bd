package geom

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const twoWalkers = `0 0 0  1 1 1
0.5 0 0  1 1.5 1
1 0 0  1 2 1
`

func TestParseTrajectories(t *testing.T) {
	tr, err := ParseTrajectories(strings.NewReader(twoWalkers))
	if err != nil {
		t.Fatalf("ParseTrajectories: %v", err)
	}
	if tr.Steps != 3 || tr.Walkers != 2 {
		t.Fatalf("got %d steps, %d walkers; want 3, 2", tr.Steps, tr.Walkers)
	}
	if got := tr.At(1, 0); got != (Vector3{0.5, 0, 0}) {
		t.Fatalf("At(1,0) = %v", got)
	}
	if got := tr.At(2, 1); got != (Vector3{1, 2, 1}) {
		t.Fatalf("At(2,1) = %v", got)
	}
	path := tr.Walker(1)
	if len(path) != 3 || path[0] != (Vector3{1, 1, 1}) || path[2] != (Vector3{1, 2, 1}) {
		t.Fatalf("Walker(1) = %v", path)
	}
}

func TestParseTrajectoriesErrors(t *testing.T) {
	cases := map[string]string{
		"not multiple of 3": "1 2 3 4\n",
		"ragged rows":       "1 2 3\n1 2 3 4 5 6\n",
		"non-numeric":       "1 2 x\n",
		"non-finite":        "1 2 NaN\n",
		"infinite":          "Inf 0 0\n",
		"empty":             "",
		"blank lines only":  "\n\n",
	}
	for name, in := range cases {
		if _, err := ParseTrajectories(strings.NewReader(in)); err == nil {
			t.Errorf("%s: expected error, got none", name)
		}
	}
}

func TestTrajectoriesBounds(t *testing.T) {
	tr, err := ParseTrajectories(strings.NewReader(twoWalkers))
	if err != nil {
		t.Fatalf("ParseTrajectories: %v", err)
	}
	min, max := tr.Bounds()
	if min != (Vector3{0, 0, 0}) {
		t.Fatalf("min = %v", min)
	}
	if max != (Vector3{1, 2, 1}) {
		t.Fatalf("max = %v", max)
	}
}

func TestTrajectoriesRotatePreservesDistances(t *testing.T) {
	tr, err := ParseTrajectories(strings.NewReader(twoWalkers))
	if err != nil {
		t.Fatalf("ParseTrajectories: %v", err)
	}
	before := tr.At(0, 0).Sub(tr.At(2, 1)).Norm()

	R, err := AlignRotation(Vector3{1, 1, 0}, Vector3{0, 0, 1})
	if err != nil {
		t.Fatalf("AlignRotation: %v", err)
	}
	tr.Rotate(R)

	after := tr.At(0, 0).Sub(tr.At(2, 1)).Norm()
	if math.Abs(before-after) > 1e-12 {
		t.Fatalf("rotation changed distance: %v -> %v", before, after)
	}
}

func TestLoadTrajectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traj.txt")
	if err := os.WriteFile(path, []byte(twoWalkers), 0o644); err != nil {
		t.Fatal(err)
	}
	tr, err := LoadTrajectories(path)
	if err != nil {
		t.Fatalf("LoadTrajectories: %v", err)
	}
	if tr.Steps != 3 || tr.Walkers != 2 {
		t.Fatalf("got %d steps, %d walkers", tr.Steps, tr.Walkers)
	}

	if _, err := LoadTrajectories(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
