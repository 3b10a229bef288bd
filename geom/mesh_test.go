package geom

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const twoTriangles = `0 0 0  1 0 0  0 1 0
0 0 1  1 0 1  0 1 1
`

func TestParseMesh(t *testing.T) {
	m, err := ParseMesh(strings.NewReader(twoTriangles))
	if err != nil {
		t.Fatalf("ParseMesh: %v", err)
	}
	if len(m) != 2 {
		t.Fatalf("got %d triangles, want 2", len(m))
	}
	if m[0][1] != (Vector3{1, 0, 0}) {
		t.Fatalf("triangle 0 vertex 1 = %v", m[0][1])
	}
	if m[1][2] != (Vector3{0, 1, 1}) {
		t.Fatalf("triangle 1 vertex 2 = %v", m[1][2])
	}
}

func TestParseMeshErrors(t *testing.T) {
	cases := map[string]string{
		"short row":   "1 2 3 4 5 6\n",
		"long row":    "1 2 3 4 5 6 7 8 9 10\n",
		"non-numeric": "1 2 3 4 5 6 7 8 z\n",
		"empty":       "",
	}
	for name, in := range cases {
		if _, err := ParseMesh(strings.NewReader(in)); err == nil {
			t.Errorf("%s: expected error, got none", name)
		}
	}
}

func TestMeshBounds(t *testing.T) {
	m, err := ParseMesh(strings.NewReader(twoTriangles))
	if err != nil {
		t.Fatalf("ParseMesh: %v", err)
	}
	min, max := m.Bounds()
	if min != (Vector3{0, 0, 0}) {
		t.Fatalf("min = %v", min)
	}
	if max != (Vector3{1, 1, 1}) {
		t.Fatalf("max = %v", max)
	}
}

func TestMeshRotatePreservesEdges(t *testing.T) {
	m, err := ParseMesh(strings.NewReader(twoTriangles))
	if err != nil {
		t.Fatalf("ParseMesh: %v", err)
	}
	before := m[0][0].Sub(m[0][1]).Norm()

	R, err := AlignRotation(Vector3{0, 0, 1}, Vector3{1, 1, 1})
	if err != nil {
		t.Fatalf("AlignRotation: %v", err)
	}
	m.Rotate(R)

	after := m[0][0].Sub(m[0][1]).Norm()
	if math.Abs(before-after) > 1e-12 {
		t.Fatalf("rotation changed edge length: %v -> %v", before, after)
	}
}

func TestLoadMesh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.txt")
	if err := os.WriteFile(path, []byte(twoTriangles), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadMesh(path)
	if err != nil {
		t.Fatalf("LoadMesh: %v", err)
	}
	if len(m) != 2 {
		t.Fatalf("got %d triangles", len(m))
	}

	if _, err := LoadMesh(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
