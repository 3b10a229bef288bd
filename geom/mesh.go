package geom

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Triangle is one mesh face, three vertices in Cartesian coordinates.
type Triangle [3]Vector3

// Mesh is a triangular surface mesh.
type Mesh []Triangle

// ParseMesh reads one triangle per row as nine whitespace-separated
// values: x1 y1 z1 x2 y2 z2 x3 y3 z3.
func ParseMesh(r io.Reader) (Mesh, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var mesh Mesh
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 9 {
			return nil, fmt.Errorf("line %d: %d values, want 9 per triangle", line, len(fields))
		}
		var tri Triangle
		for i := 0; i < 3; i++ {
			p, err := parseVector3(fields[i*3 : i*3+3])
			if err != nil {
				return nil, fmt.Errorf("line %d, vertex %d: %w", line, i, err)
			}
			tri[i] = p
		}
		mesh = append(mesh, tri)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read failed: %w", err)
	}
	if len(mesh) == 0 {
		return nil, fmt.Errorf("no mesh data")
	}
	return mesh, nil
}

// LoadMesh reads a mesh file from disk.
func LoadMesh(path string) (Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mesh: %w", err)
	}
	defer f.Close()

	m, err := ParseMesh(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Bounds returns the componentwise minimum and maximum over all vertices.
func (m Mesh) Bounds() (min, max Vector3) {
	verts := make([]Vector3, 0, len(m)*3)
	for _, tri := range m {
		verts = append(verts, tri[0], tri[1], tri[2])
	}
	return boundsOf(verts)
}

// Rotate applies R to every vertex in place.
func (m Mesh) Rotate(R Mat3) {
	for i := range m {
		for j := range m[i] {
			m[i][j] = R.MulVec(m[i][j])
		}
	}
}
