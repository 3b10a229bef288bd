package geom

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Trajectories holds walker positions loaded from a trajectories file.
// Every line of the file is one time step and lists positions as
// walker_1_x walker_1_y walker_1_z walker_2_x walker_2_y walker_2_z ...
type Trajectories struct {
	Steps   int
	Walkers int
	points  []Vector3 // Steps*Walkers, grouped by step
}

// ParseTrajectories reads whitespace-separated trajectory rows. Every
// row must hold the same positive multiple of 3 finite values.
func ParseTrajectories(r io.Reader) (*Trajectories, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024) // rows grow with walker count
	t := &Trajectories{}
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields)%3 != 0 {
			return nil, fmt.Errorf("line %d: %d values, not a multiple of 3", line, len(fields))
		}
		walkers := len(fields) / 3
		if t.Walkers == 0 {
			t.Walkers = walkers
		} else if walkers != t.Walkers {
			return nil, fmt.Errorf("line %d: %d walkers, previous rows had %d", line, walkers, t.Walkers)
		}
		for i := 0; i < walkers; i++ {
			p, err := parseVector3(fields[i*3 : i*3+3])
			if err != nil {
				return nil, fmt.Errorf("line %d, walker %d: %w", line, i, err)
			}
			t.points = append(t.points, p)
		}
		t.Steps++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read failed: %w", err)
	}
	if t.Steps == 0 {
		return nil, fmt.Errorf("no trajectory data")
	}
	return t, nil
}

// LoadTrajectories reads a trajectories file from disk.
func LoadTrajectories(path string) (*Trajectories, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trajectories: %w", err)
	}
	defer f.Close()

	t, err := ParseTrajectories(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// At returns the position of one walker at one time step.
func (t *Trajectories) At(step, walker int) Vector3 {
	return t.points[step*t.Walkers+walker]
}

// Walker returns the path of walker i across all time steps.
func (t *Trajectories) Walker(i int) []Vector3 {
	path := make([]Vector3, t.Steps)
	for s := 0; s < t.Steps; s++ {
		path[s] = t.points[s*t.Walkers+i]
	}
	return path
}

// Bounds returns the componentwise minimum and maximum over all points.
func (t *Trajectories) Bounds() (min, max Vector3) {
	return boundsOf(t.points)
}

// Rotate applies R to every point in place.
func (t *Trajectories) Rotate(R Mat3) {
	for i, p := range t.points {
		t.points[i] = R.MulVec(p)
	}
}

func parseVector3(fields []string) (Vector3, error) {
	var c [3]float64
	for i, s := range fields {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Vector3{}, fmt.Errorf("bad value %q: %w", s, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Vector3{}, fmt.Errorf("non-finite value %q", s)
		}
		c[i] = f
	}
	return Vector3{c[0], c[1], c[2]}, nil
}

func boundsOf(points []Vector3) (min, max Vector3) {
	min = Vector3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max = Vector3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range points {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		min.Z = math.Min(min.Z, p.Z)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
		max.Z = math.Max(max.Z, p.Z)
	}
	return min, max
}
