// main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"walkviz/geom"
)

func main() {
	alignSpec := flag.String("align", "", `Print the rotation aligning v with k, given as "vx,vy,vz:kx,ky,kz"`)
	asJSON := flag.Bool("json", false, "Print the rotation matrix as indented JSON")
	trajFile := flag.String("traj", "", "Trajectories file to view (one time step per row, x y z triplets per walker)")
	meshFile := flag.String("mesh", "", "Mesh file to view (one triangle per row as 9 values)")
	rotateSpec := flag.String("rotate", "", `Rotate loaded data to align v with k before viewing, same format as -align`)
	show := flag.Bool("show", true, "Open the interactive viewer; with -show=false only load and validate")
	flag.Parse()

	switch {
	case *alignSpec != "":
		if err := printAlignment(*alignSpec, *asJSON); err != nil {
			fmt.Fprintf(os.Stderr, "Alignment failed: %v\n", err)
			os.Exit(1)
		}
	case *trajFile != "":
		if err := viewTrajectories(*trajFile, *rotateSpec, *show); err != nil {
			fmt.Fprintf(os.Stderr, "Trajectory view failed: %v\n", err)
			os.Exit(1)
		}
	case *meshFile != "":
		if err := viewMesh(*meshFile, *rotateSpec, *show); err != nil {
			fmt.Fprintf(os.Stderr, "Mesh view failed: %v\n", err)
			os.Exit(1)
		}
	default:
		flag.Usage()
	}
}

// parsePair reads a "vx,vy,vz:kx,ky,kz" direction pair.
func parsePair(spec string) (v, k geom.Vector3, err error) {
	halves := strings.Split(spec, ":")
	if len(halves) != 2 {
		return v, k, fmt.Errorf("want two vectors separated by ':', got %q", spec)
	}
	if v, err = parseVector(halves[0]); err != nil {
		return v, k, fmt.Errorf("source vector: %w", err)
	}
	if k, err = parseVector(halves[1]); err != nil {
		return v, k, fmt.Errorf("target vector: %w", err)
	}
	return v, k, nil
}

func parseVector(s string) (geom.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geom.Vector3{}, fmt.Errorf("want 3 comma-separated components, got %q", s)
	}
	var c [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geom.Vector3{}, fmt.Errorf("bad component %q: %w", p, err)
		}
		c[i] = f
	}
	return geom.Vector3{X: c[0], Y: c[1], Z: c[2]}, nil
}

func alignFromSpec(spec string) (geom.Mat3, error) {
	v, k, err := parsePair(spec)
	if err != nil {
		return geom.Mat3{}, err
	}
	return geom.AlignRotation(v, k)
}

func printAlignment(spec string, asJSON bool) error {
	R, err := alignFromSpec(spec)
	if err != nil {
		return err
	}
	if asJSON {
		j, err := json.MarshalIndent(R.M, "", "  ")
		if err != nil {
			return fmt.Errorf("JSON encoding failed: %w", err)
		}
		fmt.Printf("%s\n", j)
		return nil
	}
	for _, row := range R.M {
		fmt.Printf("% 14.10f % 14.10f % 14.10f\n", row[0], row[1], row[2])
	}
	return nil
}

func viewTrajectories(path, rotateSpec string, show bool) error {
	tr, err := geom.LoadTrajectories(path)
	if err != nil {
		return err
	}
	if rotateSpec != "" {
		R, err := alignFromSpec(rotateSpec)
		if err != nil {
			return err
		}
		tr.Rotate(R)
	}
	if !show {
		fmt.Printf("Loaded %s: %d time steps, %d walkers\n", path, tr.Steps, tr.Walkers)
		return nil
	}
	return runViewer(newTrajViewer(tr))
}

func viewMesh(path, rotateSpec string, show bool) error {
	m, err := geom.LoadMesh(path)
	if err != nil {
		return err
	}
	if rotateSpec != "" {
		R, err := alignFromSpec(rotateSpec)
		if err != nil {
			return err
		}
		m.Rotate(R)
	}
	if !show {
		fmt.Printf("Loaded %s: %d triangles\n", path, len(m))
		return nil
	}
	return runViewer(newMeshViewer(m))
}
