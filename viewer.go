// viewer.go
package main

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"walkviz/geom"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Multiple shading character sets for different visual styles
var shadingStyles = [][]rune{
	// Heavy to light blocks
	{'█', '▉', '▊', '▋', '▌', '▍', '▎', '▏', '░', '▒', '▓', '·', '˙', ' '},
	// Circle variations
	{'●', '◉', '◎', '○', '◌', '◦', '∘', '·', '˙', '.'},
	// ASCII traditional
	{'@', '#', '&', '%', '$', 'W', 'M', 'H', '8', '0', 'Q', 'O', 'o', '*', '+', '=', '-', '^', ':', '.', ' '},
}

func getDepthChar(depth float64, style int) rune {
	if depth < 0 {
		depth = 0
	}
	if depth > 1 {
		depth = 1
	}
	chars := shadingStyles[style%len(shadingStyles)]
	// depth 1 is nearest, drawn with the heaviest glyph
	idx := int((1 - depth) * float64(len(chars)-1))
	return chars[idx]
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// dim scales a colour towards black by the given depth in [0,1].
func dim(c colorful.Color, depth float64) colorful.Color {
	f := 0.2 + 0.8*depth
	return colorful.Color{R: c.R * f, G: c.G * f, B: c.B * f}
}

// walkerPalette spreads hues evenly so neighbouring walkers stay apart.
func walkerPalette(n int) []colorful.Color {
	colors := make([]colorful.Color, n)
	for i := range colors {
		h := float64(i) * 360.0 / float64(n)
		colors[i] = colorful.Hsv(h, 0.65, 0.95)
	}
	return colors
}

// facePalette draws one colour per triangle from a fixed seed so mesh
// colours are stable across runs.
func facePalette(n int) []colorful.Color {
	rng := rand.New(rand.NewSource(123))
	colors := make([]colorful.Color, n)
	for i := range colors {
		colors[i] = colorful.Hsv(rng.Float64()*360, 0.4+0.5*rng.Float64(), 0.6+0.4*rng.Float64())
	}
	return colors
}

func rotX(a float64) geom.Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return geom.Mat3{M: [3][3]float64{
		{1, 0, 0},
		{0, c, -s},
		{0, s, c},
	}}
}

func rotY(a float64) geom.Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return geom.Mat3{M: [3][3]float64{
		{c, 0, s},
		{0, 1, 0},
		{-s, 0, c},
	}}
}

func rotZ(a float64) geom.Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return geom.Mat3{M: [3][3]float64{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	}}
}

func eulerMat(ax, ay, az float64) geom.Mat3 {
	return rotZ(az).Mul(rotY(ay)).Mul(rotX(ax))
}

type renderPoint struct {
	x, y  int
	z     float64
	char  rune
	color tcell.Color
}

// camera holds the shared view state of both viewers.
type camera struct {
	center                 geom.Vector3
	span                   float64
	angleX, angleY, angleZ float64
	autoRotate             bool
	frame                  int
}

func newCamera(min, max geom.Vector3) camera {
	center := min.Add(max).Scale(0.5)
	ext := max.Sub(min)
	span := math.Max(ext.X, math.Max(ext.Y, ext.Z)) / 2
	if span == 0 {
		span = 1
	}
	return camera{center: center, span: span, autoRotate: true}
}

func (c *camera) step() {
	if c.autoRotate {
		c.angleX += 0.008
		c.angleY += 0.012
		c.angleZ += 0.006
	}
	c.frame++
}

// project maps a world point to screen coordinates plus a rotated depth.
func (c *camera) project(p geom.Vector3, R geom.Mat3, w, h int) (sx, sy int, z float64) {
	rel := R.MulVec(p.Sub(c.center))
	// Terminal cells are roughly twice as tall as wide.
	scale := math.Min(float64(w)/2.2, float64(h)*0.82) / c.span
	sx = int(rel.X*scale + float64(w)/2)
	sy = int(-rel.Y*scale*0.5 + float64(h)/2)
	return sx, sy, rel.Z
}

// flush depth-sorts and draws the collected points.
func flush(s tcell.Screen, points []renderPoint) {
	sort.Slice(points, func(i, j int) bool { return points[i].z < points[j].z })
	for _, p := range points {
		s.SetContent(p.x, p.y, p.char, nil, tcell.StyleDefault.Foreground(p.color))
	}
}

// depthRange scans rotated z values so shading can be normalized.
func depthRange(zs []float64) (min, rng float64) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, z := range zs {
		if z < min {
			min = z
		}
		if z > max {
			max = z
		}
	}
	rng = max - min
	if rng == 0 {
		rng = 1
	}
	return min, rng
}

type viewer interface {
	update()
	render(s tcell.Screen, w, h, style int)
	handleRune(r rune)
	cam() *camera
}

// trajViewer plays walker trajectories back through time.
type trajViewer struct {
	camera
	traj    *geom.Trajectories
	colors  []colorful.Color
	cursor  int
	playing bool
	speed   int // steps advanced per tick
}

func newTrajViewer(tr *geom.Trajectories) *trajViewer {
	min, max := tr.Bounds()
	return &trajViewer{
		camera:  newCamera(min, max),
		traj:    tr,
		colors:  walkerPalette(tr.Walkers),
		playing: true,
		speed:   1,
	}
}

func (tv *trajViewer) cam() *camera { return &tv.camera }

func (tv *trajViewer) update() {
	tv.camera.step()
	if tv.playing {
		tv.cursor += tv.speed
		if tv.cursor >= tv.traj.Steps {
			tv.cursor = 0 // loop playback
		}
	}
}

func (tv *trajViewer) handleRune(r rune) {
	switch r {
	case ' ':
		tv.playing = !tv.playing
	case '+', '=':
		if tv.speed < 64 {
			tv.speed *= 2
		}
	case '-', '_':
		if tv.speed > 1 {
			tv.speed /= 2
		}
	}
}

func (tv *trajViewer) render(s tcell.Screen, w, h, style int) {
	drawText(s, 1, 1, tcell.StyleDefault.Foreground(tcell.ColorWhite),
		"walkviz traj | Arrows:rotate A:auto Space:pause +/-:speed S:style R:reset Q:quit")

	R := eulerMat(tv.angleX, tv.angleY, tv.angleZ)

	var zs []float64
	for step := 0; step <= tv.cursor; step++ {
		for wk := 0; wk < tv.traj.Walkers; wk++ {
			rel := R.MulVec(tv.traj.At(step, wk).Sub(tv.center))
			zs = append(zs, rel.Z)
		}
	}
	minZ, rng := depthRange(zs)

	var points []renderPoint
	for wk := 0; wk < tv.traj.Walkers; wk++ {
		base := tv.colors[wk]
		for step := 0; step <= tv.cursor; step++ {
			sx, sy, z := tv.project(tv.traj.At(step, wk), R, w, h)
			if sx < 0 || sx >= w || sy < 3 || sy >= h-1 {
				continue
			}
			depth := (z - minZ) / rng
			char := getDepthChar(depth, style)
			if step == tv.cursor {
				char = '◉' // walker head
			}
			points = append(points, renderPoint{
				x: sx, y: sy, z: z,
				char:  char,
				color: toTcell(dim(base, depth)),
			})
		}
	}
	flush(s, points)

	info := fmt.Sprintf("step %d/%d | walkers %d | speed %d | frame %d",
		tv.cursor, tv.traj.Steps-1, tv.traj.Walkers, tv.speed, tv.frame)
	drawText(s, 1, h-2, tcell.StyleDefault.Foreground(tcell.ColorDarkGray), info)
}

// meshViewer shows a triangular surface mesh with per-face colours.
type meshViewer struct {
	camera
	mesh    geom.Mesh
	colors  []colorful.Color
	samples int // barycentric subdivisions per triangle edge
}

func newMeshViewer(m geom.Mesh) *meshViewer {
	min, max := m.Bounds()
	samples := 14
	if len(m) > 2000 {
		samples = 6
	}
	return &meshViewer{
		camera:  newCamera(min, max),
		mesh:    m,
		colors:  facePalette(len(m)),
		samples: samples,
	}
}

func (mv *meshViewer) cam() *camera { return &mv.camera }

func (mv *meshViewer) update() { mv.camera.step() }

func (mv *meshViewer) handleRune(r rune) {
	switch r {
	case '+', '=':
		if mv.samples < 40 {
			mv.samples += 2
		}
	case '-', '_':
		if mv.samples > 2 {
			mv.samples -= 2
		}
	}
}

func (mv *meshViewer) render(s tcell.Screen, w, h, style int) {
	drawText(s, 1, 1, tcell.StyleDefault.Foreground(tcell.ColorWhite),
		"walkviz mesh | Arrows:rotate A:auto +/-:detail S:style R:reset Q:quit")

	R := eulerMat(mv.angleX, mv.angleY, mv.angleZ)

	var zs []float64
	for _, tri := range mv.mesh {
		for _, v := range tri {
			zs = append(zs, R.MulVec(v.Sub(mv.center)).Z)
		}
	}
	minZ, rng := depthRange(zs)

	var points []renderPoint
	n := mv.samples
	for ti, tri := range mv.mesh {
		base := mv.colors[ti]
		ab := tri[1].Sub(tri[0])
		ac := tri[2].Sub(tri[0])
		for a := 0; a <= n; a++ {
			for b := 0; b <= n-a; b++ {
				p := tri[0].
					Add(ab.Scale(float64(a) / float64(n))).
					Add(ac.Scale(float64(b) / float64(n)))
				sx, sy, z := mv.project(p, R, w, h)
				if sx < 0 || sx >= w || sy < 3 || sy >= h-1 {
					continue
				}
				depth := (z - minZ) / rng
				points = append(points, renderPoint{
					x: sx, y: sy, z: z,
					char:  getDepthChar(depth, style),
					color: toTcell(dim(base, depth)),
				})
			}
		}
	}
	flush(s, points)

	info := fmt.Sprintf("triangles %d | detail %d | frame %d",
		len(mv.mesh), mv.samples, mv.frame)
	drawText(s, 1, h-2, tcell.StyleDefault.Foreground(tcell.ColorDarkGray), info)
}

// runViewer owns the screen, the input goroutine and the render loop.
func runViewer(v viewer) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen init failed: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("screen start failed: %w", err)
	}
	defer s.Fini()

	quit := make(chan struct{})
	currentStyle := 0

	// Input handler
	go func() {
		defer close(quit)
		for {
			select {
			case <-quit:
				return
			default:
				ev := s.PollEvent()
				switch ev := ev.(type) {
				case *tcell.EventKey:
					cam := v.cam()
					switch ev.Key() {
					case tcell.KeyEscape, tcell.KeyCtrlC:
						return
					case tcell.KeyUp:
						cam.angleX -= 0.15
					case tcell.KeyDown:
						cam.angleX += 0.15
					case tcell.KeyLeft:
						cam.angleY -= 0.15
					case tcell.KeyRight:
						cam.angleY += 0.15
					case tcell.KeyRune:
						switch r := ev.Rune(); r {
						case 'q', 'Q':
							return
						case 'r', 'R':
							cam.angleX, cam.angleY, cam.angleZ = 0, 0, 0
						case 'a', 'A':
							cam.autoRotate = !cam.autoRotate
						case 's', 'S':
							currentStyle = (currentStyle + 1) % len(shadingStyles)
						default:
							v.handleRune(r)
						}
					}
				case *tcell.EventResize:
					s.Sync()
				}
			}
		}
	}()

	// Render loop
	ticker := time.NewTicker(40 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-quit:
			return nil
		case <-ticker.C:
			v.update()
			s.Clear()
			w, h := s.Size()

			if w <= 15 || h <= 8 {
				continue
			}

			v.render(s, w, h, currentStyle)
			s.Show()
		}
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for i, r := range str {
		s.SetContent(x+i, y, r, nil, style)
	}
}
