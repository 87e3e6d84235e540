package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/packlayout/internal/model"
)

const (
	// joinTolerance is the largest endpoint distance at which two loose
	// segments are considered connected.
	joinTolerance = 0.01
	// arcSteps is the number of chords used to sample arcs and circles.
	arcSteps = 32
	// minDXFSize drops shapes whose bounding box is thinner than this.
	minDXFSize = 0.01
)

type point struct{ x, y float64 }

type segment struct{ a, b point }

// shape is a closed outline reduced to its bounding box.
type shape struct {
	min, max point
}

func (s shape) width() float64  { return s.max.x - s.min.x }
func (s shape) height() float64 { return s.max.y - s.min.y }

func boundsOf(pts []point) shape {
	s := shape{
		min: point{math.Inf(1), math.Inf(1)},
		max: point{math.Inf(-1), math.Inf(-1)},
	}
	for _, p := range pts {
		s.min.x = math.Min(s.min.x, p.x)
		s.min.y = math.Min(s.min.y, p.y)
		s.max.x = math.Max(s.max.x, p.x)
		s.max.y = math.Max(s.max.y, p.y)
	}
	return s
}

// ImportDXF reads closed shapes from a DXF drawing and turns each one into an
// item sized to its bounding box. LWPOLYLINEs and CIRCLEs are closed on their
// own; LINEs and ARCs are chained end to end first. Items get priority 1 and
// are ordered largest first.
func ImportDXF(path string) ImportResult {
	result := ImportResult{Items: []model.PackableItem{}}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var shapes []shape
	var loose []segment
	skipped := 0

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			if len(e.Vertices) < 3 {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
				continue
			}
			shapes = append(shapes, boundsOf(polylinePoints(e)))
		case *entity.Circle:
			c, r := point{e.Center[0], e.Center[1]}, e.Radius
			shapes = append(shapes, shape{min: point{c.x - r, c.y - r}, max: point{c.x + r, c.y + r}})
		case *entity.Arc:
			pts := arcPoints(e)
			for i := 1; i < len(pts); i++ {
				loose = append(loose, segment{pts[i-1], pts[i]})
			}
		case *entity.Line:
			loose = append(loose, segment{point{e.Start[0], e.Start[1]}, point{e.End[0], e.End[1]}})
		default:
			skipped++
		}
	}
	if skipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d unsupported entities", skipped))
	}

	for _, outline := range chainSegments(loose) {
		shapes = append(shapes, boundsOf(outline))
	}

	if len(shapes) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	sort.SliceStable(shapes, func(i, j int) bool {
		return shapes[i].width()*shapes[i].height() > shapes[j].width()*shapes[j].height()
	})

	for _, s := range shapes {
		w, h := s.width(), s.height()
		if w < minDXFSize || h < minDXFSize {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f)", w, h))
			continue
		}
		n := len(result.Items) + 1
		result.Items = append(result.Items, model.PackableItem{
			ID:        fmt.Sprintf("dxf-%d", n),
			Label:     fmt.Sprintf("DXF Shape %d", n),
			MinWidth:  w,
			MinHeight: h,
			Priority:  1,
		})
	}
	return result
}

// polylinePoints returns the vertices of a polyline with bulged edges sampled
// as arcs, so the bounding box includes the arc extent.
func polylinePoints(lw *entity.LwPolyline) []point {
	var pts []point
	n := len(lw.Vertices)
	for i, v := range lw.Vertices {
		cur := point{v[0], v[1]}
		pts = append(pts, cur)
		if i >= len(lw.Bulges) || math.Abs(lw.Bulges[i]) < 1e-9 {
			continue
		}
		nv := lw.Vertices[(i+1)%n]
		pts = append(pts, bulgePoints(cur, point{nv[0], nv[1]}, lw.Bulges[i])...)
	}
	return pts
}

// bulgePoints samples the arc between p and q described by a DXF bulge, the
// tangent of a quarter of the included angle. Positive bulges run
// counter-clockwise.
func bulgePoints(p, q point, bulge float64) []point {
	dx, dy := q.x-p.x, q.y-p.y
	chord := math.Hypot(dx, dy)
	if chord < 1e-9 {
		return nil
	}
	theta := 4 * math.Atan(bulge)
	radius := chord / (2 * math.Sin(math.Abs(theta)/2))

	// Distance from the chord midpoint to the center, signed by direction.
	offset := math.Sqrt(math.Max(radius*radius-chord*chord/4, 0))
	if math.Abs(theta) > math.Pi {
		offset = -offset
	}
	if bulge < 0 {
		offset = -offset
	}
	cx := (p.x+q.x)/2 - dy/chord*offset
	cy := (p.y+q.y)/2 + dx/chord*offset

	start := math.Atan2(p.y-cy, p.x-cx)
	pts := make([]point, 0, arcSteps)
	for i := 1; i < arcSteps; i++ {
		a := start + theta*float64(i)/arcSteps
		pts = append(pts, point{cx + radius*math.Cos(a), cy + radius*math.Sin(a)})
	}
	return pts
}

// arcPoints samples a DXF ARC, whose angles are in degrees counter-clockwise.
func arcPoints(a *entity.Arc) []point {
	cx, cy, r := a.Circle.Center[0], a.Circle.Center[1], a.Circle.Radius
	start := a.Angle[0] * math.Pi / 180
	end := a.Angle[1] * math.Pi / 180
	if end <= start {
		end += 2 * math.Pi
	}
	pts := make([]point, arcSteps+1)
	for i := range pts {
		t := start + (end-start)*float64(i)/arcSteps
		pts[i] = point{cx + r*math.Cos(t), cy + r*math.Sin(t)}
	}
	return pts
}

// chainSegments joins loose segments end to end and returns every chain of at
// least three points that closes on itself. Open chains are dropped.
func chainSegments(segs []segment) [][]point {
	used := make([]bool, len(segs))
	var outlines [][]point

	for start := range segs {
		if used[start] {
			continue
		}
		used[start] = true
		chain := []point{segs[start].a, segs[start].b}

		for extended := true; extended; {
			extended = false
			tail := chain[len(chain)-1]
			for i, s := range segs {
				if used[i] {
					continue
				}
				switch {
				case near(tail, s.a):
					chain = append(chain, s.b)
				case near(tail, s.b):
					chain = append(chain, s.a)
				default:
					continue
				}
				used[i] = true
				extended = true
				break
			}
		}

		if len(chain) >= 4 && near(chain[0], chain[len(chain)-1]) {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}
	return outlines
}

func near(a, b point) bool {
	return math.Hypot(a.x-b.x, a.y-b.y) <= joinTolerance
}
