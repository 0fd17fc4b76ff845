package vg

import (
	"iter"
	"math"
)

// DefaultTolerance is the flattening tolerance used when callers don't have a
// better idea, in drawing units.
const DefaultTolerance = 0.01

// Polyline is the flattened form of one figure.
type Polyline struct {
	// Start is the index of the figure's MoveTo node.
	Start  int
	Points []Point
	// Commands maps each point after the first to the index of the node that
	// ends the drawing command the point was produced by.
	Commands []int
	Closed   bool
}

// Flatten returns an iterator over the figures of the path, each converted to a
// polyline whose distance from the curves is within tolerance. Closed figures
// end with their start point.
func (p *Path) Flatten(tolerance float64) iter.Seq[Polyline] {
	return func(yield func(Polyline) bool) {
		for fig := range p.Figures() {
			if !yield(flattenFigure(fig, tolerance)) {
				return
			}
		}
	}
}

func flattenFigure(fig Figure, tolerance float64) Polyline {
	pl := Polyline{Start: fig.Start}
	nodes := fig.Nodes
	if len(nodes) == 0 {
		return pl
	}
	cur := nodes[0].Point
	pl.Points = append(pl.Points, cur)
	emit := func(from int, idx int) {
		for range len(pl.Points) - from {
			pl.Commands = append(pl.Commands, fig.Start+idx)
		}
	}
	for i := 1; i < len(nodes); {
		n := len(pl.Points)
		switch nodes[i].Op.Kind() {
		case BezierTo:
			if i+2 >= len(nodes) {
				// Truncated run, draw straight lines.
				pl.Points = append(pl.Points, nodes[i].Point)
				emit(n, i)
				cur = nodes[i].Point
				i++
				continue
			}
			c := CubicBez{cur, nodes[i].Point, nodes[i+1].Point, nodes[i+2].Point}
			pl.Points = c.AppendFlattened(pl.Points, tolerance)
			i += 2
		case QuadTo:
			if i+1 >= len(nodes) {
				pl.Points = append(pl.Points, nodes[i].Point)
				emit(n, i)
				cur = nodes[i].Point
				i++
				continue
			}
			q := QuadBez{cur, nodes[i].Point, nodes[i+1].Point}
			pl.Points = q.AppendFlattened(pl.Points, tolerance)
			i++
		default:
			pl.Points = append(pl.Points, nodes[i].Point)
		}
		emit(n, i)
		cur = nodes[i].Point
		if nodes[i].Op.IsClosing() {
			pl.Closed = true
			if cur != pl.Points[0] {
				n := len(pl.Points)
				pl.Points = append(pl.Points, pl.Points[0])
				emit(n, i)
			}
		}
		i++
	}
	return pl
}

// Nearest returns the point of the path closest to pt, its distance from pt
// and the index of the node ending the drawing command that the point belongs
// to. Curves are flattened with tolerance. An empty path yields -1 and an
// infinite distance.
func (p *Path) Nearest(pt Point, tolerance float64) (near Point, dist float64, node int) {
	dist = math.Inf(1)
	node = -1
	for pl := range p.Flatten(tolerance) {
		if len(pl.Points) == 1 {
			if d := pl.Points[0].Distance(pt); d < dist {
				near, dist, node = pl.Points[0], d, pl.Start
			}
			continue
		}
		q, d, seg := NearestOnPolyline(pl.Points, false, pt)
		if d < dist {
			near, dist, node = q, d, pl.Commands[seg]
		}
	}
	return near, dist, node
}

// IntersectsRect reports whether any part of the drawn path passes through r.
func (p *Path) IntersectsRect(r Rect, tolerance float64) bool {
	if !p.BoundingBox().Overlaps(r) {
		return false
	}
	for pl := range p.Flatten(tolerance) {
		if PolylineIntersectsRect(pl.Points, false, r) {
			return true
		}
	}
	return false
}

// Contains reports whether pt lies inside one of the closed figures of the
// path, using the non-zero winding rule per figure.
func (p *Path) Contains(pt Point, tolerance float64) bool {
	for pl := range p.Flatten(tolerance) {
		if pl.Closed && PolygonContains(pl.Points, pt) {
			return true
		}
	}
	return false
}
