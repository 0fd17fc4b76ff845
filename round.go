package vg

import (
	"math"
)

// RoundOptions holds the tuned constants of corner rounding.
type RoundOptions struct {
	// AngleTolerance is how close, in radians, half the turning angle at a
	// vertex has to be to 0 or 90° for the corner to stay sharp.
	AngleTolerance float64
	// FallbackRatio is the fraction of the requested tangent offset that
	// must survive clamping to the edge lengths. Below it the corner is
	// bridged by a three-point arc through the vertex instead of a fillet.
	FallbackRatio float64
}

// DefaultRoundOptions are the options used by [Path.RoundLines].
var DefaultRoundOptions = RoundOptions{
	AngleTolerance: 1e-4,
	FallbackRatio:  0.5,
}

// RoundLines replaces the path with the polyline through vertices whose
// corners are rounded with arcs of the given radius. If closed is true, the
// corner at the first vertex is rounded too and the figure is closed.
//
// It uses [DefaultRoundOptions]; see [Path.RoundLinesOpt].
func (p *Path) RoundLines(vertices []Point, radius float64, closed bool) bool {
	return p.RoundLinesOpt(vertices, radius, closed, DefaultRoundOptions)
}

// RoundLinesOpt is like [Path.RoundLines] but uses the given options.
//
// Each corner is rounded with an arc tangent to both edges. The tangent points
// lie radius/tan(θ/2) from the vertex, θ being the angle between the edge
// directions, but no further than half the shorter edge. Corners where the
// outline runs straight on or doubles back, within opts.AngleTolerance, are
// kept sharp.
//
// The path is cleared first. It fails, leaving the path empty, if there are
// fewer than three vertices or radius isn't positive.
func (p *Path) RoundLinesOpt(vertices []Point, radius float64, closed bool, opts RoundOptions) bool {
	p.Clear()
	n := len(vertices)
	if n < 3 || !(radius > 0) {
		return false
	}

	if closed {
		bz := roundCorner(vertices[n-1], vertices[0], vertices[1], radius, opts)
		if bz == nil {
			p.MoveTo(vertices[0], false)
		} else {
			p.MoveTo(bz[0], false)
			p.BeziersTo(bz[1:], false, false)
		}
	} else {
		p.MoveTo(vertices[0], false)
	}

	last := n - 1
	if closed {
		last = n
	}
	for i := 1; i < last; i++ {
		bz := roundCorner(vertices[i-1], vertices[i], vertices[(i+1)%n], radius, opts)
		if bz == nil {
			p.LineTo(vertices[i], false)
		} else {
			p.LineTo(bz[0], false)
			p.BeziersTo(bz[1:], false, false)
		}
	}

	if closed {
		p.CloseFigure()
	} else {
		p.LineTo(vertices[n-1], false)
	}
	return true
}

// roundCorner returns the Bézier points of the arc replacing the corner at
// vertex, or nil if the corner stays sharp.
func roundCorner(prev, vertex, next Point, radius float64, opts RoundOptions) []Point {
	in := vertex.Sub(prev)
	out := next.Sub(vertex)

	half := 0.5 * math.Abs(in.AngleTo(out))
	if half < opts.AngleTolerance || math.Abs(half-math.Pi/2) < opts.AngleTolerance {
		return nil
	}

	offset := radius / math.Tan(half)
	limit := 0.5 * min(in.Hypot(), out.Hypot())
	fallback := false
	if offset > limit {
		fallback = limit < offset*opts.FallbackRatio
		offset = limit
	}

	start := vertex.RulerPoint(prev, offset, 0)
	end := vertex.RulerPoint(next, offset, 0)
	var (
		arc CircleArc
		ok  bool
	)
	if fallback {
		arc, ok = ArcFrom3Points(start, vertex, end)
	} else {
		arc, ok = ArcFromTangent(start, end, vertex.Sub(start))
	}
	if !ok {
		return nil
	}
	bz := arc.Bezier()
	if len(bz) < 4 {
		return nil
	}
	// The arc has to start exactly where the preceding line ends.
	bz[0] = start
	bz[len(bz)-1] = end
	return bz
}
