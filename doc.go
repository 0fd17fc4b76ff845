// Package vg provides the geometric core of a 2D vector drawing editor: curve
// math, a path builder that turns drawing commands into a stream of nodes, and
// the primitives (points, vectors, affine transforms, rectangles) the shape
// model in [honnef.co/go/vg/shape] is built on.
//
// # Coordinates
//
// All geometry lives in a y-down space, as is common for graphics. Positive
// angles rotate the positive x axis into the positive y axis, which is
// clockwise on screen. See [Rotate] and [VecFromAngle].
//
// # Paths
//
// [Path] is a sequence of [Node] values, each a point and an [Op]. Nodes are
// grouped into figures that start with a [MoveTo] node. The last node of a
// figure may carry the [CloseFigure] flag. Cubic Bézier curves take three
// [BezierTo] nodes (two control points and an end point) and quadratic curves
// take two [QuadTo] nodes.
//
// Paths are built with drawing commands like [Path.LineTo], [Path.BezierTo] and
// [Path.ArcTo]. Commands validate their input and report false, leaving the
// path untouched, if they can't be applied. Every command but [Path.MoveTo]
// needs an open figure.
//
// Consumers that can't draw curves use [Path.Flatten] to turn figures into
// polylines, or [Path.SVG] to hand the path to an SVG renderer.
//
// # Arcs
//
// Circular arcs are fitted from a start point, a tangent and an end point
// ([ArcFromTangent]) or from three points ([ArcFrom3Points]). [ArcToBezier]
// approximates elliptical arcs with up to four cubic Béziers, each spanning at
// most a quarter turn. [Path.RoundLines] uses them to round the corners of
// polylines.
//
// # Logging
//
// The package logs nothing by default. Use [SetLogger] to receive debug
// records about rejected geometry.
//
// # Literature
//
//   - [A Primer on Bézier Curves]
//   - [Approximate a circle with cubic Bézier curves] by Spencer Mortensen
//
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
// [Approximate a circle with cubic Bézier curves]: https://spencermortensen.com/articles/bezier-circle/
package vg
