package vg

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SVGOptions specifies optional settings for [Path.SVG] and [Path.WriteSVG].
type SVGOptions struct {
	// The maximum precision with which to format coordinates. A value of 0
	// chooses the highest precision necessary to unambiguously represent any
	// given coordinate.
	MaxPrecision int
}

// SVG converts the path to a string of SVG path commands.
//
// See [Path.WriteSVG] for a version that writes to an [io.Writer] instead of
// returning a string.
func (p *Path) SVG(opts SVGOptions) string {
	sb := &strings.Builder{}
	p.WriteSVG(sb, opts)
	return sb.String()
}

// WriteSVG converts the path to a string of SVG path commands and writes it to
// w. Runs of BezierTo and QuadTo nodes become one C or Q command per curve; a
// truncated run at the end of a figure is written as lines.
func (p *Path) WriteSVG(w io.Writer, opts SVGOptions) error {
	var err error
	writef := func(s string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, s, v...)
	}
	format := func(n float64) string {
		if opts.MaxPrecision <= 0 {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
		s := strconv.FormatFloat(n, 'f', opts.MaxPrecision, 64)
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
		if s == "-0" || s == "" {
			s = "0"
		}
		return s
	}
	pt := func(pt Point) string {
		return format(pt.X) + "," + format(pt.Y)
	}

	first := true
	sep := func() {
		if !first {
			writef(" ")
		}
		first = false
	}
	for fig := range p.Figures() {
		nodes := fig.Nodes
		for i := 0; i < len(nodes); i++ {
			n := nodes[i]
			sep()
			switch n.Op.Kind() {
			case MoveTo:
				writef("M%s", pt(n.Point))
			case BezierTo:
				if i+2 < len(nodes) {
					writef("C%s %s %s", pt(n.Point), pt(nodes[i+1].Point), pt(nodes[i+2].Point))
					i += 2
				} else {
					writef("L%s", pt(n.Point))
				}
			case QuadTo:
				if i+1 < len(nodes) {
					writef("Q%s %s", pt(n.Point), pt(nodes[i+1].Point))
					i++
				} else {
					writef("L%s", pt(n.Point))
				}
			default:
				writef("L%s", pt(n.Point))
			}
			if nodes[i].Op.IsClosing() {
				writef(" Z")
			}
		}
		if err != nil {
			return err
		}
	}
	return err
}
