package main

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"math"
	"strconv"
	"strings"

	"honnef.co/go/vg"
	"honnef.co/go/vg/shape"
)

// writeSVG draws the visible shapes of ss, bottom first. Shapes with a zero
// Context are drawn with style.
func writeSVG(w io.Writer, ss *shape.Shapes, cfg config, style shape.Context) error {
	bw := bufio.NewWriter(w)
	num := func(f float64) string {
		if cfg.Precision <= 0 {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		s := strconv.FormatFloat(f, 'f', cfg.Precision, 64)
		if strings.Contains(s, ".") {
			s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
		}
		if s == "-0" {
			s = "0"
		}
		return s
	}

	page := ss.Extent().Inflate(cfg.Margin, cfg.Margin)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%s" height="%s">`+"\n",
		num(page.X0), num(page.Y0), num(page.Width()), num(page.Height()), num(page.Width()), num(page.Height()))
	if cfg.Background != "" {
		bg, err := shape.ParseColor(cfg.Background)
		if err != nil {
			return fmt.Errorf("background: %w", err)
		}
		if bg.A != 0 {
			fmt.Fprintf(bw, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
				num(page.X0), num(page.Y0), num(page.Width()), num(page.Height()), shape.FormatColor(bg))
		}
	}

	svgOpts := vg.SVGOptions{MaxPrecision: cfg.Precision}
	for slot, s := range ss.All() {
		if s.Base().Flags.Has(shape.Hidden) {
			continue
		}
		ctx := s.Base().Context
		if ctx == (shape.Context{}) {
			ctx = style
		}
		if im, ok := s.(*shape.Image); ok && !im.IsEmpty(0) {
			c := im.Center()
			fmt.Fprintf(bw, `<image id="s%d" href="%s" x="%s" y="%s" width="%s" height="%s" preserveAspectRatio="none"`,
				slot, html.EscapeString(im.Name()),
				num(c.X-im.Width()/2), num(c.Y-im.Height()/2), num(im.Width()), num(im.Height()))
			if a := im.Angle(); a != 0 {
				fmt.Fprintf(bw, ` transform="rotate(%s %s %s)"`, num(a*180/math.Pi), num(c.X), num(c.Y))
			}
			fmt.Fprint(bw, "/>\n")
			continue
		}
		p := shape.Path(s)
		if p.Len() == 0 {
			continue
		}
		fmt.Fprintf(bw, `<path id="s%d" d="%s"%s/>`+"\n", slot, p.SVG(svgOpts), paint(ctx, s.IsClosed(), num))
	}
	fmt.Fprint(bw, "</svg>\n")
	return bw.Flush()
}

// paint returns the presentation attributes for ctx.
func paint(ctx shape.Context, closed bool, num func(float64) string) string {
	var sb strings.Builder
	fill := "none"
	if closed && ctx.HasFill() {
		fill = shape.FormatColor(ctx.FillColor)
	}
	fmt.Fprintf(&sb, ` fill="%s"`, fill)
	if ctx.LineStyle == shape.LineNone || ctx.LineColor.A == 0 {
		sb.WriteString(` stroke="none"`)
		return sb.String()
	}
	width := ctx.LineWidth
	if width <= 0 {
		width = 1
	}
	fmt.Fprintf(&sb, ` stroke="%s" stroke-width="%s"`, shape.FormatColor(ctx.LineColor), num(width))
	var dash []float64
	switch ctx.LineStyle {
	case shape.LineDash:
		dash = []float64{4, 2}
	case shape.LineDot:
		dash = []float64{1, 2}
	case shape.LineDashDot:
		dash = []float64{4, 2, 1, 2}
	}
	if dash != nil {
		parts := make([]string, len(dash))
		for i, d := range dash {
			parts[i] = num(d * width)
		}
		fmt.Fprintf(&sb, ` stroke-dasharray="%s"`, strings.Join(parts, " "))
	}
	return sb.String()
}
