package vg_test

import (
	"fmt"

	"honnef.co/go/vg"
)

func ExamplePath_RoundLines() {
	var p vg.Path
	p.RoundLines([]vg.Point{{0, 0}, {10, 0}, {10, 10}}, 2, false)
	fmt.Println(p.SVG(vg.SVGOptions{MaxPrecision: 3}))
	// Output: M0,0 L8,0 C9.105,0 10,0.895 10,2 L10,10
}

func ExamplePath_ArcTo() {
	var p vg.Path
	p.MoveTo(vg.Pt(0, 0), false)
	p.LineTo(vg.Pt(10, 0), false)
	p.ArcTo(vg.Pt(20, 10), false)
	p.LineTo(vg.Pt(20, 20), false)
	fmt.Println(p.Len(), p.EndPoint())
	// Output: 6 (20, 20)
}
