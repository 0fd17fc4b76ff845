package shape

import (
	"honnef.co/go/vg"
	"honnef.co/go/vg/storage"
)

// Image is a rectangle showing a picture. The picture is referenced by name;
// loading and drawing it is left to the host.
type Image struct {
	rectBase
	name string
}

// NewImage returns an image shape covering the axis-aligned rectangle with
// opposite corners pt1 and pt2.
func NewImage(name string, pt1, pt2 vg.Point) *Image {
	im := &Image{name: name}
	im.SetRect2P(pt1, pt2)
	return im
}

func (im *Image) Type() Type { return TypeImage }

func (im *Image) IsKindOf(t Type) bool { return t == TypeImage || t == TypeRectFamily }
func (im *Image) IsCurve() bool        { return false }

// Name returns the name of the picture.
func (im *Image) Name() string { return im.name }

func (im *Image) SetName(name string) { im.name = name }

func (im *Image) Clone() Shape { return &Image{rectBase: im.cloneRect(), name: im.name} }

func (im *Image) Equal(o Shape) bool {
	oi, ok := o.(*Image)
	return ok && im.equalRect(&oi.rectBase) && im.name == oi.name
}

func (im *Image) Clear() {
	im.clearRect()
	im.name = ""
}

func (im *Image) HitTest(pt vg.Point, tol float64) (HitResult, bool) {
	return hitTest(polygonSegments(im.pts[:], true), true, pt, tol)
}

func (im *Image) HitTestBox(r vg.Rect) bool { return hitTestBox(im, r) }

func (im *Image) Output(p *vg.Path) bool { return im.outputPolygon(p, im.pts) }

func (im *Image) Save(w storage.Writer) error {
	if err := im.saveRect(w); err != nil {
		return err
	}
	w.SetString("name", im.name)
	return nil
}

func (im *Image) Load(rd storage.Reader) error {
	flags, pts, err := loadRect(rd)
	if err != nil {
		return err
	}
	name, err := rd.String("name")
	if err != nil {
		return err
	}
	im.applyRect(flags, pts)
	im.name = name
	return nil
}
