// Package shape implements the editable shapes of a drawing: their geometry,
// handle editing, hit testing, transformation and persistence.
//
// Every shape is a pointer to a concrete type implementing [Shape]. Shapes
// hand out their geometry only as a [vg.Path], through [Shape.Output]. Shapes
// with cached derived geometry, such as [Ellipse] and [Splines], recompute it
// within every mutating call, so the cache never disagrees with the points.
//
// Mutators validate their input. When an edit can't be applied, because an
// index is out of range, the shape is locked or the result would be
// degenerate, they return false and leave the shape unchanged.
package shape

import (
	"errors"
	"fmt"
	"math"

	"honnef.co/go/vg"
	"honnef.co/go/vg/storage"
)

var (
	// ErrUnknownType is returned for type tags no constructor is registered
	// for.
	ErrUnknownType = errors.New("unknown shape type")
	// ErrMalformed is returned when a record holds values no shape can be
	// built from.
	ErrMalformed = errors.New("malformed shape record")
)

// Type is the persisted tag selecting a shape's concrete type. Tags up to
// [MaxBuiltinType] are reserved for the shapes of this package.
type Type uint16

const (
	// TypeRectFamily is matched by [Shape.IsKindOf] for all shapes built on a
	// rectangle: Rect, Ellipse, RoundRect, Diamond and Image.
	TypeRectFamily Type = 4
	// TypeLinesFamily is matched by [Shape.IsKindOf] for Lines and Splines.
	TypeLinesFamily Type = 5

	TypeLine          Type = 10
	TypeRect          Type = 11
	TypeEllipse       Type = 12
	TypeRoundRect     Type = 13
	TypeDiamond       Type = 14
	TypeLines         Type = 15
	TypeSplines       Type = 16
	TypeParallelogram Type = 17
	TypeImage         Type = 18
	TypeArc           Type = 19
	TypeDot           Type = 31

	MaxBuiltinType Type = 31
)

var typeNames = map[Type]string{
	TypeRectFamily:    "RectFamily",
	TypeLinesFamily:   "LinesFamily",
	TypeLine:          "Line",
	TypeRect:          "Rect",
	TypeEllipse:       "Ellipse",
	TypeRoundRect:     "RoundRect",
	TypeDiamond:       "Diamond",
	TypeLines:         "Lines",
	TypeSplines:       "Splines",
	TypeParallelogram: "Parallelogram",
	TypeImage:         "Image",
	TypeArc:           "Arc",
	TypeDot:           "Dot",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Type(%d)", uint16(t))
}

// Flags are boolean shape properties.
type Flags uint32

const (
	// Locked shapes refuse all geometry edits.
	Locked Flags = 1 << iota
	// FixedLength keeps the length of a Line while its ends are dragged.
	FixedLength
	// FixedSize marks shapes whose size must not be changed by the editor.
	FixedSize
	// Square constrains rectangles to squares and ellipses to circles while
	// their handles are dragged.
	Square
	// Closed is set in the saved records of closed polylines and splines. Use
	// SetClosed on the shapes to change it.
	Closed
	// NoRotate marks shapes the editor must not rotate.
	NoRotate
	// NoSnap excludes a shape from snapping.
	NoSnap
	// Hidden shapes are kept in the document but not drawn.
	Hidden
)

// Has reports whether all flags of o are set in f.
func (f Flags) Has(o Flags) bool { return f&o == o }

// HandleType describes what a handle stands for, so that editors can draw
// them differently.
type HandleType int

const (
	HandleVertex HandleType = iota
	HandleMidpoint
	HandleCenter
)

func (h HandleType) String() string {
	switch h {
	case HandleVertex:
		return "vertex"
	case HandleMidpoint:
		return "midpoint"
	case HandleCenter:
		return "center"
	default:
		return fmt.Sprintf("HandleType(%d)", int(h))
	}
}

// HitResult describes the part of a shape closest to a point.
type HitResult struct {
	// Nearest is the point of the outline closest to the tested point.
	Nearest vg.Point
	// Dist is the distance from the tested point to Nearest.
	Dist float64
	// Segment is the index of the outline segment holding Nearest. What a
	// segment is depends on the shape: edges of polygons, quadrants of
	// ellipses, curve pieces of splines.
	Segment int
	// Inside reports whether the tested point lies inside a closed shape.
	Inside bool
}

// Shape is the contract shared by all shapes.
type Shape interface {
	// Type returns the concrete type's tag.
	Type() Type
	// IsKindOf reports whether the shape is of type t or belongs to the
	// family t.
	IsKindOf(t Type) bool
	// Base returns the bookkeeping shared by all shapes.
	Base() *ShapeBase

	PointCount() int
	// Point returns the i-th defining point, or the zero point if i is out
	// of range.
	Point(i int) vg.Point
	SetPoint(i int, pt vg.Point) bool

	// Clone returns a deep copy. The copy has no owner.
	Clone() Shape
	// Equal reports whether o is of the same type and has the same style,
	// flags, points and parameters.
	Equal(o Shape) bool
	Transform(aff vg.Affine) bool
	Clear()

	IsClosed() bool
	// IsCurve reports whether the outline contains curves.
	IsCurve() bool
	// Extent returns the bounding box of the outline.
	Extent() vg.Rect

	// HitTest finds the point of the outline nearest to pt. It reports a hit
	// if that point is no further than tol away.
	HitTest(pt vg.Point, tol float64) (HitResult, bool)
	// HitTestBox reports whether any part of the shape lies in r.
	HitTestBox(r vg.Rect) bool

	HandleCount() int
	Handle(i int) vg.Point
	HandleType(i int) HandleType
	// IsHandleFixed reports whether handle i is shown but can't be dragged.
	IsHandleFixed(i int) bool
	// SetHandle drags handle i to pt. The edit is rejected if it would make
	// the shape smaller than tol.
	SetHandle(i int, pt vg.Point, tol float64) bool

	// Output appends the outline to p. It reports false if there is nothing
	// to draw.
	Output(p *vg.Path) bool

	// Save writes the fields needed to rebuild the shape.
	Save(w storage.Writer) error
	// Load replaces the shape's geometry with the one in r. On error the shape
	// is left unchanged.
	Load(r storage.Reader) error
}

// Path returns the outline of s as a new path.
func Path(s Shape) *vg.Path {
	p := vg.NewPath()
	s.Output(p)
	return p
}

// Owner is the back-reference from a shape to the container holding it.
type Owner struct {
	Container uint64
	Slot      int
}

// ShapeBase holds what all shapes have in common. It is embedded in every shape.
type ShapeBase struct {
	Context Context
	Flags   Flags

	owner    Owner
	hasOwner bool

	extent      vg.Rect
	extentValid bool
}

// Base returns b. Shapes inherit it to implement [Shape.Base].
func (b *ShapeBase) Base() *ShapeBase { return b }

// Owner returns the container holding the shape, if any.
func (b *ShapeBase) Owner() (Owner, bool) { return b.owner, b.hasOwner }

// IsLocked reports whether the Locked flag is set.
func (b *ShapeBase) IsLocked() bool { return b.Flags.Has(Locked) }

// SetFlag sets or clears the flags in f.
func (b *ShapeBase) SetFlag(f Flags, on bool) {
	if on {
		b.Flags |= f
	} else {
		b.Flags &^= f
	}
}

func (b *ShapeBase) setOwner(o Owner) bool {
	if b.hasOwner {
		return false
	}
	b.owner, b.hasOwner = o, true
	return true
}

func (b *ShapeBase) clearOwner() {
	b.owner, b.hasOwner = Owner{}, false
}

// invalidate drops cached geometry. Every mutator calls it.
func (b *ShapeBase) invalidate() {
	b.extentValid = false
}

func (b *ShapeBase) cachedExtent(compute func() vg.Rect) vg.Rect {
	if !b.extentValid {
		b.extent = compute()
		b.extentValid = true
	}
	return b.extent
}

// cloneBase returns a copy of b for a cloned shape: same style and flags, but
// no owner.
func (b *ShapeBase) cloneBase() ShapeBase {
	return ShapeBase{
		Context:     b.Context,
		Flags:       b.Flags,
		extent:      b.extent,
		extentValid: b.extentValid,
	}
}

func (b *ShapeBase) equalBase(o *ShapeBase) bool {
	return b.Context == o.Context && b.Flags == o.Flags
}

func (b *ShapeBase) saveBase(w storage.Writer) {
	w.SetInt("flags", int(b.Flags))
}

func loadFlags(r storage.Reader) (Flags, error) {
	f, err := r.Int("flags")
	if err != nil {
		return 0, err
	}
	if f < 0 || int64(f) > math.MaxUint32 {
		return 0, fmt.Errorf("flags %d: %w", f, ErrMalformed)
	}
	return Flags(f), nil
}
