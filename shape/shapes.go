package shape

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync/atomic"

	"honnef.co/go/vg"
	"honnef.co/go/vg/storage"
)

var containerIDs atomic.Uint64

// Shapes is an ordered list of shapes, drawn first to last. Shapes added to
// it get a back-reference to the container and a slot id that stays the same
// while the shape is in the container.
type Shapes struct {
	id       uint64
	nextSlot int
	items    []Shape
}

// NewShapes returns an empty container.
func NewShapes() *Shapes {
	return &Shapes{id: containerIDs.Add(1), nextSlot: 1}
}

// ID returns the container id stored in the owners of its shapes.
func (ss *Shapes) ID() uint64 { return ss.id }

// Add appends s and returns its slot id. It fails if s already belongs to a
// container.
func (ss *Shapes) Add(s Shape) (int, bool) {
	slot := ss.nextSlot
	if !s.Base().setOwner(Owner{Container: ss.id, Slot: slot}) {
		return 0, false
	}
	ss.nextSlot++
	ss.items = append(ss.items, s)
	return slot, true
}

func (ss *Shapes) index(slot int) int {
	return slices.IndexFunc(ss.items, func(s Shape) bool {
		o, _ := s.Base().Owner()
		return o.Slot == slot
	})
}

// Find returns the shape in slot, or nil.
func (ss *Shapes) Find(slot int) Shape {
	if i := ss.index(slot); i >= 0 {
		return ss.items[i]
	}
	return nil
}

// Remove takes the shape in slot out of the container and returns it. The
// shape no longer has an owner.
func (ss *Shapes) Remove(slot int) Shape {
	i := ss.index(slot)
	if i < 0 {
		return nil
	}
	s := ss.items[i]
	ss.items = slices.Delete(ss.items, i, i+1)
	s.Base().clearOwner()
	return s
}

func (ss *Shapes) Len() int { return len(ss.items) }

// All returns an iterator over the slots and shapes, first to last.
func (ss *Shapes) All() iter.Seq2[int, Shape] {
	return func(yield func(int, Shape) bool) {
		for _, s := range ss.items {
			o, _ := s.Base().Owner()
			if !yield(o.Slot, s) {
				return
			}
		}
	}
}

// Clone returns a new container holding clones of all shapes.
func (ss *Shapes) Clone() *Shapes {
	c := NewShapes()
	for _, s := range ss.items {
		c.Add(s.Clone())
	}
	return c
}

// Extent returns the union of the extents of all visible shapes.
func (ss *Shapes) Extent() vg.Rect {
	var ext vg.Rect
	first := true
	for _, s := range ss.items {
		if s.Base().Flags.Has(Hidden) {
			continue
		}
		if first {
			ext, first = s.Extent(), false
		} else {
			ext = ext.Union(s.Extent())
		}
	}
	return ext
}

// HitTest returns the topmost visible shape within tol of pt. Filled closed
// shapes are also hit inside.
func (ss *Shapes) HitTest(pt vg.Point, tol float64) (Shape, HitResult, bool) {
	for _, s := range slices.Backward(ss.items) {
		if s.Base().Flags.Has(Hidden) {
			continue
		}
		if !s.Extent().Inflate(tol, tol).Contains(pt) {
			continue
		}
		if res, ok := s.HitTest(pt, tol); ok || (res.Inside && s.Base().Context.HasFill()) {
			return s, res, true
		}
	}
	return nil, HitResult{}, false
}

// Save writes all shapes to a new document.
func (ss *Shapes) Save() (*storage.Document, error) {
	doc := storage.NewDocument()
	for slot, s := range ss.All() {
		if err := s.Save(doc.Add(uint16(s.Type()))); err != nil {
			return nil, fmt.Errorf("save slot %d: %w", slot, err)
		}
	}
	return doc, nil
}

// LoadShapes rebuilds the shapes of doc. Entries that can't be loaded are
// skipped; the returned error joins the reasons, while the container holds
// every shape that could be loaded.
func LoadShapes(f *Factory, doc *storage.Document) (*Shapes, error) {
	ss := NewShapes()
	var errs []error
	for i, e := range doc.Shapes {
		s, err := f.Load(Type(e.Type), e.Fields)
		if err != nil {
			vg.Logger().Warn("shape: skipping record", "index", i, "type", Type(e.Type), "err", err)
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		ss.Add(s)
	}
	return ss, errors.Join(errs...)
}
