package shape

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"honnef.co/go/vg/storage"
)

// Constructor returns a new, empty shape.
type Constructor func() Shape

// Factory creates shapes from their type tags. The zero value has no
// constructors registered; use [NewFactory] to get one that knows the
// built-in shapes.
//
// A Factory is safe for concurrent use.
type Factory struct {
	mu    sync.RWMutex
	ctors map[Type]Constructor
}

var builtins = map[Type]Constructor{
	TypeLine:          func() Shape { return &Line{} },
	TypeRect:          func() Shape { return &Rect{} },
	TypeEllipse:       func() Shape { return newEllipse() },
	TypeRoundRect:     func() Shape { return &RoundRect{} },
	TypeDiamond:       func() Shape { return &Diamond{} },
	TypeLines:         func() Shape { return &Lines{} },
	TypeSplines:       func() Shape { return newSplines() },
	TypeParallelogram: func() Shape { return &Parallelogram{} },
	TypeImage:         func() Shape { return &Image{} },
	TypeArc:           func() Shape { return &Arc{} },
	TypeDot:           func() Shape { return &Dot{} },
}

// NewFactory returns a factory with all shapes of this package registered.
func NewFactory() *Factory {
	return &Factory{ctors: maps.Clone(builtins)}
}

// Register adds a host-defined shape type. Tags up to [MaxBuiltinType] are
// reserved and every tag can be registered only once.
func (f *Factory) Register(t Type, ctor Constructor) error {
	if t <= MaxBuiltinType {
		return fmt.Errorf("register shape type %d: tag is reserved", t)
	}
	if ctor == nil {
		return fmt.Errorf("register shape type %d: nil constructor", t)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.ctors[t]; ok {
		return fmt.Errorf("register shape type %d: already registered", t)
	}
	if f.ctors == nil {
		f.ctors = map[Type]Constructor{}
	}
	f.ctors[t] = ctor
	return nil
}

// Create returns a new, empty shape of type t.
func (f *Factory) Create(t Type) (Shape, error) {
	f.mu.RLock()
	ctor, ok := f.ctors[t]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("create %s: %w", t, ErrUnknownType)
	}
	return ctor(), nil
}

// Load creates a shape of type t and loads it from r.
func (f *Factory) Load(t Type, r storage.Reader) (Shape, error) {
	s, err := f.Create(t)
	if err != nil {
		return nil, err
	}
	if err := s.Load(r); err != nil {
		return nil, fmt.Errorf("load %s: %w", t, err)
	}
	return s, nil
}

// Types returns the registered tags in ascending order.
func (f *Factory) Types() []Type {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Sorted(maps.Keys(f.ctors))
}
