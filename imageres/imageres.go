// Package imageres resolves the pictures referenced by image shapes and sizes
// the shapes to match them.
//
// Only image headers are read. png, jpeg, gif, tiff, bmp and webp are
// supported.
package imageres

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"honnef.co/go/vg"
	"honnef.co/go/vg/shape"
)

// Format is an image encoding.
type Format int32

const (
	None Format = iota
	PNG
	JPEG
	GIF
	TIFF
	BMP
	WebP
)

func (f Format) String() string {
	switch f {
	case None:
		return "none"
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case GIF:
		return "gif"
	case TIFF:
		return "tiff"
	case BMP:
		return "bmp"
	case WebP:
		return "webp"
	default:
		return fmt.Sprintf("Format(%d)", int32(f))
	}
}

// ExtToFormat returns the format for a file name extension, which may or may
// not start with a dot.
func ExtToFormat(ext string) (Format, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	switch ext {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "gif":
		return GIF, nil
	case "tif", "tiff":
		return TIFF, nil
	case "bmp":
		return BMP, nil
	case "webp":
		return WebP, nil
	case "":
		return None, errors.New("ExtToFormat: ext is empty")
	}
	return None, fmt.Errorf("ExtToFormat: extension %q not recognized", ext)
}

// ReadConfig reads the header of an image. The format is detected from the
// data.
func ReadConfig(r io.Reader) (image.Config, Format, error) {
	cfg, name, err := image.DecodeConfig(r)
	if err != nil {
		return cfg, None, err
	}
	f, err := ExtToFormat(name)
	return cfg, f, err
}

// OpenConfigFS reads the header of the image file name in fsys.
func OpenConfigFS(fsys fs.FS, name string) (image.Config, Format, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return image.Config{}, None, err
	}
	defer f.Close()
	cfg, format, err := ReadConfig(f)
	if err != nil {
		return cfg, format, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, format, nil
}

// Resolver looks up image sizes by name in a file system and remembers them.
// It is safe for concurrent use.
type Resolver struct {
	fsys fs.FS

	mu    sync.Mutex
	sizes map[string]image.Point
}

// NewResolver returns a resolver reading from fsys.
func NewResolver(fsys fs.FS) *Resolver {
	return &Resolver{fsys: fsys, sizes: map[string]image.Point{}}
}

// Size returns the width and height in pixels of the image name.
func (r *Resolver) Size(name string) (image.Point, error) {
	r.mu.Lock()
	sz, ok := r.sizes[name]
	r.mu.Unlock()
	if ok {
		return sz, nil
	}
	cfg, _, err := OpenConfigFS(r.fsys, name)
	if err != nil {
		return image.Point{}, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return image.Point{}, fmt.Errorf("%s: empty image", name)
	}
	sz = image.Pt(cfg.Width, cfg.Height)
	r.mu.Lock()
	r.sizes[name] = sz
	r.mu.Unlock()
	return sz, nil
}

// Fit shrinks one side of im so that it has the aspect ratio of its picture
// while staying inside its current rectangle. The center and the rotation are
// kept. An empty shape is given the picture's size in pixels.
func (r *Resolver) Fit(im *shape.Image) error {
	sz, err := r.Size(im.Name())
	if err != nil {
		return err
	}
	pic := vg.Sz(float64(sz.X), float64(sz.Y))
	box := vg.Sz(im.Width(), im.Height())
	if box.Width == 0 && box.Height == 0 {
		box = pic
	} else {
		box = pic.Contain(box)
	}
	c := im.Center()
	bounds := vg.NewRectFromCenter(c, box.Width, box.Height)
	if !im.SetRectWithAngle(vg.Pt(bounds.X0, bounds.Y0), vg.Pt(bounds.X1, bounds.Y1), im.Angle(), c) {
		return fmt.Errorf("fit %s: shape is locked", im.Name())
	}
	vg.Logger().Debug("imageres: fitted image", "name", im.Name(), "size", box)
	return nil
}

// FitAll fits every image shape in ss. It returns the joined errors of the
// images that couldn't be fitted.
func (r *Resolver) FitAll(ss *shape.Shapes) error {
	var errs []error
	for _, s := range ss.All() {
		if im, ok := s.(*shape.Image); ok {
			if err := r.Fit(im); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
