package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func wantErr(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("got error %v, want %v", err, target)
	}
}

func TestRecordConversions(t *testing.T) {
	r := Record{
		"i":      7,
		"i64":    int64(8),
		"f":      2.5,
		"fi":     3.0,
		"num":    json.Number("4"),
		"s":      "hello",
		"floats": []float64{1, 2},
		"mixed":  []any{1, int64(2), 3.5},
		"bad":    []any{1, "x"},
	}

	for _, tt := range []struct {
		field string
		want  int
	}{
		{"i", 7},
		{"i64", 8},
		{"fi", 3},
		{"num", 4},
	} {
		got, err := r.Int(tt.field)
		if err != nil {
			t.Errorf("Int(%q): %s", tt.field, err)
			continue
		}
		diff(t, tt.want, got)
	}

	_, err := r.Int("f")
	wantErr(t, err, ErrFieldType)

	f, err := r.Float("i")
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 7.0, f)

	s, err := r.String("s")
	if err != nil {
		t.Fatal(err)
	}
	diff(t, "hello", s)
	_, err = r.String("i")
	wantErr(t, err, ErrFieldType)

	fs, err := r.Floats("mixed")
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []float64{1, 2, 3.5}, fs)
	_, err = r.Floats("bad")
	wantErr(t, err, ErrFieldType)
	_, err = r.Floats("s")
	wantErr(t, err, ErrFieldType)

	_, err = r.Float("nope")
	wantErr(t, err, ErrMissingField)
	if r.Has("nope") || !r.Has("s") {
		t.Error("Has reports the wrong fields")
	}
}

func TestRecordCopies(t *testing.T) {
	in := []float64{1, 2, 3}
	r := Record{}
	r.SetFloats("p", in)
	in[0] = 100

	out, err := r.Floats("p")
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []float64{1, 2, 3}, out)
	out[1] = 100

	c := r.Clone()
	r.SetFloats("p", []float64{9})
	again, err := c.Floats("p")
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []float64{1, 2, 3}, again)
}

func testDocument() *Document {
	doc := NewDocument()
	line := doc.Add(10)
	line.SetInt("flags", 0)
	line.SetFloats("points", []float64{0, 0, 10.5, 0})
	img := doc.Add(18)
	img.SetInt("flags", 4)
	img.SetFloats("points", []float64{0, 0, 4, 0, 4, 3, 0, 3})
	img.SetString("name", "photo.png")
	return doc
}

func TestDocumentRoundTrip(t *testing.T) {
	for _, f := range []Format{JSON, YAML, TOML} {
		t.Run(f.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, testDocument(), f); err != nil {
				t.Fatal(err)
			}

			doc, err := Decode(&buf, f)
			if err != nil {
				t.Fatal(err)
			}
			diff(t, Version, doc.Version)
			if len(doc.Shapes) != 2 {
				t.Fatalf("got %d shapes, want 2", len(doc.Shapes))
			}

			diff(t, uint16(10), doc.Shapes[0].Type)
			pts, err := doc.Shapes[0].Fields.Floats("points")
			if err != nil {
				t.Fatal(err)
			}
			diff(t, []float64{0, 0, 10.5, 0}, pts)

			img := doc.Shapes[1].Fields
			diff(t, uint16(18), doc.Shapes[1].Type)
			flags, err := img.Int("flags")
			if err != nil {
				t.Fatal(err)
			}
			diff(t, 4, flags)
			name, err := img.String("name")
			if err != nil {
				t.Fatal(err)
			}
			diff(t, "photo.png", name)
			pts, err = img.Floats("points")
			if err != nil {
				t.Fatal(err)
			}
			diff(t, []float64{0, 0, 4, 0, 4, 3, 0, 3}, pts)
		})
	}
}

func TestDecodeRejectsNewerVersion(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"version": 99, "shapes": []}`), JSON)
	wantErr(t, err, ErrVersion)

	if _, err := Decode(strings.NewReader(`{"version": `), JSON); err == nil {
		t.Error("truncated document was accepted")
	}
}

func TestDecodeMissingFields(t *testing.T) {
	doc, err := Decode(strings.NewReader("version: 1\nshapes:\n  - type: 31\n"), YAML)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Shapes) != 1 {
		t.Fatalf("got %d shapes, want 1", len(doc.Shapes))
	}
	_, err = doc.Shapes[0].Fields.Float("x")
	wantErr(t, err, ErrMissingField)
}

func TestFormatFromExt(t *testing.T) {
	cases := map[string]Format{
		"a.json":     JSON,
		"b.YAML":     YAML,
		"c.yml":      YAML,
		"dir/d.toml": TOML,
	}
	for name, want := range cases {
		got, err := FormatFromExt(name)
		if err != nil {
			t.Errorf("FormatFromExt(%q): %s", name, err)
			continue
		}
		diff(t, want, got)
	}
	if _, err := FormatFromExt("drawing.svg"); err == nil {
		t.Error("svg was accepted as a document format")
	}
}

func TestOpenSave(t *testing.T) {
	name := filepath.Join(t.TempDir(), "doc.toml")
	if err := Save(name, testDocument()); err != nil {
		t.Fatal(err)
	}
	doc, err := Open(name)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 2, len(doc.Shapes))
}
