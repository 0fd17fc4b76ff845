package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Version is the document version written by this package. Documents with a
// higher version are refused.
const Version = 1

// ErrVersion is returned when decoding a document of an unsupported version.
var ErrVersion = errors.New("unsupported document version")

// Document is a sequence of shape records, each preceded by its type tag.
type Document struct {
	Version int     `json:"version" yaml:"version" toml:"version"`
	Shapes  []Entry `json:"shapes" yaml:"shapes" toml:"shapes"`
}

// Entry is one shape record.
type Entry struct {
	Type   uint16 `json:"type" yaml:"type" toml:"type"`
	Fields Record `json:"fields" yaml:"fields" toml:"fields"`
}

// NewDocument returns an empty document of the current version.
func NewDocument() *Document {
	return &Document{Version: Version}
}

// Add appends a record with the given type tag and returns it for writing.
func (d *Document) Add(typ uint16) Record {
	r := Record{}
	d.Shapes = append(d.Shapes, Entry{Type: typ, Fields: r})
	return r
}

// Format is an encoding of documents.
type Format int

const (
	JSON Format = iota
	YAML
	TOML
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFromExt returns the format matching the extension of the file name,
// which is one of .json, .yaml, .yml and .toml.
func FormatFromExt(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return 0, fmt.Errorf("FormatFromExt: extension of %q not recognized", name)
}

// Encode writes doc to w in format f.
func Encode(w io.Writer, doc *Document, f Format) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case TOML:
		return toml.NewEncoder(w).Encode(doc)
	}
	return fmt.Errorf("Encode: unknown format %v", f)
}

// Decode reads a document in format f from r.
func Decode(r io.Reader, f Format) (*Document, error) {
	var doc Document
	var err error
	switch f {
	case JSON:
		err = json.NewDecoder(r).Decode(&doc)
	case YAML:
		err = yaml.NewDecoder(r).Decode(&doc)
	case TOML:
		err = toml.NewDecoder(r).Decode(&doc)
	default:
		return nil, fmt.Errorf("Decode: unknown format %v", f)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %v document: %w", f, err)
	}
	if doc.Version > Version {
		return nil, fmt.Errorf("version %d: %w", doc.Version, ErrVersion)
	}
	for i, e := range doc.Shapes {
		if e.Fields == nil {
			doc.Shapes[i].Fields = Record{}
		}
	}
	return &doc, nil
}

// Open reads the document in the named file, choosing the format by its
// extension.
func Open(name string) (*Document, error) {
	f, err := FormatFromExt(name)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Decode(file, f)
}

// Save writes doc to the named file, choosing the format by its extension.
func Save(name string, doc *Document) error {
	f, err := FormatFromExt(name)
	if err != nil {
		return err
	}
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := Encode(file, doc, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
