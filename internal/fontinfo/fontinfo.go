// Package fontinfo reads identifying metadata from saved font files so that
// downstream consumers can check what a deterministic file name resolved to.
package fontinfo

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/image/font/sfnt"
)

// ErrEmptyFontData is returned for zero-length input.
var ErrEmptyFontData = errors.New("fontinfo: empty font data")

// Info describes a parsed TrueType/OpenType font.
type Info struct {
	Family     string
	FullName   string
	NumGlyphs  int
	UnitsPerEm int
	Size       int64
}

// Parse extracts Info from raw font bytes.
func Parse(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, ErrEmptyFontData
	}

	f, err := sfnt.Parse(data)
	if err != nil {
		return Info{}, fmt.Errorf("fontinfo: failed to parse font: %w", err)
	}

	var buf sfnt.Buffer
	info := Info{
		Family:     name(f, &buf, sfnt.NameIDFamily),
		FullName:   name(f, &buf, sfnt.NameIDFull),
		NumGlyphs:  f.NumGlyphs(),
		UnitsPerEm: int(f.UnitsPerEm()),
		Size:       int64(len(data)),
	}
	return info, nil
}

// ParseFile reads and parses the font at path.
func ParseFile(path string) (Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Info{}, fmt.Errorf("fontinfo: read %s: %w", path, err)
	}
	return Parse(data)
}

func name(f *sfnt.Font, buf *sfnt.Buffer, id sfnt.NameID) string {
	s, err := f.Name(buf, id)
	if err != nil {
		return ""
	}
	return s
}
