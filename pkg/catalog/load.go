package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FormatForFile guesses the catalog format from a file extension.
func FormatForFile(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vspec", ".txt", ".catalog":
		return FormatText, nil
	case ".yaml", ".yml", ".json":
		return FormatYAML, nil
	case ".cbor":
		return FormatCBOR, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Base(path))
	}
}

// Parse parses data in the given format.
func Parse(data []byte, format Format, opts Options) (*Catalog, error) {
	switch format {
	case FormatText:
		return ParseText(data, opts)
	case FormatYAML:
		return ParseYAML(data, opts)
	case FormatCBOR:
		return ParseCBOR(data, opts)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}
}

// Load reads and parses a single catalog file. The format is chosen by
// extension.
func Load(path string, opts Options) (*Catalog, error) {
	format, err := FormatForFile(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	cat, err := Parse(data, format, opts)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cat, nil
}
