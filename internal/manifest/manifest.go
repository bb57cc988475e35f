package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format is a manifest file format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
	FormatTOML Format = "toml"
)

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported manifest extension %q (want .yaml, .yml, .hcl or .toml)", filepath.Ext(path))
	}
}

// Load reads and parses the manifest at path.
func Load(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	doc, err := Parse(format, data, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse parses data in the given format. filename is used in HCL
// diagnostics only.
func Parse(format Format, data []byte, filename string) (*Document, error) {
	var (
		raw any
		err error
	)
	switch format {
	case FormatYAML:
		raw, err = parseYAML(data)
	case FormatHCL:
		raw, err = parseHCL(data, filename)
	case FormatTOML:
		raw, err = parseTOML(data)
	default:
		return nil, fmt.Errorf("unknown manifest format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return FromRaw(raw)
}
