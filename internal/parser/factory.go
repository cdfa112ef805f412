package parser

import (
	"fmt"
	"os"
	"strings"
)

// UnsupportedFormatError is returned when no parser handles a file's suffix.
type UnsupportedFormatError struct {
	FileName string
	Suffix   string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("no parser for %q files (file %q)", e.Suffix, e.FileName)
}

// Factory creates the parser appropriate for a file name.
type Factory interface {
	CreateFromFileName(fileName string) (Parser, error)
}

// StandardFactory maps the text after the last "." of a file name to one of
// the built-in parsers.
type StandardFactory struct{}

// CreateFromFileName returns the parser for fileName's suffix.
func (StandardFactory) CreateFromFileName(fileName string) (Parser, error) {
	suffix := fileName
	if i := strings.LastIndex(fileName, "."); i >= 0 {
		suffix = fileName[i+1:]
	}
	switch strings.ToLower(suffix) {
	case "xml":
		return XMLParser{}, nil
	case "json":
		return JSONParser{}, nil
	case "yaml", "yml":
		return YAMLParser{}, nil
	case "toml":
		return TOMLParser{}, nil
	default:
		return nil, &UnsupportedFormatError{FileName: fileName, Suffix: suffix}
	}
}

// ParseFile reads path and decodes it with the parser f selects for it.
func ParseFile(f Factory, path string) (Format, map[string]any, error) {
	p, err := f.CreateFromFileName(path)
	if err != nil {
		return "", nil, err
	}
	//nolint:gosec // path is supplied by the CLI user
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("reading %q: %w", path, err)
	}
	out, err := p.Parse(data)
	if err != nil {
		return "", nil, err
	}
	return p.Format(), out, nil
}
