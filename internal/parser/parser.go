// Package parser turns configuration-style documents into generic maps.
// A Factory picks the Parser for a file from its name, so callers never
// construct concrete parsers themselves.
package parser

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names a supported document format.
type Format string

// Supported formats.
const (
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Parser decodes a document into a generic map.
type Parser interface {
	Format() Format
	Parse(data []byte) (map[string]any, error)
}

// JSONParser decodes JSON objects.
type JSONParser struct{}

// Format returns FormatJSON.
func (JSONParser) Format() Format { return FormatJSON }

// Parse decodes data as a JSON object.
func (JSONParser) Parse(data []byte) (map[string]any, error) {
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing json: %w", err)
	}
	return out, nil
}

// YAMLParser decodes YAML mappings.
type YAMLParser struct{}

// Format returns FormatYAML.
func (YAMLParser) Format() Format { return FormatYAML }

// Parse decodes data as a YAML mapping.
func (YAMLParser) Parse(data []byte) (map[string]any, error) {
	var out map[string]any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	return out, nil
}

// TOMLParser decodes TOML documents.
type TOMLParser struct{}

// Format returns FormatTOML.
func (TOMLParser) Format() Format { return FormatTOML }

// Parse decodes data as a TOML document.
func (TOMLParser) Parse(data []byte) (map[string]any, error) {
	var out map[string]any
	if err := toml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing toml: %w", err)
	}
	return out, nil
}

// XMLParser decodes XML documents. The root element becomes the single top
// level key; child elements nest as maps, repeated siblings become slices,
// attributes are stored under "@name" and text content under "#text" when
// an element also has children or attributes.
type XMLParser struct{}

// Format returns FormatXML.
func (XMLParser) Format() Format { return FormatXML }

// Parse decodes data as XML.
func (XMLParser) Parse(data []byte) (map[string]any, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, errors.New("parsing xml: no root element")
		}
		if err != nil {
			return nil, fmt.Errorf("parsing xml: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			v, err := decodeElement(dec, start)
			if err != nil {
				return nil, fmt.Errorf("parsing xml: %w", err)
			}
			if err := expectEnd(dec); err != nil {
				return nil, fmt.Errorf("parsing xml: %w", err)
			}
			return map[string]any{start.Name.Local: v}, nil
		}
	}
}

// expectEnd consumes the rest of the document, allowing only comments,
// processing instructions and whitespace after the root element.
func expectEnd(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return fmt.Errorf("unexpected element <%s> after root element", t.Name.Local)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return errors.New("unexpected text after root element")
			}
		}
	}
}

func decodeElement(dec *xml.Decoder, start xml.StartElement) (any, error) {
	node := map[string]any{}
	for _, a := range start.Attr {
		node["@"+a.Name.Local] = a.Value
	}
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeElement(dec, t)
			if err != nil {
				return nil, err
			}
			addChild(node, t.Name.Local, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			s := strings.TrimSpace(text.String())
			if len(node) == 0 {
				return s, nil
			}
			if s != "" {
				node["#text"] = s
			}
			return node, nil
		}
	}
}

func addChild(node map[string]any, name string, child any) {
	existing, ok := node[name]
	if !ok {
		node[name] = child
		return
	}
	if list, ok := existing.([]any); ok {
		node[name] = append(list, child)
		return
	}
	node[name] = []any{existing, child}
}
