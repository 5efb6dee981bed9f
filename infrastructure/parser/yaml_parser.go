// Package parser provides document parsers for configuration files.
package parser

import (
	"gopkg.in/yaml.v3"

	"github.com/yan-lang/yan-runtime/domain/ports"
)

// YamlDocumentParser implements ports.DocumentParser for YAML. JSON input is
// accepted as well, being a subset of YAML.
type YamlDocumentParser struct{}

// NewYamlDocumentParser creates a new YamlDocumentParser.
func NewYamlDocumentParser() ports.DocumentParser {
	return &YamlDocumentParser{}
}

// Parse unmarshals YAML bytes into a generic document. An empty input yields
// an empty document.
func (p *YamlDocumentParser) Parse(data []byte) (map[string]any, error) {
	doc := map[string]any{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}
