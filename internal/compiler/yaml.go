package compiler

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"gopkg.in/yaml.v3"
)

// document is the YAML/JSON shape of a definition. Rules use the same
// from(read,write,direction)to syntax as the text format.
type document struct {
	Start    string   `yaml:"start"`
	Accept   string   `yaml:"accept"`
	Reject   string   `yaml:"reject"`
	Alphabet []string `yaml:"alphabet"`
	Rules    []string `yaml:"rules"`
}

// ParseYAML decodes a YAML (or JSON, which is valid YAML) definition.
// Rule line numbers refer to the YAML source.
func (p *Parser) ParseYAML(data []byte) (*domain.Definition, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDefinition, err)
	}
	var doc document
	if err := root.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDefinition, err)
	}

	def := &domain.Definition{
		Start:    strings.TrimSpace(doc.Start),
		Accept:   strings.TrimSpace(doc.Accept),
		Reject:   strings.TrimSpace(doc.Reject),
		Alphabet: parseAlphabet(strings.Join(doc.Alphabet, ",")),
	}

	lines := ruleLines(&root)
	for i, raw := range doc.Rules {
		rule, err := p.ParseRule(raw)
		if err != nil {
			if pe, ok := err.(*ParseError); ok && i < len(lines) {
				pe.Line = lines[i]
			}
			return nil, err
		}
		if i < len(lines) {
			rule.Line = lines[i]
		}
		def.Rules = append(def.Rules, rule)
	}
	return def, nil
}

// ruleLines returns the source line of each entry of the "rules" sequence.
func ruleLines(root *yaml.Node) []int {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil
	}
	m := root.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value != "rules" {
			continue
		}
		seq := m.Content[i+1]
		lines := make([]int, len(seq.Content))
		for j, n := range seq.Content {
			lines[j] = n.Line
		}
		return lines
	}
	return nil
}

// ParseFile picks the decoder from the file extension: .yaml, .yml and .json
// are structured documents, anything else is the line-oriented text format.
func (p *Parser) ParseFile(name string, data []byte) (*domain.Definition, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return p.ParseYAML(data)
	default:
		return p.ParseBytes(data)
	}
}
