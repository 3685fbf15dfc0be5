// Package compiler converts machine definition text into domain.Definition values
// and back.
package compiler

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// Fixed header lines of the text format. Rules start after them.
const (
	lineStart = iota
	lineAccept
	lineReject
	lineAlphabet
	headerLines
)

// Parser is responsible for converting definition text into a Definition.
type Parser struct {
	strictDirections bool
}

// Option configures the Parser.
type Option func(*Parser)

// WithStrictDirections rejects rules whose direction is not L or R at parse
// time instead of letting them halt the machine when they fire.
func WithStrictDirections() Option {
	return func(p *Parser) {
		p.strictDirections = true
	}
}

// NewParser creates a new parser instance.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseBytes splits data into lines and parses them.
func (p *Parser) ParseBytes(data []byte) (*domain.Definition, error) {
	return p.ParseReader(bytes.NewReader(data))
}

// ParseReader reads every line from r and parses them.
func (p *Parser) ParseReader(r io.Reader) (*domain.Definition, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	return p.Parse(lines)
}

// Parse builds a Definition from already split lines:
//
//	line 1: start state
//	line 2: accept state
//	line 3: reject state
//	line 4: alphabet, comma separated
//	line 5+: from(read,write,direction)to
//
// A file shorter than five lines has no rules. That machine is legal but can
// only accept when start == accept.
func (p *Parser) Parse(lines []string) (*domain.Definition, error) {
	def := &domain.Definition{}

	header := func(i int) string {
		if i < len(lines) {
			return strings.TrimSpace(lines[i])
		}
		return ""
	}
	def.Start = header(lineStart)
	def.Accept = header(lineAccept)
	def.Reject = header(lineReject)
	def.Alphabet = parseAlphabet(header(lineAlphabet))

	if len(lines) <= headerLines {
		return def, nil
	}

	for i := headerLines; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		rule, err := p.ParseRule(line)
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				pe.Line = i + 1
			}
			return nil, err
		}
		rule.Line = i + 1
		def.Rules = append(def.Rules, rule)
	}

	return def, nil
}

// ParseRule decodes a single from(read,write,direction)to rule.
// The returned *ParseError carries no line number.
func (p *Parser) ParseRule(line string) (domain.Rule, error) {
	line = strings.TrimSpace(line)
	fail := func(reason string) (domain.Rule, error) {
		return domain.Rule{}, &ParseError{Text: line, Reason: reason}
	}

	open := strings.Index(line, "(")
	if open < 0 {
		return fail("missing '('")
	}
	closing := strings.Index(line, ")")
	if closing < 0 {
		return fail("missing ')'")
	}
	if closing < open {
		return fail("')' before '('")
	}

	from := strings.TrimSpace(line[:open])
	to := strings.TrimSpace(line[closing+1:])
	if from == "" {
		return fail("missing source state")
	}
	if to == "" {
		return fail("missing target state")
	}

	// Fields are not trimmed: a lone space is the blank symbol.
	fields := strings.Split(line[open+1:closing], ",")
	if len(fields) != 3 {
		return fail(fmt.Sprintf("expected 3 fields (read,write,direction), got %d", len(fields)))
	}
	if fields[2] == "" {
		return fail("missing direction")
	}

	rule := domain.Rule{
		From:  from,
		Read:  parseSymbol(fields[0]),
		Write: parseSymbol(fields[1]),
		Move:  domain.Direction(domain.FirstSymbol(fields[2])),
		To:    to,
	}
	if p.strictDirections && !rule.Move.Valid() {
		return fail(fmt.Sprintf("direction %q is neither L nor R", fields[2]))
	}
	return rule, nil
}

// parseSymbol maps a rule field to a symbol: a single space (or nothing) is
// Blank, otherwise the first character counts and the rest is ignored.
func parseSymbol(field string) domain.Symbol {
	if field == " " {
		return domain.Blank
	}
	return domain.FirstSymbol(field)
}

// parseAlphabet keeps the first character of each trimmed comma separated token.
// Longer tokens are truncated; empty tokens are skipped.
func parseAlphabet(line string) []domain.Symbol {
	var alphabet []domain.Symbol
	if line == "" {
		return alphabet
	}
	for _, tok := range strings.Split(line, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		alphabet = append(alphabet, domain.FirstSymbol(tok))
	}
	return alphabet
}
