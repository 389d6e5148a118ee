package parser

import (
	"github.com/csl-lang/csl/internal/lexer"
)

// Definition is whatever a token↦definition map entry points at: either
// the ConfigSchema a token names, or a KeyDefinition reachable from one
// (SPEC_FULL §3, "token↦definition map").
type Definition struct {
	Schema *ConfigSchema
	Key    *KeyDefinition
}

// Result is everything a Parse call produces.
type Result struct {
	Schemas     []*ConfigSchema
	Diagnostics DiagnosticList
	TokenDefs   map[int]*Definition // token index -> definition
}

// Parser consumes a token stream (comments excluded) and builds the AST,
// per SPEC_FULL §4.2. It never aborts: malformed input produces
// diagnostics and a best-effort tree.
type Parser struct {
	tokens      []lexer.Token
	current     int
	diagnostics DiagnosticList
	tokenDefs   map[int]*Definition
}

// New creates a Parser over a token stream produced with preserveComments
// disabled (comments play no role in the grammar).
func New(tokens []lexer.Token) *Parser {
	return &Parser{
		tokens:    tokens,
		tokenDefs: make(map[int]*Definition),
	}
}

// Parse runs the full file := schema* grammar and post-parse semantic
// validation, returning the accumulated result.
func Parse(tokens []lexer.Token) *Result {
	p := New(tokens)
	var schemas []*ConfigSchema
	for !p.isAtEnd() {
		if p.peek().Kind == lexer.KindPunctuator && p.peek().Value == "" {
			break // EOF sentinel
		}
		schema := p.parseSchema()
		if schema != nil {
			schemas = append(schemas, schema)
		}
	}
	p.resolveIdentifiers(schemas)
	return &Result{
		Schemas:     schemas,
		Diagnostics: p.diagnostics,
		TokenDefs:   p.tokenDefs,
	}
}

// --- token cursor helpers, grounded on compiler/parser/parser.go ---

func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.tokens)-1 && p.tokens[p.current].Value == ""
}

func (p *Parser) peek() lexer.Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current]
}

func (p *Parser) peekAt(offset int) lexer.Token {
	idx := p.current + offset
	if idx < 0 || idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) previous() lexer.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.current++
	}
	return tok
}

func (p *Parser) check(value string) bool {
	return p.peek().Value == value
}

func (p *Parser) checkKind(kind lexer.TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(value string) bool {
	if p.check(value) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(value, errMsg string) lexer.Token {
	if p.check(value) {
		return p.advance()
	}
	p.errorAt(p.peek().Range, CodeExpectedToken, errMsg)
	return p.peek()
}

func (p *Parser) errorAt(region lexer.Region, code, msg string) {
	p.diagnostics = append(p.diagnostics, Diagnostic{
		Message:  msg,
		Region:   region,
		Severity: lexer.SeverityError,
		Code:     code,
	})
}

func (p *Parser) warnAt(region lexer.Region, code, msg string) {
	p.diagnostics = append(p.diagnostics, Diagnostic{
		Message:  msg,
		Region:   region,
		Severity: lexer.SeverityWarning,
		Code:     code,
	})
}

// synchronize implements panic-mode recovery: on a structural parse
// failure, skip tokens until one plausibly starts a new schema or key, so
// the parser never aborts (SPEC_FULL §4.2 "Recovery").
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		if p.previous().Value == ";" || p.previous().Value == "}" {
			return
		}
		switch p.peek().Value {
		case "config", "constraints":
			return
		}
		p.advance()
	}
}
