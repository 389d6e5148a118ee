package parser

import "github.com/csl-lang/csl/internal/lexer"

// parseAnnotationRun implements `annotations := ('@' IDENT ('(' exprList ')')?)*`.
// It returns every annotation parsed, in source order. Global annotation
// names (SPEC_FULL §3, currently just `deprecated`) also get mirrored onto
// kd.Annotations when kd is non-nil, since they describe the key rather
// than the particular type position they were written after; routing and
// the misplaced-target check happen later, in resolveIdentifiers, once the
// whole key is known.
func (p *Parser) parseAnnotationRun(kd *KeyDefinition) []*Annotation {
	var anns []*Annotation
	for p.check("@") {
		at := p.advance()
		nameTok := p.consumeIdentifier("expected annotation name after '@'")
		ann := &Annotation{Name: nameTok.Value, Reg: lexer.Join(at.Range, nameTok.Range)}

		if p.match("(") {
			ann.Args = p.parseExprList()
			close := p.consume(")", "expected ')' to close annotation arguments")
			ann.Reg = lexer.Join(ann.Reg, close.Range)
		}

		anns = append(anns, ann)
		if kd != nil && IsGlobalAnnotationName(ann.Name) {
			kd.Annotations = append(kd.Annotations, ann)
		}
	}
	return anns
}

// parseExprList implements the comma-separated argument list inside an
// annotation's or function call's parentheses.
func (p *Parser) parseExprList() []Expr {
	var args []Expr
	if p.check(")") {
		return args
	}
	args = append(args, p.parseExpr())
	for p.match(",") {
		args = append(args, p.parseExpr())
	}
	return args
}

// parseDefaultLiteral implements the literal forms a key's `= default`
// may take: a possibly signed number, a string, a boolean, a datetime, or
// a duration literal.
func (p *Parser) parseDefaultLiteral() *Literal {
	tok := p.peek()

	if (tok.Value == "+" || tok.Value == "-") && p.peekAt(1).Kind == lexer.KindNumber {
		sign := p.advance()
		num := p.advance()
		return &Literal{Text: sign.Value + num.Value, Prop: descOf(num)}
	}

	switch tok.Kind {
	case lexer.KindString, lexer.KindNumber, lexer.KindBoolean, lexer.KindDatetime, lexer.KindDuration:
		p.advance()
		return &Literal{Text: literalText(tok), Prop: descOf(tok)}
	default:
		p.errorAt(tok.Range, CodeUnexpectedToken, "expected a literal default value")
		p.advance()
		return &Literal{Text: tok.Value, Prop: lexer.DescriptorInvalid}
	}
}
