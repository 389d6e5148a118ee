package parser

import "github.com/csl-lang/csl/internal/lexer"

// parseConstraintsBlock implements:
//
//	constraintsBlock := 'constraints' '{' constraint* '}' ';'?
//	constraint := 'conflicts' expr 'with' expr ';'
//	            | 'requires' expr '=>' expr ';'
//	            | 'validate' expr ';'
func (p *Parser) parseConstraintsBlock() []Constraint {
	p.advance() // 'constraints'
	p.consume("{", "expected '{' to open a constraints block")

	var out []Constraint
	for !p.isAtEnd() && !p.check("}") {
		switch p.peek().Value {
		case "conflicts":
			out = append(out, p.parseConflictConstraint())
		case "requires":
			out = append(out, p.parseDependencyConstraint())
		case "validate":
			out = append(out, p.parseValidateConstraint())
		default:
			p.errorAt(p.peek().Range, CodeUnexpectedToken, "expected 'conflicts', 'requires', or 'validate'")
			p.synchronize()
		}
	}
	p.consume("}", "expected '}' to close a constraints block")
	if p.check(";") {
		p.advance()
	}
	return out
}

func (p *Parser) parseConflictConstraint() Constraint {
	start := p.advance() // 'conflicts'
	first := p.parseExpr()
	p.consume("with", "expected 'with' in a conflicts constraint")
	second := p.parseExpr()
	end := p.previous()
	p.finishConstraintStatement()
	return &ConflictConstraint{First: first, Second: second, Reg: lexer.Join(start.Range, end.Range)}
}

func (p *Parser) parseDependencyConstraint() Constraint {
	start := p.advance() // 'requires'
	dependent := p.parseExpr()
	p.consumeArrow()
	condition := p.parseExpr()
	end := p.previous()
	p.finishConstraintStatement()
	return &DependencyConstraint{Dependent: dependent, Condition: condition, Reg: lexer.Join(start.Range, end.Range)}
}

func (p *Parser) parseValidateConstraint() Constraint {
	start := p.advance() // 'validate'
	expr := p.parseExpr()
	end := p.previous()
	p.finishConstraintStatement()
	return &ValidateConstraint{Expr: expr, Reg: lexer.Join(start.Range, end.Range)}
}

// consumeArrow matches the '=>' of a requires constraint, which the lexer
// emits as a single punctuator token.
func (p *Parser) consumeArrow() {
	p.consume("=>", "expected '=>' in a requires constraint")
}

func (p *Parser) finishConstraintStatement() {
	if p.check(";") {
		p.advance()
		return
	}
	p.errorAt(p.peek().Range, CodeExpectedToken, "expected ';' after constraint")
}
