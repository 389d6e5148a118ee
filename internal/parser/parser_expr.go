package parser

import "github.com/csl-lang/csl/internal/lexer"

// binaryPrecedence is the fixed operator precedence table (SPEC_FULL
// §4.2), lower numbers bind tighter. Level 4 is deliberately absent: the
// table carries the gap from the original CSL grammar design, which
// reserved it for an operator this language never shipped.
var binaryPrecedence = map[string]int{
	".": 1, "@": 1,
	"*": 5, "/": 5, "%": 5,
	"+": 6, "-": 6,
	"<<": 7, ">>": 7,
	"<": 8, "<=": 8, ">": 8, ">=": 8,
	"==": 9, "!=": 9,
	"&": 10,
	"^": 11,
	"|": 12,
	"&&": 13,
	"||": 14,
}

const maxBinaryPrecedence = 14

// parseExpr implements `expr := ternary`.
func (p *Parser) parseExpr() Expr {
	return p.parseTernary()
}

// parseTernary implements `ternary := precClimb ('?' expr ':' expr)?`,
// right-associative per the level-15 entry in the precedence table.
func (p *Parser) parseTernary() Expr {
	cond := p.parseBinary(maxBinaryPrecedence)
	if !p.match("?") {
		return cond
	}
	then := p.parseExpr()
	p.consume(":", "expected ':' in ternary expression")
	elseExpr := p.parseExpr()
	return &TernaryExpr{
		Cond: cond, Then: then, Else: elseExpr,
		Reg: lexer.Join(cond.Region(), elseExpr.Region()),
	}
}

// parseBinary is a precedence-climbing parser over binaryPrecedence; it
// only climbs through levels looser than unary (5 and up), since level 1-3
// are handled by parseUnary/postfix directly.
func (p *Parser) parseBinary(maxLevel int) Expr {
	left := p.parseUnary()
	for {
		op := p.peek().Value
		level, ok := binaryPrecedence[op]
		if !ok || level < 5 || level > maxLevel {
			return left
		}
		p.advance()
		right := p.parseBinary(level)
		left = &BinaryExpr{Op: op, LHS: left, RHS: right, Reg: lexer.Join(left.Region(), right.Region())}
	}
}

// parseUnary implements `unary := ('~' | '!' | '+' | '-') unary | postfix`,
// right-associative per precedence level 3.
func (p *Parser) parseUnary() Expr {
	op := p.peek().Value
	if op == "~" || op == "!" || op == "+" || op == "-" {
		tok := p.advance()
		operand := p.parseUnary()
		return &UnaryExpr{Op: op, Operand: operand, Reg: lexer.Join(tok.Range, operand.Region())}
	}
	return p.parsePostfix()
}

// parsePostfix implements the '.' member-access and '@' annotation-probe
// suffixes at precedence level 1, binding onto a primary expression.
func (p *Parser) parsePostfix() Expr {
	expr := p.parsePrimary()
	for {
		switch {
		case p.check("."):
			p.advance()
			nameTok := p.consumeIdentifier("expected identifier after '.'")
			rhs := &IdentifierExpr{Name: nameTok.Value, Token: &nameTok, Reg: nameTok.Range}
			expr = &BinaryExpr{Op: ".", LHS: expr, RHS: rhs, Reg: lexer.Join(expr.Region(), nameTok.Range)}
		case p.check("@"):
			at := p.advance()
			nameTok := p.consumeIdentifier("expected annotation name after '@'")
			ann := &Annotation{Name: nameTok.Value, Reg: lexer.Join(at.Range, nameTok.Range)}
			if p.match("(") {
				ann.Args = p.parseExprList()
				close := p.consume(")", "expected ')' to close annotation arguments")
				ann.Reg = lexer.Join(ann.Reg, close.Range)
			}
			expr = &AnnotationExpr{Target: expr, Annotation: ann, Reg: lexer.Join(expr.Region(), ann.Reg)}
		default:
			return expr
		}
	}
}

// parsePrimary implements:
//
//	primary := literal | IDENT | KEYWORD '(' args ')' | '(' expr ')'
func (p *Parser) parsePrimary() Expr {
	tok := p.peek()

	switch {
	case literalFollows(tok):
		p.advance()
		return &LiteralExpr{Value: Literal{Text: literalText(tok), Prop: descOf(tok)}, Reg: tok.Range}

	case tok.Value == "(":
		p.advance()
		inner := p.parseExpr()
		p.consume(")", "expected ')' to close a parenthesized expression")
		return inner

	case tok.Kind == lexer.KindIdentifier:
		p.advance()
		if p.check("(") {
			return p.parseFunctionCall(tok)
		}
		return &IdentifierExpr{Name: tok.Value, Token: &tok, Reg: tok.Range}

	case isConstraintFunctionKeyword(tok.Value):
		p.advance()
		return p.parseFunctionCall(tok)

	default:
		p.errorAt(tok.Range, CodeUnexpectedToken, "expected an expression")
		p.advance()
		return &IdentifierExpr{Name: tok.Value, Reg: tok.Range}
	}
}

// constraintFunctionKeywords are the reserved words that double as
// zero/variadic-arg function names inside constraint and validate
// expressions (SPEC_FULL §3 reserved keyword list).
var constraintFunctionKeywords = map[string]bool{
	"exists": true, "count_keys": true, "all_keys": true,
	"wildcard_keys": true, "subset": true, "all": true,
}

func isConstraintFunctionKeyword(v string) bool {
	return constraintFunctionKeywords[v]
}

// parseFunctionCall implements
// `funcName '(' (expr | '[' expr,* ']') (',' ...)* ')'`, where a bracketed
// list argument is used by calls like `subset(a, b, [props])`.
func (p *Parser) parseFunctionCall(nameTok lexer.Token) Expr {
	p.consume("(", "expected '(' after function name")
	var args []*FunctionArgExpr
	if !p.check(")") {
		args = append(args, p.parseFunctionArg())
		for p.match(",") {
			args = append(args, p.parseFunctionArg())
		}
	}
	close := p.consume(")", "expected ')' to close function arguments")
	return &FunctionCallExpr{FuncName: nameTok.Value, Args: args, Reg: lexer.Join(nameTok.Range, close.Range)}
}

func (p *Parser) parseFunctionArg() *FunctionArgExpr {
	if p.check("[") {
		open := p.advance()
		var list []Expr
		if !p.check("]") {
			list = append(list, p.parseExpr())
			for p.match(",") {
				list = append(list, p.parseExpr())
			}
		}
		close := p.consume("]", "expected ']' to close a list argument")
		return &FunctionArgExpr{List: list, Reg: lexer.Join(open.Range, close.Range)}
	}
	val := p.parseExpr()
	return &FunctionArgExpr{Value: val, Reg: val.Region()}
}
