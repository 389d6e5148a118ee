package parser

import (
	"strconv"

	"github.com/csl-lang/csl/internal/lexer"
)

// primitiveForDescriptor maps a literal's lexical descriptor back to the
// Primitive it defaults a key's type to, per the `name = default;` form of
// keyDef (SPEC_FULL §4.2).
func primitiveForDescriptor(desc lexer.TypeDescriptor) Primitive {
	switch desc.Category {
	case lexer.DescBoolean:
		return PrimitiveBoolean
	case lexer.DescNumeric:
		return PrimitiveNumber
	case lexer.DescString:
		return PrimitiveString
	case lexer.DescDateTime:
		return PrimitiveDatetime
	case lexer.DescDuration:
		return PrimitiveDuration
	default:
		return PrimitiveString
	}
}

var namedPrimitives = map[string]Primitive{
	"string":   PrimitiveString,
	"number":   PrimitiveNumber,
	"boolean":  PrimitiveBoolean,
	"datetime": PrimitiveDatetime,
	"duration": PrimitiveDuration,
}

// parseType implements `type := postfixType ('|' postfixType)*`, flattening
// nested unions and rejecting a union whose members are not pairwise
// disjoint primitive/table/array shapes per SPEC_FULL §4.2 "union
// normalization".
func (p *Parser) parseType() CSLType {
	first := p.parsePostfixType()
	if !p.check("|") {
		return first
	}

	startReg := first.Region()
	members := flattenUnionMember(first)
	for p.match("|") {
		member := p.parsePostfixType()
		members = append(members, flattenUnionMember(member)...)
	}
	endReg := members[len(members)-1].Region()
	u := &UnionType{MemberTypes: members, Reg: lexer.Join(startReg, endReg)}
	p.checkUnionMixing(u)
	return u
}

func flattenUnionMember(t CSLType) []CSLType {
	if u, ok := t.(*UnionType); ok {
		return u.MemberTypes
	}
	return []CSLType{t}
}

// checkUnionMixing reports a diagnostic when a union mixes table/array
// shapes with primitive members, which SPEC_FULL §4.2 disallows (a union
// of primitives, or a union of exactly one non-primitive shape plus
// primitives carrying only enum-literal restrictions, is permitted; mixing
// two distinct non-primitive shapes, or a non-primitive with an unrestricted
// primitive, is not), and when a union mixes a bare primitive type with a
// literal of that same primitive (e.g. `string | "dev"`), which is always
// forbidden regardless of what else the union contains.
func (p *Parser) checkUnionMixing(u *UnionType) {
	nonPrimitive := 0
	bareByPrim := map[Primitive]bool{}
	literalByPrim := map[Primitive]bool{}

	for _, m := range u.MemberTypes {
		switch v := m.(type) {
		case *TableType, *ArrayType, *AnyTableType, *AnyArrayType:
			nonPrimitive++
		case *PrimitiveType:
			if len(v.AllowedValues) == 0 {
				bareByPrim[v.Prim] = true
			} else {
				literalByPrim[v.Prim] = true
			}
		}
	}
	if nonPrimitive > 1 {
		p.errorAt(u.Reg, CodeUnionMix, "a union may not mix more than one table/array shape")
	}
	for prim := range bareByPrim {
		if literalByPrim[prim] {
			p.errorAt(u.Reg, CodeUnionMix, "union type cannot mix a primitive type with its literal")
		}
	}
}

// parsePostfixType implements the `'[' ']'` array suffix and the
// parenthesized-group case feeding back into parseType.
func (p *Parser) parsePostfixType() CSLType {
	base := p.parsePrimaryType()
	for p.check("[") && p.peekAt(1).Value == "]" {
		open := p.advance()
		close := p.advance()
		base = &ArrayType{ElementType: base, Reg: lexer.Join(open.Range, close.Range)}
	}
	return base
}

// parsePrimaryType implements:
//
//	primaryType := literalType | namedPrimitive annotations*
//	             | 'any' '{' '}' | 'any' '[' ']' | tableType | '(' type ')'
func (p *Parser) parsePrimaryType() CSLType {
	tok := p.peek()

	switch {
	case tok.Kind == lexer.KindString || tok.Kind == lexer.KindNumber ||
		tok.Kind == lexer.KindBoolean || tok.Kind == lexer.KindDatetime ||
		tok.Kind == lexer.KindDuration:
		return p.parseLiteralType()

	case tok.Value == "any":
		return p.parseAnyType()

	case tok.Value == "{":
		return p.parseTableType()

	case tok.Value == "(":
		p.advance()
		inner := p.parseType()
		p.consume(")", "expected ')' to close a parenthesized type")
		return inner

	default:
		if _, ok := namedPrimitives[tok.Value]; ok {
			return p.parseNamedPrimitive()
		}
		return p.parseUnexpectedType(tok)
	}
}

func (p *Parser) parseUnexpectedType(tok lexer.Token) CSLType {
	p.errorAt(tok.Range, CodeUnexpectedToken, "expected a type")
	p.advance()
	return &InvalidType{Reg: tok.Range}
}

// parseLiteralType collects one or more comma-separated literal values of
// the same descriptor class into an enum-restricted PrimitiveType, per the
// `literalType` alternative of primaryType.
func (p *Parser) parseLiteralType() CSLType {
	first := p.advance()
	lits := []Literal{{Text: literalText(first), Prop: descOf(first)}}
	startReg := first.Range
	endReg := first.Range

	for p.check(",") && literalFollows(p.peekAt(1)) {
		p.advance()
		tok := p.advance()
		lits = append(lits, Literal{Text: literalText(tok), Prop: descOf(tok)})
		endReg = tok.Range
	}

	prim := primitiveForDescriptor(lits[0].Prop)
	return &PrimitiveType{
		Prim:          prim,
		AllowedValues: lits,
		Reg:           lexer.Join(startReg, endReg),
	}
}

func literalFollows(tok lexer.Token) bool {
	switch tok.Kind {
	case lexer.KindString, lexer.KindNumber, lexer.KindBoolean, lexer.KindDatetime, lexer.KindDuration:
		return true
	}
	return false
}

// literalText is a literal token's text in source form: string tokens
// carry their decoded contents, so they are quoted again.
func literalText(tok lexer.Token) string {
	if tok.Kind == lexer.KindString {
		return strconv.Quote(tok.Value)
	}
	return tok.Value
}

func descOf(tok lexer.Token) lexer.TypeDescriptor {
	if tok.Prop != nil {
		return *tok.Prop
	}
	return lexer.DescriptorInvalid
}

func (p *Parser) parseNamedPrimitive() CSLType {
	tok := p.advance()
	prim, ok := namedPrimitives[tok.Value]
	if !ok {
		p.errorAt(tok.Range, CodeUnexpectedToken, "unknown primitive type name")
		return &InvalidType{Reg: tok.Range}
	}
	pt := &PrimitiveType{Prim: prim, Reg: tok.Range}
	pt.Annotations = p.parseAnnotationRun(nil)
	if n := len(pt.Annotations); n > 0 {
		pt.Reg = lexer.Join(pt.Reg, pt.Annotations[n-1].Reg)
	}
	return pt
}

func (p *Parser) parseAnyType() CSLType {
	anyTok := p.advance()
	if p.check("{") {
		p.advance()
		close := p.consume("}", "expected '}' to close 'any{}'")
		return &AnyTableType{Reg: lexer.Join(anyTok.Range, close.Range)}
	}
	open := p.consume("[", "expected '{' or '[' after 'any'")
	close := p.consume("]", "expected ']' to close 'any[]'")
	return &AnyArrayType{Reg: lexer.Join(anyTok.Range, lexer.Join(open.Range, close.Range))}
}
