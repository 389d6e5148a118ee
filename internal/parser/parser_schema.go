package parser

import "github.com/csl-lang/csl/internal/lexer"

// parseSchema implements `schema := 'config' IDENT tableType`.
func (p *Parser) parseSchema() *ConfigSchema {
	startTok := p.peek()
	if !p.match("config") {
		p.errorAt(p.peek().Range, CodeUnexpectedToken, "expected 'config' to begin a schema")
		p.synchronize()
		return nil
	}
	nameTok := p.consumeIdentifier("expected schema name")

	table := p.parseTableType()
	schema := &ConfigSchema{
		Name:       nameTok.Value,
		RootTable:  table,
		NameRegion: nameTok.Range,
		Reg:        lexer.Join(startTok.Range, table.Reg),
	}
	p.tokenDefs[nameTok.Index] = &Definition{Schema: schema}
	return schema
}

func (p *Parser) consumeIdentifier(errMsg string) lexer.Token {
	if p.checkKind(lexer.KindIdentifier) {
		return p.advance()
	}
	p.errorAt(p.peek().Range, CodeExpectedToken, errMsg)
	return p.peek()
}

// parseTableType implements
// `tableType := '{' (keyDef | wildcardKey | constraintsBlock)* '}'`.
func (p *Parser) parseTableType() *TableType {
	openTok := p.consume("{", "expected '{' to open a table")
	table := &TableType{}
	sawConstraints := false

	for !p.isAtEnd() && !p.check("}") {
		switch {
		case p.check("*"):
			wk := p.parseWildcardKey()
			if table.WildcardKey != nil {
				p.errorAt(wk.NameRegion, CodeDuplicateBlock, "a table may have at most one wildcard key")
			}
			table.WildcardKey = wk
		case p.check("constraints"):
			block := p.parseConstraintsBlock()
			if sawConstraints {
				p.errorAt(p.previous().Range, CodeDuplicateBlock, "duplicate constraints block in table")
			}
			sawConstraints = true
			table.Constraints = append(table.Constraints, block...)
		case p.checkKind(lexer.KindIdentifier):
			kd := p.parseKeyDef()
			if kd != nil {
				table.ExplicitKeys = append(table.ExplicitKeys, kd)
			}
		default:
			p.errorAt(p.peek().Range, CodeUnexpectedToken, "expected a key definition, wildcard key, or constraints block")
			p.synchronize()
		}
	}

	closeTok := p.consume("}", "expected '}' to close a table")
	table.Reg = lexer.Join(openTok.Range, closeTok.Range)
	return table
}

// parseKeyDef implements the two keyDef alternatives.
func (p *Parser) parseKeyDef() *KeyDefinition {
	nameTok := p.advance()
	kd := &KeyDefinition{Name: nameTok.Value, NameRegion: nameTok.Range}
	p.tokenDefs[nameTok.Index] = &Definition{Key: kd}

	if p.match("?") {
		kd.IsOptional = true
	}

	switch {
	case p.match(":"):
		kd.Type = p.parseType()
		kd.Annotations = p.parseAnnotationRun(kd)
		if p.match("=") {
			kd.DefaultValue = p.parseDefaultLiteral()
		}
	case p.match("="):
		kd.DefaultValue = p.parseDefaultLiteral()
		kd.Annotations = p.parseAnnotationRun(kd)
		kd.Type = inferPrimitiveFromLiteral(kd.DefaultValue)
	default:
		p.errorAt(p.peek().Range, CodeExpectedToken, "expected ':' or '=' after key name")
		kd.Type = &InvalidType{Reg: nameTok.Range}
	}

	endTok := p.previous()
	if p.check(";") {
		endTok = p.advance()
	} else if p.plausiblyEndsKey() {
		// missing ';' tolerated per SPEC_FULL §4.2 "Recovery".
		p.warnAt(p.peek().Range, CodeExpectedToken, "missing ';' after key definition")
	} else {
		p.errorAt(p.peek().Range, CodeExpectedToken, "expected ';' after key definition")
	}
	kd.DefinitionRegion = lexer.Join(nameTok.Range, endTok.Range)
	return kd
}

// plausiblyEndsKey reports whether the next token could begin a new key or
// close the enclosing table, the condition under which a missing `;` is
// tolerated rather than reported as a hard error.
func (p *Parser) plausiblyEndsKey() bool {
	if p.check("}") || p.check("*") || p.check("constraints") {
		return true
	}
	return p.checkKind(lexer.KindIdentifier)
}

// parseWildcardKey implements `wildcardKey := '*' ':' type annotations* ';'`.
func (p *Parser) parseWildcardKey() *KeyDefinition {
	star := p.advance()
	kd := &KeyDefinition{Name: "*", IsWildcard: true, NameRegion: star.Range}
	p.tokenDefs[star.Index] = &Definition{Key: kd}
	p.consume(":", "expected ':' after wildcard key '*'")
	kd.Type = p.parseType()
	kd.Annotations = p.parseAnnotationRun(kd)
	endTok := p.previous()
	if p.check(";") {
		endTok = p.advance()
	} else {
		p.errorAt(p.peek().Range, CodeExpectedToken, "expected ';' after wildcard key")
	}
	kd.DefinitionRegion = lexer.Join(star.Range, endTok.Range)
	return kd
}

func inferPrimitiveFromLiteral(lit *Literal) CSLType {
	if lit == nil {
		return &InvalidType{}
	}
	prim := primitiveForDescriptor(lit.Prop)
	return &PrimitiveType{Prim: prim}
}
