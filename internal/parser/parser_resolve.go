package parser

// numericAnnotations and stringAnnotations are the annotation-name sets
// SPEC_FULL §4.2 restricts to a particular primitive category.
var (
	numericAnnotations = map[string]bool{
		"min": true, "max": true, "range": true, "int": true, "float": true,
	}
	stringAnnotations = map[string]bool{
		"regex": true, "start_with": true, "end_with": true, "contain": true,
		"min_length": true, "max_length": true, "length": true, "format": true,
	}
)

// resolveIdentifiers walks every parsed schema performing the semantic
// passes that require the whole tree to be in hand: annotation/primitive
// compatibility, default-literal/type agreement, and resolution of
// identifiers referenced from constraint and validate expressions against
// the keys visible in their enclosing table (SPEC_FULL §4.2).
func (p *Parser) resolveIdentifiers(schemas []*ConfigSchema) {
	for _, schema := range schemas {
		p.resolveTable(schema.RootTable)
	}
}

func (p *Parser) resolveTable(table *TableType) {
	if table == nil {
		return
	}
	for _, kd := range table.ExplicitKeys {
		p.checkKeyDef(kd)
		p.resolveNestedType(kd.Type)
	}
	if table.WildcardKey != nil {
		p.checkKeyDef(table.WildcardKey)
		p.resolveNestedType(table.WildcardKey.Type)
	}
	for _, c := range table.Constraints {
		p.resolveConstraint(table, c)
	}
}

func (p *Parser) resolveNestedType(t CSLType) {
	switch v := t.(type) {
	case *TableType:
		p.resolveTable(v)
	case *ArrayType:
		p.resolveNestedType(v.ElementType)
	case *UnionType:
		for _, m := range v.MemberTypes {
			p.resolveNestedType(m)
		}
	}
}

// checkKeyDef validates a single key's annotation/primitive compatibility
// and default-value/type agreement.
func (p *Parser) checkKeyDef(kd *KeyDefinition) {
	pt, isPrimitive := kd.Type.(*PrimitiveType)
	if isPrimitive {
		for _, ann := range pt.Annotations {
			checkAnnotationTarget(p, ann, pt.Prim)
		}
	}
	for _, ann := range kd.Annotations {
		if ann.Name == "deprecated" {
			continue
		}
		if isPrimitive {
			checkAnnotationTarget(p, ann, pt.Prim)
		}
	}

	if kd.DefaultValue == nil || !isPrimitive {
		return
	}
	want := pt.Prim
	got := primitiveForDescriptor(kd.DefaultValue.Prop)
	if want != got {
		p.errorAt(kd.DefinitionRegion, CodeDefaultMismatch,
			"default value's literal class does not match the key's declared type")
	}
}

func checkAnnotationTarget(p *Parser, ann *Annotation, prim Primitive) {
	switch {
	case numericAnnotations[ann.Name] && prim != PrimitiveNumber:
		p.errorAt(ann.Reg, CodeAnnotationTarget, "annotation '@"+ann.Name+"' only applies to a numeric type")
	case stringAnnotations[ann.Name] && prim != PrimitiveString:
		p.errorAt(ann.Reg, CodeAnnotationTarget, "annotation '@"+ann.Name+"' only applies to a string type")
	}
}

// resolveConstraint walks a constraint's expression tree, resolving
// identifiers against table's visible keys.
func (p *Parser) resolveConstraint(table *TableType, c Constraint) {
	switch v := c.(type) {
	case *ConflictConstraint:
		p.resolveExpr(table, v.First)
		p.resolveExpr(table, v.Second)
	case *DependencyConstraint:
		p.resolveExpr(table, v.Dependent)
		p.resolveExpr(table, v.Condition)
	case *ValidateConstraint:
		p.resolveExpr(table, v.Expr)
	}
}

func (p *Parser) resolveExpr(table *TableType, e Expr) {
	switch v := e.(type) {
	case *IdentifierExpr:
		p.resolveIdentifierRef(table, v)
	case *UnaryExpr:
		p.resolveExpr(table, v.Operand)
	case *BinaryExpr:
		p.resolveExpr(table, v.LHS)
		if v.Op != "." {
			p.resolveExpr(table, v.RHS)
		}
	case *TernaryExpr:
		p.resolveExpr(table, v.Cond)
		p.resolveExpr(table, v.Then)
		p.resolveExpr(table, v.Else)
	case *FunctionCallExpr:
		if v.FuncName == "subset" {
			p.checkSubsetArgs(table, v)
		}
		for _, arg := range v.Args {
			if arg.Value != nil {
				p.resolveExpr(table, arg.Value)
			}
			for _, item := range arg.List {
				p.resolveExpr(table, item)
			}
		}
	case *AnnotationExpr:
		p.resolveExpr(table, v.Target)
	}
}

func (p *Parser) resolveIdentifierRef(table *TableType, ident *IdentifierExpr) {
	if table.Key(ident.Name) != nil {
		kd := table.Key(ident.Name)
		if ident.Token != nil {
			p.tokenDefs[ident.Token.Index] = &Definition{Key: kd}
		}
		return
	}
	if table.WildcardKey != nil {
		return // any name resolves against a wildcard-keyed table
	}
	if isConstraintFunctionKeyword(ident.Name) {
		return
	}
	p.errorAt(ident.Reg, CodeUnknownIdent, "'"+ident.Name+"' does not name a key in this table")
}

// checkSubsetArgs enforces the `subset(a, b, [props])` calling convention:
// at least two arguments, and when the property-list third argument is
// present, both `a` and `b` must resolve to arrays of Tables, per SPEC_FULL
// §4.2/§7 ("subset with property list on non-table arrays" is a semantic
// error).
func (p *Parser) checkSubsetArgs(table *TableType, call *FunctionCallExpr) {
	if len(call.Args) < 2 {
		p.errorAt(call.Reg, CodeSubsetMisuse, "'subset' requires at least two arguments")
		return
	}
	if len(call.Args) < 3 || call.Args[2].List == nil {
		return
	}
	p.checkSubsetArgIsTableArray(table, call.Args[0])
	p.checkSubsetArgIsTableArray(table, call.Args[1])
}

func (p *Parser) checkSubsetArgIsTableArray(table *TableType, arg *FunctionArgExpr) {
	if arg == nil || arg.Value == nil {
		return
	}
	ident, ok := arg.Value.(*IdentifierExpr)
	if !ok {
		return
	}
	kd := table.Key(ident.Name)
	if kd == nil {
		return // already flagged by resolveIdentifierRef
	}
	at, ok := kd.Type.(*ArrayType)
	if !ok {
		p.errorAt(ident.Reg, CodeSubsetMisuse, "'"+ident.Name+"' must be an array of tables to use 'subset' with a property list")
		return
	}
	if _, ok := at.ElementType.(*TableType); !ok {
		p.errorAt(ident.Reg, CodeSubsetMisuse, "'"+ident.Name+"' must be an array of tables to use 'subset' with a property list")
	}
}
