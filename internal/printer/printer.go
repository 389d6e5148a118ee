// Package printer renders a parsed CSL AST back into canonical source
// text, per SPEC_FULL §4.3: 2-space indent, sorted explicit keys, wildcard
// key last, constraints block last, `a op b` operator spacing, and
// backtick-requoted non-bare identifiers.
package printer

import (
	"sort"
	"strings"

	"github.com/csl-lang/csl/internal/lexer"
	"github.com/csl-lang/csl/internal/parser"
)

// DefaultIndentSize is the indent width canonical output uses unless a
// project overrides it (SPEC_FULL §6.1 "formatter indent size").
const DefaultIndentSize = 2

// printCtx carries the one tunable knob of canonical output: indent
// width. Key ordering, operator spacing, and block ordering are always
// fixed, per spec.md §4.3.
type printCtx struct {
	indentUnit string
}

// Print renders every schema in order, separated by a blank line, using
// the default 2-space indent.
func Print(schemas []*parser.ConfigSchema) string {
	return PrintIndented(schemas, DefaultIndentSize)
}

// PrintIndented renders schemas with the given indent width in spaces.
func PrintIndented(schemas []*parser.ConfigSchema, indentSize int) string {
	if indentSize <= 0 {
		indentSize = DefaultIndentSize
	}
	ctx := &printCtx{indentUnit: strings.Repeat(" ", indentSize)}
	var b strings.Builder
	for i, schema := range schemas {
		if i > 0 {
			b.WriteString("\n")
		}
		ctx.printSchema(&b, schema)
	}
	return b.String()
}

func (ctx *printCtx) printSchema(b *strings.Builder, schema *parser.ConfigSchema) {
	b.WriteString("config ")
	b.WriteString(quoteIdentifier(schema.Name))
	b.WriteString(" ")
	ctx.printTableBody(b, schema.RootTable, 0)
	b.WriteString("\n")
}

// printTableBody writes a table's `{ ... }` body at the given indent
// depth, including the trailing newline after the closing brace.
func (ctx *printCtx) printTableBody(b *strings.Builder, table *parser.TableType, depth int) {
	b.WriteString("{\n")
	inner := depth + 1

	keys := append([]*parser.KeyDefinition(nil), table.ExplicitKeys...)
	sort.Slice(keys, func(i, j int) bool { return keys[i].Name < keys[j].Name })

	for _, kd := range keys {
		ctx.printKeyDef(b, kd, inner)
	}
	if table.WildcardKey != nil {
		ctx.printWildcardKey(b, table.WildcardKey, inner)
	}
	if len(table.Constraints) > 0 {
		ctx.printConstraintsBlock(b, table.Constraints, inner)
	}

	ctx.indent(b, depth)
	b.WriteString("}")
}

func (ctx *printCtx) printKeyDef(b *strings.Builder, kd *parser.KeyDefinition, depth int) {
	ctx.indent(b, depth)
	b.WriteString(quoteIdentifier(kd.Name))
	if kd.IsOptional {
		b.WriteString("?")
	}
	b.WriteString(": ")
	ctx.printType(b, kd.Type, depth)
	ctx.printAnnotations(b, kd.Annotations)
	if kd.DefaultValue != nil {
		b.WriteString(" = ")
		b.WriteString(kd.DefaultValue.Text)
	}
	b.WriteString(";\n")
}

func (ctx *printCtx) printWildcardKey(b *strings.Builder, kd *parser.KeyDefinition, depth int) {
	ctx.indent(b, depth)
	b.WriteString("*: ")
	ctx.printType(b, kd.Type, depth)
	ctx.printAnnotations(b, kd.Annotations)
	b.WriteString(";\n")
}

func (ctx *printCtx) printType(b *strings.Builder, t parser.CSLType, depth int) {
	switch v := t.(type) {
	case *parser.PrimitiveType:
		ctx.printPrimitiveType(b, v)
	case *parser.TableType:
		ctx.printTableBody(b, v, depth)
	case *parser.ArrayType:
		ctx.printType(b, v.ElementType, depth)
		b.WriteString("[]")
	case *parser.UnionType:
		for i, m := range v.MemberTypes {
			if i > 0 {
				b.WriteString(" | ")
			}
			ctx.printType(b, m, depth)
		}
	case *parser.AnyTableType:
		b.WriteString("any{}")
	case *parser.AnyArrayType:
		b.WriteString("any[]")
	default:
		b.WriteString("<invalid>")
	}
}

func (ctx *printCtx) printPrimitiveType(b *strings.Builder, pt *parser.PrimitiveType) {
	if len(pt.AllowedValues) > 0 {
		for i, lit := range pt.AllowedValues {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(lit.Text)
		}
	} else {
		b.WriteString(pt.Prim.String())
	}
	ctx.printAnnotations(b, pt.Annotations)
}

func (ctx *printCtx) printAnnotations(b *strings.Builder, anns []*parser.Annotation) {
	for _, ann := range anns {
		b.WriteString(" @")
		b.WriteString(ann.Name)
		if ann.Args != nil {
			b.WriteString("(")
			for i, arg := range ann.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				ctx.printExpr(b, arg)
			}
			b.WriteString(")")
		}
	}
}

func (ctx *printCtx) printConstraintsBlock(b *strings.Builder, constraints []parser.Constraint, depth int) {
	ctx.indent(b, depth)
	b.WriteString("constraints {\n")
	for _, c := range constraints {
		ctx.indent(b, depth+1)
		ctx.printConstraint(b, c)
		b.WriteString(";\n")
	}
	ctx.indent(b, depth)
	b.WriteString("}\n")
}

func (ctx *printCtx) printConstraint(b *strings.Builder, c parser.Constraint) {
	switch v := c.(type) {
	case *parser.ConflictConstraint:
		b.WriteString("conflicts ")
		ctx.printExpr(b, v.First)
		b.WriteString(" with ")
		ctx.printExpr(b, v.Second)
	case *parser.DependencyConstraint:
		b.WriteString("requires ")
		ctx.printExpr(b, v.Dependent)
		b.WriteString(" => ")
		ctx.printExpr(b, v.Condition)
	case *parser.ValidateConstraint:
		b.WriteString("validate ")
		ctx.printExpr(b, v.Expr)
	}
}

func (ctx *printCtx) printExpr(b *strings.Builder, e parser.Expr) {
	switch v := e.(type) {
	case *parser.LiteralExpr:
		b.WriteString(v.Value.Text)
	case *parser.IdentifierExpr:
		b.WriteString(quoteIdentifier(v.Name))
	case *parser.UnaryExpr:
		b.WriteString(v.Op)
		ctx.printExpr(b, v.Operand)
	case *parser.BinaryExpr:
		if v.Op == "." {
			ctx.printExpr(b, v.LHS)
			b.WriteString(".")
			ctx.printExpr(b, v.RHS)
			return
		}
		ctx.printExpr(b, v.LHS)
		b.WriteString(" ")
		b.WriteString(v.Op)
		b.WriteString(" ")
		ctx.printExpr(b, v.RHS)
	case *parser.TernaryExpr:
		ctx.printExpr(b, v.Cond)
		b.WriteString(" ? ")
		ctx.printExpr(b, v.Then)
		b.WriteString(" : ")
		ctx.printExpr(b, v.Else)
	case *parser.FunctionCallExpr:
		b.WriteString(v.FuncName)
		b.WriteString("(")
		for i, arg := range v.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			ctx.printFunctionArg(b, arg)
		}
		b.WriteString(")")
	case *parser.AnnotationExpr:
		ctx.printExpr(b, v.Target)
		ctx.printAnnotations(b, []*parser.Annotation{v.Annotation})
	}
}

func (ctx *printCtx) printFunctionArg(b *strings.Builder, arg *parser.FunctionArgExpr) {
	if arg.List != nil {
		b.WriteString("[")
		for i, item := range arg.List {
			if i > 0 {
				b.WriteString(", ")
			}
			ctx.printExpr(b, item)
		}
		b.WriteString("]")
		return
	}
	ctx.printExpr(b, arg.Value)
}

func (ctx *printCtx) indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString(ctx.indentUnit)
	}
}

// quoteIdentifier re-quotes name with backticks when it is not a bare
// identifier, escaping backtick and backslash per spec.md §4.3.
func quoteIdentifier(name string) string {
	if lexer.IsBareIdentifier(name) {
		return name
	}
	var b strings.Builder
	b.WriteString("`")
	for _, r := range name {
		if r == '`' || r == '\\' {
			b.WriteString("\\")
		}
		b.WriteRune(r)
	}
	b.WriteString("`")
	return b.String()
}
