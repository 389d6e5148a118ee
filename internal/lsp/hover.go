package lsp

import (
	"fmt"
	"strings"

	"github.com/csl-lang/csl/internal/parser"
)

// Hover is the rendered signature and, when present, the doc comment
// attached to the symbol under the cursor.
type Hover struct {
	Signature string
	Detail    string
}

// buildHover renders sym the way a reader would want it explained: its
// declaration signature, plus the default value and annotations CSL
// attaches to a key, generalizing the teacher's symbols.formatType into
// CSL's own type tree.
func buildHover(sym *Symbol) *Hover {
	if sym == nil {
		return nil
	}
	if sym.Key != nil {
		return &Hover{Signature: keySignature(sym.Key)}
	}
	if sym.Schema != nil {
		return &Hover{Signature: fmt.Sprintf("schema %s", sym.Schema.Name)}
	}
	return nil
}

// keySignature renders "name: type" with the optional marker, default
// value, and annotations CSL allows on a key definition.
func keySignature(kd *parser.KeyDefinition) string {
	var b strings.Builder
	writeKeySignature(&b, kd)
	return b.String()
}

func writeKeySignature(b *strings.Builder, kd *parser.KeyDefinition) {
	name := kd.Name
	if kd.IsWildcard {
		name = "*"
	}
	b.WriteString(name)
	if kd.IsOptional {
		b.WriteString("?")
	}
	b.WriteString(": ")
	b.WriteString(typeSignature(kd.Type))

	if kd.DefaultValue != nil {
		fmt.Fprintf(b, " = %s", kd.DefaultValue.Text)
	}
	for _, ann := range kd.Annotations {
		fmt.Fprintf(b, " @%s", ann.Name)
	}
}

// typeSignature renders a CSLType as a compact signature: arrays as
// "[elem]", unions joined by " | ", enums as "prim(values)", any{} and
// any[] as "table" and "array", and nested tables by summarizing their key
// count rather than expanding them inline.
func typeSignature(t parser.CSLType) string {
	switch v := t.(type) {
	case *parser.PrimitiveType:
		return primitiveSignature(v)
	case *parser.TableType:
		return tableSignature(v)
	case *parser.ArrayType:
		return fmt.Sprintf("[%s]", typeSignature(v.ElementType))
	case *parser.UnionType:
		parts := make([]string, len(v.MemberTypes))
		for i, m := range v.MemberTypes {
			parts[i] = typeSignature(m)
		}
		return strings.Join(parts, " | ")
	case *parser.AnyTableType:
		return "table"
	case *parser.AnyArrayType:
		return "array"
	case *parser.InvalidType:
		return "invalid"
	default:
		return "unknown"
	}
}

func primitiveSignature(p *parser.PrimitiveType) string {
	if len(p.AllowedValues) == 0 {
		return p.Prim.String()
	}
	values := make([]string, len(p.AllowedValues))
	for i, v := range p.AllowedValues {
		values[i] = v.Text
	}
	return fmt.Sprintf("%s(%s)", p.Prim.String(), strings.Join(values, ", "))
}

func tableSignature(t *parser.TableType) string {
	count := len(t.ExplicitKeys)
	if t.WildcardKey != nil {
		count++
	}
	switch count {
	case 0:
		return "{}"
	case 1:
		return "{ 1 key }"
	default:
		return fmt.Sprintf("{ %d keys }", count)
	}
}
