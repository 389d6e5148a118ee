package htmldoc

import (
	"fmt"
	"strings"

	"github.com/csl-lang/csl/internal/parser"
)

// typeLabel returns a short human label and a list of badge strings for
// t, mirroring the keys-table "type label (with badges for Union/Enum/
// AnyTable/AnyArray)" contract.
func typeLabel(t parser.CSLType) (label string, badges []string) {
	switch v := t.(type) {
	case *parser.PrimitiveType:
		if len(v.AllowedValues) > 0 {
			vals := make([]string, len(v.AllowedValues))
			for i, lit := range v.AllowedValues {
				vals[i] = lit.Text
			}
			return strings.Join(vals, " | "), []string{"enum"}
		}
		return v.Prim.String(), nil
	case *parser.TableType:
		return "table", nil
	case *parser.ArrayType:
		inner, innerBadges := typeLabel(v.ElementType)
		return inner + "[]", innerBadges
	case *parser.UnionType:
		parts := make([]string, len(v.MemberTypes))
		for i, m := range v.MemberTypes {
			parts[i], _ = typeLabel(m)
		}
		return strings.Join(parts, " | "), []string{"union"}
	case *parser.AnyTableType:
		return "any{}", []string{"any-table"}
	case *parser.AnyArrayType:
		return "any[]", []string{"any-array"}
	default:
		return "invalid", nil
	}
}

// isTableLinked reports whether t's value type (directly, or through an
// array) is a table, and so should link to a child page.
func isTableLinked(t parser.CSLType) bool {
	switch v := t.(type) {
	case *parser.TableType:
		return true
	case *parser.ArrayType:
		_, ok := v.ElementType.(*parser.TableType)
		return ok
	default:
		return false
	}
}

// exprText renders a constraint/annotation expression to CSL source
// text. It mirrors internal/printer's plain type-switch traversal idiom
// but stays local to this package since documentation rendering needs
// no indentation or key-ordering context, just a flat expression string.
func exprText(e parser.Expr) string {
	switch v := e.(type) {
	case *parser.LiteralExpr:
		return v.Value.Text
	case *parser.IdentifierExpr:
		return v.Name
	case *parser.UnaryExpr:
		return v.Op + exprText(v.Operand)
	case *parser.BinaryExpr:
		if v.Op == "." {
			return exprText(v.LHS) + "." + exprText(v.RHS)
		}
		return exprText(v.LHS) + " " + v.Op + " " + exprText(v.RHS)
	case *parser.TernaryExpr:
		return exprText(v.Cond) + " ? " + exprText(v.Then) + " : " + exprText(v.Else)
	case *parser.FunctionCallExpr:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = functionArgText(a)
		}
		return v.FuncName + "(" + strings.Join(args, ", ") + ")"
	case *parser.AnnotationExpr:
		return exprText(v.Target) + " @" + v.Annotation.Name
	default:
		return ""
	}
}

func functionArgText(arg *parser.FunctionArgExpr) string {
	if arg.List != nil {
		items := make([]string, len(arg.List))
		for i, e := range arg.List {
			items[i] = exprText(e)
		}
		return "[" + strings.Join(items, ", ") + "]"
	}
	return exprText(arg.Value)
}

// constraintText renders one constraints-block entry as a single
// statement, e.g. "requires useTLS => certPath".
func constraintText(c parser.Constraint) string {
	switch v := c.(type) {
	case *parser.ConflictConstraint:
		return fmt.Sprintf("conflicts %s with %s", exprText(v.First), exprText(v.Second))
	case *parser.DependencyConstraint:
		return fmt.Sprintf("requires %s => %s", exprText(v.Dependent), exprText(v.Condition))
	case *parser.ValidateConstraint:
		return "validate " + exprText(v.Expr)
	default:
		return ""
	}
}

func annotationChips(anns []*parser.Annotation) []string {
	chips := make([]string, len(anns))
	for i, a := range anns {
		if len(a.Args) == 0 {
			chips[i] = "@" + a.Name
			continue
		}
		args := make([]string, len(a.Args))
		for j, e := range a.Args {
			args[j] = exprText(e)
		}
		chips[i] = "@" + a.Name + "(" + strings.Join(args, ", ") + ")"
	}
	return chips
}
