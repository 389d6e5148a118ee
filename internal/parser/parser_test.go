package parser

import (
	"testing"

	"github.com/csl-lang/csl/internal/lexer"
)

func parse(t *testing.T, src string) *Result {
	t.Helper()
	l := lexer.New(src, "test.csl")
	toks, _ := l.ScanTokens()
	return Parse(toks)
}

func TestMinimalSchema(t *testing.T) {
	res := parse(t, `config App { name: string; }`)
	if len(res.Schemas) != 1 {
		t.Fatalf("expected 1 schema, got %d", len(res.Schemas))
	}
	schema := res.Schemas[0]
	if schema.Name != "App" {
		t.Fatalf("expected schema name App, got %q", schema.Name)
	}
	if len(schema.RootTable.ExplicitKeys) != 1 {
		t.Fatalf("expected 1 key, got %d", len(schema.RootTable.ExplicitKeys))
	}
	kd := schema.RootTable.ExplicitKeys[0]
	if kd.Name != "name" {
		t.Fatalf("expected key name 'name', got %q", kd.Name)
	}
	pt, ok := kd.Type.(*PrimitiveType)
	if !ok || pt.Prim != PrimitiveString {
		t.Fatalf("expected string primitive type, got %#v", kd.Type)
	}
	if res.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
}

func TestEnumDefaultAndOptional(t *testing.T) {
	res := parse(t, `config App {
		level?: "low", "medium", "high" = "medium";
	}`)
	if res.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	kd := res.Schemas[0].RootTable.ExplicitKeys[0]
	if !kd.IsOptional {
		t.Fatalf("expected key to be optional")
	}
	pt, ok := kd.Type.(*PrimitiveType)
	if !ok {
		t.Fatalf("expected primitive type, got %#v", kd.Type)
	}
	if len(pt.AllowedValues) != 3 {
		t.Fatalf("expected 3 allowed values, got %d", len(pt.AllowedValues))
	}
	if kd.DefaultValue == nil || kd.DefaultValue.Text != `"medium"` {
		t.Fatalf("unexpected default value %#v", kd.DefaultValue)
	}
}

func TestConflictingUnionReportsMixing(t *testing.T) {
	res := parse(t, `config App {
		target: { host: string; } | { addr: string; } | string;
	}`)
	if !res.Diagnostics.HasErrors() {
		t.Fatalf("expected a union-mixing diagnostic")
	}
	found := false
	for _, d := range res.Diagnostics {
		if d.Code == CodeUnionMix {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CodeUnionMix among diagnostics: %v", res.Diagnostics)
	}
}

func TestUnionMixingPrimitiveWithItsOwnLiteralReportsMixing(t *testing.T) {
	res := parse(t, `config A { x: string | "dev"; }`)
	if !res.Diagnostics.HasErrors() {
		t.Fatalf("expected a union-mixing diagnostic")
	}
	found := false
	for _, d := range res.Diagnostics {
		if d.Code == CodeUnionMix {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CodeUnionMix among diagnostics: %v", res.Diagnostics)
	}
}

func TestUnionMixingLiteralWithDifferentPrimitiveIsAllowed(t *testing.T) {
	res := parse(t, `config A { x: string | 1, 2, 3; }`)
	if res.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
}

func TestDottedConstraintReference(t *testing.T) {
	res := parse(t, `config App {
		db: {
			host: string;
			port: number;
		}
		constraints {
			validate db.port > 0;
		}
	}`)
	if res.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
}

func TestWildcardWithExplicitOverride(t *testing.T) {
	res := parse(t, `config App {
		services: {
			*: { port: number; };
			auth: { port: number; timeout: duration; };
		};
	}`)
	if res.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	servicesKD := res.Schemas[0].RootTable.Key("services")
	if servicesKD == nil {
		t.Fatalf("expected a 'services' key")
	}
	inner, ok := servicesKD.Type.(*TableType)
	if !ok {
		t.Fatalf("expected services to be a table, got %#v", servicesKD.Type)
	}
	if inner.WildcardKey == nil {
		t.Fatalf("expected a wildcard key on services")
	}
	if inner.Key("auth") == nil {
		t.Fatalf("expected an explicit 'auth' key alongside the wildcard")
	}
}

func TestUnterminatedStringRecovers(t *testing.T) {
	res := parse(t, "config App {\n\tname: string = \"oops\n}")
	if len(res.Schemas) != 1 {
		t.Fatalf("expected the parser to still produce 1 schema, got %d", len(res.Schemas))
	}
}

func TestDuplicateConstraintsBlockIsFlagged(t *testing.T) {
	res := parse(t, `config App {
		name: string;
		constraints { validate name; }
		constraints { validate name; }
	}`)
	hasDup := false
	for _, d := range res.Diagnostics {
		if d.Code == CodeDuplicateBlock {
			hasDup = true
		}
	}
	if !hasDup {
		t.Fatalf("expected a duplicate-constraints-block diagnostic: %v", res.Diagnostics)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	res := parse(t, `config App {
		a: number;
		b: number;
		constraints {
			validate a + b * 2 == 10;
		}
	}`)
	if res.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	vc := res.Schemas[0].RootTable.Constraints[0].(*ValidateConstraint)
	eq, ok := vc.Expr.(*BinaryExpr)
	if !ok || eq.Op != "==" {
		t.Fatalf("expected top-level ==, got %#v", vc.Expr)
	}
	add, ok := eq.LHS.(*BinaryExpr)
	if !ok || add.Op != "+" {
		t.Fatalf("expected '+' to bind looser than '*', got %#v", eq.LHS)
	}
	mul, ok := add.RHS.(*BinaryExpr)
	if !ok || mul.Op != "*" {
		t.Fatalf("expected '*' on the right of '+', got %#v", add.RHS)
	}
}

func TestRequiresConstraintArrow(t *testing.T) {
	res := parse(t, `config App {
		useTLS: boolean = false;
		certPath?: string;
		constraints {
			requires useTLS => certPath;
		}
	}`)
	if res.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	dc, ok := res.Schemas[0].RootTable.Constraints[0].(*DependencyConstraint)
	if !ok {
		t.Fatalf("expected a DependencyConstraint, got %#v", res.Schemas[0].RootTable.Constraints[0])
	}
	if _, ok := dc.Dependent.(*IdentifierExpr); !ok {
		t.Fatalf("expected dependent to be an identifier")
	}
}

func TestAnnotationTargetMismatchIsFlagged(t *testing.T) {
	res := parse(t, `config App {
		name: string @min(1);
	}`)
	found := false
	for _, d := range res.Diagnostics {
		if d.Code == CodeAnnotationTarget {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CodeAnnotationTarget: %v", res.Diagnostics)
	}
}

func TestDefaultLiteralTypeMismatchIsFlagged(t *testing.T) {
	res := parse(t, `config App {
		port: number = "not a number";
	}`)
	found := false
	for _, d := range res.Diagnostics {
		if d.Code == CodeDefaultMismatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CodeDefaultMismatch: %v", res.Diagnostics)
	}
}

func TestUnknownIdentifierInConstraintIsFlagged(t *testing.T) {
	res := parse(t, `config App {
		name: string;
		constraints {
			validate doesNotExist;
		}
	}`)
	found := false
	for _, d := range res.Diagnostics {
		if d.Code == CodeUnknownIdent {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CodeUnknownIdent: %v", res.Diagnostics)
	}
}

func TestTokenDefinitionMapCoversKeyNames(t *testing.T) {
	l := lexer.New(`config App { name: string; }`, "test.csl")
	toks, _ := l.ScanTokens()
	res := Parse(toks)
	nameIdx := -1
	for _, tok := range toks {
		if tok.Value == "name" {
			nameIdx = tok.Index
		}
	}
	if nameIdx == -1 {
		t.Fatalf("could not find 'name' token")
	}
	def, ok := res.TokenDefs[nameIdx]
	if !ok || def.Key == nil || def.Key.Name != "name" {
		t.Fatalf("expected a key definition entry for 'name' token, got %#v", def)
	}
}

func TestFunctionCallWithListArgument(t *testing.T) {
	res := parse(t, `config App {
		items: { name: string; id: string; }[];
		other: { name: string; id: string; }[];
		constraints {
			validate subset(items, other, [items, other]);
		}
	}`)
	if res.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	vc := res.Schemas[0].RootTable.Constraints[0].(*ValidateConstraint)
	call, ok := vc.Expr.(*FunctionCallExpr)
	if !ok || call.FuncName != "subset" {
		t.Fatalf("expected a subset() call, got %#v", vc.Expr)
	}
	if len(call.Args) != 3 {
		t.Fatalf("expected 3 arguments, got %d", len(call.Args))
	}
	if len(call.Args[2].List) != 2 {
		t.Fatalf("expected the third argument to be a 2-element list, got %#v", call.Args[2])
	}
}

func TestSubsetWithPropertyListOnNonTableArraysIsFlagged(t *testing.T) {
	res := parse(t, `config App {
		a: string;
		b: string;
		constraints {
			validate subset(a, b, [a, b]);
		}
	}`)
	found := false
	for _, d := range res.Diagnostics {
		if d.Code == CodeSubsetMisuse {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CodeSubsetMisuse: %v", res.Diagnostics)
	}
}

func TestTernaryExpression(t *testing.T) {
	res := parse(t, `config App {
		a: boolean = true;
		b: number;
		constraints {
			validate a ? b > 0 : b == 0;
		}
	}`)
	if res.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	vc := res.Schemas[0].RootTable.Constraints[0].(*ValidateConstraint)
	if _, ok := vc.Expr.(*TernaryExpr); !ok {
		t.Fatalf("expected a ternary expression, got %#v", vc.Expr)
	}
}
