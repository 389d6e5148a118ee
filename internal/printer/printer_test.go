package printer

import (
	"strings"
	"testing"

	"github.com/csl-lang/csl/internal/lexer"
	"github.com/csl-lang/csl/internal/parser"
)

func printSource(t *testing.T, src string) string {
	t.Helper()
	l := lexer.New(src, "test.csl")
	toks, _ := l.ScanTokens()
	res := parser.Parse(toks)
	if res.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics parsing fixture: %v", res.Diagnostics)
	}
	return Print(res.Schemas)
}

func TestPrintSortsExplicitKeys(t *testing.T) {
	out := printSource(t, `config App {
		zebra: string;
		apple: string;
	}`)
	appleIdx := strings.Index(out, "apple")
	zebraIdx := strings.Index(out, "zebra")
	if appleIdx == -1 || zebraIdx == -1 || appleIdx > zebraIdx {
		t.Fatalf("expected apple before zebra, got:\n%s", out)
	}
}

func TestPrintPutsWildcardAndConstraintsLast(t *testing.T) {
	out := printSource(t, `config App {
		services: {
			auth: { port: number; };
			*: { port: number; };
			constraints {
				validate auth.port > 0;
			}
		}
	}`)
	authIdx := strings.Index(out, "auth:")
	starIdx := strings.Index(out, "*:")
	constraintsIdx := strings.Index(out, "constraints {")
	if !(authIdx < starIdx && starIdx < constraintsIdx) {
		t.Fatalf("expected explicit key, then wildcard, then constraints, got:\n%s", out)
	}
}

func TestPrintBacktickQuotesNonBareIdentifier(t *testing.T) {
	out := printSource(t, "config App {\n\t`weird name`: string;\n}")
	if !strings.Contains(out, "`weird name`") {
		t.Fatalf("expected a backtick-quoted key, got:\n%s", out)
	}
}

func TestPrintOperatorSpacing(t *testing.T) {
	out := printSource(t, `config App {
		a: number;
		b: number;
		constraints {
			validate a + b == 2;
		}
	}`)
	if !strings.Contains(out, "a + b == 2") {
		t.Fatalf("expected spaced binary operators, got:\n%s", out)
	}
}

func TestPrintAnnotationArgsCommaSeparated(t *testing.T) {
	out := printSource(t, `config App {
		port: number @range(1, 65535);
	}`)
	if !strings.Contains(out, "@range(1, 65535)") {
		t.Fatalf("expected comma-separated annotation args, got:\n%s", out)
	}
}

func TestPrintDefaultValueRoundTrips(t *testing.T) {
	out := printSource(t, `config App {
		level: "low", "medium", "high" = "medium";
	}`)
	if !strings.Contains(out, `= "medium"`) {
		t.Fatalf("expected default value to round-trip, got:\n%s", out)
	}
}
