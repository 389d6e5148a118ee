package htmldoc

import (
	"strings"
	"testing"
)

func TestGenerateMarkdownRendersNestedTablesInline(t *testing.T) {
	schemas := parseSchemas(t, `config App {
		name: string;
		db: {
			host: string;
			port: number = 5432;
		}
		constraints {
			validate name;
		}
	}`)

	out := GenerateMarkdown(schemas)
	md, ok := out["app.md"]
	if !ok {
		t.Fatalf("expected an app.md entry, got keys: %v", keysOf(out))
	}

	if !strings.Contains(md, "# App") {
		t.Errorf("expected a top-level heading, got:\n%s", md)
	}
	if !strings.Contains(md, "App.db") {
		t.Errorf("expected a nested db heading, got:\n%s", md)
	}
	if !strings.Contains(md, "validate name") {
		t.Errorf("expected the constraint to be rendered, got:\n%s", md)
	}
	if !strings.Contains(md, "config App") {
		t.Errorf("expected the embedded canonical source, got:\n%s", md)
	}
}
