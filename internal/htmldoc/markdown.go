package htmldoc

import (
	"fmt"
	"strings"

	"github.com/csl-lang/csl/internal/parser"
	"github.com/csl-lang/csl/internal/printer"
)

// GenerateMarkdown renders each schema as a flat per-schema Markdown
// file, keyed by "<slug>.md", suitable for README embedding. Unlike
// Generate's page-per-table HTML site, every nested table is rendered
// inline in one file, depth-first.
func GenerateMarkdown(schemas []*parser.ConfigSchema) map[string]string {
	out := make(map[string]string, len(schemas))
	for _, schema := range schemas {
		out[slugify(schema.Name)+".md"] = renderSchemaMarkdown(schema)
	}
	return out
}

func renderSchemaMarkdown(schema *parser.ConfigSchema) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", schema.Name)
	writeTableMarkdown(&b, schema.Name, schema.RootTable, 2)

	b.WriteString("## Source\n\n```csl\n")
	b.WriteString(printer.Print([]*parser.ConfigSchema{schema}))
	b.WriteString("```\n")
	return b.String()
}

func writeTableMarkdown(b *strings.Builder, heading string, table *parser.TableType, level int) {
	fmt.Fprintf(b, "%s %s\n\n", strings.Repeat("#", level), heading)

	keys := append([]*parser.KeyDefinition(nil), table.ExplicitKeys...)
	if len(keys) == 0 && table.WildcardKey == nil {
		b.WriteString("No keys defined.\n\n")
	} else {
		b.WriteString("| Key | Type | Required | Default | Annotations |\n")
		b.WriteString("|-----|------|----------|---------|-------------|\n")
		for _, kd := range keys {
			writeKeyRowMarkdown(b, kd.Name, kd)
		}
		if table.WildcardKey != nil {
			writeKeyRowMarkdown(b, "*", table.WildcardKey)
		}
		b.WriteString("\n")
	}

	if len(table.Constraints) > 0 {
		fmt.Fprintf(b, "%s Constraints\n\n", strings.Repeat("#", level+1))
		for _, c := range table.Constraints {
			fmt.Fprintf(b, "- `%s`\n", constraintText(c))
		}
		b.WriteString("\n")
	}

	for _, kd := range keys {
		if nested, ok := kd.Type.(*parser.TableType); ok {
			writeTableMarkdown(b, heading+"."+kd.Name, nested, level+1)
		} else if arr, ok := kd.Type.(*parser.ArrayType); ok {
			if nested, ok := arr.ElementType.(*parser.TableType); ok {
				writeTableMarkdown(b, heading+"."+kd.Name+"[]", nested, level+1)
			}
		}
	}
}

func writeKeyRowMarkdown(b *strings.Builder, name string, kd *parser.KeyDefinition) {
	label, _ := typeLabel(kd.Type)
	required := "yes"
	if kd.IsOptional {
		required = "no"
	}
	def := "-"
	if kd.DefaultValue != nil {
		def = kd.DefaultValue.Text
	}
	ann := strings.Join(annotationChips(kd.Annotations), " ")
	if ann == "" {
		ann = "-"
	}
	fmt.Fprintf(b, "| `%s` | `%s` | %s | `%s` | %s |\n", name, label, required, def, ann)
}
