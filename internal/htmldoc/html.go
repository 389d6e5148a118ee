package htmldoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"sort"

	"github.com/csl-lang/csl/internal/parser"
	"github.com/csl-lang/csl/internal/printer"
)

// keyRow is one rendered row of a page's keys table.
type keyRow struct {
	Name        string
	Anchor      string
	TypeLabel   string
	Badges      []string
	Required    bool
	Default     string
	Annotations []string
	LinkHref    string
}

// structureNode is the JSON-serializable shape of a page's descendant
// structure graph, laid out client-side by site.js.
type structureNode struct {
	Name     string           `json:"name"`
	Path     string           `json:"path"`
	Href     string           `json:"href"`
	Children []*structureNode `json:"children,omitempty"`
}

// Generate renders every schema into an in-memory path→content map
// containing index.html, one schema-<slug>.html per schema root, one
// schema-<slug>-<path>.html per nested table page, and static
// site.css/site.js assets. If two pages would get the same file name,
// Generate returns an error naming both pages and their source regions.
func Generate(schemas []*parser.ConfigSchema, cfg *Config) (map[string]string, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	out := map[string]string{
		"site.css": siteCSS,
		"site.js":  siteJS,
	}

	seen := map[string]*page{}
	var roots []*page
	for _, schema := range schemas {
		root, pages := planSchema(schema)
		roots = append(roots, root)

		for _, p := range pages {
			if prev, dup := seen[p.fileName()]; dup {
				return nil, fmt.Errorf("pages %s (%s) and %s (%s) both map to %s",
					prev.displayPath(), prev.Table.Reg, p.displayPath(), p.Table.Reg, p.fileName())
			}
			seen[p.fileName()] = p
			content, err := renderPage(tmpl, p, cfg)
			if err != nil {
				return nil, fmt.Errorf("rendering %s: %w", p.fileName(), err)
			}
			out[p.fileName()] = content
		}
	}

	indexContent, err := renderIndex(tmpl, roots, cfg)
	if err != nil {
		return nil, fmt.Errorf("rendering index: %w", err)
	}
	out["index.html"] = indexContent

	return out, nil
}

func loadTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"json": func(v interface{}) template.JS {
			data, _ := json.Marshal(v)
			return template.JS(data)
		},
	}
	tmpl := template.New("").Funcs(funcMap)
	tmpl, err := tmpl.Parse(indexTemplate)
	if err != nil {
		return nil, err
	}
	tmpl, err = tmpl.Parse(pageTemplate)
	if err != nil {
		return nil, err
	}
	return tmpl, nil
}

func renderIndex(tmpl *template.Template, roots []*page, cfg *Config) (string, error) {
	type schemaLink struct {
		Name string
		Href string
	}
	links := make([]schemaLink, len(roots))
	for i, r := range roots {
		links[i] = schemaLink{Name: r.Schema.Name, Href: r.fileName()}
	}
	data := map[string]interface{}{
		"Config":  cfg,
		"Schemas": links,
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "index", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderPage(tmpl *template.Template, p *page, cfg *Config) (string, error) {
	rows := keyRowsFor(p)
	graph := structureGraphFor(p)

	data := map[string]interface{}{
		"Config":      cfg,
		"IsRoot":      p.isRoot(),
		"SchemaName":  p.Schema.Name,
		"DisplayPath": p.displayPath(),
		"Depth":       p.depth(),
		"Rows":        rows,
		"Constraints": constraintRows(p.Table),
		"Graph":       graph,
		"Source":      canonicalSourceFor(p),
		"Placeholder": wildcardPageNote(p),
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "page", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func keyRowsFor(p *page) []keyRow {
	keys := append([]*parser.KeyDefinition(nil), p.Table.ExplicitKeys...)
	sort.Slice(keys, func(i, j int) bool { return keys[i].Name < keys[j].Name })

	rows := make([]keyRow, 0, len(keys)+1)
	for _, kd := range keys {
		rows = append(rows, keyRowFor(p, kd.Name, kd))
	}
	if p.Table.WildcardKey != nil {
		placeholderName := wildcardPlaceholder(p.Schema.Name)
		if !p.isRoot() {
			placeholderName = wildcardPlaceholder(p.PathSegments[len(p.PathSegments)-1])
		}
		row := keyRowFor(p, placeholderName, p.Table.WildcardKey)
		row.Anchor = "k-wildcard"
		rows = append(rows, row)
	}
	return rows
}

func keyRowFor(p *page, displayName string, kd *parser.KeyDefinition) keyRow {
	label, badges := typeLabel(kd.Type)
	defaultText := ""
	if kd.DefaultValue != nil {
		defaultText = kd.DefaultValue.Text
	}
	row := keyRow{
		Name:        displayName,
		Anchor:      "k-" + slugify(kd.Name),
		TypeLabel:   label,
		Badges:      badges,
		Required:    !kd.IsOptional,
		Default:     defaultText,
		Annotations: annotationChips(kd.Annotations),
	}
	if isTableLinked(kd.Type) {
		for _, child := range p.Children {
			if len(child.PathSegments) == len(p.PathSegments)+1 {
				last := child.PathSegments[len(child.PathSegments)-1]
				if last == kd.Name || last == kd.Name+"[]" {
					row.LinkHref = child.fileName()
					break
				}
			}
		}
	}
	return row
}

func constraintRows(t *parser.TableType) []string {
	rows := make([]string, len(t.Constraints))
	for i, c := range t.Constraints {
		rows[i] = constraintText(c)
	}
	return rows
}

func structureGraphFor(p *page) *structureNode {
	return buildStructureNode(p)
}

func buildStructureNode(p *page) *structureNode {
	node := &structureNode{
		Name: lastSegmentOrSchema(p),
		Path: p.displayPath(),
		Href: p.fileName(),
	}
	for _, c := range p.Children {
		node.Children = append(node.Children, buildStructureNode(c))
	}
	return node
}

func lastSegmentOrSchema(p *page) string {
	if p.isRoot() {
		return p.Schema.Name
	}
	return p.PathSegments[len(p.PathSegments)-1]
}

// wildcardPageNote returns the synthesized dynamic-key identifier for a
// page reached through a wildcard, or "" for an ordinary page.
func wildcardPageNote(p *page) string {
	if p.isRoot() {
		return ""
	}
	last := p.PathSegments[len(p.PathSegments)-1]
	if last != "*" && last != "*[]" {
		return ""
	}
	return wildcardPlaceholder(p.ParentName)
}

func canonicalSourceFor(p *page) string {
	if !p.isRoot() {
		return ""
	}
	return printer.Print([]*parser.ConfigSchema{p.Schema})
}
