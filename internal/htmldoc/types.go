// Package htmldoc renders a list of parsed CSL schemas into a static HTML
// documentation site (plus a supplemental Markdown rendering), entirely
// in memory: callers decide whether and where to write the result.
package htmldoc

import "github.com/csl-lang/csl/internal/parser"

// Config carries the project-level metadata that decorates every
// generated page. All fields are optional; zero values degrade to plain
// placeholders rather than errors.
type Config struct {
	ProjectName        string
	ProjectVersion      string
	ProjectDescription string
	BaseURL             string
}

// page is one planned output page: the schema root, or a table reachable
// from it through an explicit key, a wildcard key, or an array of
// either. Pages are addressed by PathSegments, the chain of key names
// (or "*"/"*[]" placeholders) from the schema root.
type page struct {
	Schema       *parser.ConfigSchema
	Table        *parser.TableType
	PathSegments []string
	ParentName   string // last concrete key name above a wildcard page, for the placeholder identifier
	Children     []*page
}

func (p *page) isRoot() bool { return len(p.PathSegments) == 0 }

// slug is the filesystem- and anchor-safe identifier for this page.
func (p *page) slug() string {
	if p.isRoot() {
		return slugify(p.Schema.Name)
	}
	parts := make([]string, 0, len(p.PathSegments))
	for _, seg := range p.PathSegments {
		parts = append(parts, segmentSlug(seg))
	}
	return slugify(p.Schema.Name) + "-" + joinDash(parts)
}

// fileName is the page's file name within the generated output map.
func (p *page) fileName() string {
	return "schema-" + p.slug() + ".html"
}

// displayPath is the human-readable breadcrumb for this page, e.g.
// "db.credentials" or "services.*".
func (p *page) displayPath() string {
	if p.isRoot() {
		return p.Schema.Name
	}
	return p.Schema.Name + "." + joinDot(p.PathSegments)
}

// depth is the nesting level: 0 for the schema root.
func (p *page) depth() int { return len(p.PathSegments) }

func joinDash(parts []string) string {
	out := ""
	for i, s := range parts {
		if i > 0 {
			out += "-"
		}
		out += s
	}
	return out
}

func joinDot(parts []string) string {
	out := ""
	for i, s := range parts {
		if i > 0 {
			out += "."
		}
		out += s
	}
	return out
}
