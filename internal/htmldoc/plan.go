package htmldoc

import "github.com/csl-lang/csl/internal/parser"

// planSchema walks schema's root table depth-first and returns the flat
// list of pages reachable from it (including the root page itself),
// plus the root page for convenience.
func planSchema(schema *parser.ConfigSchema) (root *page, all []*page) {
	root = &page{Schema: schema, Table: schema.RootTable}
	all = []*page{root}
	walkTable(schema, root, &all)
	return root, all
}

// walkTable discovers child pages of parent by scanning its table's
// explicit keys and wildcard key for nested tables (directly, or as the
// element type of an array), appending discovered pages to all and
// wiring them as parent's children.
func walkTable(schema *parser.ConfigSchema, parent *page, all *[]*page) {
	for _, kd := range parent.Table.ExplicitKeys {
		child := childPageFor(schema, parent, kd.Name, kd.Type, "")
		if child != nil {
			parent.Children = append(parent.Children, child)
			*all = append(*all, child)
			walkTable(schema, child, all)
		}
	}
	if parent.Table.WildcardKey != nil {
		parentName := ""
		if len(parent.PathSegments) > 0 {
			parentName = parent.PathSegments[len(parent.PathSegments)-1]
		} else {
			parentName = parent.Schema.Name
		}
		child := childPageFor(schema, parent, "*", parent.Table.WildcardKey.Type, parentName)
		if child != nil {
			parent.Children = append(parent.Children, child)
			*all = append(*all, child)
			walkTable(schema, child, all)
		}
	}
}

// childPageFor builds a page for a nested table reachable at key name
// keyName with declared type t, or nil if t isn't a table or an array of
// tables. parentName seeds the wildcard placeholder when keyName is "*".
func childPageFor(schema *parser.ConfigSchema, parent *page, keyName string, t parser.CSLType, parentName string) *page {
	segment := keyName
	var table *parser.TableType
	switch v := t.(type) {
	case *parser.TableType:
		table = v
	case *parser.ArrayType:
		inner, ok := v.ElementType.(*parser.TableType)
		if !ok {
			return nil
		}
		table = inner
		segment = keyName + "[]"
	default:
		return nil
	}

	segments := make([]string, len(parent.PathSegments), len(parent.PathSegments)+1)
	copy(segments, parent.PathSegments)
	segments = append(segments, segment)

	return &page{
		Schema:       schema,
		Table:        table,
		PathSegments: segments,
		ParentName:   parentName,
	}
}
