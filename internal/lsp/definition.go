package lsp

import (
	"github.com/csl-lang/csl/internal/lexer"
	"github.com/csl-lang/csl/internal/parser"
)

// tokenAt returns the index of the token whose region contains pos. If
// none does (the cursor sits just past the last scanned token, the usual
// case for completion), it returns the last token ending at or before
// pos instead.
func tokenAt(tokens []lexer.Token, pos lexer.Position) (int, bool) {
	for i, tok := range tokens {
		if tok.Range.Contains(pos) {
			return i, true
		}
	}
	best := -1
	for i, tok := range tokens {
		if tok.Range.End.LessEqual(pos) {
			best = i
		}
	}
	return best, best >= 0
}

// definitionAt resolves the token↦definition map entry for the token at
// pos, if pos sits on a resolved identifier reference.
func definitionAt(entry *Entry, pos lexer.Position) *parser.Definition {
	idx, ok := tokenAt(entry.TokensNoComments, pos)
	if !ok {
		return nil
	}
	return entry.TokenDefs[idx]
}

// deepestTableAt descends a schema's type tree to the innermost
// TableType whose region contains pos, the table completion descends
// into to prefix-match keys.
func deepestTableAt(schemas []*parser.ConfigSchema, pos lexer.Position) *parser.TableType {
	var best *parser.TableType
	for _, schema := range schemas {
		if schema.RootTable == nil || !schema.RootTable.Region().Contains(pos) {
			continue
		}
		best = schema.RootTable
		descendTable(schema.RootTable, pos, &best)
	}
	return best
}

func descendTable(table *parser.TableType, pos lexer.Position, best **parser.TableType) {
	for _, kd := range table.ExplicitKeys {
		descendType(kd.Type, pos, best)
	}
	if table.WildcardKey != nil {
		descendType(table.WildcardKey.Type, pos, best)
	}
}

func descendType(t parser.CSLType, pos lexer.Position, best **parser.TableType) {
	switch v := t.(type) {
	case *parser.TableType:
		if v.Region().Contains(pos) {
			*best = v
			descendTable(v, pos, best)
		}
	case *parser.ArrayType:
		descendType(v.ElementType, pos, best)
	case *parser.UnionType:
		for _, m := range v.MemberTypes {
			descendType(m, pos, best)
		}
	}
}

// keyDeclAt finds the KeyDefinition whose own name region (not a
// reference to it) contains pos.
func keyDeclAt(table *parser.TableType, pos lexer.Position) *parser.KeyDefinition {
	if table == nil {
		return nil
	}
	for _, kd := range table.ExplicitKeys {
		if kd.NameRegion.Contains(pos) {
			return kd
		}
		if found := keyDeclInType(kd.Type, pos); found != nil {
			return found
		}
	}
	if table.WildcardKey != nil {
		if table.WildcardKey.NameRegion.Contains(pos) {
			return table.WildcardKey
		}
		if found := keyDeclInType(table.WildcardKey.Type, pos); found != nil {
			return found
		}
	}
	return nil
}

func keyDeclInType(t parser.CSLType, pos lexer.Position) *parser.KeyDefinition {
	switch v := t.(type) {
	case *parser.TableType:
		return keyDeclAt(v, pos)
	case *parser.ArrayType:
		return keyDeclInType(v.ElementType, pos)
	case *parser.UnionType:
		for _, m := range v.MemberTypes {
			if found := keyDeclInType(m, pos); found != nil {
				return found
			}
		}
	}
	return nil
}
