package lsp

import (
	"sort"

	"github.com/csl-lang/csl/internal/lexer"
	"github.com/csl-lang/csl/internal/parser"
)

// Symbol is whatever a cursor position resolves to: a key or schema's
// own declaration, or — via the token↦definition map — the declaration
// a reference names.
type Symbol struct {
	Schema *parser.ConfigSchema
	Key    *parser.KeyDefinition
}

// SymbolAt resolves the symbol at pos: first as a reference through
// entry's token↦definition map, falling back to pos landing directly on
// a key or schema's own name, per SPEC_FULL §4.6 "definition"/"hover".
func SymbolAt(entry *Entry, pos lexer.Position) *Symbol {
	if def := definitionAt(entry, pos); def != nil {
		return &Symbol{Schema: def.Schema, Key: def.Key}
	}
	for _, schema := range entry.Schemas {
		if schema.NameRegion.Contains(pos) {
			return &Symbol{Schema: schema}
		}
		if kd := keyDeclAt(schema.RootTable, pos); kd != nil {
			return &Symbol{Key: kd}
		}
	}
	return nil
}

// References returns, in ascending token-index order, every token mapped
// to sym's definition, optionally including the declaration itself.
func References(entry *Entry, sym *Symbol, includeDeclaration bool) []int {
	var out []int
	for idx, def := range entry.TokenDefs {
		if sameDefinition(def, sym) {
			out = append(out, idx)
		}
	}
	if includeDeclaration {
		if idx, ok := declarationToken(entry, sym); ok {
			out = append(out, idx)
		}
	}
	sort.Ints(out)
	return out
}

func sameDefinition(def *parser.Definition, sym *Symbol) bool {
	if def == nil || sym == nil {
		return false
	}
	if sym.Key != nil {
		return def.Key == sym.Key
	}
	if sym.Schema != nil {
		return def.Schema == sym.Schema
	}
	return false
}

func declarationToken(entry *Entry, sym *Symbol) (int, bool) {
	switch {
	case sym.Key != nil:
		return tokenAt(entry.TokensNoComments, sym.Key.NameRegion.Start)
	case sym.Schema != nil:
		return tokenAt(entry.TokensNoComments, sym.Schema.NameRegion.Start)
	}
	return 0, false
}

// RenameEdit is a single occurrence to replace with NewText.
type RenameEdit struct {
	Region  lexer.Region
	NewText string
}

// Rename produces the edits that replace every occurrence of sym
// (including its declaration) with newName, back-ticking it if it is
// not a bare identifier, per SPEC_FULL §4.6 "rename".
func Rename(entry *Entry, sym *Symbol, newName string) []RenameEdit {
	insert := newName
	if !lexer.IsBareIdentifier(newName) {
		insert = "`" + newName + "`"
	}

	indices := References(entry, sym, true)
	edits := make([]RenameEdit, 0, len(indices))
	for _, idx := range indices {
		edits = append(edits, RenameEdit{
			Region:  entry.TokensNoComments[idx].Range,
			NewText: insert,
		})
	}
	return edits
}
