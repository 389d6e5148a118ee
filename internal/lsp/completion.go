package lsp

import (
	"sort"
	"strings"

	"github.com/csl-lang/csl/internal/lexer"
	"github.com/csl-lang/csl/internal/parser"
)

// CompletionKind mirrors the LSP CompletionItemKind values this package
// produces, numbered the same way go.lsp.dev/protocol does so handlers.go
// can cast directly.
type CompletionKind int

const (
	CompletionKindField    CompletionKind = 5
	CompletionKindKeyword  CompletionKind = 14
	CompletionKindTypeName CompletionKind = 7
	CompletionKindSnippet  CompletionKind = 15
)

// CompletionItem is a candidate insertion, generalizing the teacher's
// tooling.CompletionContext-driven CompletionItem to CSL's table-key
// model.
type CompletionItem struct {
	Label         string
	Kind          CompletionKind
	Detail        string
	InsertText    string
	InsertIsSnippet bool
}

var builtinTypes = []string{"string", "number", "boolean", "datetime", "duration"}

var keywords = []string{"config", "constraints", "conflicts", "with", "requires", "validate", "any", "true", "false"}

// Complete builds the completion list for pos in entry: when the
// preceding character is a dot, it offers the keys of the innermost
// table at that position; otherwise it offers keys of the deepest
// enclosing table plus built-in types and keywords, matching whatever
// the user has already typed as a prefix.
func Complete(entry *Entry, pos lexer.Position, triggerChar string) []CompletionItem {
	prefix := currentWordPrefix(entry.Text, pos)

	table := deepestTableAt(entry.Schemas, pos)
	var items []CompletionItem

	if table != nil {
		items = append(items, fieldCompletions(table)...)
	}

	if triggerChar != "." {
		items = append(items, builtinCompletions()...)
	}

	return filterByPrefix(items, prefix)
}

func fieldCompletions(table *parser.TableType) []CompletionItem {
	items := make([]CompletionItem, 0, len(table.ExplicitKeys))
	for _, kd := range table.ExplicitKeys {
		items = append(items, fieldCompletion(kd))
	}
	return items
}

func fieldCompletion(kd *parser.KeyDefinition) CompletionItem {
	return CompletionItem{
		Label:      kd.Name,
		Kind:       CompletionKindField,
		Detail:     keySignature(kd),
		InsertText: kd.Name,
	}
}

func builtinCompletions() []CompletionItem {
	items := make([]CompletionItem, 0, len(builtinTypes)+len(keywords))
	for _, t := range builtinTypes {
		items = append(items, CompletionItem{
			Label:      t,
			Kind:       CompletionKindTypeName,
			Detail:     "built-in type",
			InsertText: t,
		})
	}
	for _, k := range keywords {
		items = append(items, CompletionItem{
			Label:      k,
			Kind:       CompletionKindKeyword,
			Detail:     "keyword",
			InsertText: k,
		})
	}
	return items
}

func filterByPrefix(items []CompletionItem, prefix string) []CompletionItem {
	if prefix == "" {
		sortCompletions(items)
		return items
	}
	var out []CompletionItem
	for _, it := range items {
		if strings.HasPrefix(it.Label, prefix) {
			out = append(out, it)
		}
	}
	sortCompletions(out)
	return out
}

func sortCompletions(items []CompletionItem) {
	sort.Slice(items, func(i, j int) bool { return items[i].Label < items[j].Label })
}

// currentWordPrefix scans backward from pos over the line text for the
// identifier-ish run immediately preceding the cursor.
func currentWordPrefix(text string, pos lexer.Position) string {
	lines := strings.Split(text, "\n")
	if int(pos.Line) >= len(lines) {
		return ""
	}
	line := lines[pos.Line]
	col := int(pos.Column)
	if col > len(line) {
		col = len(line)
	}
	start := col
	for start > 0 && isWordByte(line[start-1]) {
		start--
	}
	return line[start:col]
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
