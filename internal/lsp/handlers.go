package lsp

import (
	"context"
	"encoding/json"
	"strings"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/csl-lang/csl/internal/format"
	"github.com/csl-lang/csl/internal/htmldoc"
	"github.com/csl-lang/csl/internal/lexer"
)

func toLexerPos(pos protocol.Position) lexer.Position {
	return lexer.Position{Line: pos.Line, Column: pos.Character}
}

func toLSPPosition(pos lexer.Position) protocol.Position {
	return protocol.Position{Line: pos.Line, Character: pos.Column}
}

func toLSPRange(r lexer.Region) protocol.Range {
	return protocol.Range{Start: toLSPPosition(r.Start), End: toLSPPosition(r.End)}
}

func convertSeverity(sev lexer.Severity) protocol.DiagnosticSeverity {
	if sev == lexer.SeverityWarning {
		return protocol.DiagnosticSeverityWarning
	}
	return protocol.DiagnosticSeverityError
}

func convertCompletionKind(kind CompletionKind) protocol.CompletionItemKind {
	switch kind {
	case CompletionKindField:
		return protocol.CompletionItemKindField
	case CompletionKindKeyword:
		return protocol.CompletionItemKindKeyword
	case CompletionKindTypeName:
		return protocol.CompletionItemKindClass
	case CompletionKindSnippet:
		return protocol.CompletionItemKindSnippet
	default:
		return protocol.CompletionItemKindText
	}
}

func (s *Server) docEntry(docURI string) (*Entry, bool) {
	return s.cache.Get(docURI)
}

func (s *Server) handleCompletion(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.CompletionParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse completion params")
	}

	entry, ok := s.docEntry(string(params.TextDocument.URI))
	if !ok {
		return reply(ctx, protocol.CompletionList{}, nil)
	}

	triggerChar := ""
	if params.Context != nil {
		triggerChar = params.Context.TriggerCharacter
	}

	items := Complete(entry, toLexerPos(params.Position), triggerChar)

	lspItems := make([]protocol.CompletionItem, 0, len(items))
	for _, it := range items {
		insertFormat := protocol.InsertTextFormatPlainText
		if it.InsertIsSnippet || strings.Contains(it.InsertText, "$0") || strings.Contains(it.InsertText, "${") {
			insertFormat = protocol.InsertTextFormatSnippet
		}
		lspItems = append(lspItems, protocol.CompletionItem{
			Label:            it.Label,
			Kind:             convertCompletionKind(it.Kind),
			Detail:           it.Detail,
			InsertText:       it.InsertText,
			InsertTextFormat: insertFormat,
		})
	}

	return reply(ctx, protocol.CompletionList{IsIncomplete: false, Items: lspItems}, nil)
}

func (s *Server) handleHover(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.HoverParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse hover params")
	}

	entry, ok := s.docEntry(string(params.TextDocument.URI))
	if !ok {
		return reply(ctx, nil, nil)
	}

	sym := SymbolAt(entry, toLexerPos(params.Position))
	hover := buildHover(sym)
	if hover == nil {
		return reply(ctx, nil, nil)
	}

	return reply(ctx, protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.Markdown, Value: "```\n" + hover.Signature + "\n```"},
	}, nil)
}

func (s *Server) handleDefinition(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DefinitionParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse definition params")
	}

	entry, ok := s.docEntry(string(params.TextDocument.URI))
	if !ok {
		return reply(ctx, nil, nil)
	}

	sym := SymbolAt(entry, toLexerPos(params.Position))
	if sym == nil {
		return reply(ctx, nil, nil)
	}

	idx, ok := declarationToken(entry, sym)
	if !ok {
		return reply(ctx, nil, nil)
	}

	return reply(ctx, protocol.Location{
		URI:   protocol.DocumentURI(entry.URI),
		Range: toLSPRange(entry.TokensNoComments[idx].Range),
	}, nil)
}

func (s *Server) handleReferences(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.ReferenceParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse references params")
	}

	entry, ok := s.docEntry(string(params.TextDocument.URI))
	if !ok {
		return reply(ctx, []protocol.Location{}, nil)
	}

	sym := SymbolAt(entry, toLexerPos(params.Position))
	if sym == nil {
		return reply(ctx, []protocol.Location{}, nil)
	}

	includeDecl := params.Context.IncludeDeclaration
	indices := References(entry, sym, includeDecl)

	locations := make([]protocol.Location, 0, len(indices))
	for _, idx := range indices {
		locations = append(locations, protocol.Location{
			URI:   protocol.DocumentURI(entry.URI),
			Range: toLSPRange(entry.TokensNoComments[idx].Range),
		})
	}
	return reply(ctx, locations, nil)
}

// renameParams mirrors RenameParams, which go.lsp.dev/protocol v0.12.0
// does not expose under a confirmed name.
type renameParams struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
	Position     protocol.Position               `json:"position"`
	NewName      string                          `json:"newName"`
}

func (s *Server) handleRename(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params renameParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse rename params")
	}

	entry, ok := s.docEntry(string(params.TextDocument.URI))
	if !ok {
		return reply(ctx, nil, nil)
	}

	sym := SymbolAt(entry, toLexerPos(params.Position))
	if sym == nil {
		return reply(ctx, nil, nil)
	}

	edits := Rename(entry, sym, params.NewName)
	textEdits := make([]protocol.TextEdit, 0, len(edits))
	for _, e := range edits {
		textEdits = append(textEdits, protocol.TextEdit{Range: toLSPRange(e.Region), NewText: e.NewText})
	}

	result := protocol.WorkspaceEdit{
		Changes: map[protocol.DocumentURI][]protocol.TextEdit{
			protocol.DocumentURI(entry.URI): textEdits,
		},
	}
	return reply(ctx, result, nil)
}

// foldingRangeParams mirrors FoldingRangeParams.
type foldingRangeParams struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
}

// foldingRangeResult mirrors one entry of the FoldingRange response.
type foldingRangeResult struct {
	StartLine uint32 `json:"startLine"`
	EndLine   uint32 `json:"endLine"`
	Kind      string `json:"kind,omitempty"`
}

func (s *Server) handleFoldingRange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params foldingRangeParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse foldingRange params")
	}

	entry, ok := s.docEntry(string(params.TextDocument.URI))
	if !ok {
		return reply(ctx, []foldingRangeResult{}, nil)
	}

	ranges := FoldingRanges(entry.TokensWithComments)
	out := make([]foldingRangeResult, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, foldingRangeResult{StartLine: r.StartLine, EndLine: r.EndLine, Kind: string(r.Kind)})
	}
	return reply(ctx, out, nil)
}

// semanticTokensParams mirrors SemanticTokensParams.
type semanticTokensParams struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
}

// semanticTokensResult mirrors the SemanticTokens response shape.
type semanticTokensResult struct {
	Data []uint32 `json:"data"`
}

func (s *Server) handleSemanticTokensFull(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params semanticTokensParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse semanticTokens params")
	}

	entry, ok := s.docEntry(string(params.TextDocument.URI))
	if !ok {
		return reply(ctx, semanticTokensResult{Data: []uint32{}}, nil)
	}

	return reply(ctx, semanticTokensResult{Data: EncodeSemanticTokens(entry.TokensWithComments)}, nil)
}

func (s *Server) handleFormatting(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DocumentFormattingParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse formatting params")
	}

	entry, ok := s.docEntry(string(params.TextDocument.URI))
	if !ok {
		return reply(ctx, []protocol.TextEdit{}, nil)
	}

	result, err := format.New(nil).Format(entry.Text)
	if err != nil {
		return reply(ctx, []protocol.TextEdit{}, nil)
	}

	edits := make([]protocol.TextEdit, 0, len(result.Edits))
	for _, e := range result.Edits {
		edits = append(edits, protocol.TextEdit{Range: toLSPRange(e.Range), NewText: e.NewText})
	}
	return reply(ctx, edits, nil)
}

// diagnosticParams mirrors DocumentDiagnosticParams for the pull model.
type diagnosticParams struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
}

// fullDocumentDiagnosticReport mirrors the pull-diagnostics response
// shape for a single document, "full" kind only.
type fullDocumentDiagnosticReport struct {
	Kind  string                 `json:"kind"`
	Items []protocol.Diagnostic `json:"items"`
}

func (s *Server) handleDiagnosticPull(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params diagnosticParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse diagnostic params")
	}

	entry, ok := s.docEntry(string(params.TextDocument.URI))
	if !ok {
		return reply(ctx, fullDocumentDiagnosticReport{Kind: "full", Items: []protocol.Diagnostic{}}, nil)
	}

	items := make([]protocol.Diagnostic, 0, len(entry.LexDiagnostics)+len(entry.ParseDiagnostics))
	for _, d := range entry.LexDiagnostics {
		items = append(items, protocol.Diagnostic{
			Range: toLSPRange(d.Region), Severity: convertSeverity(d.Severity), Code: d.Code, Source: "csl", Message: d.Message,
		})
	}
	for _, d := range entry.ParseDiagnostics {
		items = append(items, protocol.Diagnostic{
			Range: toLSPRange(d.Region), Severity: convertSeverity(d.Severity), Code: d.Code, Source: "csl", Message: d.Message,
		})
	}

	return reply(ctx, fullDocumentDiagnosticReport{Kind: "full", Items: items}, nil)
}

// generateHTMLDocParams mirrors the custom csl/generateHtmlDoc request.
type generateHTMLDocParams struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
}

// generateHTMLDocResult maps output file names to their rendered HTML.
type generateHTMLDocResult struct {
	Files map[string]string `json:"files"`
}

func (s *Server) handleGenerateHTMLDoc(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params generateHTMLDocParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse generateHtmlDoc params")
	}

	entry, ok := s.docEntry(string(params.TextDocument.URI))
	if !ok {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "document not open")
	}

	files, err := htmldoc.Generate(entry.Schemas, &htmldoc.Config{})
	if err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InternalError, "failed to generate html doc")
	}

	return reply(ctx, generateHTMLDocResult{Files: files}, nil)
}
