package lsp

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"sync"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/zap"
)

// lifecycleState tracks the five states SPEC_FULL §4.6 defines: a
// request before initialize, or any request but exit after shutdown,
// must be rejected — the teacher's own server never enforced this.
type lifecycleState int

const (
	stateStart lifecycleState = iota
	stateServerInitialized
	stateClientInitialized
	stateShuttingDown
	stateExited
)

const (
	serverNotInitializedCode jsonrpc2.Code = -32002
	requestFailedCode        jsonrpc2.Code = -32803
)

// Newer request methods go.lsp.dev/protocol v0.12.0 does not name as
// constants; CSL defines them as raw strings instead of guessing at
// unreleased constant names.
const (
	methodSemanticTokensFull  = "textDocument/semanticTokens/full"
	methodFoldingRange        = "textDocument/foldingRange"
	methodRename              = "textDocument/rename"
	methodDiagnostic          = "textDocument/diagnostic"
	methodGenerateHTMLDoc     = "csl/generateHtmlDoc"
)

// Server implements the CSL language server.
type Server struct {
	cache *Cache

	mu    sync.Mutex
	state lifecycleState

	conn   jsonrpc2.Conn
	client protocol.Client
	logger *log.Logger

	workspaceRoot string
	capabilities  protocol.ServerCapabilities

	cancel   context.CancelFunc
	exitCode int
}

// NewServer creates a CSL language server, its document cache empty and
// its lifecycle state at start.
func NewServer() *Server {
	logger := log.New(os.Stderr, "[csl-lsp] ", log.LstdFlags)

	return &Server{
		cache:  NewCache(),
		logger: logger,
		capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
				Save: &protocol.SaveOptions{
					IncludeText: false,
				},
			},
			CompletionProvider: &protocol.CompletionOptions{
				TriggerCharacters: []string{".", "-", "c", "s", "n", "b", "d", "a", "w", "r", "v", "e"},
			},
			HoverProvider: true,
			DefinitionProvider: &protocol.DefinitionOptions{
				WorkDoneProgressOptions: protocol.WorkDoneProgressOptions{WorkDoneProgress: false},
			},
			ReferencesProvider:   true,
			RenameProvider:       true,
			FoldingRangeProvider: true,
			DocumentFormattingProvider: &protocol.DocumentFormattingOptions{
				WorkDoneProgressOptions: protocol.WorkDoneProgressOptions{WorkDoneProgress: false},
			},
		},
	}
}

// ExitCode is the process exit code Run leaves behind once the
// lifecycle reaches its exit transition: 0 for an orderly
// shutdown-then-exit, 1 for exit without a prior shutdown.
func (s *Server) ExitCode() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exitCode
}

// Run starts the server over stdio and blocks until the client exits it.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Println("starting csl language server")

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	stream := jsonrpc2.NewStream(stdrwc{})
	conn := jsonrpc2.NewConn(stream)
	s.conn = conn

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		s.logger.Printf("falling back to nop logger: %v", err)
		zapLogger = zap.NewNop()
	}
	s.client = protocol.ClientDispatcher(conn, zapLogger)

	conn.Go(ctx, s.handler())

	<-ctx.Done()

	s.logger.Println("shutting down csl language server")
	return conn.Close()
}

func (s *Server) handler() jsonrpc2.Handler {
	return func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		method := req.Method()
		s.logger.Printf("received: %s", method)

		if err := s.checkLifecycle(method); err != nil {
			return reply(ctx, nil, err)
		}

		switch method {
		case protocol.MethodInitialize:
			return s.handleInitialize(ctx, reply, req)
		case protocol.MethodInitialized:
			return s.handleInitialized(ctx, reply, req)
		case protocol.MethodShutdown:
			return s.handleShutdown(ctx, reply, req)
		case protocol.MethodExit:
			return s.handleExit(ctx, reply, req)
		case protocol.MethodTextDocumentDidOpen:
			return s.handleDidOpen(ctx, reply, req)
		case protocol.MethodTextDocumentDidChange:
			return s.handleDidChange(ctx, reply, req)
		case protocol.MethodTextDocumentDidClose:
			return s.handleDidClose(ctx, reply, req)
		case protocol.MethodTextDocumentDidSave:
			return s.handleDidSave(ctx, reply, req)
		case protocol.MethodTextDocumentCompletion:
			return s.handleCompletion(ctx, reply, req)
		case protocol.MethodTextDocumentHover:
			return s.handleHover(ctx, reply, req)
		case protocol.MethodTextDocumentDefinition:
			return s.handleDefinition(ctx, reply, req)
		case protocol.MethodTextDocumentReferences:
			return s.handleReferences(ctx, reply, req)
		case protocol.MethodTextDocumentFormatting:
			return s.handleFormatting(ctx, reply, req)
		case methodRename:
			return s.handleRename(ctx, reply, req)
		case methodFoldingRange:
			return s.handleFoldingRange(ctx, reply, req)
		case methodSemanticTokensFull:
			return s.handleSemanticTokensFull(ctx, reply, req)
		case methodDiagnostic:
			return s.handleDiagnosticPull(ctx, reply, req)
		case methodGenerateHTMLDoc:
			return s.handleGenerateHTMLDoc(ctx, reply, req)
		default:
			return reply(ctx, nil, jsonrpc2.ErrMethodNotFound)
		}
	}
}

// checkLifecycle rejects a request that arrives out of order, per
// SPEC_FULL §4.6's state diagram: nothing but initialize is valid before
// the server has initialized, and nothing but exit is valid once
// shutdown has been accepted.
func (s *Server) checkLifecycle(method string) *jsonrpc2.Error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case method == protocol.MethodInitialize:
		return nil
	case s.state == stateStart:
		return &jsonrpc2.Error{Code: serverNotInitializedCode, Message: "server not initialized"}
	case method == protocol.MethodExit:
		return nil
	case s.state == stateShuttingDown:
		return &jsonrpc2.Error{Code: requestFailedCode, Message: "server already shutdown"}
	default:
		return nil
	}
}

func (s *Server) handleInitialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.InitializeParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse initialize params")
	}

	switch {
	case len(params.WorkspaceFolders) > 0:
		s.workspaceRoot = uri.URI(params.WorkspaceFolders[0].URI).Filename()
	case params.RootURI != "":
		s.workspaceRoot = params.RootURI.Filename()
	case params.RootPath != "":
		s.workspaceRoot = params.RootPath
	}

	s.mu.Lock()
	s.state = stateServerInitialized
	s.mu.Unlock()

	result := protocol.InitializeResult{
		Capabilities: s.capabilities,
		ServerInfo: &protocol.ServerInfo{
			Name:    "csl-lsp",
			Version: "0.1.0",
		},
	}
	return reply(ctx, result, nil)
}

func (s *Server) handleInitialized(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	s.mu.Lock()
	s.state = stateClientInitialized
	s.mu.Unlock()
	return reply(ctx, nil, nil)
}

func (s *Server) handleShutdown(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	s.mu.Lock()
	s.state = stateShuttingDown
	s.exitCode = 0
	s.mu.Unlock()
	return reply(ctx, nil, nil)
}

func (s *Server) handleExit(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	s.mu.Lock()
	if s.state != stateShuttingDown {
		s.exitCode = 1
	}
	s.state = stateExited
	s.mu.Unlock()

	if err := reply(ctx, nil, nil); err != nil {
		s.logger.Printf("error replying to exit: %v", err)
	}
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

func (s *Server) handleDidOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidOpenTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse didOpen params")
	}

	docURI := string(params.TextDocument.URI)
	entry := s.cache.Put(docURI, params.TextDocument.Text)
	s.publishDiagnostics(ctx, entry)

	return reply(ctx, nil, nil)
}

func (s *Server) handleDidChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidChangeTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse didChange params")
	}
	if len(params.ContentChanges) == 0 {
		return reply(ctx, nil, nil)
	}

	docURI := string(params.TextDocument.URI)
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	entry := s.cache.Put(docURI, text)
	s.publishDiagnostics(ctx, entry)

	return reply(ctx, nil, nil)
}

func (s *Server) handleDidClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidCloseTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse didClose params")
	}
	s.cache.Remove(string(params.TextDocument.URI))
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidSave(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidSaveTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse didSave params")
	}
	if entry, ok := s.cache.Get(string(params.TextDocument.URI)); ok {
		s.publishDiagnostics(ctx, entry)
	}
	return reply(ctx, nil, nil)
}

func (s *Server) publishDiagnostics(ctx context.Context, entry *Entry) {
	if s.client == nil {
		return
	}

	lspDiagnostics := make([]protocol.Diagnostic, 0, len(entry.LexDiagnostics)+len(entry.ParseDiagnostics))
	for _, d := range entry.LexDiagnostics {
		lspDiagnostics = append(lspDiagnostics, protocol.Diagnostic{
			Range:    toLSPRange(d.Region),
			Severity: convertSeverity(d.Severity),
			Code:     d.Code,
			Source:   "csl",
			Message:  d.Message,
		})
	}
	for _, d := range entry.ParseDiagnostics {
		lspDiagnostics = append(lspDiagnostics, protocol.Diagnostic{
			Range:    toLSPRange(d.Region),
			Severity: convertSeverity(d.Severity),
			Code:     d.Code,
			Source:   "csl",
			Message:  d.Message,
		})
	}

	params := protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(entry.URI),
		Diagnostics: lspDiagnostics,
	}
	if err := s.client.PublishDiagnostics(ctx, &params); err != nil {
		s.logger.Printf("error publishing diagnostics: %v", err)
	}
}

func (s *Server) replyWithError(ctx context.Context, reply jsonrpc2.Replier, code jsonrpc2.Code, message string) error {
	return reply(ctx, nil, &jsonrpc2.Error{Code: code, Message: message})
}

// stdrwc wraps stdin/stdout as an io.ReadWriteCloser for jsonrpc2's
// stream framing.
type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdrwc) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}
