package lsp

// This file documents this package's testing approach. Due to unexported
// fields on jsonrpc2.Request, unit-testing server.go/handlers.go's
// dispatch directly is impractical. Instead the query logic they call
// into (cache.go, definition.go, references.go, hover.go, completion.go,
// semantictokens.go, foldingrange.go) is pure and tested directly.
//
// Integration testing against the wire protocol should be performed
// using a real LSP client.
