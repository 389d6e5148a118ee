// Package lsp implements the CSL language server: base-protocol framing
// over stdio, the initialize/initialized/shutdown/exit lifecycle state
// machine, and request handlers backed by a per-document cache of lexed
// and parsed schemas, per SPEC_FULL §4.6.
package lsp

import (
	"fmt"
	"net/url"
	"strings"

	lru "github.com/hashicorp/golang-lru"

	"github.com/csl-lang/csl/internal/lexer"
	"github.com/csl-lang/csl/internal/parser"
)

// Entry is everything recomputed for one document on open/change: the raw
// text, both lex passes (with and without comments), the parsed schema
// list, the token-index to definition map, and the diagnostics from both
// the lexer and the parser.
type Entry struct {
	URI                string
	Text               string
	TokensNoComments   []lexer.Token
	TokensWithComments []lexer.Token
	Schemas            []*parser.ConfigSchema
	TokenDefs          map[int]*parser.Definition
	LexDiagnostics     []lexer.Diagnostic
	ParseDiagnostics   parser.DiagnosticList
}

// defaultCacheSize bounds the cache the teacher's own tooling.Config.
// CacheSize field documented but never wired to an actual eviction
// policy.
const defaultCacheSize = 100

// Cache is the LRU-bounded per-document store every request handler
// reads from; it never re-reads a document from disk.
type Cache struct {
	entries *lru.Cache
}

// NewCache creates an empty, LRU-bounded document cache.
func NewCache() *Cache {
	entries, err := lru.New(defaultCacheSize)
	if err != nil {
		// lru.New only errors for a non-positive size.
		panic(err)
	}
	return &Cache{entries: entries}
}

// Put lexes text twice (once without comments for parsing, once with
// comments for semantic highlighting and folding), parses it, and stores
// the result under uri's normalized form, per SPEC_FULL §4.6
// "Recomputation".
func (c *Cache) Put(uri, text string) *Entry {
	plain := lexer.New(text, uri)
	tokensNoComments, lexDiags := plain.ScanTokens()

	withComments := lexer.New(text, uri)
	withComments.SetPreserveComments(true)
	tokensWithComments, _ := withComments.ScanTokens()

	result := parser.Parse(tokensNoComments)

	entry := &Entry{
		URI:                normalizeURI(uri),
		Text:               text,
		TokensNoComments:   tokensNoComments,
		TokensWithComments: tokensWithComments,
		Schemas:            result.Schemas,
		TokenDefs:          result.TokenDefs,
		LexDiagnostics:     lexDiags,
		ParseDiagnostics:   result.Diagnostics,
	}
	c.entries.Add(entry.URI, entry)
	return entry
}

// Get returns the cached entry for uri, if any.
func (c *Cache) Get(uri string) (*Entry, bool) {
	v, ok := c.entries.Get(normalizeURI(uri))
	if !ok {
		return nil, false
	}
	return v.(*Entry), true
}

// Remove evicts uri's cache entry.
func (c *Cache) Remove(uri string) {
	c.entries.Remove(normalizeURI(uri))
}

// normalizeURI canonicalizes a file:// URI per SPEC_FULL §4.6:
// percent-decode the path keeping unreserved characters, re-encode any
// remaining disallowed byte as lowercase hex, and lowercase a Windows
// drive letter together with its %3A encoding. Non-file URIs and
// host-less forms pass through unchanged.
func normalizeURI(raw string) string {
	if !strings.HasPrefix(raw, "file://") {
		return raw
	}
	path := raw[len("file://"):]

	decoded, err := url.PathUnescape(path)
	if err != nil {
		decoded = path
	}
	decoded = lowercaseDriveLetter(decoded)

	return "file://" + reencodePath(decoded)
}

// lowercaseDriveLetter lowercases a leading "/C:" Windows drive segment,
// both the letter and (once re-encoded) its colon.
func lowercaseDriveLetter(path string) string {
	rest := strings.TrimPrefix(path, "/")
	if len(rest) >= 2 && rest[1] == ':' && isASCIILetter(rest[0]) {
		return "/" + strings.ToLower(rest[:1]) + rest[1:]
	}
	return path
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// reencodePath percent-encodes every byte that is not an RFC 3986
// unreserved character or a path separator, using lowercase hex, so
// normalizing an already-normalized URI is a no-op.
func reencodePath(path string) string {
	var b strings.Builder
	for i := 0; i < len(path); i++ {
		c := path[i]
		if c == '/' || isUnreservedURIByte(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02x", c)
	}
	return b.String()
}

func isUnreservedURIByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '.' || c == '_' || c == '~':
		return true
	}
	return false
}
