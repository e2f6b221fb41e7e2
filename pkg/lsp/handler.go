package lsp

import (
	"encoding/json"
	"strings"

	"github.com/dodlang/dod/pkg/dod"
)

// InitializeParams represents the parameters for the initialize request.
type InitializeParams struct {
	ProcessID  *int        `json:"processId"`
	RootURI    string      `json:"rootUri"`
	ClientInfo *ClientInfo `json:"clientInfo,omitempty"`
}

// ClientInfo describes the connecting editor.
type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// InitializeResult represents the result of the initialize request.
type InitializeResult struct {
	ServerInfo   ServerInfo         `json:"serverInfo"`
	Capabilities ServerCapabilities `json:"capabilities"`
}

// ServerInfo identifies the server to the client.
type ServerInfo struct {
	Name string `json:"name"`
}

// ServerCapabilities represents server capabilities.
type ServerCapabilities struct {
	TextDocumentSync          TextDocumentSyncKind `json:"textDocumentSync"`
	DocumentHighlightProvider bool                 `json:"documentHighlightProvider"`
	ColorProvider             bool                 `json:"colorProvider"`
}

// TextDocumentSyncKind represents how documents are synced.
type TextDocumentSyncKind int

// TextDocumentSyncKindFull means full documents are synced. It is the only
// kind the server offers.
const TextDocumentSyncKindFull TextDocumentSyncKind = 1

// handleInitialize handles the initialize request. The client's parameters
// are only logged; an unreadable payload still receives the capabilities.
func (s *Server) handleInitialize(params json.RawMessage) (any, error) {
	if len(params) > 0 {
		var p InitializeParams
		if err := json.Unmarshal(params, &p); err != nil {
			s.log.Server("Ignoring unreadable initialize params: %v", err)
		} else {
			client := "unknown client"
			if p.ClientInfo != nil {
				client = p.ClientInfo.Name
			}
			s.log.Server("Initialize from %s with root: %s", client, p.RootURI)
		}
	}

	return InitializeResult{
		ServerInfo: ServerInfo{Name: s.config.ServerName},
		Capabilities: ServerCapabilities{
			TextDocumentSync:          TextDocumentSyncKindFull,
			DocumentHighlightProvider: true,
			ColorProvider:             true,
		},
	}, nil
}

// handleInitialized handles the initialized notification.
func (s *Server) handleInitialized() (any, error) {
	s.log.Server("Server initialized")
	return nil, nil
}

// handleShutdown handles the shutdown request. The main loop keeps reading
// until the client closes the input.
func (s *Server) handleShutdown() (any, error) {
	s.log.Server("Shutdown requested")
	return nil, nil
}

// handleExit handles the exit notification.
func (s *Server) handleExit() {
	s.log.Server("Exit requested")
}

// DidOpenParams represents textDocument/didOpen parameters.
type DidOpenParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

// TextDocumentItem represents an item passed in didOpen.
type TextDocumentItem struct {
	URI        string `json:"uri"`
	LanguageID string `json:"languageId"`
	Version    int    `json:"version"`
	Text       string `json:"text"`
}

// handleDidOpen handles textDocument/didOpen.
func (s *Server) handleDidOpen(params json.RawMessage) (any, error) {
	var p DidOpenParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}

	s.log.Server("Document opened: %s", p.TextDocument.URI)

	s.doc = &Document{
		URI:     p.TextDocument.URI,
		Version: p.TextDocument.Version,
		Text:    p.TextDocument.Text,
	}

	return nil, s.publishDiagnostics(s.doc.URI, s.doc.Version, []Diagnostic{BannerDiagnostic(s.config.Banner)})
}

// DidChangeParams represents textDocument/didChange parameters.
type DidChangeParams struct {
	TextDocument   VersionedTextDocumentIdentifier  `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

// VersionedTextDocumentIdentifier represents a versioned document ID.
type VersionedTextDocumentIdentifier struct {
	URI     string `json:"uri"`
	Version int    `json:"version"`
}

// TextDocumentContentChangeEvent represents a content change.
type TextDocumentContentChangeEvent struct {
	// Full text sync: Text contains the whole document
	Text string `json:"text"`
}

// handleDidChange handles textDocument/didChange. The first change replaces
// the document text, which is then reparsed from scratch.
func (s *Server) handleDidChange(params json.RawMessage) (any, error) {
	var p DidChangeParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}

	s.log.Server("Document changed: %s (version %d)", p.TextDocument.URI, p.TextDocument.Version)

	if len(p.ContentChanges) == 0 {
		s.log.Server("No content changes for %s", p.TextDocument.URI)
		return nil, nil
	}

	s.doc = &Document{
		URI:     p.TextDocument.URI,
		Version: p.TextDocument.Version,
		Text:    p.ContentChanges[0].Text,
	}

	prog, err := s.doc.Parse()
	if err != nil {
		s.log.Parse("%s: %v", s.doc.URI, err)
	}
	s.log.Parse("%s: %d statements", s.doc.URI, len(prog.Statements))
	if s.log.Enabled() {
		s.log.Debug("Parse tree for %s:\n%s", s.doc.URI, strings.TrimSuffix(dod.DumpString(prog), "\n"))
	}

	return nil, s.publishDiagnostics(s.doc.URI, s.doc.Version, s.doc.Diagnostics(err))
}

// DidSaveParams represents textDocument/didSave parameters.
type DidSaveParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Text         *string                `json:"text,omitempty"`
}

// TextDocumentIdentifier represents a document identifier.
type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}

// handleDidSave handles textDocument/didSave.
func (s *Server) handleDidSave(params json.RawMessage) (any, error) {
	var p DidSaveParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}

	s.log.Server("Document saved: %s", p.TextDocument.URI)
	return nil, nil
}
