// Package lsp exposes the document analyzer over the Language Server
// Protocol so editors get diagnostics while authoring UI description files.
// Only lifecycle and text synchronization are handled; documents sync as
// full text, which is cheap at typical screen-description sizes.
package lsp

import (
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"bennypowers.dev/uidl/internal/log"
)

const serverName = "uidl-language-server"

// Server tracks open documents and pushes diagnostics on every change.
type Server struct {
	glspServer *server.Server

	mu   sync.RWMutex
	docs map[string]string // uri -> current full text
}

// NewServer creates the LSP server with its protocol handlers wired.
func NewServer() *Server {
	s := &Server{
		docs: make(map[string]string),
	}

	handler := protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.didOpen,
		TextDocumentDidChange: s.didChange,
		TextDocumentDidClose:  s.didClose,
	}

	s.glspServer = server.NewServer(&handler, serverName, false)
	return s
}

// RunStdio starts the server on the stdio transport.
func (s *Server) RunStdio() error {
	return s.glspServer.RunStdio()
}

func (s *Server) initialize(context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("Initializing %s", serverName)

	syncKind := protocol.TextDocumentSyncKindFull
	return protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: boolPtr(true),
				Change:    &syncKind,
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name: serverName,
		},
	}, nil
}

func (s *Server) initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(context *glsp.Context) error {
	log.Info("Shutting down")
	return nil
}

func (s *Server) setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

func (s *Server) didOpen(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.setDocument(uri, params.TextDocument.Text)
	s.publishDiagnostics(context, uri)
	return nil
}

func (s *Server) didChange(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI

	// Full-document sync: the last whole-text change wins.
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEvent:
			s.setDocument(uri, c.Text)
		case protocol.TextDocumentContentChangeEventWhole:
			s.setDocument(uri, c.Text)
		}
	}

	s.publishDiagnostics(context, uri)
	return nil
}

func (s *Server) didClose(context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI

	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()

	// Clear stale diagnostics for the closed document.
	context.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *Server) setDocument(uri, text string) {
	s.mu.Lock()
	s.docs[uri] = text
	s.mu.Unlock()
}

func (s *Server) document(uri string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.docs[uri]
	return text, ok
}

func boolPtr(b bool) *bool {
	return &b
}
