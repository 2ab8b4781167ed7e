// Package lsp exposes the Casebook grammar engine to editors over the
// Language Server Protocol: semantic tokens for highlighting, diagnostics
// for tokenizer and parser errors, and hover with the enclosing scene.
package lsp

import (
	"fmt"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/casebook/engine"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "casebook"

var log = commonlog.GetLogger("casebook.lsp")

// documentStore keeps open document contents keyed by URI.
type documentStore struct {
	mu        sync.RWMutex
	documents map[string]string
}

func newDocumentStore() *documentStore {
	return &documentStore{documents: make(map[string]string)}
}

func (ds *documentStore) Set(uri, content string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.documents[uri] = content
}

func (ds *documentStore) Get(uri string) (string, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	content, ok := ds.documents[uri]
	return content, ok
}

func (ds *documentStore) Delete(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.documents, uri)
}

type Server struct {
	engine  *engine.Engine
	store   *documentStore
	handler protocol.Handler
	server  *server.Server
	version string
}

func NewServer(eng *engine.Engine, version string) *Server {
	s := &Server{
		engine:  eng,
		store:   newDocumentStore(),
		version: version,
	}

	s.handler = protocol.Handler{
		Initialize:                      s.initialize,
		Initialized:                     s.initialized,
		Shutdown:                        s.shutdown,
		SetTrace:                        s.setTrace,
		TextDocumentDidOpen:             s.textDocumentDidOpen,
		TextDocumentDidChange:           s.textDocumentDidChange,
		TextDocumentDidClose:            s.textDocumentDidClose,
		TextDocumentDidSave:             s.textDocumentDidSave,
		TextDocumentHover:               s.textDocumentHover,
		TextDocumentSemanticTokensFull:  s.semanticTokensFull,
		TextDocumentSemanticTokensRange: s.semanticTokensRange,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
	}
	capabilities.SemanticTokensProvider = &protocol.SemanticTokensOptions{
		Legend: protocol.SemanticTokensLegend{
			TokenTypes:     semanticTokenTypes,
			TokenModifiers: []string{},
		},
		Full:  true,
		Range: true,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.store.Set(params.TextDocument.URI, params.TextDocument.Text)
	s.publishDiagnostics(ctx, params.TextDocument.URI)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.store.Set(params.TextDocument.URI, whole.Text)
			s.publishDiagnostics(ctx, params.TextDocument.URI)
		}
	}
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		s.store.Set(params.TextDocument.URI, *params.Text)
	}
	s.publishDiagnostics(ctx, params.TextDocument.URI)
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.store.Delete(params.TextDocument.URI)
	return nil
}

func (s *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, ok := s.store.Get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	offset := offsetAt(doc, params.Position)
	scene, ok := s.engine.SceneAt(doc, offset)
	if !ok {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: fmt.Sprintf("Scene: `%s`", scene),
		},
	}, nil
}

func (s *Server) semanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc, ok := s.store.Get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	data := s.encodeDocument(doc, 0, len(doc))
	return &protocol.SemanticTokens{Data: data}, nil
}

func (s *Server) semanticTokensRange(ctx *glsp.Context, params *protocol.SemanticTokensRangeParams) (any, error) {
	doc, ok := s.store.Get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	start := offsetAt(doc, params.Range.Start)
	end := offsetAt(doc, params.Range.End)
	data := s.encodeDocument(doc, start, end)
	return &protocol.SemanticTokens{Data: data}, nil
}

func (s *Server) publishDiagnostics(ctx *glsp.Context, uri string) {
	doc, ok := s.store.Get(uri)
	if !ok {
		return
	}
	diagnostics := s.diagnose(doc)
	ctx.Notify("textDocument/publishDiagnostics", &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
