// Package lsp serves parse diagnostics, document outlines and hovers for
// PDF sources over the Language Server Protocol.
package lsp

import (
	"sync"
	"time"

	"github.com/spf13/afero"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/pdfc/pdf/db"
	"github.com/dhamidi/pdfc/pdf/edition"
	"github.com/dhamidi/pdfc/pdf/syntax"
	"github.com/dhamidi/pdfc/pdf/workspace"
)

const lsName = "pdfc"

var log = commonlog.GetLogger("pdfc.lsp")

type Server struct {
	db       *db.Database
	handler  protocol.Handler
	server   *server.Server
	version  string
	exts     []string
	watch    bool
	debounce time.Duration

	mu      sync.Mutex
	rootDir string
	open    map[string][]byte
	notify  glsp.NotifyFunc
	watcher *workspace.Watcher
}

type Option func(*Server)

func WithEdition(ed edition.Edition) Option {
	return func(ls *Server) {
		ls.db = db.New(db.WithEdition(ed))
	}
}

// WithExtensions sets the file extensions loaded from the workspace root.
func WithExtensions(exts []string) Option {
	return func(ls *Server) {
		ls.exts = exts
	}
}

// WithWatch makes the server follow changes to files on disk.
func WithWatch(debounce time.Duration) Option {
	return func(ls *Server) {
		ls.watch = true
		ls.debounce = debounce
	}
}

func NewServer(version string, opts ...Option) *Server {
	ls := &Server{
		db:      db.New(),
		version: version,
		exts:    []string{".pdf"},
		open:    make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(ls)
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
		TextDocumentHover:          ls.textDocumentHover,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}
	ls.mu.Lock()
	ls.rootDir = rootDir
	ls.mu.Unlock()

	capabilities := ls.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.mu.Lock()
	ls.notify = ctx.Notify
	root := ls.rootDir
	ls.mu.Unlock()

	ids, err := workspace.Load(afero.NewOsFs(), ls.db, root, ls.exts)
	if err != nil {
		log.Errorf("loading workspace: %s", err)
	}
	for _, id := range ids {
		ls.publishFile(id)
	}

	if ls.watch {
		w, err := workspace.NewWatcher(ls.db, root, ls.exts,
			workspace.WithDebounce(ls.debounce),
			workspace.OnChange(ls.fileChanged),
		)
		if err != nil {
			log.Errorf("%s", err)
			return nil
		}
		ls.mu.Lock()
		ls.watcher = w
		ls.mu.Unlock()
	}
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	ls.mu.Lock()
	w := ls.watcher
	ls.watcher = nil
	ls.mu.Unlock()
	if w != nil {
		return w.Close()
	}
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx.Notify, params.TextDocument.URI, []byte(params.TextDocument.Text))
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.update(ctx.Notify, params.TextDocument.URI, []byte(whole.Text))
	}
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx.Notify, params.TextDocument.URI, []byte(*params.Text))
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	path, err := uriToPath(uri)
	if err != nil {
		return nil
	}
	ls.mu.Lock()
	delete(ls.open, path)
	ls.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	p, idx, ok := ls.parse(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return DocumentSymbols(p, idx), nil
}

func (ls *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	p, idx, ok := ls.parse(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return Hover(p, idx, toOffset(idx, params.Position)), nil
}

// update stores the editor's text for uri and publishes its diagnostics.
func (ls *Server) update(notify glsp.NotifyFunc, uri string, text []byte) {
	path, err := uriToPath(uri)
	if err != nil {
		log.Errorf("bad document uri %q: %s", uri, err)
		return
	}
	ls.mu.Lock()
	ls.open[path] = text
	ls.mu.Unlock()

	id := ls.db.Vfs().FileID(path)
	ls.db.SetFileText(id, text)
	ls.publish(notify, uri, id)
}

// fileChanged runs on the watcher goroutine. Files open in the editor
// keep the editor's text.
func (ls *Server) fileChanged(c workspace.Change) {
	ls.mu.Lock()
	text, open := ls.open[c.Path]
	notify := ls.notify
	ls.mu.Unlock()

	if open {
		ls.db.SetFileText(c.ID, text)
		return
	}
	if c.Kind == workspace.FileRemoved {
		if notify != nil {
			notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
				URI:         pathToURI(c.Path),
				Diagnostics: []protocol.Diagnostic{},
			})
		}
		return
	}
	ls.publishFile(c.ID)
}

func (ls *Server) publishFile(id db.FileID) {
	path, ok := ls.db.Vfs().Path(id)
	if !ok {
		return
	}
	ls.mu.Lock()
	notify := ls.notify
	ls.mu.Unlock()
	if notify != nil {
		ls.publish(notify, pathToURI(path), id)
	}
}

func (ls *Server) publish(notify glsp.NotifyFunc, uri string, id db.FileID) {
	p, text, err := ls.db.Snapshot(id)
	if err != nil {
		log.Errorf("%s", err)
		return
	}
	diags := Diagnostics(p, syntax.NewLineIndex(text))
	log.Debugf("publishing %d diagnostics for %s", len(diags), uri)
	notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

func (ls *Server) parse(uri string) (syntax.Parse, *syntax.LineIndex, bool) {
	path, err := uriToPath(uri)
	if err != nil {
		return syntax.Parse{}, nil, false
	}
	id, ok := ls.db.Vfs().Lookup(path)
	if !ok {
		return syntax.Parse{}, nil, false
	}
	p, text, err := ls.db.Snapshot(id)
	if err != nil {
		return syntax.Parse{}, nil, false
	}
	return p, syntax.NewLineIndex(text), true
}
