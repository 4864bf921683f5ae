// Package lsp serves csnip's declaration snippets to editors over the
// Language Server Protocol.
package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/xonecas/csnip/internal/project"
	"github.com/xonecas/csnip/internal/scaffold"
	"github.com/xonecas/csnip/internal/snippet"
)

// NoDescriptorMessage is shown to the user when a C# file has no project.
const NoDescriptorMessage = "No csproj file found"

// ErrExitWithoutShutdown is returned by Serve when the client sent exit
// (or hung up) before shutdown.
var ErrExitWithoutShutdown = errors.New("lsp: exit without shutdown")

// Options configure a Server.
type Options struct {
	// Resolver is the base resolver; its Finder.Roots are replaced by the
	// workspace folders the client reports.
	Resolver project.Resolver
	// PreferFileScoped is the initial preference, until the client sends
	// settings of its own.
	PreferFileScoped bool
	Version          string
}

// Server answers completion requests in C# files.
type Server struct {
	resolver project.Resolver
	version  string

	mu       sync.Mutex
	roots    []string
	prefer   bool
	shutdown bool
}

// NewServer creates a server.
func NewServer(opts Options) *Server {
	return &Server{
		resolver: opts.Resolver,
		version:  opts.Version,
		roots:    append([]string(nil), opts.Resolver.Finder.Roots...),
		prefer:   opts.PreferFileScoped,
	}
}

// Serve runs the protocol on rwc until the client exits, the stream closes
// or ctx is done.
func (s *Server) Serve(ctx context.Context, rwc io.ReadWriteCloser) error {
	logger := log.Logger.With().Str("component", "jsonrpc2").Logger()
	stream := jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{})
	conn := jsonrpc2.NewConn(ctx, stream,
		jsonrpc2.HandlerWithError(s.handle).SuppressErrClosed(),
		jsonrpc2.SetLogger(&logger),
	)

	select {
	case <-conn.DisconnectNotify():
	case <-ctx.Done():
		_ = conn.Close()
		return ctx.Err()
	}

	s.mu.Lock()
	clean := s.shutdown
	s.mu.Unlock()
	if !clean {
		return ErrExitWithoutShutdown
	}
	return nil
}

func (s *Server) handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
	log.Debug().Str("method", req.Method).Bool("notification", req.Notif).Msg("lsp: request")

	switch req.Method {
	case MethodInitialize:
		var params InitializeParams
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		return s.initialize(params), nil

	case MethodInitialized:
		return nil, nil

	case MethodShutdown:
		s.mu.Lock()
		s.shutdown = true
		s.mu.Unlock()
		return nil, nil

	case MethodExit:
		return nil, conn.Close()

	case MethodCompletion:
		var params CompletionParams
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		return s.completion(ctx, conn, params), nil

	case MethodDidChangeConfiguration:
		var params DidChangeConfigurationParams
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		s.applySettings(params.Settings)
		return nil, nil

	case MethodDidChangeWorkspaceFolders:
		var params DidChangeWorkspaceFoldersParams
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		s.changeFolders(params.Event)
		return nil, nil

	case MethodDidOpen, MethodDidChange, MethodDidSave, MethodDidClose,
		MethodCancelRequest, MethodSetTrace:
		// Every completion re-reads the file system; document contents are
		// never needed.
		return nil, nil
	}

	if req.Notif {
		return nil, nil
	}
	return nil, &jsonrpc2.Error{
		Code:    jsonrpc2.CodeMethodNotFound,
		Message: fmt.Sprintf("method not supported: %s", req.Method),
	}
}

func decodeParams(req *jsonrpc2.Request, v any) error {
	if req.Params == nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: req.Method + ": missing params"}
	}
	if err := json.Unmarshal(*req.Params, v); err != nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: fmt.Sprintf("%s: %v", req.Method, err)}
	}
	return nil
}

func (s *Server) initialize(params InitializeParams) InitializeResult {
	var roots []string
	for _, f := range params.WorkspaceFolders {
		if p, err := URIToPath(f.URI); err == nil {
			roots = append(roots, p)
		}
	}
	if len(roots) == 0 && params.RootURI != "" {
		if p, err := URIToPath(params.RootURI); err == nil {
			roots = append(roots, p)
		}
	}

	s.mu.Lock()
	if len(roots) > 0 {
		s.roots = roots
	}
	s.mu.Unlock()
	s.applySettings(params.InitializationOptions)

	log.Info().Strs("roots", roots).Msg("lsp: initialized")

	return InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync:   SyncFull,
			CompletionProvider: &CompletionOptions{},
			Workspace: &WorkspaceServerCapabilities{
				WorkspaceFolders: &WorkspaceFoldersServerCapabilities{
					Supported:           true,
					ChangeNotifications: true,
				},
			},
		},
		ServerInfo: &ServerInfo{Name: "csnip", Version: s.version},
	}
}

// completion returns nil (JSON null) when there is nothing to offer.
func (s *Server) completion(ctx context.Context, conn *jsonrpc2.Conn, params CompletionParams) []CompletionItem {
	path, err := URIToPath(params.TextDocument.URI)
	if err != nil {
		log.Debug().Err(err).Str("uri", string(params.TextDocument.URI)).Msg("lsp: skipping document")
		return nil
	}

	s.mu.Lock()
	r := s.resolver
	r.Finder.Roots = append([]string(nil), s.roots...)
	opts := scaffold.Options{PreferFileScoped: s.prefer}
	s.mu.Unlock()

	res, err := scaffold.New(r).Provide(ctx, path, opts)
	switch {
	case err == nil:
	case errors.Is(err, scaffold.ErrNotCSharp), errors.Is(err, context.Canceled):
		return nil
	default:
		if errors.Is(err, project.ErrNotFound) {
			log.Info().Str("file", path).Msg("lsp: no project descriptor")
		} else {
			log.Error().Err(err).Str("file", path).Msg("lsp: resolving project")
		}
		s.showMessage(ctx, conn, MessageError, NoDescriptorMessage)
		return nil
	}

	items := make([]CompletionItem, 0, len(res.Records))
	for _, rec := range res.Records {
		items = append(items, completionItem(rec))
	}
	return items
}

func completionItem(rec snippet.Record) CompletionItem {
	return CompletionItem{
		Label:            rec.Label,
		Kind:             CompletionItemKind(rec.Kind),
		Detail:           rec.Text,
		Documentation:    &MarkupContent{Kind: Markdown, Value: rec.Documentation},
		Preselect:        rec.Preselect,
		InsertText:       rec.Text,
		InsertTextFormat: SnippetFormat,
	}
}

func (s *Server) showMessage(ctx context.Context, conn *jsonrpc2.Conn, typ MessageType, msg string) {
	if err := conn.Notify(ctx, MethodShowMessage, ShowMessageParams{Type: typ, Message: msg}); err != nil {
		log.Error().Err(err).Msg("lsp: showMessage")
	}
}

func (s *Server) changeFolders(ev WorkspaceFoldersChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := make(map[string]bool)
	for _, f := range ev.Removed {
		if p, err := URIToPath(f.URI); err == nil {
			removed[p] = true
		}
	}
	roots := s.roots[:0:0]
	for _, r := range s.roots {
		if !removed[r] {
			roots = append(roots, r)
		}
	}
	for _, f := range ev.Added {
		if p, err := URIToPath(f.URI); err == nil {
			roots = append(roots, p)
		}
	}
	s.roots = roots
	log.Debug().Strs("roots", roots).Msg("lsp: workspace folders changed")
}

// Roots returns the current workspace roots.
func (s *Server) Roots() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.roots...)
}
