package lsp

import "encoding/json"

// LSP method names handled by the server.
const (
	MethodInitialize                = "initialize"
	MethodInitialized               = "initialized"
	MethodShutdown                  = "shutdown"
	MethodExit                      = "exit"
	MethodCompletion                = "textDocument/completion"
	MethodDidOpen                   = "textDocument/didOpen"
	MethodDidChange                 = "textDocument/didChange"
	MethodDidSave                   = "textDocument/didSave"
	MethodDidClose                  = "textDocument/didClose"
	MethodDidChangeConfiguration    = "workspace/didChangeConfiguration"
	MethodDidChangeWorkspaceFolders = "workspace/didChangeWorkspaceFolders"
	MethodShowMessage               = "window/showMessage"
	MethodCancelRequest             = "$/cancelRequest"
	MethodSetTrace                  = "$/setTrace"
)

// DocumentURI is a file URI such as file:///home/me/App/User.cs.
type DocumentURI string

// WorkspaceFolder is a root folder opened in the editor.
type WorkspaceFolder struct {
	URI  DocumentURI `json:"uri"`
	Name string      `json:"name"`
}

// InitializeParams is the subset of initialize parameters csnip reads.
type InitializeParams struct {
	ProcessID             *int              `json:"processId"`
	RootURI               DocumentURI       `json:"rootUri,omitempty"`
	WorkspaceFolders      []WorkspaceFolder `json:"workspaceFolders,omitempty"`
	InitializationOptions json.RawMessage   `json:"initializationOptions,omitempty"`
}

// TextDocumentSyncKind defines how documents are synced.
type TextDocumentSyncKind int

const (
	SyncNone TextDocumentSyncKind = 0
	SyncFull TextDocumentSyncKind = 1
)

// CompletionOptions advertises completion support.
type CompletionOptions struct {
	ResolveProvider   bool     `json:"resolveProvider,omitempty"`
	TriggerCharacters []string `json:"triggerCharacters,omitempty"`
}

// WorkspaceFoldersServerCapabilities advertises workspace folder support.
type WorkspaceFoldersServerCapabilities struct {
	Supported           bool `json:"supported"`
	ChangeNotifications bool `json:"changeNotifications"`
}

// WorkspaceServerCapabilities groups workspace capabilities.
type WorkspaceServerCapabilities struct {
	WorkspaceFolders *WorkspaceFoldersServerCapabilities `json:"workspaceFolders,omitempty"`
}

// ServerCapabilities is what csnip supports.
type ServerCapabilities struct {
	TextDocumentSync   TextDocumentSyncKind         `json:"textDocumentSync"`
	CompletionProvider *CompletionOptions           `json:"completionProvider,omitempty"`
	Workspace          *WorkspaceServerCapabilities `json:"workspace,omitempty"`
}

// ServerInfo identifies the server.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// InitializeResult is the response to initialize.
type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   *ServerInfo        `json:"serverInfo,omitempty"`
}

// TextDocumentIdentifier names a document.
type TextDocumentIdentifier struct {
	URI DocumentURI `json:"uri"`
}

// Position is a zero-based line/character offset.
type Position struct {
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

// CompletionParams are the parameters of textDocument/completion.
type CompletionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

// CompletionItemKind picks the icon shown next to an item.
type CompletionItemKind int

// InsertTextFormat says whether insert text is plain or a snippet.
type InsertTextFormat int

const (
	PlainTextFormat InsertTextFormat = 1
	SnippetFormat   InsertTextFormat = 2
)

// MarkupKind is "plaintext" or "markdown".
type MarkupKind string

const Markdown MarkupKind = "markdown"

// MarkupContent is formatted documentation.
type MarkupContent struct {
	Kind  MarkupKind `json:"kind"`
	Value string     `json:"value"`
}

// CompletionItem is a single completion suggestion.
type CompletionItem struct {
	Label            string             `json:"label"`
	Kind             CompletionItemKind `json:"kind,omitempty"`
	Detail           string             `json:"detail,omitempty"`
	Documentation    *MarkupContent     `json:"documentation,omitempty"`
	Preselect        bool               `json:"preselect,omitempty"`
	InsertText       string             `json:"insertText,omitempty"`
	InsertTextFormat InsertTextFormat   `json:"insertTextFormat,omitempty"`
}

// MessageType is the severity of a window/showMessage notification.
type MessageType int

const (
	MessageError   MessageType = 1
	MessageWarning MessageType = 2
	MessageInfo    MessageType = 3
	MessageLog     MessageType = 4
)

// ShowMessageParams are the parameters of window/showMessage.
type ShowMessageParams struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

// DidChangeConfigurationParams carries new client settings.
type DidChangeConfigurationParams struct {
	Settings json.RawMessage `json:"settings"`
}

// WorkspaceFoldersChangeEvent lists added and removed folders.
type WorkspaceFoldersChangeEvent struct {
	Added   []WorkspaceFolder `json:"added"`
	Removed []WorkspaceFolder `json:"removed"`
}

// DidChangeWorkspaceFoldersParams wraps a folder change event.
type DidChangeWorkspaceFoldersParams struct {
	Event WorkspaceFoldersChangeEvent `json:"event"`
}
