package lsp

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/x/powernap/pkg/lsp/protocol"
)

// URIToPath converts a file:// URI to a local path. Other schemes
// (untitled:, vscode-notebook-cell:) are rejected.
func URIToPath(uri DocumentURI) (string, error) {
	u, err := protocol.ParseDocumentURI(string(uri))
	if err != nil {
		return "", fmt.Errorf("lsp: %w", err)
	}
	p, err := u.Path()
	if err != nil {
		return "", fmt.Errorf("lsp: %w", err)
	}
	if p == "" {
		return "", fmt.Errorf("lsp: empty path in uri %q", uri)
	}
	// Folder URIs may end in a slash; roots are compared as clean paths.
	return filepath.Clean(p), nil
}

// PathToURI converts an absolute path to a file:// URI.
func PathToURI(path string) DocumentURI {
	return DocumentURI(protocol.URIFromPath(path))
}
