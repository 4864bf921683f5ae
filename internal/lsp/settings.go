package lsp

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// settings accepts the csnip section, the section name used by the
// sharpSnippets VS Code extension, and a bare csnip object (as sent in
// initializationOptions).
type settings struct {
	Csnip         *csnipSettings `json:"csnip"`
	SharpSnippets *struct {
		PreferFileScopedNamespaceConfig *bool `json:"preferFileScopedNamespaceConfig"`
	} `json:"sharpSnippets"`
	csnipSettings
}

type csnipSettings struct {
	PreferFileScopedNamespace *bool `json:"preferFileScopedNamespace"`
}

// preference returns the first preference present, or nil.
func (st settings) preference() *bool {
	switch {
	case st.Csnip != nil && st.Csnip.PreferFileScopedNamespace != nil:
		return st.Csnip.PreferFileScopedNamespace
	case st.SharpSnippets != nil && st.SharpSnippets.PreferFileScopedNamespaceConfig != nil:
		return st.SharpSnippets.PreferFileScopedNamespaceConfig
	default:
		return st.PreferFileScopedNamespace
	}
}

// applySettings updates the preference from raw client settings. Unknown
// or malformed settings leave it unchanged.
func (s *Server) applySettings(raw json.RawMessage) {
	if len(raw) == 0 || string(raw) == "null" {
		return
	}
	var st settings
	if err := json.Unmarshal(raw, &st); err != nil {
		log.Warn().Err(err).Msg("lsp: ignoring malformed settings")
		return
	}
	pref := st.preference()
	if pref == nil {
		return
	}

	s.mu.Lock()
	s.prefer = *pref
	s.mu.Unlock()
	log.Debug().Bool("preferFileScoped", *pref).Msg("lsp: settings applied")
}
