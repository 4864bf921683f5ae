package main

import (
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"golang.org/x/term"

	"github.com/xonecas/csnip/internal/highlight"
)

// colorEnabled resolves --color for out. auto colors terminals unless
// NO_COLOR is set.
func (a *app) colorEnabled(out io.Writer) bool {
	switch a.color {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// theme holds the CLI styles, derived from the configured syntax theme so
// generated code and surrounding text match.
type theme struct {
	enabled bool
	label   lipgloss.Style
	value   lipgloss.Style
	accent  lipgloss.Style
	errorS  lipgloss.Style
}

func (a *app) theme(out io.Writer) theme {
	p := highlight.ThemePalette(a.cfg.UI.SyntaxThemeOrDefault())
	base := lipgloss.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return theme{
		enabled: a.colorEnabled(out),
		label:   base.Foreground(lipgloss.Color(p.Dim)),
		value:   base.Foreground(lipgloss.Color(p.Fg)),
		accent:  base.Foreground(lipgloss.Color(p.Accent)).Bold(true),
		errorS:  base.Foreground(lipgloss.Color(p.Error)),
	}
}

func (t theme) paint(s lipgloss.Style, text string) string {
	if !t.enabled || text == "" {
		return text
	}
	return s.Render(text)
}

// diff colors a unified diff line by line.
func (t theme) diff(d string) string {
	if !t.enabled {
		return d
	}
	lines := strings.SplitAfter(d, "\n")
	var b strings.Builder
	for _, ln := range lines {
		body := strings.TrimSuffix(ln, "\n")
		nl := ln[len(body):]
		switch {
		case strings.HasPrefix(body, "+++"), strings.HasPrefix(body, "---"):
			body = t.paint(t.label, body)
		case strings.HasPrefix(body, "@@"):
			body = t.paint(t.accent, body)
		case strings.HasPrefix(body, "+"):
			body = t.paint(t.value.Bold(true), body)
		case strings.HasPrefix(body, "-"):
			body = t.paint(t.errorS, body)
		}
		b.WriteString(body + nl)
	}
	return b.String()
}
