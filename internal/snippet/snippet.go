// Package snippet renders C# type declarations wrapped in a namespace and
// packages them as completion records.
package snippet

import "strings"

// Cursor is the final tab stop of an LSP/VS Code snippet.
const Cursor = "$0"

// Category is the kind of type being declared.
type Category string

const (
	Class     Category = "class"
	Interface Category = "interface"
	Enum      Category = "enum"
	Struct    Category = "struct"
)

// Categories lists every category in presentation order.
var Categories = []Category{Class, Interface, Enum, Struct}

// ParseCategory returns the category named s.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Kind is how the host presents a record. Values follow the LSP
// CompletionItemKind numbering.
type Kind int

const (
	KindText    Kind = 1
	KindSnippet Kind = 15
)

// Record is one completion suggestion.
type Record struct {
	Label         string
	Text          string // insertion text, contains Cursor
	Documentation string
	Kind          Kind
	Preselect     bool
}

// Declaration renders a public declaration of typeName inside ns. With
// fileScoped the namespace is terminated by a semicolon and the body is not
// indented; otherwise the declaration sits in a braced block.
func Declaration(ns, typeName string, cat Category, fileScoped bool) string {
	var b strings.Builder
	indent := "\t"
	if fileScoped {
		indent = ""
	}

	b.WriteString("namespace ")
	b.WriteString(ns)
	if fileScoped {
		b.WriteString(";\n\n")
	} else {
		b.WriteString("\n{\n")
	}

	b.WriteString(indent + "public " + string(cat) + " " + typeName + "\n")
	b.WriteString(indent + "{\n")
	b.WriteString(indent + "\t" + Cursor + "\n")
	b.WriteString(indent + "}\n")

	if !fileScoped {
		b.WriteString("}")
	}
	return b.String()
}

// NewRecord builds a Record.
func NewRecord(label, text, documentation string, kind Kind, preselect bool) Record {
	return Record{
		Label:         label,
		Text:          text,
		Documentation: documentation,
		Kind:          kind,
		Preselect:     preselect,
	}
}

// Records returns one preselected snippet record per category.
func Records(ns, typeName string, fileScoped bool) []Record {
	recs := make([]Record, 0, len(Categories))
	for _, c := range Categories {
		recs = append(recs, NewRecord(
			string(c),
			Declaration(ns, typeName, c, fileScoped),
			"Generate "+string(c)+" with namespace",
			KindSnippet,
			true,
		))
	}
	return recs
}

// StripCursor removes the cursor marker, leaving plain source text.
func StripCursor(text string) string {
	return strings.ReplaceAll(text, Cursor, "")
}
