// Package treesitter parses C# source with tree-sitter and reports the
// namespace and type declarations it contains.
package treesitter

// SymbolKind classifies extracted declarations.
type SymbolKind int

const (
	KindNamespace SymbolKind = iota
	KindFileScopedNamespace
	KindClass
	KindInterface
	KindEnum
	KindStruct
	KindRecord
)

// Symbol is a single declaration found in a C# file.
type Symbol struct {
	Name      string
	Kind      SymbolKind
	Modifiers []string // e.g. "public", "static"
	StartLine int      // 1-indexed
	EndLine   int      // 1-indexed
	Children  []Symbol // types declared inside a block namespace or type
}

// String returns the C# keyword for the kind.
func (k SymbolKind) String() string {
	switch k {
	case KindNamespace, KindFileScopedNamespace:
		return "namespace"
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	case KindStruct:
		return "struct"
	case KindRecord:
		return "record"
	default:
		return "unknown"
	}
}

// IsType reports whether k is a type declaration.
func (k SymbolKind) IsType() bool {
	return k >= KindClass
}
