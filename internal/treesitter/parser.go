package treesitter

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
)

// File is the result of parsing one C# file.
type File struct {
	Symbols  []Symbol // top-level declarations
	HasError bool     // the tree contains ERROR or MISSING nodes
}

// ParseSource parses C# source bytes.
func ParseSource(ctx context.Context, src []byte) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(csharp.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("treesitter: parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	return &File{
		Symbols:  extractDecls(root, src),
		HasError: root.HasError(),
	}, nil
}

var typeKinds = map[string]SymbolKind{
	"class_declaration":     KindClass,
	"interface_declaration": KindInterface,
	"enum_declaration":      KindEnum,
	"struct_declaration":    KindStruct,
	"record_declaration":    KindRecord,
}

// extractDecls collects namespace and type declarations among the named
// children of node. Declarations nested in a block namespace or a type body
// become Children of that symbol.
func extractDecls(node *sitter.Node, src []byte) []Symbol {
	var syms []Symbol
	count := int(node.NamedChildCount())

	for i := 0; i < count; i++ {
		child := node.NamedChild(i)
		switch t := child.Type(); t {
		case "namespace_declaration":
			sym := named(child, src, KindNamespace)
			if body := child.ChildByFieldName("body"); body != nil {
				sym.Children = extractDecls(body, src)
			}
			syms = append(syms, sym)

		case "file_scoped_namespace_declaration":
			sym := named(child, src, KindFileScopedNamespace)
			// Older grammars nest the following declarations inside the
			// file-scoped namespace node itself.
			sym.Children = extractDecls(child, src)
			syms = append(syms, sym)

		case "declaration_list":
			syms = append(syms, extractDecls(child, src)...)

		default:
			kind, ok := typeKinds[t]
			if !ok {
				continue
			}
			sym := named(child, src, kind)
			sym.Modifiers = modifiers(child, src)
			if body := child.ChildByFieldName("body"); body != nil {
				sym.Children = extractDecls(body, src)
			}
			syms = append(syms, sym)
		}
	}
	return syms
}

func named(node *sitter.Node, src []byte, kind SymbolKind) Symbol {
	sym := Symbol{
		Kind:      kind,
		StartLine: line(node),
		EndLine:   endLine(node),
	}
	if name := node.ChildByFieldName("name"); name != nil {
		sym.Name = content(name, src)
	}
	return sym
}

func modifiers(node *sitter.Node, src []byte) []string {
	var mods []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "modifier" {
			mods = append(mods, content(child, src))
		}
	}
	return mods
}

// helpers

func content(node *sitter.Node, src []byte) string {
	return node.Content(src)
}

func line(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1 // 1-indexed
}

func endLine(node *sitter.Node) int {
	return int(node.EndPoint().Row) + 1
}
