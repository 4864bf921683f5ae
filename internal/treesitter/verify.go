package treesitter

import (
	"context"
	"errors"
	"fmt"
)

// ErrSyntax is returned by Verify when the source does not parse cleanly.
var ErrSyntax = errors.New("treesitter: syntax error")

// Flatten returns every symbol in document order, parents before children.
func Flatten(syms []Symbol) []Symbol {
	var out []Symbol
	for _, s := range syms {
		out = append(out, s)
		out = append(out, Flatten(s.Children)...)
	}
	return out
}

// Verify parses src and checks that it consists of exactly one namespace
// named ns holding exactly one type declaration named typeName whose
// keyword is kind ("class", "interface", "enum", "struct").
func Verify(ctx context.Context, src []byte, ns, typeName, kind string) error {
	f, err := ParseSource(ctx, src)
	if err != nil {
		return err
	}
	if f.HasError {
		return ErrSyntax
	}

	var namespaces, types []Symbol
	for _, s := range Flatten(f.Symbols) {
		if s.Kind.IsType() {
			types = append(types, s)
		} else {
			namespaces = append(namespaces, s)
		}
	}

	if len(namespaces) != 1 {
		return fmt.Errorf("treesitter: found %d namespace declarations, want 1", len(namespaces))
	}
	if got := namespaces[0].Name; got != ns {
		return fmt.Errorf("treesitter: namespace %q, want %q", got, ns)
	}
	if len(types) != 1 {
		return fmt.Errorf("treesitter: found %d type declarations, want 1", len(types))
	}
	t := types[0]
	if t.Name != typeName || t.Kind.String() != kind {
		return fmt.Errorf("treesitter: declared %s %s, want %s %s", t.Kind, t.Name, kind, typeName)
	}
	return nil
}
