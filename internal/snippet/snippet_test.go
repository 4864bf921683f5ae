package snippet

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/exp/golden"
	"github.com/google/go-cmp/cmp"
)

func TestDeclaration_Exact(t *testing.T) {
	tests := []struct {
		name       string
		fileScoped bool
		want       string
	}{
		{
			name:       "file-scoped",
			fileScoped: true,
			want:       "namespace App.Models;\n\npublic class User\n{\n\t$0\n}\n",
		},
		{
			name:       "block",
			fileScoped: false,
			want:       "namespace App.Models\n{\n\tpublic class User\n\t{\n\t\t$0\n\t}\n}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Declaration("App.Models", "User", Class, tt.fileScoped)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Declaration mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeclaration_Golden(t *testing.T) {
	for _, c := range Categories {
		for _, fileScoped := range []bool{true, false} {
			style := "block"
			if fileScoped {
				style = "file_scoped"
			}
			t.Run(string(c)+"_"+style, func(t *testing.T) {
				golden.RequireEqual(t, []byte(Declaration("Company.App.Models", "Order_item", c, fileScoped)))
			})
		}
	}
}

func TestRecords(t *testing.T) {
	recs := Records("App", "Widget", false)
	if len(recs) != 4 {
		t.Fatalf("got %d records, want 4", len(recs))
	}

	wantLabels := []string{"class", "interface", "enum", "struct"}
	for i, r := range recs {
		if r.Label != wantLabels[i] {
			t.Errorf("record %d label = %q, want %q", i, r.Label, wantLabels[i])
		}
		if r.Kind != KindSnippet {
			t.Errorf("record %d kind = %d, want snippet", i, r.Kind)
		}
		if !r.Preselect {
			t.Errorf("record %d not preselected", i)
		}
		if want := "Generate " + wantLabels[i] + " with namespace"; r.Documentation != want {
			t.Errorf("record %d documentation = %q, want %q", i, r.Documentation, want)
		}
		if !strings.Contains(r.Text, "public "+wantLabels[i]+" Widget\n") {
			t.Errorf("record %d text does not declare %s Widget:\n%s", i, wantLabels[i], r.Text)
		}
		if strings.Count(r.Text, Cursor) != 1 {
			t.Errorf("record %d text has %d cursor markers, want 1", i, strings.Count(r.Text, Cursor))
		}
	}
}

func TestNewRecord(t *testing.T) {
	got := NewRecord("l", "t", "d", KindText, false)
	want := Record{Label: "l", Text: "t", Documentation: "d", Kind: KindText}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NewRecord mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		got, ok := ParseCategory(string(c))
		if !ok || got != c {
			t.Errorf("ParseCategory(%q) = %q, %v", c, got, ok)
		}
	}
	if _, ok := ParseCategory("record"); ok {
		t.Error("ParseCategory(record) should fail")
	}
}

func TestStripCursor(t *testing.T) {
	got := StripCursor(Declaration("A", "B", Enum, true))
	if want := "namespace A;\n\npublic enum B\n{\n\t\n}\n"; got != want {
		t.Errorf("StripCursor = %q, want %q", got, want)
	}
}
