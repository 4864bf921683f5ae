package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/xonecas/csnip/internal/scaffold"
	"github.com/xonecas/csnip/internal/testutil"
)

const tree = `
-- Shop/Shop.csproj --
<Project Sdk="Microsoft.NET.Sdk">
  <PropertyGroup>
    <LangVersion>latest</LangVersion>
    <RootNamespace>Contoso.Shop</RootNamespace>
  </PropertyGroup>
</Project>
-- Shop/Models/order-item.cs --
-- Shop/Models/Existing.cs --
// keep me
-- Shop/readme.md --
-- Loose/Thing.cs --
`

// run executes csnip with args and an isolated home directory.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CSNIP_PREFER_FILE_SCOPED", "")
	t.Setenv("CSNIP_LOG_LEVEL", "")
	t.Setenv("CSNIP_LOG_FILE", "")

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGenerate(t *testing.T) {
	dir := testutil.WriteTree(t, tree)
	file := filepath.Join(dir, "Shop", "Models", "order-item.cs")

	out, _, err := run(t, "generate", "--color", "never", file)
	if err != nil {
		t.Fatal(err)
	}
	want := "namespace Contoso.Shop.Models\n{\n\tpublic class Order_item\n\t{\n\t\t\n\t}\n}\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}

	out, _, err = run(t, "generate", "--color", "never", "--prefer-file-scoped", "-c", "enum", "--verify", file)
	if err != nil {
		t.Fatal(err)
	}
	want = "namespace Contoso.Shop.Models;\n\npublic enum Order_item\n{\n\t\n}\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("file-scoped output mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_Errors(t *testing.T) {
	dir := testutil.WriteTree(t, tree)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no project", []string{"generate", filepath.Join(dir, "Loose", "Thing.cs")}, "No csproj file found"},
		{"not csharp", []string{"generate", filepath.Join(dir, "Shop", "readme.md")}, "is not a C# source file"},
		{"bad category", []string{"generate", "-c", "record", filepath.Join(dir, "Shop", "Models", "order-item.cs")}, `unknown category "record"`},
		{"bad color", []string{"generate", "--color", "sometimes", filepath.Join(dir, "Shop", "Models", "order-item.cs")}, "invalid --color"},
		{"missing config", []string{"--config", filepath.Join(dir, "nope.toml"), "generate", filepath.Join(dir, "Shop", "Models", "order-item.cs")}, "config file not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	dir := testutil.WriteTree(t, tree)
	out, _, err := run(t, "resolve", "--color", "never", filepath.Join(dir, "Shop", "Models", "order-item.cs"))
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"descriptor  " + filepath.Join(dir, "Shop", "Shop.csproj"),
		"namespace   Contoso.Shop.Models",
		"type        Order_item",
		"file-scoped supported (Shop.csproj)",
		"style       block",
		"",
	}, "\n")
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_ConfigFile(t *testing.T) {
	dir := testutil.WriteTree(t, tree)
	cfg := filepath.Join(dir, "csnip.toml")
	if err := os.WriteFile(cfg, []byte("[snippets]\nprefer_file_scoped_namespace = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := run(t, "--config", cfg, "resolve", "--color", "never", filepath.Join(dir, "Shop", "Models", "order-item.cs"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "style       file-scoped\n") {
		t.Errorf("want file-scoped style from config, got:\n%s", out)
	}
}

func TestLogLevelFlagFixesConfig(t *testing.T) {
	dir := testutil.WriteTree(t, tree)
	cfg := filepath.Join(dir, "csnip.toml")
	if err := os.WriteFile(cfg, []byte("[log]\nlevel = \"loud\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(dir, "Shop", "Models", "order-item.cs")

	if _, _, err := run(t, "--config", cfg, "resolve", file); err == nil || !strings.Contains(err.Error(), "log.level") {
		t.Fatalf("err = %v, want log.level validation error", err)
	}
	if _, _, err := run(t, "--config", cfg, "--log-level", "warn", "resolve", file); err != nil {
		t.Fatalf("--log-level should override the config file: %v", err)
	}
}

func TestApply(t *testing.T) {
	dir := testutil.WriteTree(t, tree)
	file := filepath.Join(dir, "Shop", "Models", "order-item.cs")

	out, _, err := run(t, "apply", "--color", "never", "-c", "struct", file)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "wrote "+file) {
		t.Errorf("output = %q", out)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	want := "namespace Contoso.Shop.Models\n{\n\tpublic struct Order_item\n\t{\n\t\t\n\t}\n}\n"
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("file mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_Existing(t *testing.T) {
	dir := testutil.WriteTree(t, tree)
	file := filepath.Join(dir, "Shop", "Models", "Existing.cs")

	_, _, err := run(t, "apply", file)
	if err == nil || !strings.Contains(err.Error(), "--force") {
		t.Fatalf("err = %v, want refusal", err)
	}

	out, _, err := run(t, "apply", "--color", "never", "--dry-run", "--force", file)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"-// keep me", "+namespace Contoso.Shop.Models", "+\tpublic class Existing"} {
		if !strings.Contains(out, s) {
			t.Errorf("diff missing %q:\n%s", s, out)
		}
	}
	data, _ := os.ReadFile(file)
	if string(data) != "// keep me\n" {
		t.Errorf("dry run modified the file: %q", data)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "csnip "+version+" ") {
		t.Errorf("output = %q", out)
	}
}

func TestExitCodeError(t *testing.T) {
	err := error(exitCodeError{code: 1, err: scaffold.ErrNotCSharp})
	var ec exitCodeError
	if !errors.As(err, &ec) || ec.code != 1 || !errors.Is(err, scaffold.ErrNotCSharp) {
		t.Errorf("exitCodeError does not unwrap: %v", err)
	}
}
