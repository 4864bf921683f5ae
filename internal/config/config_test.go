package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[snippets]
prefer_file_scoped_namespace = true

[project]
descriptor_ext = ".csproj"
inherit_build_props = true

[log]
level = "debug"
file = "/tmp/csnip.log"

[ui]
syntax_theme = "monokai"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Snippets.PreferFileScopedNamespace {
		t.Error("prefer_file_scoped_namespace not loaded")
	}
	if !cfg.Project.InheritBuildProps {
		t.Error("inherit_build_props not loaded")
	}
	if cfg.Log.LevelOrDefault() != zerolog.DebugLevel {
		t.Errorf("level = %v, want debug", cfg.Log.LevelOrDefault())
	}
	if cfg.Log.File != "/tmp/csnip.log" {
		t.Errorf("log file = %q", cfg.Log.File)
	}
	if cfg.UI.SyntaxThemeOrDefault() != "monokai" {
		t.Errorf("theme = %q", cfg.UI.SyntaxThemeOrDefault())
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Snippets.PreferFileScopedNamespace {
		t.Error("preference should default to false")
	}
	if cfg.Project.DescriptorExtOrDefault() != ".csproj" {
		t.Errorf("ext = %q", cfg.Project.DescriptorExtOrDefault())
	}
	if cfg.Log.LevelOrDefault() != zerolog.InfoLevel {
		t.Errorf("level = %v", cfg.Log.LevelOrDefault())
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Project.DescriptorExt != ".csproj" {
		t.Errorf("ext = %q", cfg.Project.DescriptorExt)
	}
}

func TestLoad_StatError(t *testing.T) {
	// A path below a regular file fails with ENOTDIR, not ErrNotExist.
	file := writeConfig(t, "")
	_, err := Load(filepath.Join(file, "config.toml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read config") {
		t.Fatalf("err = %v, want read error", err)
	}
	if strings.Contains(err.Error(), "not found") {
		t.Errorf("err = %v, reported as not found", err)
	}
}

func TestLoad_OverridesBeforeValidate(t *testing.T) {
	path := writeConfig(t, "[log]\nlevel = \"loud\"\n")

	if _, err := Load(path); err == nil {
		t.Fatal("want validation error for log.level")
	}

	cfg, err := Load(path, func(c *Config) { c.Log.Level = "debug" })
	if err != nil {
		t.Fatalf("Load with override: %v", err)
	}
	if cfg.Log.LevelOrDefault() != zerolog.DebugLevel {
		t.Errorf("level = %v, want debug", cfg.Log.LevelOrDefault())
	}
}

func TestLoad_ParseError(t *testing.T) {
	_, err := Load(writeConfig(t, "[snippets\n"))
	if err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Fatalf("err = %v, want parse error", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CSNIP_PREFER_FILE_SCOPED", "true")
	t.Setenv("CSNIP_LOG_LEVEL", "warn")
	t.Setenv("CSNIP_LOG_FILE", "/var/log/csnip.log")

	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Snippets.PreferFileScopedNamespace {
		t.Error("env override for preference not applied")
	}
	if cfg.Log.Level != "warn" || cfg.Log.File != "/var/log/csnip.log" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Project.DescriptorExt = "csproj"
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("want validation error")
	}
	for _, want := range []string{"descriptor_ext", "log.level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}
