package project

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/xonecas/csnip/internal/naming"
)

// Property names read from descriptors.
const (
	PropRootNamespace    = "RootNamespace"
	PropLangVersion      = "LangVersion"
	PropTargetFramework  = "TargetFramework"
	PropTargetFrameworks = "TargetFrameworks"
)

// Descriptor is the raw text of a project descriptor (or props file).
// Values are read by matching single-line <Key>value</Key> elements; the
// text is never parsed as XML.
type Descriptor struct {
	Path string
	text string
}

// LoadDescriptor reads the descriptor at path.
func LoadDescriptor(path string) (*Descriptor, error) {
	//nolint:gosec // G304: path comes from descriptor discovery
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("project: read %s: %w", path, err)
	}
	return &Descriptor{Path: path, text: string(data)}, nil
}

// NewDescriptor wraps already loaded descriptor text.
func NewDescriptor(path, text string) *Descriptor {
	return &Descriptor{Path: path, text: text}
}

const (
	scalarValue = `[\w.]+`
	listValue   = `[\w.;]+`
)

var (
	propMu sync.Mutex
	propRe = map[string]*regexp.Regexp{}
)

func propPattern(key, value string) *regexp.Regexp {
	propMu.Lock()
	defer propMu.Unlock()
	id := key + value
	re, ok := propRe[id]
	if !ok {
		k := regexp.QuoteMeta(key)
		re = regexp.MustCompile(`<` + k + `>(` + value + `)</` + k + `>`)
		propRe[id] = re
	}
	return re
}

func (d *Descriptor) match(key, value string) (string, bool) {
	m := propPattern(key, value).FindStringSubmatch(d.text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Property returns the first value declared for key. Values must consist of
// word characters and dots and sit on one line between matching tags.
func (d *Descriptor) Property(key string) (string, bool) {
	return d.match(key, scalarValue)
}

// ListProperty is Property for semicolon-separated values such as
// TargetFrameworks.
func (d *Descriptor) ListProperty(key string) ([]string, bool) {
	v, ok := d.match(key, listValue)
	if !ok {
		return nil, false
	}
	return strings.Split(v, ";"), true
}

// RootNamespace returns the declared RootNamespace, falling back to the
// descriptor's file name without extension.
func (d *Descriptor) RootNamespace() string {
	if ns, ok := d.Property(PropRootNamespace); ok {
		return ns
	}
	base := filepath.Base(d.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Dir returns the folder holding the descriptor.
func (d *Descriptor) Dir() string {
	return filepath.Dir(d.Path)
}

// Namespace returns the normalized namespace for a source file owned by
// this descriptor.
func (d *Descriptor) Namespace(sourcePath string) string {
	rel, err := filepath.Rel(d.Dir(), filepath.Dir(sourcePath))
	if err != nil || rel == "." {
		rel = ""
	}
	return naming.Namespace(d.RootNamespace(), rel)
}
