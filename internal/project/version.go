package project

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// MSBuild files whose properties projects below them pick up.
const (
	BuildPropsFile    = "Directory.Build.props"
	PackagesPropsFile = "Directory.Packages.props"
)

// PropsFiles are checked in this order in each folder.
var PropsFiles = []string{BuildPropsFile, PackagesPropsFile}

// fileScopedMinLangVersion is the first C# version with file-scoped namespaces.
const fileScopedMinLangVersion = 10

// leadingNumberRe matches the longest numeric prefix, exponent and
// Infinity included: "10.0b" reads as 10, "1e1" as 10.
var leadingNumberRe = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// FileScopedNamespace reports whether the descriptor allows file-scoped
// namespaces. declared is false when none of LangVersion, TargetFramework
// or TargetFrameworks is present, in which case supported is also false.
//
// The first declared property decides:
//  1. LangVersion: "latest", "preview", or a number >= 10.
//  2. TargetFramework: starts with net6 or net7.
//  3. TargetFrameworks: any ;-separated entry starts with net6 or net7.
func (d *Descriptor) FileScopedNamespace() (supported, declared bool) {
	if v, ok := d.Property(PropLangVersion); ok {
		return langVersionSupported(v), true
	}
	if v, ok := d.Property(PropTargetFramework); ok {
		return frameworkSupported(v), true
	}
	if list, ok := d.ListProperty(PropTargetFrameworks); ok {
		for _, fw := range list {
			if frameworkSupported(fw) {
				return true, true
			}
		}
		return false, true
	}
	return false, false
}

func langVersionSupported(v string) bool {
	if v == "latest" || v == "preview" {
		return true
	}
	num := leadingNumberRe.FindString(v)
	if num == "" {
		return false
	}
	// Out-of-range exponents come back as ±Inf or 0 with ErrRange.
	f, err := strconv.ParseFloat(num, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return false
	}
	return f >= fileScopedMinLangVersion
}

func frameworkSupported(tfm string) bool {
	return strings.HasPrefix(tfm, "net6") || strings.HasPrefix(tfm, "net7")
}

// FindProps walks up from dir and loads the nearest props file, trying
// PropsFiles in order within each folder. It returns nil when there is
// none or it cannot be read.
func FindProps(dir string) *Descriptor {
	for {
		for _, name := range PropsFiles {
			p := filepath.Join(dir, name)
			fi, err := os.Stat(p)
			if err != nil || fi.IsDir() {
				continue
			}
			d, err := LoadDescriptor(p)
			if err != nil {
				log.Warn().Err(err).Str("file", p).Msg("project: props file unreadable")
				return nil
			}
			return d
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}
		dir = parent
	}
}
