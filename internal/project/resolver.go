package project

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/csnip/internal/naming"
)

// Context is everything csnip knows about a source file's project.
type Context struct {
	Descriptor string // descriptor path
	Namespace  string
	TypeName   string

	// FileScopedSupported is true when the project's language settings
	// allow `namespace X;` declarations.
	FileScopedSupported bool
	// VersionSource is the file that declared the deciding property, empty
	// when nothing was declared.
	VersionSource string
}

// Resolver builds a Context for a source file. It holds no per-request
// state; every call reads the file system again.
type Resolver struct {
	Finder Finder
	// InheritBuildProps consults the nearest Directory.Build.props or
	// Directory.Packages.props when the descriptor declares no language or
	// framework version.
	InheritBuildProps bool
}

// Resolve locates the descriptor for sourcePath and reads its namespace and
// language settings.
func (r *Resolver) Resolve(ctx context.Context, sourcePath string) (*Context, error) {
	path, err := r.Finder.Find(ctx, sourcePath)
	if err != nil {
		return nil, err
	}
	desc, err := LoadDescriptor(path)
	if err != nil {
		return nil, err
	}

	pc := &Context{
		Descriptor: path,
		Namespace:  desc.Namespace(sourcePath),
		TypeName:   naming.TypeNameFromPath(sourcePath),
	}

	supported, declared := desc.FileScopedNamespace()
	if declared {
		pc.VersionSource = desc.Path
	} else if r.InheritBuildProps {
		if props := FindProps(desc.Dir()); props != nil {
			supported, declared = props.FileScopedNamespace()
			if declared {
				pc.VersionSource = props.Path
			}
		}
	}
	pc.FileScopedSupported = supported

	log.Debug().
		Str("file", sourcePath).
		Str("descriptor", path).
		Str("namespace", pc.Namespace).
		Bool("fileScoped", supported).
		Msg("project: resolved")
	return pc, nil
}
