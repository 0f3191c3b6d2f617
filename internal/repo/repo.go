// Package repo loads, caches and navigates Java syntax trees for one source root.
package repo

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/phobologic/jdocref/internal/docerr"
	"github.com/phobologic/jdocref/internal/lang"
	"github.com/phobologic/jdocref/internal/model"
	"github.com/phobologic/jdocref/internal/parse"
	"github.com/phobologic/jdocref/internal/ref"
)

// ParseFunc turns the contents of a source file into a compilation unit.
type ParseFunc func(ctx context.Context, source []byte, path string) (*model.CompilationUnit, error)

// Repository owns the syntax tree cache of one documentation build. It is
// safe for concurrent use; each path is parsed at most once.
type Repository struct {
	root  string
	parse ParseFunc
	log   zerolog.Logger

	mu     sync.RWMutex
	units  map[string]entry
	parses int
	group  singleflight.Group
}

// entry is a cached parse result. Parse failures are cached too so a broken
// file is not parsed again for every reference into it.
type entry struct {
	unit *model.CompilationUnit
	err  error
}

// Stats describes the state of the cache.
type Stats struct {
	Cached int
	Parses int
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger used for cache diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Repository) { r.log = l }
}

// WithParser replaces the tree-sitter Java parser.
func WithParser(p ParseFunc) Option {
	return func(r *Repository) { r.parse = p }
}

// New returns a Repository resolving source files under root.
func New(root string, opts ...Option) *Repository {
	r := &Repository{
		root:  root,
		parse: parseJava,
		log:   zerolog.Nop(),
		units: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func parseJava(ctx context.Context, source []byte, path string) (*model.CompilationUnit, error) {
	// tree-sitter parsers are not safe for concurrent use; loads are rare
	// enough that a fresh one per file is fine.
	p := lang.Languages[lang.Java].NewParser()
	defer p.Close()
	return parse.Java(ctx, p, source, path)
}

// Root returns the source root directory.
func (r *Repository) Root() string {
	return r.root
}

// Stats reports how many paths are cached and how many parses were run.
func (r *Repository) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Stats{Cached: len(r.units), Parses: r.parses}
}

// LoadTree returns the compilation unit for path, parsing it on first use.
func (r *Repository) LoadTree(path string) (*model.CompilationUnit, error) {
	if e, ok := r.cached(path); ok {
		return e.unit, e.err
	}

	v, err, _ := r.group.Do(path, func() (any, error) {
		// another caller may have finished the load before we joined
		if e, ok := r.cached(path); ok {
			return e.unit, e.err
		}

		source, err := os.ReadFile(path)
		if err != nil {
			// unreadable files are reported the same way as missing ones
			return nil, docerr.Wrap(docerr.SourceFileNotFound, err, "reading java source")
		}

		r.log.Debug().Str("path", path).Msg("parsing java source")
		unit, err := r.parse(context.Background(), source, path)

		r.mu.Lock()
		defer r.mu.Unlock()
		r.parses++
		r.units[path] = entry{unit: unit, err: err}
		return unit, err
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.CompilationUnit), nil
}

func (r *Repository) cached(path string) (entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.units[path]
	return e, ok
}

// FindDeclaration locates the type named by target. target must be fully
// qualified; members are ignored. The returned declaration carries the
// imports of its compilation unit.
func (r *Repository) FindDeclaration(target ref.Reference) (*model.Declaration, error) {
	rel, err := target.SourceFile()
	if err != nil {
		return nil, err
	}

	unit, err := r.LoadTree(filepath.Join(r.root, rel))
	if err != nil {
		return nil, err
	}

	decl := findType(target.Outer, unit.Types)
	if decl == nil {
		return nil, docerr.New(docerr.DeclarationNotFound,
			"can't find outer class %s in source file %s", target.Outer, rel)
	}

	for _, name := range target.Inner {
		next := findType(name, decl.Nested)
		if next == nil {
			return nil, docerr.New(docerr.DeclarationNotFound,
				"can't find inner class %s in outer class %s in source file %s", name, decl.Name, rel)
		}
		decl = next
	}
	return decl, nil
}

func findType(name string, types []*model.Declaration) *model.Declaration {
	for _, t := range types {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// FindField returns the first declarator named name and the group declaring it.
func (r *Repository) FindField(decl *model.Declaration, name string) (*model.FieldGroup, *model.FieldDeclarator, error) {
	for i := range decl.Fields {
		group := &decl.Fields[i]
		for j := range group.Declarators {
			if group.Declarators[j].Name == name {
				return group, &group.Declarators[j], nil
			}
		}
	}
	return nil, nil, docerr.New(docerr.MemberNotFound, "can't find field %s in %s", name, decl.Name)
}

// FindMethod returns the first method named name. Overloads are not
// distinguished.
func (r *Repository) FindMethod(decl *model.Declaration, name string) (*model.Method, error) {
	for i := range decl.Methods {
		if decl.Methods[i].Name == name {
			return &decl.Methods[i], nil
		}
	}
	return nil, docerr.New(docerr.MemberNotFound, "can't find method %s in %s", name, decl.Name)
}

// FindConstant returns the enum constant named name.
func (r *Repository) FindConstant(decl *model.Declaration, name string) (*model.EnumConstant, error) {
	for i := range decl.Constants {
		if decl.Constants[i].Name == name {
			return &decl.Constants[i], nil
		}
	}
	return nil, docerr.New(docerr.MemberNotFound, "can't find enum constant %s in %s", name, decl.Name)
}
