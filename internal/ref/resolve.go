package ref

import (
	"strings"

	"github.com/phobologic/jdocref/internal/docerr"
	"github.com/phobologic/jdocref/internal/model"
)

// Resolver expands bare references against the imports of one compilation unit.
type Resolver struct {
	imports model.ImportTable
}

// NewResolver returns a Resolver bound to imports.
func NewResolver(imports model.ImportTable) *Resolver {
	return &Resolver{imports: imports}
}

// Resolve returns the fully qualified form of r. The first import whose path
// ends with "."+r.SimpleClassName() wins; later matches are not considered.
// The member of r is carried over unchanged.
func (res *Resolver) Resolve(r Reference) (Reference, error) {
	suffix := "." + r.SimpleClassName()
	for _, imp := range res.imports {
		if !strings.HasSuffix(imp.Path, suffix) {
			continue
		}
		resolved, err := ParseMember(imp.Path, r.Member)
		if err != nil {
			return Reference{}, err
		}
		return resolved, nil
	}
	return Reference{}, docerr.New(docerr.UnresolvedReference,
		"can't resolve java reference against imports: %q", r.String())
}

// ResolveText parses target and resolves it.
func (res *Resolver) ResolveText(target string) (Reference, error) {
	r, err := Parse(target)
	if err != nil {
		return Reference{}, err
	}
	return res.Resolve(r)
}
