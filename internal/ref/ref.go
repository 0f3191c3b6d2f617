// Package ref parses and resolves textual references to Java program elements.
//
// A reference has the form
//
//	[package.]Outer[$Inner[$Inner...]][#member]
//
// Fully qualified class names join the package and nesting chain with '.'
// and '$' respectively, e.g. com.foo.Outer$Inner.
package ref

import (
	"path/filepath"
	"strings"

	"github.com/phobologic/jdocref/internal/docerr"
)

// SourceExt is the extension of Java source files.
const SourceExt = ".java"

// Reference is an immutable pointer to a Java class, nested class or member.
// Package and Member are empty when absent.
type Reference struct {
	Package string
	Outer   string
	Inner   []string
	Member  string
}

// Parse parses text as a Reference. It fails only on empty input; anything
// else degrades to an absent package or member.
func Parse(text string) (Reference, error) {
	return parse(text, "", false)
}

// ParseMember parses text as a Reference whose member is member. Any '#'
// in text is then part of the class portion.
func ParseMember(text, member string) (Reference, error) {
	return parse(text, member, true)
}

func parse(text, member string, explicit bool) (Reference, error) {
	if text == "" {
		return Reference{}, docerr.New(docerr.MalformedReference, "empty java reference")
	}

	var r Reference
	rest := text
	if i := strings.LastIndexByte(text, '.'); i >= 0 {
		r.Package = text[:i]
		rest = text[i+1:]
	}

	if explicit {
		r.Member = member
	} else if i := strings.IndexByte(rest, '#'); i >= 0 {
		r.Member = rest[i+1:]
		rest = rest[:i]
	}

	chain := strings.Split(rest, "$")
	r.Outer = chain[0]
	if len(chain) > 1 {
		r.Inner = chain[1:]
	}
	return r, nil
}

// ExpandPrefix expands the leading-dot shorthand: ".Foo" becomes
// prefix+".Foo". Other text is returned unchanged.
func ExpandPrefix(text, prefix string) string {
	if strings.HasPrefix(text, ".") {
		return prefix + text
	}
	return text
}

// ClassName returns the nesting chain joined with '$', without the package.
func (r Reference) ClassName() string {
	if len(r.Inner) == 0 {
		return r.Outer
	}
	return r.Outer + "$" + strings.Join(r.Inner, "$")
}

// SimpleClassName returns the innermost class name of the chain.
func (r Reference) SimpleClassName() string {
	if len(r.Inner) > 0 {
		return r.Inner[len(r.Inner)-1]
	}
	return r.Outer
}

// Qualified reports whether r carries a package.
func (r Reference) Qualified() bool {
	return r.Package != ""
}

// FullClassName returns package.Outer$Inner. ok is false when r has no package.
func (r Reference) FullClassName() (name string, ok bool) {
	if !r.Qualified() {
		return "", false
	}
	return r.Package + "." + r.ClassName(), true
}

// FullOuterClassName returns package.Outer. ok is false when r has no package.
func (r Reference) FullOuterClassName() (name string, ok bool) {
	if !r.Qualified() {
		return "", false
	}
	return r.Package + "." + r.Outer, true
}

// Unprefixed strips prefix and the following '.' from the full class name.
// Names outside prefix are returned whole.
func (r Reference) Unprefixed(prefix string) string {
	full, ok := r.FullClassName()
	if !ok {
		return r.ClassName()
	}
	if prefix != "" && strings.HasPrefix(full, prefix+".") {
		return full[len(prefix)+1:]
	}
	return full
}

// SourceFile returns the slash-separated path of the file declaring the outer
// class, relative to the sources root, e.g. com/foo/Bar.java.
func (r Reference) SourceFile() (string, error) {
	full, ok := r.FullOuterClassName()
	if !ok {
		return "", docerr.New(docerr.UnresolvedReference,
			"java reference %q has no package, resolve it first", r.String())
	}
	return filepath.Join(strings.Split(full, ".")...) + SourceExt, nil
}

// WithMember returns a copy of r naming member.
func (r Reference) WithMember(member string) Reference {
	r.Inner = append([]string(nil), r.Inner...)
	r.Member = member
	return r
}

// Class returns r without its member.
func (r Reference) Class() Reference {
	return r.WithMember("")
}

// String serializes r back to reference syntax.
func (r Reference) String() string {
	var b strings.Builder
	if r.Package != "" {
		b.WriteString(r.Package)
		b.WriteByte('.')
	}
	b.WriteString(r.ClassName())
	if r.Member != "" {
		b.WriteByte('#')
		b.WriteString(r.Member)
	}
	return b.String()
}
