// Package model defines the Java syntax tree that jdocref resolves references against.
// The types are plain data; lookups live in the repo package.
package model

// Kind indicates which flavour of type declaration a Declaration is.
type Kind string

const (
	Class      Kind = "class"
	Interface  Kind = "interface"
	Enum       Kind = "enum"
	Record     Kind = "record"
	Annotation Kind = "annotation"
)

// Import is a single import declaration of a compilation unit.
type Import struct {
	Path     string
	Static   bool
	Wildcard bool
}

// ImportTable is the ordered import list of one compilation unit.
type ImportTable []Import

// Paths returns the import paths in declaration order.
func (t ImportTable) Paths() []string {
	paths := make([]string, len(t))
	for i, imp := range t {
		paths[i] = imp.Path
	}
	return paths
}

// CompilationUnit is the parsed representation of one .java file.
type CompilationUnit struct {
	Path    string
	Package string
	Imports ImportTable
	Types   []*Declaration
}

// Declaration is a class, interface, enum, record or annotation type.
// Constants is only populated for enums.
type Declaration struct {
	Kind      Kind
	Name      string
	Modifiers []string
	Doc       string
	Line      int
	Fields    []FieldGroup
	Methods   []Method
	Nested    []*Declaration
	Constants []EnumConstant

	// Imports is shared with the owning compilation unit.
	Imports ImportTable
}

// FieldGroup is one field declaration, which may introduce several variables
// (int a, b;). Modifiers and Doc apply to every declarator.
type FieldGroup struct {
	Type        string
	Modifiers   []string
	Doc         string
	Line        int
	Declarators []FieldDeclarator
}

// FieldDeclarator is one variable introduced by a FieldGroup.
type FieldDeclarator struct {
	Name string
	Line int
}

// Parameter is a formal parameter of a method.
type Parameter struct {
	Name string
	Type string
}

// Method is a method or constructor declaration.
type Method struct {
	Name        string
	Modifiers   []string
	Doc         string
	Line        int
	ReturnType  string
	Parameters  []Parameter
	Constructor bool

	// Signature is the declaration text up to the body, whitespace collapsed.
	Signature string
}

// EnumConstant is one constant of an enum body.
type EnumConstant struct {
	Name string
	Doc  string
	Line int
}

// HasModifier reports whether mods contains m.
func HasModifier(mods []string, m string) bool {
	for _, v := range mods {
		if v == m {
			return true
		}
	}
	return false
}
