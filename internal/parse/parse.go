// Package parse builds model syntax trees from Java sources using tree-sitter.
package parse

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/jdocref/internal/docerr"
	"github.com/phobologic/jdocref/internal/lang"
	"github.com/phobologic/jdocref/internal/model"
)

var declKinds = map[string]model.Kind{
	"class_declaration":           model.Class,
	"interface_declaration":       model.Interface,
	"enum_declaration":            model.Enum,
	"record_declaration":          model.Record,
	"annotation_type_declaration": model.Annotation,
}

// Java parses source into a CompilationUnit. The parser must be created for
// the Java language. filePath is recorded on the unit and used in errors.
// Sources that tree-sitter can only parse with error recovery are rejected.
func Java(ctx context.Context, parser *sitter.Parser, source []byte, filePath string) (*model.CompilationUnit, error) {
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, docerr.Wrap(docerr.SourceParse, err, "parsing %s", filePath)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		line := 0
		if bad := firstError(root); bad != nil {
			line = int(bad.StartPoint().Row) + 1
		}
		return nil, docerr.New(docerr.SourceParse, "parsing %s: syntax error at line %d", filePath, line)
	}

	b := builder{source: source}
	unit := &model.CompilationUnit{Path: filePath}

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch child.Type() {
		case "package_declaration":
			unit.Package = b.qualifiedName(child)
		case "import_declaration":
			unit.Imports = append(unit.Imports, b.importDecl(child))
		default:
			if kind, ok := declKinds[child.Type()]; ok {
				unit.Types = append(unit.Types, b.declaration(child, kind))
			}
		}
	}

	for _, d := range unit.Types {
		shareImports(d, unit.Imports)
	}
	return unit, nil
}

func shareImports(d *model.Declaration, imports model.ImportTable) {
	d.Imports = imports
	for _, n := range d.Nested {
		shareImports(n, imports)
	}
}

func firstError(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if !child.HasError() && !child.IsMissing() {
			continue
		}
		if bad := firstError(child); bad != nil {
			return bad
		}
	}
	return nil
}

type builder struct {
	source []byte
}

func (b *builder) text(n *sitter.Node) string {
	return lang.NodeText(n, b.source)
}

func (b *builder) qualifiedName(n *sitter.Node) string {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "scoped_identifier" || child.Type() == "identifier" {
			return b.text(child)
		}
	}
	return ""
}

func (b *builder) importDecl(n *sitter.Node) model.Import {
	imp := model.Import{Path: b.qualifiedName(n)}
	for i := 0; i < int(n.ChildCount()); i++ {
		switch n.Child(i).Type() {
		case "static":
			imp.Static = true
		case "asterisk":
			imp.Wildcard = true
		}
	}
	if imp.Wildcard {
		imp.Path += ".*"
	}
	return imp
}

func (b *builder) declaration(n *sitter.Node, kind model.Kind) *model.Declaration {
	d := &model.Declaration{
		Kind:      kind,
		Modifiers: b.modifiers(n),
		Doc:       b.docComment(n),
		Line:      int(n.StartPoint().Row) + 1,
	}
	if name := n.ChildByFieldName("name"); name != nil {
		d.Name = b.text(name)
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		return d
	}
	if kind == model.Enum {
		b.enumBody(d, body)
		return d
	}
	b.members(d, body)
	return d
}

// enumBody reads the constants of an enum and the members that follow them.
func (b *builder) enumBody(d *model.Declaration, body *sitter.Node) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		switch child.Type() {
		case "enum_constant":
			c := model.EnumConstant{
				Doc:  b.docComment(child),
				Line: int(child.StartPoint().Row) + 1,
			}
			if name := child.ChildByFieldName("name"); name != nil {
				c.Name = b.text(name)
			}
			d.Constants = append(d.Constants, c)
		case "enum_body_declarations":
			b.members(d, child)
		}
	}
}

func (b *builder) members(d *model.Declaration, body *sitter.Node) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		switch child.Type() {
		case "field_declaration", "constant_declaration":
			d.Fields = append(d.Fields, b.field(child))
		case "method_declaration", "annotation_type_element_declaration":
			d.Methods = append(d.Methods, b.method(child, false))
		case "constructor_declaration", "compact_constructor_declaration":
			d.Methods = append(d.Methods, b.method(child, true))
		default:
			if kind, ok := declKinds[child.Type()]; ok {
				d.Nested = append(d.Nested, b.declaration(child, kind))
			}
		}
	}
}

func (b *builder) field(n *sitter.Node) model.FieldGroup {
	f := model.FieldGroup{
		Modifiers: b.modifiers(n),
		Doc:       b.docComment(n),
		Line:      int(n.StartPoint().Row) + 1,
	}
	if typ := n.ChildByFieldName("type"); typ != nil {
		f.Type = lang.CollapseWhitespace(b.text(typ))
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != "variable_declarator" {
			continue
		}
		if name := child.ChildByFieldName("name"); name != nil {
			f.Declarators = append(f.Declarators, model.FieldDeclarator{
				Name: b.text(name),
				Line: int(child.StartPoint().Row) + 1,
			})
		}
	}
	return f
}

func (b *builder) method(n *sitter.Node, constructor bool) model.Method {
	m := model.Method{
		Modifiers:   b.modifiers(n),
		Doc:         b.docComment(n),
		Line:        int(n.StartPoint().Row) + 1,
		Constructor: constructor,
	}
	if name := n.ChildByFieldName("name"); name != nil {
		m.Name = b.text(name)
	}
	if typ := n.ChildByFieldName("type"); typ != nil {
		m.ReturnType = lang.CollapseWhitespace(b.text(typ))
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		m.Parameters = b.parameters(params)
	}

	end := n.EndByte()
	if body := n.ChildByFieldName("body"); body != nil {
		end = body.StartByte()
	}
	sig := string(b.source[n.StartByte():end])
	m.Signature = strings.TrimSuffix(lang.CollapseWhitespace(sig), ";")
	return m
}

func (b *builder) parameters(n *sitter.Node) []model.Parameter {
	var params []model.Parameter
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "formal_parameter":
			var p model.Parameter
			if typ := child.ChildByFieldName("type"); typ != nil {
				p.Type = lang.CollapseWhitespace(b.text(typ))
			}
			if name := child.ChildByFieldName("name"); name != nil {
				p.Name = b.text(name)
			}
			params = append(params, p)
		case "spread_parameter":
			var p model.Parameter
			for j := 0; j < int(child.NamedChildCount()); j++ {
				part := child.NamedChild(j)
				switch part.Type() {
				case "variable_declarator":
					if name := part.ChildByFieldName("name"); name != nil {
						p.Name = b.text(name)
					}
				case "modifiers":
				default:
					if p.Type == "" {
						p.Type = lang.CollapseWhitespace(b.text(part)) + "..."
					}
				}
			}
			params = append(params, p)
		}
	}
	return params
}

// modifiers returns the keyword modifiers of a declaration, skipping annotations.
func (b *builder) modifiers(n *sitter.Node) []string {
	var mods []string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != "modifiers" {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			m := child.Child(j)
			switch m.Type() {
			case "marker_annotation", "annotation", "line_comment", "block_comment", "comment":
				continue
			}
			mods = append(mods, b.text(m))
		}
	}
	return mods
}

// docComment returns the /** ... */ comment immediately preceding n, or "".
func (b *builder) docComment(n *sitter.Node) string {
	prev := n.PrevSibling()
	if prev == nil {
		return ""
	}
	switch prev.Type() {
	case "block_comment", "comment":
	default:
		return ""
	}
	text := b.text(prev)
	if !strings.HasPrefix(text, "/**") || text == "/**/" {
		return ""
	}
	return text
}
