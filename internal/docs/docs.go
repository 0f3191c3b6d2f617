// Package docs answers the documentation host's questions about Java
// program elements: member docs, class summaries and cross-reference targets.
package docs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/phobologic/jdocref/internal/config"
	"github.com/phobologic/jdocref/internal/docerr"
	"github.com/phobologic/jdocref/internal/javadoc"
	"github.com/phobologic/jdocref/internal/model"
	"github.com/phobologic/jdocref/internal/ref"
	"github.com/phobologic/jdocref/internal/repo"
)

// MemberKind selects the member table a lookup searches.
type MemberKind int

const (
	Field MemberKind = iota
	Method
	Constant
)

func (k MemberKind) String() string {
	switch k {
	case Field:
		return "field"
	case Method:
		return "method"
	case Constant:
		return "constant"
	}
	return "member"
}

// MemberDoc is the translated documentation of one member.
type MemberDoc struct {
	Ref       ref.Reference
	Text      string
	Signature string
	Comment   javadoc.Comment
}

// Entry is one row of a class summary. Doc is nil for undocumented enum
// constants.
type Entry struct {
	Name string
	Doc  *string
}

// Summary lists the documented public surface of one class.
type Summary struct {
	Ref       ref.Reference
	Name      string
	Kind      model.Kind
	Fields    []Entry
	Methods   []Entry
	Constants []Entry
}

// Empty reports whether the summary has nothing to show.
func (s *Summary) Empty() bool {
	return len(s.Fields) == 0 && len(s.Methods) == 0 && len(s.Constants) == 0
}

// Xref is the target of a cross-reference to a class or member page.
type Xref struct {
	Ref     ref.Reference
	DocPath string
	Text    string
	Anchor  string
	Exists  bool
}

// TranslationError reports a doc comment that was found but whose links
// could not be resolved.
type TranslationError struct {
	Ref ref.Reference
	Err error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("translating javadoc of %s: %v", e.Ref, e.Err)
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}

// Service resolves references against one source tree.
type Service struct {
	cfg  *config.Config
	repo *repo.Repository
	log  zerolog.Logger
}

// New returns a Service reading sources through r.
func New(cfg *config.Config, r *repo.Repository, log zerolog.Logger) *Service {
	return &Service{cfg: cfg, repo: r, log: log}
}

// Repository returns the syntax tree cache backing s.
func (s *Service) Repository() *repo.Repository {
	return s.repo
}

// Reference expands the configured package prefix and parses text.
func (s *Service) Reference(text string) (ref.Reference, error) {
	return ref.Parse(ref.ExpandPrefix(text, s.cfg.PackagePrefix))
}

// MemberDoc returns the translated doc comment of the member text names.
func (s *Service) MemberDoc(text string, kind MemberKind) (*MemberDoc, error) {
	target, err := s.Reference(text)
	if err != nil {
		return nil, err
	}
	if target.Member == "" {
		return nil, docerr.New(docerr.MalformedReference, "java reference %q names no %s", text, kind)
	}

	decl, err := s.repo.FindDeclaration(target)
	if err != nil {
		return nil, err
	}

	doc, signature, err := s.member(decl, target.Member, kind)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(doc) == "" {
		return nil, docerr.New(docerr.EmptyDocumentation, "%s %s has no javadoc", kind, target.Member)
	}

	comment := javadoc.Parse(doc)
	out, err := s.translator(decl, target).TranslateText(comment.Description)
	if err != nil {
		return nil, &TranslationError{Ref: target, Err: err}
	}

	s.log.Debug().Str("ref", target.String()).Stringer("kind", kind).Msg("translated member doc")
	return &MemberDoc{Ref: target, Text: out, Signature: signature, Comment: comment}, nil
}

func (s *Service) member(decl *model.Declaration, name string, kind MemberKind) (doc, signature string, err error) {
	switch kind {
	case Field:
		group, _, err := s.repo.FindField(decl, name)
		if err == nil {
			return group.Doc, strings.TrimSpace(strings.Join(group.Modifiers, " ") + " " + group.Type + " " + name), nil
		}
		// enum constants are fields too
		if decl.Kind != model.Enum {
			return "", "", err
		}
		if c, cerr := s.repo.FindConstant(decl, name); cerr == nil {
			return c.Doc, c.Name, nil
		}
		return "", "", err
	case Method:
		m, err := s.repo.FindMethod(decl, name)
		if err != nil {
			return "", "", err
		}
		return m.Doc, m.Signature, nil
	default:
		c, err := s.repo.FindConstant(decl, name)
		if err != nil {
			return "", "", err
		}
		return c.Doc, c.Name, nil
	}
}

// ClassSummary lists the public documented fields and methods of the class
// text names and, for enums, every constant.
func (s *Service) ClassSummary(text string) (*Summary, error) {
	target, err := s.Reference(text)
	if err != nil {
		return nil, err
	}
	target = target.Class()

	decl, err := s.repo.FindDeclaration(target)
	if err != nil {
		return nil, err
	}

	t := s.translator(decl, target)
	sum := &Summary{Ref: target, Name: decl.Name, Kind: decl.Kind}

	for _, group := range decl.Fields {
		if !javadoc.Eligible(group.Doc, group.Modifiers) {
			continue
		}
		doc, err := t.Translate(group.Doc)
		if err != nil {
			return nil, err
		}
		for _, d := range group.Declarators {
			sum.Fields = append(sum.Fields, Entry{Name: d.Name, Doc: &doc})
		}
	}

	for _, m := range decl.Methods {
		if !javadoc.Eligible(m.Doc, m.Modifiers) {
			continue
		}
		doc, err := t.Translate(m.Doc)
		if err != nil {
			return nil, err
		}
		sum.Methods = append(sum.Methods, Entry{Name: m.Name, Doc: &doc})
	}

	if decl.Kind == model.Enum {
		for _, c := range decl.Constants {
			e := Entry{Name: c.Name}
			if strings.TrimSpace(c.Doc) != "" {
				doc, err := t.Translate(c.Doc)
				if err != nil {
					return nil, err
				}
				e.Doc = &doc
			}
			sum.Constants = append(sum.Constants, e)
		}
	}
	return sum, nil
}

// Xref computes the page and anchor a reference to text points at.
func (s *Service) Xref(text string) (*Xref, error) {
	target, err := s.Reference(text)
	if err != nil {
		return nil, err
	}

	x := &Xref{
		Ref:     target,
		DocPath: s.DocPath(target),
		Text:    target.SimpleClassName(),
		Anchor:  target.Member,
	}
	if target.Member != "" {
		x.Text = target.Member
	}

	_, err = os.Stat(filepath.Join(s.cfg.DocsDir, x.DocPath+".rst"))
	x.Exists = err == nil
	return x, nil
}

// DocPath returns the page of the class r belongs to, e.g.
// api.util.Outer.Inner for com.foo.util.Outer$Inner with prefix com.foo.
func (s *Service) DocPath(r ref.Reference) string {
	name := strings.ReplaceAll(r.Unprefixed(s.cfg.PackagePrefix), "$", ".")
	if s.cfg.APIPrefix == "" {
		return name
	}
	return s.cfg.APIPrefix + "." + name
}

func (s *Service) translator(decl *model.Declaration, class ref.Reference) *javadoc.Translator {
	return javadoc.NewTranslator(decl.Imports, javadoc.WithEnclosing(class))
}

// Problem is a link that cannot be resolved in the doc comment of a public
// element.
type Problem struct {
	Ref  ref.Reference
	Line int
	Link string
	Err  error
}

// Check loads the source file at path and resolves every link of every
// public documented declaration and member in it. Failing links are
// reported as problems; only load failures are returned as errors.
func (s *Service) Check(path string) ([]Problem, error) {
	unit, err := s.repo.LoadTree(path)
	if err != nil {
		return nil, err
	}

	var problems []Problem
	for _, decl := range unit.Types {
		class := ref.Reference{Package: unit.Package, Outer: decl.Name}
		problems = s.checkDeclaration(decl, class, problems)
	}
	return problems, nil
}

func (s *Service) checkDeclaration(decl *model.Declaration, class ref.Reference, problems []Problem) []Problem {
	t := s.translator(decl, class)
	check := func(member, doc string, modifiers []string, line int) {
		if !javadoc.Eligible(doc, modifiers) {
			return
		}
		for _, link := range javadoc.Parse(doc).Links() {
			if _, err := t.Resolve(link); err != nil {
				problems = append(problems, Problem{Ref: class.WithMember(member), Line: line, Link: link, Err: err})
			}
		}
	}

	check("", decl.Doc, decl.Modifiers, decl.Line)
	for _, g := range decl.Fields {
		if len(g.Declarators) > 0 {
			check(g.Declarators[0].Name, g.Doc, g.Modifiers, g.Line)
		}
	}
	for _, m := range decl.Methods {
		check(m.Name, m.Doc, m.Modifiers, m.Line)
	}
	for _, c := range decl.Constants {
		// enum constants are implicitly public
		check(c.Name, c.Doc, []string{"public"}, c.Line)
	}

	for _, nested := range decl.Nested {
		inner := class.Class()
		inner.Inner = append(inner.Inner, nested.Name)
		problems = s.checkDeclaration(nested, inner, problems)
	}
	return problems
}
