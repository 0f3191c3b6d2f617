package javadoc

import (
	"strings"

	"github.com/phobologic/jdocref/internal/model"
	"github.com/phobologic/jdocref/internal/ref"
)

// Markup renders a resolved reference as a cross-reference in the output
// markup.
type Markup func(r ref.Reference) string

// RSTRole renders r as a :java:ref: role.
func RSTRole(r ref.Reference) string {
	return ":java:ref:`" + r.String() + "`"
}

// Translator rewrites {@link} markers of comments declared in one
// compilation unit.
type Translator struct {
	resolver  *ref.Resolver
	markup    Markup
	enclosing *ref.Reference
}

// TranslatorOption configures a Translator.
type TranslatorOption func(*Translator)

// WithMarkup replaces the default RST role markup.
func WithMarkup(m Markup) TranslatorOption {
	return func(t *Translator) { t.markup = m }
}

// WithEnclosing sets the class that "#member" links refer to. Without it
// such links fail to resolve like any other unknown name.
func WithEnclosing(class ref.Reference) TranslatorOption {
	return func(t *Translator) {
		c := class.Class()
		t.enclosing = &c
	}
}

// NewTranslator returns a Translator resolving links against imports.
func NewTranslator(imports model.ImportTable, opts ...TranslatorOption) *Translator {
	t := &Translator{
		resolver: ref.NewResolver(imports),
		markup:   RSTRole,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate parses raw and returns its description with every {@link}
// marker replaced by resolved markup. The first link that fails to resolve
// aborts the translation with the resolver's error.
func (t *Translator) Translate(raw string) (string, error) {
	return t.TranslateText(Parse(raw).Description)
}

// TranslateText rewrites the {@link} markers of already parsed text.
func (t *Translator) TranslateText(text string) (string, error) {
	matches := linkRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, nil
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		target := strings.TrimSpace(text[m[2]:m[3]])
		resolved, err := t.Resolve(target)
		if err != nil {
			return "", err
		}
		b.WriteString(text[last:m[0]])
		b.WriteString(t.markup(resolved))
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String(), nil
}

// Resolve resolves one link target the way Translate does.
func (t *Translator) Resolve(target string) (ref.Reference, error) {
	if t.enclosing != nil && strings.HasPrefix(target, "#") {
		return t.enclosing.WithMember(target[1:]), nil
	}

	r, err := ref.Parse(target)
	if err != nil {
		return ref.Reference{}, err
	}
	if r.Qualified() {
		return r, nil
	}
	return t.resolver.Resolve(r)
}

// Eligible reports whether a declaration or member should be documented:
// it needs a non-empty doc comment and the public modifier.
func Eligible(doc string, modifiers []string) bool {
	return strings.TrimSpace(doc) != "" && model.HasModifier(modifiers, "public")
}
