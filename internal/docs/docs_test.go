package docs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/jdocref/internal/config"
	"github.com/phobologic/jdocref/internal/docerr"
	"github.com/phobologic/jdocref/internal/model"
	"github.com/phobologic/jdocref/internal/repo"
)

const energySource = `package edu.duke.osprey.energy;

import edu.duke.osprey.confspace.SimpleConfSpace;
import edu.duke.osprey.structure.Molecule;

/** Computes energies. */
public class EnergyCalculator {

	/** Uses a {@link SimpleConfSpace} and a {@link Molecule}. */
	public int parallelism, streams;

	/** Hidden. */
	private int secret;

	public double undocumented;

	/** Builds one. See {@link #parallelism}. */
	public static EnergyCalculator build(int n) { return null; }

	/** Not public. */
	void internal() {}

	/** Points at {@link Missing}. */
	public void broken() {}

	public static class Builder {
		/** Sets it. */
		public Builder set(int x) { return this; }
	}
}
`

const modeSource = `package edu.duke.osprey.energy;

/** Modes. */
public enum Mode {
	/** Fast. */
	Fast,
	Slow;

	/** Describes. */
	public String describe() { return ""; }
}
`

func newService(t *testing.T) (*Service, *config.Config) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.SourcesDir = filepath.Join(dir, "src")
	cfg.DocsDir = filepath.Join(dir, "doc")
	cfg.PackagePrefix = "edu.duke.osprey"

	write(t, cfg.SourcesDir, "edu/duke/osprey/energy/EnergyCalculator.java", energySource)
	write(t, cfg.SourcesDir, "edu/duke/osprey/energy/Mode.java", modeSource)

	return New(cfg, repo.New(cfg.SourcesDir), zerolog.Nop()), cfg
}

func write(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestMemberDocField(t *testing.T) {
	t.Parallel()
	s, _ := newService(t)

	doc, err := s.MemberDoc(".energy.EnergyCalculator#streams", Field)
	require.NoError(t, err)
	assert.Equal(t,
		"Uses a :java:ref:`edu.duke.osprey.confspace.SimpleConfSpace` and a :java:ref:`edu.duke.osprey.structure.Molecule`.",
		doc.Text)
	assert.Equal(t, "public int streams", doc.Signature)
	assert.Equal(t, "edu.duke.osprey.energy.EnergyCalculator#streams", doc.Ref.String())
}

func TestMemberDocMethodEnclosingLink(t *testing.T) {
	t.Parallel()
	s, _ := newService(t)

	doc, err := s.MemberDoc("edu.duke.osprey.energy.EnergyCalculator#build", Method)
	require.NoError(t, err)
	assert.Equal(t, "Builds one. See :java:ref:`edu.duke.osprey.energy.EnergyCalculator#parallelism`.", doc.Text)
	assert.Equal(t, "public static EnergyCalculator build(int n)", doc.Signature)
}

func TestMemberDocNested(t *testing.T) {
	t.Parallel()
	s, _ := newService(t)

	doc, err := s.MemberDoc(".energy.EnergyCalculator$Builder#set", Method)
	require.NoError(t, err)
	assert.Equal(t, "Sets it.", doc.Text)
}

func TestMemberDocConstant(t *testing.T) {
	t.Parallel()
	s, _ := newService(t)

	doc, err := s.MemberDoc(".energy.Mode#Fast", Constant)
	require.NoError(t, err)
	assert.Equal(t, "Fast.", doc.Text)

	_, err = s.MemberDoc(".energy.Mode#Slow", Constant)
	require.ErrorIs(t, err, docerr.EmptyDocumentation)
}

func TestMemberDocFieldFallsBackToConstant(t *testing.T) {
	t.Parallel()
	s, _ := newService(t)

	doc, err := s.MemberDoc(".energy.Mode#Fast", Field)
	require.NoError(t, err)
	assert.Equal(t, "Fast.", doc.Text)
	assert.Equal(t, "Fast", doc.Signature)

	_, err = s.MemberDoc(".energy.Mode#Exact", Field)
	require.ErrorIs(t, err, docerr.MemberNotFound)
}

func TestMemberDocTranslationError(t *testing.T) {
	t.Parallel()
	s, _ := newService(t)

	_, err := s.MemberDoc(".energy.EnergyCalculator#broken", Method)
	var te *TranslationError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "edu.duke.osprey.energy.EnergyCalculator#broken", te.Ref.String())
	assert.ErrorIs(t, err, docerr.UnresolvedReference)

	_, err = s.MemberDoc(".energy.EnergyCalculator#nope", Method)
	assert.False(t, errors.As(err, &te), "lookup failures are not translation errors")
}

func TestMemberDocErrors(t *testing.T) {
	t.Parallel()
	s, _ := newService(t)

	cases := []struct {
		name string
		text string
		kind MemberKind
		want error
	}{
		{"empty", "", Field, docerr.MalformedReference},
		{"no member", ".energy.EnergyCalculator", Field, docerr.MalformedReference},
		{"undocumented", ".energy.EnergyCalculator#undocumented", Field, docerr.EmptyDocumentation},
		{"missing field", ".energy.EnergyCalculator#nope", Field, docerr.MemberNotFound},
		{"missing file", ".energy.Nope#x", Field, docerr.SourceFileNotFound},
		{"missing inner", ".energy.EnergyCalculator$Nope#x", Method, docerr.DeclarationNotFound},
		{"unresolved link", ".energy.EnergyCalculator#broken", Method, docerr.UnresolvedReference},
		{"unqualified", "EnergyCalculator#build", Method, docerr.UnresolvedReference},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := s.MemberDoc(tc.text, tc.kind)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestClassSummary(t *testing.T) {
	t.Parallel()
	s, _ := newService(t)

	_, err := s.ClassSummary(".energy.EnergyCalculator")
	require.ErrorIs(t, err, docerr.UnresolvedReference, "the broken method link fails the summary")

	sum, err := s.ClassSummary(".energy.EnergyCalculator$Builder")
	require.NoError(t, err)
	assert.Equal(t, "Builder", sum.Name)
	require.Len(t, sum.Methods, 1)
	assert.Equal(t, "set", sum.Methods[0].Name)
	assert.Empty(t, sum.Fields)
	assert.Empty(t, sum.Constants)
}

func TestClassSummaryFieldsPerDeclarator(t *testing.T) {
	t.Parallel()
	s, cfg := newService(t)
	write(t, cfg.SourcesDir, "edu/duke/osprey/Pair.java", `package edu.duke.osprey;
public class Pair {
	/** Both ends. */
	public int left, right;
	/** Hidden. */
	protected int hidden;
}
`)

	sum, err := s.ClassSummary(".Pair")
	require.NoError(t, err)
	require.Len(t, sum.Fields, 2)
	assert.Equal(t, "left", sum.Fields[0].Name)
	assert.Equal(t, "right", sum.Fields[1].Name)
	assert.Equal(t, "Both ends.", *sum.Fields[1].Doc)
}

func TestClassSummaryEnum(t *testing.T) {
	t.Parallel()
	s, _ := newService(t)

	sum, err := s.ClassSummary(".energy.Mode")
	require.NoError(t, err)
	assert.Equal(t, model.Enum, sum.Kind)
	require.Len(t, sum.Constants, 2)
	assert.Equal(t, "Fast", sum.Constants[0].Name)
	require.NotNil(t, sum.Constants[0].Doc)
	assert.Equal(t, "Fast.", *sum.Constants[0].Doc)
	assert.Nil(t, sum.Constants[1].Doc)
	require.Len(t, sum.Methods, 1)
	assert.False(t, sum.Empty())
}

func TestXref(t *testing.T) {
	t.Parallel()
	s, cfg := newService(t)

	x, err := s.Xref(".energy.EnergyCalculator$Builder#set")
	require.NoError(t, err)
	assert.Equal(t, "api.energy.EnergyCalculator.Builder", x.DocPath)
	assert.Equal(t, "set", x.Text)
	assert.Equal(t, "set", x.Anchor)
	assert.False(t, x.Exists)

	write(t, cfg.DocsDir, "api.energy.Mode.rst", "Mode\n====\n")
	x, err = s.Xref(".energy.Mode")
	require.NoError(t, err)
	assert.Equal(t, "api.energy.Mode", x.DocPath)
	assert.Equal(t, "Mode", x.Text)
	assert.Empty(t, x.Anchor)
	assert.True(t, x.Exists)
}

func TestDocPathOutsidePrefix(t *testing.T) {
	t.Parallel()
	s, _ := newService(t)

	r, err := s.Reference("org.other.Thing")
	require.NoError(t, err)
	assert.Equal(t, "api.org.other.Thing", s.DocPath(r))
}

func TestCheck(t *testing.T) {
	t.Parallel()
	s, cfg := newService(t)
	path := filepath.Join(cfg.SourcesDir, "edu/duke/osprey/Links.java")
	write(t, cfg.SourcesDir, "edu/duke/osprey/Links.java", `package edu.duke.osprey;

import java.util.List;

/** Uses {@link List} and {@link Gone}. */
public class Links {
	/** Private {@link Ignored}. */
	private int hidden;

	/** See {@link #other} and {@link Lost}. */
	public void run() {}

	public static class Inner {
		/** {@link Deep} */
		public int x;
	}
}
`)

	problems, err := s.Check(path)
	require.NoError(t, err)
	require.Len(t, problems, 3)

	assert.Equal(t, "edu.duke.osprey.Links", problems[0].Ref.String())
	assert.Equal(t, "Gone", problems[0].Link)
	assert.ErrorIs(t, problems[0].Err, docerr.UnresolvedReference)

	assert.Equal(t, "edu.duke.osprey.Links#run", problems[1].Ref.String())
	assert.Equal(t, "Lost", problems[1].Link)

	assert.Equal(t, "edu.duke.osprey.Links$Inner#x", problems[2].Ref.String())
	assert.Equal(t, "Deep", problems[2].Link)
}

func TestCheckMissingFile(t *testing.T) {
	t.Parallel()
	s, cfg := newService(t)

	_, err := s.Check(filepath.Join(cfg.SourcesDir, "Nope.java"))
	require.ErrorIs(t, err, docerr.SourceFileNotFound)
}
