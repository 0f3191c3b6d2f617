package rst

import (
	"strings"
	"testing"

	"github.com/phobologic/jdocref/internal/docs"
	"github.com/phobologic/jdocref/internal/model"
)

func str(s string) *string { return &s }

func TestWarning(t *testing.T) {
	t.Parallel()
	if got := Warning("can't find field: x"); got != "*(can't find field: x)*" {
		t.Errorf("Warning = %q", got)
	}
}

func TestClass(t *testing.T) {
	t.Parallel()

	sum := &docs.Summary{
		Name: "Calc",
		Kind: model.Class,
		Fields: []docs.Entry{
			{Name: "a", Doc: str("Two values.")},
			{Name: "b", Doc: str("Two values.")},
		},
		Methods: []docs.Entry{
			{Name: "run", Doc: str("Runs :java:ref:`p.Q`.")},
		},
	}

	want := strings.Join([]string{
		"Calc",
		"====",
		"",
		"Properties",
		"----------",
		"",
		".. py:attribute:: a",
		"",
		"\tTwo values.",
		"",
		".. py:attribute:: b",
		"",
		"\tTwo values.",
		"",
		"Methods",
		"-------",
		"",
		".. py:method:: run",
		"",
		"\tRuns :java:ref:`p.Q`.",
		"",
	}, "\n") + "\n"

	if got := Class(sum); got != want {
		t.Errorf("Class mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestClassEnumConstants(t *testing.T) {
	t.Parallel()

	got := Class(&docs.Summary{
		Name:      "Mode",
		Kind:      model.Enum,
		Constants: []docs.Entry{{Name: "Fast", Doc: str("Fast.")}, {Name: "Slow"}},
	})

	for _, want := range []string{
		"Constants\n---------\n",
		".. py:attribute:: Fast\n\n\tFast.\n",
		".. py:attribute:: Slow\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Properties") || strings.Contains(got, "Methods") {
		t.Errorf("empty sections rendered:\n%s", got)
	}
}

func TestClassEmpty(t *testing.T) {
	t.Parallel()

	got := Class(&docs.Summary{Name: "Empty"})
	want := "Empty\n=====\n\n" + Placeholder + "\n"
	if got != want {
		t.Errorf("Class = %q, want %q", got, want)
	}
}

func TestPage(t *testing.T) {
	t.Parallel()

	got := Page("Mode", ".energy.Mode")
	want := "Mode\n====\n\n.. java:class::\n\n\t.energy.Mode\n"
	if got != want {
		t.Errorf("Page = %q, want %q", got, want)
	}
}

func TestToctree(t *testing.T) {
	t.Parallel()

	got := Toctree([]string{"api.A", "api.b.C"})
	want := ".. toctree::\n\t:maxdepth: 1\n\n\tapi.A\n\tapi.b.C"
	if got != want {
		t.Errorf("Toctree = %q, want %q", got, want)
	}
}
