// Package rst renders class summaries, stub pages and warnings as
// reStructuredText.
package rst

import (
	"fmt"
	"strings"

	"github.com/phobologic/jdocref/internal/docs"
)

// Placeholder is shown for classes with nothing to document.
const Placeholder = "*(This topic does not yet have documentation)*"

// Warning returns the inline placeholder shown where a lookup failed.
func Warning(msg string) string {
	return "*(" + msg + ")*"
}

// Class renders sum as a titled page body with Properties, Methods and
// Constants sections.
func Class(sum *docs.Summary) string {
	var lines []string
	lines = append(lines, heading(sum.Name, '=')...)
	lines = append(lines, "")

	if sum.Empty() {
		lines = append(lines, Placeholder)
		return strings.Join(lines, "\n") + "\n"
	}

	lines = append(lines, section("Properties", "py:attribute", sum.Fields)...)
	lines = append(lines, section("Methods", "py:method", sum.Methods)...)
	lines = append(lines, section("Constants", "py:attribute", sum.Constants)...)

	return strings.Join(lines, "\n") + "\n"
}

func section(title, directive string, entries []docs.Entry) []string {
	if len(entries) == 0 {
		return nil
	}
	lines := heading(title, '-')
	lines = append(lines, "")
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf(".. %s:: %s", directive, e.Name), "")
		if e.Doc != nil {
			lines = append(lines, "\t"+*e.Doc, "")
		}
	}
	return lines
}

func heading(title string, underline byte) []string {
	return []string{title, strings.Repeat(string(underline), len(title))}
}

// Page returns a stub page that renders the class summary of ref through
// the java:class directive.
func Page(title, ref string) string {
	lines := heading(title, '=')
	lines = append(lines, "", ".. java:class::", "", "\t"+ref, "")
	return strings.Join(lines, "\n")
}

// Toctree returns a toctree directive listing docPaths.
func Toctree(docPaths []string) string {
	lines := []string{".. toctree::", "\t:maxdepth: 1", ""}
	for _, p := range docPaths {
		lines = append(lines, "\t"+p)
	}
	return strings.Join(lines, "\n")
}
