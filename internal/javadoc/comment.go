// Package javadoc parses documentation comments and rewrites their inline
// links into resolved cross-references.
package javadoc

import (
	"regexp"
	"strings"
)

var (
	linkRe     = regexp.MustCompile(`\{@link ([^}]+)\}`)
	blockTagRe = regexp.MustCompile(`^@([A-Za-z][\w.-]*)\s*(.*)$`)
)

// Comment is a parsed documentation comment.
type Comment struct {
	// Description is the text before the first block tag, joined into one line.
	Description string
	Tags        []BlockTag
}

// BlockTag is a block tag such as @param or @return. For @param, @throws and
// @exception the first word of the text is split off into Name.
type BlockTag struct {
	Tag  string
	Name string
	Text string
}

// Links returns the target of every {@link} marker in the description, in order.
func (c Comment) Links() []string {
	var targets []string
	for _, m := range linkRe.FindAllStringSubmatch(c.Description, -1) {
		targets = append(targets, strings.TrimSpace(m[1]))
	}
	return targets
}

// Tag returns the first block tag named name.
func (c Comment) Tag(name string) (BlockTag, bool) {
	for _, t := range c.Tags {
		if t.Tag == name {
			return t, true
		}
	}
	return BlockTag{}, false
}

// Parse parses raw comment text, with or without the /** */ delimiters.
func Parse(raw string) Comment {
	var c Comment
	var desc []string
	var cur *BlockTag

	for _, line := range sanitize(raw) {
		if m := blockTagRe.FindStringSubmatch(line); m != nil {
			c.Tags = append(c.Tags, newBlockTag(m[1], m[2]))
			cur = &c.Tags[len(c.Tags)-1]
			continue
		}
		if line == "" {
			continue
		}
		if cur != nil {
			cur.Text = strings.TrimSpace(cur.Text + " " + line)
			continue
		}
		desc = append(desc, line)
	}

	c.Description = strings.Join(desc, " ")
	return c
}

func newBlockTag(tag, text string) BlockTag {
	t := BlockTag{Tag: tag, Text: strings.TrimSpace(text)}
	switch tag {
	case "param", "throws", "exception":
		name, rest, _ := strings.Cut(t.Text, " ")
		t.Name = name
		t.Text = strings.TrimSpace(rest)
	}
	return t
}

// sanitize strips the comment delimiters and the leading '*' gutter and
// returns the trimmed lines.
func sanitize(raw string) []string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "/**")
	s = strings.TrimSuffix(s, "*/")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}
