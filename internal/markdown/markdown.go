// Package markdown extracts a title and frontmatter tags from note content.
// It is used when a note is saved without an explicit title.
package markdown

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"
)

// Result holds what could be derived from raw Markdown content.
type Result struct {
	Title string
	Tags  []string
	Body  string
}

// Parse splits optional YAML frontmatter from the body and derives a title:
// frontmatter "title" wins, otherwise the first "# " heading, otherwise the
// first non-empty line truncated to 80 runes.
func Parse(content string) Result {
	fm, body := splitFrontmatter([]byte(content))

	res := Result{Body: body}
	if t, ok := fm["title"].(string); ok && t != "" {
		res.Title = t
	}
	res.Tags = frontmatterTags(fm)

	if res.Title == "" {
		res.Title = deriveTitle(body)
	}
	return res
}

func splitFrontmatter(data []byte) (map[string]any, string) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data)
	}
	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, string(data)
	}

	var fm map[string]any
	if err := yaml.Unmarshal(rest[:idx], &fm); err != nil {
		return nil, string(data)
	}
	body := strings.TrimLeft(string(rest[idx+1+len(delim):]), "\n\r")
	return fm, body
}

func frontmatterTags(fm map[string]any) []string {
	raw, ok := fm["tags"]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case []any:
		var tags []string
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				tags = append(tags, s)
			}
		}
		return tags
	case string:
		var tags []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				tags = append(tags, s)
			}
		}
		return tags
	}
	return nil
}

func deriveTitle(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimSpace(strings.TrimLeft(line, "#"))
		if line == "" {
			continue
		}
		if r := []rune(line); len(r) > 80 {
			return string(r[:80])
		}
		return line
	}
	return ""
}
