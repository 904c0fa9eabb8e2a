package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	separator      = "---\n"
	closeSeparator = "\n---\n"
)

// DecodeFrontmatter unmarshals the YAML header of content into out and
// returns the remaining body. Content without a header leaves out untouched.
func DecodeFrontmatter(content string, out any) (string, error) {
	if !strings.HasPrefix(content, separator) {
		return content, nil
	}
	rest := strings.TrimPrefix(content, separator)
	idx := strings.Index(rest, closeSeparator)
	if idx < 0 {
		return "", fmt.Errorf("invalid frontmatter: missing closing separator")
	}
	if err := yaml.Unmarshal([]byte(rest[:idx]), out); err != nil {
		return "", fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return rest[idx+len(closeSeparator):], nil
}

// Body returns content without its YAML header. The header is not parsed, so
// a broken header still yields the text below it. An unclosed header keeps
// the whole content.
func Body(content string) string {
	if !strings.HasPrefix(content, separator) {
		return content
	}
	rest := strings.TrimPrefix(content, separator)
	idx := strings.Index(rest, closeSeparator)
	if idx < 0 {
		return content
	}
	return rest[idx+len(closeSeparator):]
}

// RenderFrontmatter writes meta as a YAML header followed by body.
func RenderFrontmatter(meta any, body string) (string, error) {
	raw, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	buf := bytes.Buffer{}
	buf.WriteString(separator)
	buf.Write(raw)
	buf.WriteString(separator)
	if !strings.HasPrefix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString(body)
	return buf.String(), nil
}
