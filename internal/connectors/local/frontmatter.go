package local

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/speaktech/transqiita/internal/core/domain"
)

const delimiter = "---"

type frontMatter struct {
	ID        string    `yaml:"id,omitempty"`
	Title     string    `yaml:"title"`
	Tags      []string  `yaml:"tags,omitempty"`
	Private   bool      `yaml:"private,omitempty"`
	CreatedAt time.Time `yaml:"created_at,omitempty"`
	UpdatedAt time.Time `yaml:"updated_at,omitempty"`
	URL       string    `yaml:"url,omitempty"`
}

// parseDocument splits a file into front matter and body. A file without
// front matter is all body.
func parseDocument(data []byte) (frontMatter, string, error) {
	var fm frontMatter
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	if !strings.HasPrefix(text, delimiter+"\n") {
		return fm, text, nil
	}
	rest := text[len(delimiter)+1:]

	end := strings.Index(rest, "\n"+delimiter)
	if end < 0 {
		return fm, "", fmt.Errorf("%w: unterminated front matter", domain.ErrInvalidInput)
	}
	if err := yaml.Unmarshal([]byte(rest[:end]), &fm); err != nil {
		return fm, "", fmt.Errorf("%w: front matter: %w", domain.ErrInvalidInput, err)
	}

	body := rest[end+1+len(delimiter):]
	body = strings.TrimPrefix(body, "\n")
	return fm, body, nil
}

// renderDocument writes front matter followed by the body.
func renderDocument(fm frontMatter, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}

	buf.WriteString(delimiter + "\n")
	buf.WriteString(body)
	return buf.Bytes(), nil
}

// fallbackTitle uses the first level-one heading outside code fences, or
// the file name with separators turned into spaces.
func fallbackTitle(body, path string) string {
	inFence := false
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "```") {
			inFence = !inFence
			continue
		}
		if !inFence && strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.NewReplacer("_", " ", "-", " ").Replace(name)
}

func (fm frontMatter) tags() []domain.Tag {
	if len(fm.Tags) == 0 {
		return nil
	}
	tags := make([]domain.Tag, len(fm.Tags))
	for i, name := range fm.Tags {
		tags[i] = domain.Tag{Name: name}
	}
	return tags
}

func tagNames(tags []domain.Tag) []string {
	if len(tags) == 0 {
		return nil
	}
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return names
}
