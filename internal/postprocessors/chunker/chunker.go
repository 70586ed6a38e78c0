// Package chunker splits Markdown bodies into prose and fenced code segments.
package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/speaktech/transqiita/internal/core/domain"
)

// Splitter cuts a body on code fences and bounds prose pieces by size.
type Splitter struct {
	fence        string
	maxChunkSize int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithMaxChunkSize sets the largest prose piece in characters.
func WithMaxChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.maxChunkSize = size
		}
	}
}

// WithFence overrides the code fence delimiter.
func WithFence(fence string) Option {
	return func(s *Splitter) {
		if fence != "" {
			s.fence = fence
		}
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		fence:        domain.CodeFence,
		maxChunkSize: domain.DefaultMaxChunkSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fence returns the delimiter the splitter cuts on.
func (s *Splitter) Fence() string {
	return s.fence
}

// MaxChunkSize returns the prose piece bound in characters.
func (s *Splitter) MaxChunkSize() int {
	return s.maxChunkSize
}

// Split returns the body's segments in order. Segments at odd positions are
// code, except a final segment left open by an unmatched fence, which stays
// prose. Prose segments carry their size-bounded pieces.
func (s *Splitter) Split(body string) []domain.Chunk {
	segments := strings.Split(body, s.fence)
	chunks := make([]domain.Chunk, 0, len(segments))

	for i, seg := range segments {
		c := domain.Chunk{Text: seg, Position: i}
		if i%2 == 1 && i < len(segments)-1 {
			c.Kind = domain.ChunkCode
		} else {
			c.Kind = domain.ChunkProse
			c.Pieces = s.Cut(seg)
		}
		chunks = append(chunks, c)
	}

	return chunks
}

// Cut splits text into consecutive pieces of at most MaxChunkSize characters.
// The cut is mechanical and may fall mid-word. Empty text yields no pieces.
func (s *Splitter) Cut(text string) []string {
	if text == "" {
		return nil
	}
	if utf8.RuneCountInString(text) <= s.maxChunkSize {
		return []string{text}
	}

	var pieces []string
	start, count := 0, 0
	for i := range text {
		if count == s.maxChunkSize {
			pieces = append(pieces, text[start:i])
			start, count = i, 0
		}
		count++
	}
	return append(pieces, text[start:])
}

// Join reassembles chunks with the bare fence between neighbours.
// Join(Split(body)) == body.
func (s *Splitter) Join(chunks []domain.Chunk) string {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	return strings.Join(texts, s.fence)
}

// CountCode returns the number of code chunks.
func CountCode(chunks []domain.Chunk) int {
	n := 0
	for _, c := range chunks {
		if c.IsCode() {
			n++
		}
	}
	return n
}
