package domain

// CodeFence is the Markdown fenced code block delimiter.
const CodeFence = "```"

// DefaultMaxChunkSize is the largest prose piece, in characters, sent to a
// translation backend in one request.
const DefaultMaxChunkSize = 2000

// ChunkKind tags a body segment.
type ChunkKind string

const (
	// ChunkProse is translatable text outside code fences.
	ChunkProse ChunkKind = "prose"

	// ChunkCode is text between a pair of fences. It is never translated.
	ChunkCode ChunkKind = "code"
)

// Chunk is a contiguous segment of an article body.
type Chunk struct {
	// Kind tags the segment as prose or code.
	Kind ChunkKind

	// Text is the segment content without fence delimiters.
	Text string

	// Position is the ordinal position within the body.
	Position int

	// Pieces holds the size-bounded cuts of a prose segment.
	// Empty for code segments.
	Pieces []string
}

// IsCode reports whether the chunk is a code segment.
func (c Chunk) IsCode() bool {
	return c.Kind == ChunkCode
}
