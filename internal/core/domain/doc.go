// Package domain defines the core business entities for transqiita.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Article: An authored document snapshot from a content repository
//   - WorkItem: An article selected for translation, with its disposition
//   - Chunk: A prose or code segment of an article body
//   - Draft: A translated title and body ready to publish
//   - PublishRecord: A history entry for a published translation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
