// Package local implements a content repository backed by a directory of
// Markdown files with YAML front matter:
//
//	---
//	id: 0b9c6f4e-...
//	title: 記事のタイトル
//	tags: [go, cli]
//	private: false
//	created_at: 2024-01-01T00:00:00Z
//	updated_at: 2024-01-02T00:00:00Z
//	---
//	Body in Markdown.
//
// Files without an id use their filename stem. Hidden files and
// directories are skipped.
package local
