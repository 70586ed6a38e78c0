// Package gist implements a content repository on GitHub Gists.
//
// An article is a gist whose description is the title and whose first
// Markdown file is the body. Gists without a Markdown file are ignored.
// Gists carry no tags, so tags are dropped on publish.
package gist
