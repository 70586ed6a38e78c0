// Package connectors opens the content repository named by settings.
// Each subpackage implements driven.ContentRepository for one kind
// (qiita, gist, local).
package connectors
