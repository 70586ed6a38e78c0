// Package mcp exposes the worklist and publishing over the Model Context
// Protocol so AI assistants can drive translations.
package mcp

import "errors"

// ErrMissingWorklistService is returned when the worklist service is not provided.
var ErrMissingWorklistService = errors.New("mcp: worklist service is required")

// ErrMissingPublishService is returned when the publish service is not provided.
var ErrMissingPublishService = errors.New("mcp: publish service is required")
