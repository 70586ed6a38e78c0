package tui

import "errors"

// ErrMissingWorklistService is returned when the worklist service is not provided.
var ErrMissingWorklistService = errors.New("tui: worklist service is required")

// ErrMissingPublishService is returned when the publish service is not provided.
var ErrMissingPublishService = errors.New("tui: publish service is required")

// ErrCancelled is returned when the user quits before publishing.
var ErrCancelled = errors.New("tui: cancelled")
