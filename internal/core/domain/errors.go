package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown translator, repository or processor type.
	ErrUnsupportedType = errors.New("unsupported type")

	// Pipeline Errors.

	// ErrClassification indicates language detection failed for an article.
	// Classification happens once per run, so this aborts the whole run.
	ErrClassification = errors.New("language classification failed")

	// ErrTranslation indicates the translation backend failed.
	// Only the article being translated is abandoned.
	ErrTranslation = errors.New("translation failed")

	// ErrPublish indicates the content repository rejected a create or update.
	ErrPublish = errors.New("publish failed")

	// ErrTranslatorUnavailable indicates no translation backend is configured.
	ErrTranslatorUnavailable = errors.New("translator unavailable")

	// Authentication Errors.

	// ErrAuthRequired indicates the repository requires a token but none is configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the token is malformed or was rejected.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
