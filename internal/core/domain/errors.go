package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors and are matched
// with errors.Is after wrapping.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// Raised for a missing source file at ingestion and for an
	// unknown document identifier on update.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates a metadata invariant violation:
	// business context below the admission floor, a malformed
	// uploader address, or an out-of-range entity confidence.
	// Validation failures abort before any persistence occurs.
	ErrValidation = errors.New("validation failed")

	// ErrStorage indicates a persistence layer read/write failure,
	// including the corruption case of a metadata record whose
	// content blob is missing.
	ErrStorage = errors.New("storage failure")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLLMUnavailable indicates no language model backend is configured.
	// Agents degrade to retrieval-only answers without one.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the configured backend cannot
	// produce embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
