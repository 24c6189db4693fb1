package entity

import "errors"

// Domain errors
var (
	// Corpus errors
	ErrCorpusUnavailable = errors.New("corpus unavailable: run the corpus build first")
	ErrCorpusMalformed   = errors.New("corpus record is malformed")
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// Simulation errors
	ErrInvalidRange       = errors.New("retirement age must be >= current age")
	ErrInvalidInputs      = errors.New("invalid simulation inputs")
	ErrSimulationNotFound = errors.New("simulation not found")
	ErrPresetNotFound     = errors.New("preset not found")

	// Collaborator errors
	ErrEmbeddingFailed  = errors.New("embedding service failure")
	ErrGenerationFailed = errors.New("generation service failure")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)
