package usecase

import "errors"

var (
	// ErrSkippableEntity marks a single source entity that cannot be
	// reconciled (unknown top division, out-of-season history, withdrawn
	// team). The run continues past it.
	ErrSkippableEntity = errors.New("skippable source entity")

	// ErrDataConflict marks a mapper-entity write that hit the
	// one-entity-per-(target, type, source) key. Attach converts it to an
	// update-in-place.
	ErrDataConflict = errors.New("mapper data conflict")

	// ErrSourceUnavailable marks a failed or malformed source fetch. Fatal
	// for the whole run; re-running the import is the recovery path.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrRepositoryConstraint marks a canonical-store constraint violation.
	// Fatal for the entity being processed, logged and skipped by default.
	ErrRepositoryConstraint = errors.New("repository constraint violated")

	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
)
