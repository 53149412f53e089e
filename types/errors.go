package types

import "errors"

var (
	// ErrNotInitialized is returned when a request needs a collaborator that
	// failed to load at startup. The process still comes up degraded so an
	// operator can fix the missing piece without a crash loop.
	ErrNotInitialized = errors.New("service not initialized correctly")

	// ErrGenerationTimeout bounds synchronous model inference per request.
	ErrGenerationTimeout = errors.New("answer generation timed out")
)
