package attester

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when the webhook token does not match the configured secret.
	ErrUnauthorized = errors.New("invalid token")

	// ErrConfiguration is returned when the service cannot sign transactions
	// or was built without its collaborators.
	ErrConfiguration = errors.New("attestation service misconfigured")
)

// ValidationError reports a request field that cannot be turned into an attestation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// SubmissionError wraps any failure from encoding the payload or from the
// attestation registry client. Submissions are never retried.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("attestation submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
