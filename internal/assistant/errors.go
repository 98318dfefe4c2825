package assistant

import "fmt"

// ErrorKind classifies how a turn failed so callers and tests can tell a
// missing identifier apart from an infrastructure failure.
type ErrorKind string

const (
	KindMissingEntity     ErrorKind = "missing_entity"
	KindNoMatch           ErrorKind = "no_match"
	KindAmbiguousFollowup ErrorKind = "ambiguous_followup"
	KindStoreFailure      ErrorKind = "store_failure"
	KindUnparseableDate   ErrorKind = "unparseable_date"
)

// TurnError is a recoverable turn failure. Every kind resolves to a single
// chat message; none is fatal to the process and none mutates slot state.
type TurnError struct {
	Kind   ErrorKind
	Prompt string
	Err    error
}

func (e *TurnError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("assistant: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("assistant: %s", e.Kind)
}

func (e *TurnError) Unwrap() error { return e.Err }

// Message returns the user-facing text for this failure.
func (e *TurnError) Message() string {
	if e.Kind == KindStoreFailure {
		return fmt.Sprintf("Sorry, something went wrong while looking that up: %v", e.Err)
	}
	return e.Prompt
}

func missingEntity(prompt string) *TurnError {
	return &TurnError{Kind: KindMissingEntity, Prompt: prompt}
}

func noMatch(prompt string) *TurnError {
	return &TurnError{Kind: KindNoMatch, Prompt: prompt}
}

func storeFailure(err error) *TurnError {
	return &TurnError{Kind: KindStoreFailure, Err: err}
}
