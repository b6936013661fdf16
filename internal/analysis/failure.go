package analysis

import (
	"errors"
	"fmt"
)

const (
	// LogicalFallbackMessage is shown when the server reports failure without a reason.
	LogicalFallbackMessage = "analysis failed"
	// TransportMessage replaces any network or decoding error.
	TransportMessage = "cannot reach server, please retry"
)

// FailureKind separates server-reported failures from transport problems.
type FailureKind int

const (
	FailureLogical FailureKind = iota + 1
	FailureTransport
)

func (k FailureKind) String() string {
	switch k {
	case FailureLogical:
		return "logical"
	case FailureTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Failure is returned by Client for every unsuccessful call. Message is safe to show users.
type Failure struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s failure: %s: %v", f.Kind, f.Message, f.Err)
	}
	return fmt.Sprintf("%s failure: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() error { return f.Err }

func logicalFailure(message string) *Failure {
	if message == "" {
		message = LogicalFallbackMessage
	}
	return &Failure{Kind: FailureLogical, Message: message}
}

func transportFailure(err error) *Failure {
	return &Failure{Kind: FailureTransport, Message: TransportMessage, Err: err}
}

// OutcomeKind tags the three ways a request can end.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeLogical
	OutcomeTransport
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeLogical:
		return "logical"
	default:
		return "transport"
	}
}

// Outcome is the tagged result of one classifier call.
type Outcome struct {
	Kind     OutcomeKind
	Response Response
	Message  string
}

// NewOutcome folds a (Response, error) pair into an Outcome. Errors that are not a
// *Failure (context cancellation, for instance) count as transport failures.
func NewOutcome(resp Response, err error) Outcome {
	if err == nil {
		return Outcome{Kind: OutcomeSuccess, Response: resp}
	}
	var failure *Failure
	if errors.As(err, &failure) && failure.Kind == FailureLogical {
		return Outcome{Kind: OutcomeLogical, Message: failure.Message}
	}
	return Outcome{Kind: OutcomeTransport, Message: TransportMessage}
}
