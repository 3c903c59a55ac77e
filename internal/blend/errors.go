package blend

import (
	"errors"
	"fmt"
)

// Kind classifies a solver failure.
type Kind int

const (
	// KindInvalidInput marks malformed or out-of-domain parameters.
	KindInvalidInput Kind = iota + 1
	// KindInfeasible marks a well-formed request whose target purity cannot be reached.
	KindInfeasible
	// KindConvergence marks a search that exhausted its iteration cap.
	KindConvergence
)

// Sentinel errors usable with errors.Is against any *Error of the matching kind.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInfeasible   = errors.New("infeasible target")
	ErrConvergence  = errors.New("convergence failure")
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindInfeasible:
		return "Infeasible"
	case KindConvergence:
		return "ConvergenceFailure"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidInput:
		return ErrInvalidInput
	case KindInfeasible:
		return ErrInfeasible
	case KindConvergence:
		return ErrConvergence
	default:
		return nil
	}
}

// Error is the typed failure returned by Solve.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Hint    string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is lets errors.Is match an *Error against the sentinel of its kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func invalidInput(field, hint, format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidInput, Field: field, Message: fmt.Sprintf(format, args...), Hint: hint}
}

// KindOf reports the failure kind of err, or 0 when err is not a solver failure.
func KindOf(err error) Kind {
	var blendErr *Error
	if errors.As(err, &blendErr) {
		return blendErr.Kind
	}
	return 0
}
