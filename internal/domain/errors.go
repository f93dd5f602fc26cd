package domain

import (
	"errors"
	"strings"
)

// ErrInvalidInput is matched by every *InvalidInputError via errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError is a blocking validation failure. No partial plan is
// produced when one is returned.
type InvalidInputError struct {
	Field    string
	Message  string
	Problems []string
}

func NewInvalidInput(field, message string) *InvalidInputError {
	return &InvalidInputError{Field: field, Message: message}
}

func (e *InvalidInputError) Error() string {
	if len(e.Problems) > 0 {
		return "invalid input: " + strings.Join(e.Problems, "; ")
	}
	if e.Field == "" {
		return "invalid input: " + e.Message
	}
	return "invalid input: " + e.Field + ": " + e.Message
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// JoinInvalidInput folds a list of validation errors into one
// *InvalidInputError. Returns nil for an empty list.
func JoinInvalidInput(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		var single *InvalidInputError
		if errors.As(errs[0], &single) {
			return single
		}
	}
	problems := make([]string, 0, len(errs))
	for _, err := range errs {
		var ie *InvalidInputError
		if errors.As(err, &ie) && len(ie.Problems) > 0 {
			problems = append(problems, ie.Problems...)
			continue
		}
		if ie != nil {
			if ie.Field != "" {
				problems = append(problems, ie.Field+": "+ie.Message)
			} else {
				problems = append(problems, ie.Message)
			}
			continue
		}
		problems = append(problems, err.Error())
	}
	return &InvalidInputError{Problems: problems}
}
