package errors

import "errors"

// Domain is the ErrorInfo domain of every troller error.
const Domain = "troller.louisbranch.github.com"

// Error tags a cause with a Code and the values its user message needs.
type Error struct {
	Code     Code
	Message  string            // For logs; never shown to users.
	Metadata map[string]string // Template values for the user message.
	Cause    error
}

func (e *Error) Error() string {
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

// New returns an error with no cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap tags cause with code. kv are alternating metadata keys and values; a
// trailing key without a value is dropped.
func Wrap(code Code, cause error, kv ...string) *Error {
	e := &Error{Code: code, Cause: cause}
	if cause != nil {
		e.Message = cause.Error()
	}
	if len(kv) >= 2 {
		e.Metadata = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			e.Metadata[kv[i]] = kv[i+1]
		}
	}
	return e
}

// CodeOf returns the code of the first *Error in err's chain, or CodeUnknown.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}
