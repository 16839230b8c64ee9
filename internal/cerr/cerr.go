// Package cerr defines the compiler's two user-facing error categories.
//
// A user error (User/Userf) is predictable: bad input, a lex/parse failure,
// an undefined label. Internal marks an invariant violation uncovered mid-pipeline. Both
// propagate to the process boundary unwrapped.
package cerr

import "fmt"

type userError struct {
	msg  string
	wrap error
}

func (e *userError) Error() string {
	return e.msg
}

func (e *userError) Unwrap() error {
	return e.wrap
}

// User returns a new user-facing error with the given message.
func User(msg string) error {
	return &userError{msg: msg}
}

// Userf is User with fmt.Sprintf-style formatting.
func Userf(format string, a ...interface{}) error {
	return &userError{msg: fmt.Sprintf(format, a...)}
}

// WrapUser wraps an existing error as user-facing with message msg. The
// wrapped error is reachable through errors.Unwrap; its text is not part
// of the message.
func WrapUser(e error, msg string) error {
	return &userError{msg: msg, wrap: e}
}

// Internal returns a new error for an invariant violation encountered
// mid-pipeline, such as a missing GOTO target or an unknown opcode. The
// message is prefixed so it reads distinctly from ordinary user errors.
func Internal(msg string) error {
	return &userError{msg: "Internal error: " + msg}
}

// Internalf is Internal with fmt.Sprintf-style formatting.
func Internalf(format string, a ...interface{}) error {
	return Internal(fmt.Sprintf(format, a...))
}

// IsUser reports whether err is one of this package's user-facing errors
// (which includes Internal errors - both are terminal, display-ready
// messages; the distinction is cosmetic, not structural).
func IsUser(err error) bool {
	_, ok := err.(*userError)
	return ok
}
