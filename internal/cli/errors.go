package cli

import "errors"

// ErrUsage matches any error caused by bad command-line usage, so callers
// can distinguish operator mistakes from service failures.
var ErrUsage = errors.New("cli usage error")

type usageError struct {
	msg string
}

func newUsageError(msg string) error {
	return usageError{msg: msg}
}

func (e usageError) Error() string {
	return e.msg
}

func (e usageError) Is(target error) bool {
	return target == ErrUsage
}
