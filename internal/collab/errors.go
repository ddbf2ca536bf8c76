package collab

import "errors"

// retryableError marks a transport or server failure worth retrying.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return e.err.Error()
}

func (e *retryableError) Unwrap() error {
	return e.err
}

func isRetryableError(err error) bool {
	var r *retryableError
	return errors.As(err, &r)
}
