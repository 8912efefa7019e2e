package apperror

import "net/http"

// AppError carries an HTTP status alongside a client-safe message. Errs
// holds the ordered validation message list when present. The wrapped error
// is for server-side logs only and never serialized.
type AppError struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Errs    []string `json:"errors,omitempty"`
	Err     error    `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithErrors attaches the ordered error list reported back to the client.
func (e *AppError) WithErrors(errs []string) *AppError {
	e.Errs = errs
	return e
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal server error", err)
}
