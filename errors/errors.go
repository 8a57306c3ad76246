package errors

import (
	stderrors "errors"
	"fmt"
)

type AppError struct {
	Code Code
	Op   string
	Err  error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("[%s] %s", e.Code, e.Op)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Op, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches a bare Code, so errors.Is(err, InvalidLength) works through any
// amount of wrapping.
func (e *AppError) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.Code
}

// New returns an AppError without an underlying cause.
func New(code Code, op string) error {
	return &AppError{Code: code, Op: op}
}

func WrapWithCode(code Code, op string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code: code,
		Op:   op,
		Err:  err,
	}
}

// Recode labels err with code. If err already carries a taxonomy code only its
// cause is kept, so the result never holds more than one code.
func Recode(code Code, op string, err error) error {
	if err == nil {
		return nil
	}
	var app *AppError
	if stderrors.As(err, &app) {
		if app.Code == code {
			return err
		}
		err = app.Err
	}
	return &AppError{Code: code, Op: op, Err: err}
}

// Ensure returns err untouched when it already carries a taxonomy code and
// labels it with fallback otherwise.
func Ensure(fallback Code, op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := CodeOf(err); ok {
		return err
	}
	return &AppError{Code: fallback, Op: op, Err: err}
}

// CodeOf extracts the taxonomy code carried by err.
func CodeOf(err error) (Code, bool) {
	var app *AppError
	if stderrors.As(err, &app) {
		return app.Code, true
	}
	var c Code
	if stderrors.As(err, &c) {
		return c, true
	}
	return "", false
}
