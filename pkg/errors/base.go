package errors

import (
	"fmt"
	"strings"
)

/*
Error aggregates multiple errors and free-form messages into a single
error value. Used on teardown paths where several independent failures
should surface together.
*/
type Error struct {
	Errs []error
	Msgs []any
}

func NewError(errs ...any) error {
	err := &Error{}

	for _, msg := range errs {
		switch v := msg.(type) {
		case error:
			err.Errs = append(err.Errs, v)
		case string:
			err.Msgs = append(err.Msgs, v)
		}
	}

	return err
}

func (err *Error) Error() string {
	builder := &strings.Builder{}

	for _, err := range err.Errs {
		builder.WriteString(err.Error())
		builder.WriteString("\n")
	}

	for _, msg := range err.Msgs {
		builder.WriteString(fmt.Sprintf("%v\n", msg))
	}

	return builder.String()
}

/*
Unwrap exposes the aggregated errors to errors.Is / errors.As.
*/
func (err *Error) Unwrap() []error {
	return err.Errs
}
