package service

import (
	"errors"

	"google.golang.org/grpc/codes"
)

// Error kinds surfaced by the detection pipeline. Stage errors wrap one of
// these so that errors.Is identifies the kind while the message keeps the cause.
var (
	ErrValidation = errors.New("validation error")
	ErrFetch      = errors.New("fetch error")
	ErrNotFound   = errors.New("not found error")
	ErrDecode     = errors.New("decode error")
	ErrInference  = errors.New("inference error")
)

// ErrMissingFileName is returned when the payload has no file_name field. It
// is a validation error whose message is the exact response body.
var ErrMissingFileName error = missingFileNameError{}

type missingFileNameError struct{}

func (missingFileNameError) Error() string { return "Missing file name in POST request" }

func (missingFileNameError) Unwrap() error { return ErrValidation }

// Code maps an error to the gRPC code of its kind.
func Code(err error) codes.Code {
	switch {
	case err == nil:
		return codes.OK
	case errors.Is(err, ErrValidation):
		return codes.InvalidArgument
	case errors.Is(err, ErrFetch):
		return codes.Unavailable
	case errors.Is(err, ErrNotFound):
		return codes.Internal
	case errors.Is(err, ErrDecode):
		return codes.DataLoss
	case errors.Is(err, ErrInference):
		return codes.Internal
	default:
		return codes.Unknown
	}
}
