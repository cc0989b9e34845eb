package service

import "errors"

// ErrInvalid marks a rejected input. Handlers map it to a 400 response;
// wrap it with the concrete complaint.
var ErrInvalid = errors.New("invalid input")
