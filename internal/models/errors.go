package models

import "errors"

// ErrValidation is returned when caller-supplied input is empty or malformed.
// Operations that fail validation leave all stores untouched.
var ErrValidation = errors.New("validation failed")
