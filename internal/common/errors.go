// Package common defines shared sentinel errors used across cofre
// components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Session errors.
	ErrNoSession      = errors.New("no session")
	ErrInvalidSession = errors.New("invalid session")

	// Object storage errors.
	ErrEmptyRef      = errors.New("empty attachment reference")
	ErrSigningFailed = errors.New("signing failed")
	ErrUploadFailed  = errors.New("upload failed")
	ErrListFailed    = errors.New("list failed")
)
