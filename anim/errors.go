package anim

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidEase is returned for unknown curve names and malformed
	// control points.
	ErrInvalidEase = errors.New("invalid ease")
	// ErrInvalidOption is returned for out-of-range constructor options.
	ErrInvalidOption = errors.New("invalid option")
)
