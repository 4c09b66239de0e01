package monitor

import "errors"

var (
	ErrUnableToParseAddr = errors.New("unable to parse target address")
	ErrTargetNotFound    = errors.New("target not found")
)
