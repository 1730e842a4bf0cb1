package module

import "errors"

var (
	ErrUnknownTest        = errors.New("unknown test")
	ErrCheckpointNotFound = errors.New("checkpoint not found")
)
