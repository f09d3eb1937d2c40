package common

import "errors"

var (
	ErrorInvalidValue    = errors.New("invalid value")
	ErrorInvalidConfig   = errors.New("invalid configuration")
	ErrorDegenerateSplit = errors.New("anchor splits sample with an empty side")
	ErrorRetryExceeded   = errors.New("replication retry limit exceeded")
)
