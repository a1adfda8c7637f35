package dream

import "errors"

var (
	ErrInvalidParameter = errors.New("dream: invalid parameter")
	ErrModelLoad        = errors.New("dream: model load failed")
	ErrTransform        = errors.New("dream: transform failed")
	ErrRunnerUsed       = errors.New("dream: runner already used")
)
