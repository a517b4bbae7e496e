package usecase

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNoAnalysis       = errors.New("no analysis available")
	ErrAnalysisInFlight = errors.New("analysis already running")
	ErrInternal         = errors.New("internal error")
)
