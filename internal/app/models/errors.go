package models

import "errors"

// Error kinds shared by the planning client and the orchestrator.
var (
	ErrValidation   = errors.New("validation failed")
	ErrTransport    = errors.New("planning transport failed")
	ErrShape        = errors.New("planning response has an invalid shape")
	ErrPlanInFlight = errors.New("a trip plan is already being generated")
	ErrNotFound     = errors.New("requested item not found")
	ErrShuttingDown = errors.New("server is shutting down")
)
