package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Sources and infrastructure layers
// return these (optionally wrapped) so services can translate them into
// domain errors.
//
// These represent factual states, not validation failures:
// - ErrNotFound: record does not exist in the snapshot or store
// - ErrInvalidState: record in the wrong state for the requested operation
// - ErrUnavailable: a data source or downstream is temporarily unavailable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
