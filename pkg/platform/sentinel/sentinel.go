package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Sources and loaders return these
// (wrapped) so the service and transport layers can classify failures without
// depending on a concrete source implementation.
//
//   - ErrUnavailable: a source could not be read or answered with a non-success status
//   - ErrInvalidInput: input could not be interpreted at all (e.g. a CSV header
//     missing required columns)
var (
	ErrUnavailable  = errors.New("unavailable")
	ErrInvalidInput = errors.New("invalid input")
)
