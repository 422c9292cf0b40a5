package model

import "errors"

// Failure taxonomy. Components wrap these with fmt.Errorf("...: %w", ...)
// and callers discriminate with errors.Is.
var (
	// ErrInvalidParameter covers bad radii, out-of-range coordinates and
	// unknown attribute names.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrGeocodeFailure means the place name could not be resolved.
	ErrGeocodeFailure = errors.New("geocode failure")

	// ErrAcquisitionFailure covers network errors, timeouts and empty
	// responses from the POI source.
	ErrAcquisitionFailure = errors.New("acquisition failure")

	// ErrInsufficientData means zero features survived normalization or
	// too few numeric observations remain for statistics.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrMissingInput means report assembly was given incomplete results.
	ErrMissingInput = errors.New("missing input")
)
