package transperth

import "errors"

var (
	ErrStationListNotFound    = errors.New("station selection list not found on page")
	ErrStationOptionInvalid   = errors.New("station option has no value")
	ErrStationNotFound        = errors.New("station not found")
	ErrDepartureTableNotFound = errors.New("departures table not found on page")
	ErrLineIconMissing        = errors.New("departure has no line icon")
	ErrInvalidTime            = errors.New("invalid departure time")
)
