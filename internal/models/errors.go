package models

import "errors"

// Error classes. Handlers map ErrValidation to 400 and ErrNotFound to 404.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

var (
	ErrInvalidRoute        = wrap(ErrValidation, "Invalid route points. Must be an array with at least 2 points.")
	ErrInvalidStatus       = wrap(ErrValidation, "Invalid status. Must be one of: WORKING_OFFICE, WORKING_REMOTE, NOT_WORKING")
	ErrInvalidTrackingType = wrap(ErrValidation, "Invalid tracking type. Must be one of: CLOCK_IN_OFFICE, CLOCK_IN_REMOTE, CLOCK_OUT, TRACKING_POINT")

	ErrRouteNotFound      = wrap(ErrNotFound, "Route not found")
	ErrUnknownSubject     = wrap(ErrNotFound, "User not found")
	ErrNoTrackingData     = wrap(ErrNotFound, "No tracking data found for this user")
	ErrNoCurrentLocation  = wrap(ErrNotFound, "No current location found for this user")
	ErrNoStatus           = wrap(ErrNotFound, "No status found for this user")
	ErrNoActiveSimulation = wrap(ErrNotFound, "No active simulation found for this user")
)

type classified struct {
	class error
	msg   string
}

func wrap(class error, msg string) error {
	return &classified{class: class, msg: msg}
}

func (e *classified) Error() string { return e.msg }

func (e *classified) Unwrap() error { return e.class }
