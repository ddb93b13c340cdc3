package errors

import "errors"

var (
	NotFound             = errors.New("not found")
	MalformedRow         = errors.New("malformed row")
	UnknownRole          = errors.New("unknown role")
	TherapyNotActive     = errors.New("no active therapy covers this drug today")
	DuplicateMeasurement = errors.New("a measurement for this date and meal already exists")
	StatusLocked         = errors.New("therapy status can only change between its start and end dates")
)
