package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrMalformedBatch is returned when batch input is neither a single
	// record nor a sequence of records
	ErrMalformedBatch = errors.New("input must be a record or a list of records")

	// ErrMissingField is returned when a strategy needs a field the record
	// does not carry in a usable numeric form
	ErrMissingField = errors.New("required numeric field missing")

	// ErrCalculationFailed is returned when a matched strategy could not
	// complete its price calculation
	ErrCalculationFailed = errors.New("price calculation failed")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
