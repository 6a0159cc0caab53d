package domain

import (
	"errors"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound = errors.New("data not found")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")

	// * Business errors.
	ErrInvalidPayment    = errors.New("charge token is missing or empty")
	ErrPaymentFailed     = errors.New("payment was declined")
	ErrItemNotFound      = errors.New("no menu item matches the request")
	ErrOrderAlreadyFinal = errors.New("order is already in a terminal state")

	// * Monitoring errors.
	ErrTransientSource    = errors.New("status source temporarily unavailable")
	ErrInvariantViolation = errors.New("order lifecycle invariant violated")
	ErrDeliveryFailed     = errors.New("notification delivery failed")
)
