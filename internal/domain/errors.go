package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrIDCollision signals a broken id sequence. It is never a user error.
	ErrIDCollision = errors.New("id collision")
)

type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("there is no %s with id %d", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func NotFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

type RejectionReason string

const (
	ReasonDuplicateAirline  RejectionReason = "DUPLICATE_AIRLINE"
	ReasonDuplicatePlane    RejectionReason = "DUPLICATE_PLANE"
	ReasonDuplicateFlight   RejectionReason = "DUPLICATE_FLIGHT"
	ReasonDuplicateCustomer RejectionReason = "DUPLICATE_CUSTOMER"
	ReasonDuplicateBooking  RejectionReason = "DUPLICATE_BOOKING"
	ReasonAccountRemoved    RejectionReason = "ACCOUNT_REMOVED"
	ReasonFlightExpired     RejectionReason = "FLIGHT_EXPIRED"
	ReasonFlightFull        RejectionReason = "FLIGHT_FULL"
	ReasonNoBooking         RejectionReason = "NO_BOOKING"
	ReasonInvalidInput      RejectionReason = "INVALID_INPUT"
	ReasonInvalidLogin      RejectionReason = "INVALID_LOGIN"
)

// RejectionError is an expected business outcome. Callers display the
// message and carry on.
type RejectionError struct {
	Reason  RejectionReason
	Message string
}

func (e *RejectionError) Error() string {
	return e.Message
}

func Reject(reason RejectionReason, format string, args ...interface{}) error {
	return &RejectionError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// AsRejection unwraps err into a RejectionError when it is one.
func AsRejection(err error) (*RejectionError, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}

// HasReason reports whether err is a rejection with the given reason.
func HasReason(err error, reason RejectionReason) bool {
	rej, ok := AsRejection(err)
	return ok && rej.Reason == reason
}
