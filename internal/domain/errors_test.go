package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := fmt.Errorf("load booking: %w", NotFound("customer", 7))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "there is no customer with id 7")

	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
	assert.Equal(t, "customer", nf.Entity)
	assert.Equal(t, int64(7), nf.ID)
}

func TestRejectionError(t *testing.T) {
	err := fmt.Errorf("book: %w", Reject(ReasonFlightFull, "flight #%d is already full", 3))

	rej, ok := AsRejection(err)
	assert.True(t, ok)
	assert.Equal(t, ReasonFlightFull, rej.Reason)
	assert.Equal(t, "flight #3 is already full", rej.Message)
	assert.True(t, HasReason(err, ReasonFlightFull))
	assert.False(t, HasReason(err, ReasonNoBooking))

	_, ok = AsRejection(ErrIDCollision)
	assert.False(t, ok)
}
