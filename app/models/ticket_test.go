package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketCheckIn(t *testing.T) {
	now := time.Now()

	ticket := &Ticket{Status: TicketStatusIssued}
	require.True(t, ticket.CheckIn(now))
	assert.Equal(t, TicketStatusCheckedIn, ticket.Status)
	require.NotNil(t, ticket.CheckInTime)
	assert.Equal(t, now, *ticket.CheckInTime)

	// a second scan of the same QR code must not pass
	assert.False(t, ticket.CheckIn(now.Add(time.Minute)))
}

func TestTicketCheckInRejectsNonIssued(t *testing.T) {
	now := time.Now()

	for _, status := range []string{TicketStatusCanceled, TicketStatusRefunded, TicketStatusCheckedIn} {
		ticket := &Ticket{Status: status}
		assert.False(t, ticket.CheckIn(now), "status %q should not check in", status)
		assert.Nil(t, ticket.CheckInTime)
	}
}
