package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateOrderRequest_AttendeeForm(t *testing.T) {
	req := CreateOrderRequest{
		CustomerName:  "Zhang Wei",
		CustomerEmail: "zhang@example.com",
		Attendees: []AttendeeRequest{
			{Name: "Zhang Wei", TicketTypeID: 1},
			{Name: "Li Na", TicketTypeID: 2},
		},
	}

	params := req.ToParams()

	assert.Len(t, params.Attendees, 2)
	assert.Equal(t, "Li Na", params.Attendees[1].Name)
	assert.Equal(t, uint(2), params.Attendees[1].TicketTypeID)
}

func TestCreateOrderRequest_LegacyForm(t *testing.T) {
	req := CreateOrderRequest{
		CustomerName:  "Zhang Wei",
		CustomerEmail: "zhang@example.com",
		TicketTypeID:  3,
		Quantity:      2,
	}

	params := req.ToParams()

	assert.Len(t, params.Attendees, 2)
	for _, a := range params.Attendees {
		assert.Equal(t, "Zhang Wei", a.Name)
		assert.Equal(t, uint(3), a.TicketTypeID)
	}
}

func TestCreateOrderRequest_LegacyFormDefaultQuantity(t *testing.T) {
	req := CreateOrderRequest{
		CustomerName: "Zhang Wei",
		TicketTypeID: 3,
	}

	params := req.ToParams()

	assert.Len(t, params.Attendees, 1)
}

func TestCreateOrderRequest_AttendeesWinOverLegacy(t *testing.T) {
	req := CreateOrderRequest{
		CustomerName: "Zhang Wei",
		Attendees:    []AttendeeRequest{{Name: "Li Na", TicketTypeID: 2}},
		TicketTypeID: 3,
		Quantity:     4,
	}

	params := req.ToParams()

	assert.Len(t, params.Attendees, 1)
	assert.Equal(t, uint(2), params.Attendees[0].TicketTypeID)
}

func TestCreateOrderRequest_EmptyBothForms(t *testing.T) {
	req := CreateOrderRequest{CustomerName: "Zhang Wei"}

	params := req.ToParams()

	// Left empty so the lifecycle engine rejects it with a field error.
	assert.Empty(t, params.Attendees)
}
