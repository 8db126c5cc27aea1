package domain

import (
	"github.com/google/uuid"

	dErrors "donormatch/pkg/domain-errors"
)

// Typed identifiers keep donor, request and booking IDs from being mixed up
// at compile time. All of them are UUIDs underneath.
type (
	DonorID   uuid.UUID
	RequestID uuid.UUID
	BookingID uuid.UUID
)

func (id DonorID) String() string   { return uuid.UUID(id).String() }
func (id RequestID) String() string { return uuid.UUID(id).String() }
func (id BookingID) String() string { return uuid.UUID(id).String() }

func (id DonorID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id RequestID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id BookingID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets typed IDs serialize as plain UUID strings in JSON.
func (id DonorID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }
func (id RequestID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id BookingID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText applies the same rules as the Parse functions, so IDs decoded
// from JSON or a data source are never empty or nil.
func (id *DonorID) UnmarshalText(b []byte) error {
	u, err := parseUUID(string(b), "donor ID")
	if err != nil {
		return err
	}
	*id = DonorID(u)
	return nil
}

func (id *RequestID) UnmarshalText(b []byte) error {
	u, err := parseUUID(string(b), "request ID")
	if err != nil {
		return err
	}
	*id = RequestID(u)
	return nil
}

func (id *BookingID) UnmarshalText(b []byte) error {
	u, err := parseUUID(string(b), "booking ID")
	if err != nil {
		return err
	}
	*id = BookingID(u)
	return nil
}

func NewDonorID() DonorID     { return DonorID(uuid.New()) }
func NewRequestID() RequestID { return RequestID(uuid.New()) }
func NewBookingID() BookingID { return BookingID(uuid.New()) }

// ParseDonorID parses a donor ID at a trust boundary.
func ParseDonorID(s string) (DonorID, error) {
	u, err := parseUUID(s, "donor ID")
	return DonorID(u), err
}

// ParseRequestID parses a request ID at a trust boundary.
func ParseRequestID(s string) (RequestID, error) {
	u, err := parseUUID(s, "request ID")
	return RequestID(u), err
}

// ParseBookingID parses a booking ID at a trust boundary.
func ParseBookingID(s string) (BookingID, error) {
	u, err := parseUUID(s, "booking ID")
	return BookingID(u), err
}

func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+what)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" cannot be nil")
	}
	return u, nil
}
