package models

import (
	"time"

	id "donormatch/pkg/domain"
)

// RequestStatus tracks a blood request through fulfilment.
type RequestStatus string

const (
	RequestPending    RequestStatus = "pending"
	RequestScheduled  RequestStatus = "scheduled"
	RequestInProgress RequestStatus = "in_progress"
	RequestCompleted  RequestStatus = "completed"
	RequestCancelled  RequestStatus = "cancelled"
)

// IsValid checks if the status is one of the supported enum values.
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestPending, RequestScheduled, RequestInProgress, RequestCompleted, RequestCancelled:
		return true
	}
	return false
}

// IsOpen reports whether the request still represents unmet demand.
func (s RequestStatus) IsOpen() bool {
	return s == RequestPending || s == RequestScheduled || s == RequestInProgress
}

// DonationRequest is a request for blood, optionally matched to a donor.
type DonationRequest struct {
	ID          id.RequestID  `json:"id"`
	BloodGroup  BloodGroup    `json:"blood_group"`
	Location    Location      `json:"location"`
	Status      RequestStatus `json:"status"`
	DonorID     *id.DonorID   `json:"donor_id,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

// CloneRequests deep-copies a request snapshot.
func CloneRequests(requests []DonationRequest) []DonationRequest {
	out := make([]DonationRequest, len(requests))
	for i, r := range requests {
		if r.DonorID != nil {
			d := *r.DonorID
			r.DonorID = &d
		}
		if r.CompletedAt != nil {
			t := *r.CompletedAt
			r.CompletedAt = &t
		}
		out[i] = r
	}
	return out
}
