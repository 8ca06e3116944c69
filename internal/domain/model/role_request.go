package model

import (
	"time"
)

const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// RoleRequest is a user's ask to change role. At most one pending request
// exists per requester; approved and rejected are terminal.
type RoleRequest struct {
	ID             string    `json:"id"`
	RequesterEmail string    `json:"requester_email"`
	RequestedRole  string    `json:"requested_role"`
	RequestStatus  string    `json:"request_status"`
	RequestTime    time.Time `json:"request_time"`
}
