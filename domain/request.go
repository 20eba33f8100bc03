package domain

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// ChannelRequest is an invitation for Target to join a channel.
// At most one pending request may exist per (sender, target, channel);
// accepting one is the only path besides creation that grows a channel's
// participant set.
type ChannelRequest struct {
	ID        uuid.UUID
	ChannelID ChannelID
	Sender    string
	Target    string
	Status    RequestStatus
	CreatedAt time.Time
}

func NewChannelRequest(channelID ChannelID, sender, target string, at time.Time) ChannelRequest {
	return ChannelRequest{
		ID:        uuid.New(),
		ChannelID: channelID,
		Sender:    sender,
		Target:    target,
		Status:    RequestPending,
		CreatedAt: at,
	}
}
