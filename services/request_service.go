package services

import (
	"time"

	"github.com/google/uuid"

	"zenlarn/domain"
	"zenlarn/errors"
	"zenlarn/repositories"
)

type IRequestService interface {
	Send(channelID domain.ChannelID, sender, target string) (domain.ChannelRequest, error)
	Pending(target string) ([]domain.ChannelRequest, error)
	Accept(id uuid.UUID, target string) error
	Reject(id uuid.UUID, target string) error
}

// RequestService manages channel invitations. Only a participant may
// invite, only the invited identity may settle the request, and an
// accepted request is the sole path into a channel's participant set.
type RequestService struct {
	requests repositories.IRequestRepository
	channels repositories.IChannelRepository
}

func NewRequestService(requests repositories.IRequestRepository, channels repositories.IChannelRepository) RequestService {
	return RequestService{requests: requests, channels: channels}
}

func (s RequestService) Send(channelID domain.ChannelID, sender, target string) (domain.ChannelRequest, error) {
	channel, err := s.channels.FindChannel(channelID)
	if err != nil {
		return domain.ChannelRequest{}, errors.ErrUnauthorized
	}
	if !channel.HasParticipant(sender) {
		return domain.ChannelRequest{}, errors.ErrUnauthorized
	}
	if channel.HasParticipant(target) {
		return domain.ChannelRequest{}, errors.ErrRequestAlreadySent
	}

	request := domain.NewChannelRequest(channelID, sender, target, time.Now().UTC())
	if err := s.requests.InsertRequest(request); err != nil {
		return domain.ChannelRequest{}, err
	}
	return request, nil
}

func (s RequestService) Pending(target string) ([]domain.ChannelRequest, error) {
	return s.requests.PendingForTarget(target)
}

// Accept grants the target channel access, then settles the request.
// Participant insertion is idempotent so a replayed accept cannot
// duplicate membership.
func (s RequestService) Accept(id uuid.UUID, target string) error {
	request, err := s.requests.FindPendingByID(id, target)
	if err != nil {
		return err
	}

	if err := s.channels.AddParticipant(request.ChannelID, target); err != nil {
		return err
	}
	return s.requests.UpdateStatus(id, domain.RequestAccepted)
}

func (s RequestService) Reject(id uuid.UUID, target string) error {
	if _, err := s.requests.FindPendingByID(id, target); err != nil {
		return err
	}
	return s.requests.UpdateStatus(id, domain.RequestRejected)
}
