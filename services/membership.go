//go:generate go run go.uber.org/mock/mockgen -source=membership.go -destination=../mocks/mock_membership.go -package=mocks
package services

import (
	"zenlarn/domain"
	"zenlarn/errors"
	"zenlarn/repositories"
)

type IMembershipService interface {
	IsAuthorizedParticipant(channelID domain.ChannelID, email string) error
}

// MembershipService answers the single access-control question of the
// real-time core: may this identity interact with this channel.
// A missing channel and a non-participant are indistinguishable to the
// caller, both resolve to ErrUnauthorized so channel identifiers
// cannot be enumerated.
type MembershipService struct {
	channels repositories.IChannelRepository
}

func NewMembershipService(channels repositories.IChannelRepository) MembershipService {
	return MembershipService{channels: channels}
}

// IsAuthorizedParticipant fails closed: any storage error denies access.
func (s MembershipService) IsAuthorizedParticipant(channelID domain.ChannelID, email string) error {
	channel, err := s.channels.FindChannel(channelID)
	if err != nil {
		return errors.ErrUnauthorized
	}

	if !channel.HasParticipant(email) {
		return errors.ErrUnauthorized
	}
	return nil
}
