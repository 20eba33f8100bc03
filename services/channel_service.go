package services

import (
	"time"

	"zenlarn/domain"
	"zenlarn/errors"
	"zenlarn/repositories"
)

type IChannelService interface {
	Create(name, owner string) (domain.Channel, error)
	Get(id domain.ChannelID, email string) (domain.Channel, error)
	ChannelsFor(email string) ([]domain.Channel, error)
}

type ChannelService struct {
	channels repositories.IChannelRepository
}

func NewChannelService(channels repositories.IChannelRepository) ChannelService {
	return ChannelService{channels: channels}
}

// Create opens a new channel owned by its creator, who is a participant
// from the first instant.
func (s ChannelService) Create(name, owner string) (domain.Channel, error) {
	channel := domain.NewChannel(name, owner, time.Now().UTC())
	if err := s.channels.InsertChannel(channel); err != nil {
		return domain.Channel{}, err
	}
	return channel, nil
}

// Get returns a channel only to its participants.
func (s ChannelService) Get(id domain.ChannelID, email string) (domain.Channel, error) {
	channel, err := s.channels.FindChannel(id)
	if err != nil {
		return domain.Channel{}, err
	}
	if !channel.HasParticipant(email) {
		return domain.Channel{}, errors.ErrUnauthorized
	}
	return channel, nil
}

func (s ChannelService) ChannelsFor(email string) ([]domain.Channel, error) {
	return s.channels.ChannelsForParticipant(email)
}
