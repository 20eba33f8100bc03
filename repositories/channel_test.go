package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"zenlarn/domain"
	"zenlarn/errors"
)

func Test_Insert_And_Find_Channel(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)
	repository := NewChannelRepository(db)

	// Given a channel whose creator is auto-added
	channel := domain.NewChannel("general", "alice@x.com", time.Now().UTC())
	req.NoError(repository.InsertChannel(channel))

	// When looking the channel up
	found, err := repository.FindChannel(channel.ID)

	// Then the document round-trips including its participant set
	req.NoError(err)
	req.Equal(channel, found)
	req.True(found.HasParticipant("alice@x.com"))
}

func Test_Find_Missing_Channel(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)
	repository := NewChannelRepository(db)

	_, err := repository.FindChannel(domain.ChannelID("nope"))
	req.ErrorIs(err, errors.ErrChannelNotFound)
}

func Test_AddParticipant_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)
	repository := NewChannelRepository(db)

	channel := domain.NewChannel("general", "alice@x.com", time.Now().UTC())
	req.NoError(repository.InsertChannel(channel))

	// When the same identity is added twice
	req.NoError(repository.AddParticipant(channel.ID, "bob@x.com"))
	req.NoError(repository.AddParticipant(channel.ID, "bob@x.com"))

	// Then the set holds two distinct identities
	found, err := repository.FindChannel(channel.ID)
	req.NoError(err)
	req.ElementsMatch([]string{"alice@x.com", "bob@x.com"}, found.Participants)
}

func Test_AddParticipant_Missing_Channel(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)
	repository := NewChannelRepository(db)

	err := repository.AddParticipant(domain.ChannelID("nope"), "bob@x.com")
	req.ErrorIs(err, errors.ErrChannelNotFound)
}

func Test_ChannelsForParticipant(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)
	repository := NewChannelRepository(db)

	now := time.Now().UTC()
	mine := domain.NewChannel("mine", "alice@x.com", now)
	shared := domain.NewChannel("shared", "bob@x.com", now)
	shared.AddParticipant("alice@x.com")
	other := domain.NewChannel("other", "clara@x.com", now)

	for _, channel := range []domain.Channel{mine, shared, other} {
		req.NoError(repository.InsertChannel(channel))
	}

	channels, err := repository.ChannelsForParticipant("alice@x.com")
	req.NoError(err)
	req.Len(channels, 2)
	req.ElementsMatch([]domain.ChannelID{mine.ID, shared.ID},
		[]domain.ChannelID{channels[0].ID, channels[1].ID})
}
