//go:generate go run go.uber.org/mock/mockgen -source=channel.go -destination=../mocks/mock_channel_repository.go -package=mocks
package repositories

import (
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
	"github.com/vmihailenco/msgpack/v5"

	"zenlarn/domain"
	"zenlarn/errors"
)

type IChannelRepository interface {
	FindChannel(id domain.ChannelID) (domain.Channel, error)
	InsertChannel(channel domain.Channel) error
	AddParticipant(id domain.ChannelID, email string) error
	ChannelsForParticipant(email string) ([]domain.Channel, error)
}

type ChannelRepository struct {
	db *badger.DB
}

func NewChannelRepository(db *badger.DB) ChannelRepository {
	return ChannelRepository{db: db}
}

// DiskChannel is the storage-level representation of a channel document.
type DiskChannel struct {
	ID           string    `msgpack:"id"`
	Name         string    `msgpack:"name"`
	Owner        string    `msgpack:"owner"`
	Participants []string  `msgpack:"participants"`
	CreatedAt    time.Time `msgpack:"created_at"`
}

func channelKey(id domain.ChannelID) []byte {
	return []byte(fmt.Sprintf("channel:%s", id))
}

// FindChannel looks a channel up by identifier.
// A missing document maps to ErrChannelNotFound so the membership check
// can fail closed without inspecting badger internals.
func (c ChannelRepository) FindChannel(id domain.ChannelID) (domain.Channel, error) {
	var disk DiskChannel
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(channelKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return msgpack.Unmarshal(val, &disk)
		})
	})
	if err == badger.ErrKeyNotFound {
		return domain.Channel{}, errors.ErrChannelNotFound
	}
	if err != nil {
		return domain.Channel{}, err
	}
	return toChannel(disk), nil
}

func (c ChannelRepository) InsertChannel(channel domain.Channel) error {
	bytes, err := msgpack.Marshal(fromChannel(channel))
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(channelKey(channel.ID), bytes)
	})
}

// AddParticipant appends an identity to the participant set inside one
// read-modify-write transaction. Adding an existing participant is a no-op.
func (c ChannelRepository) AddParticipant(id domain.ChannelID, email string) error {
	return c.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(channelKey(id))
		if err == badger.ErrKeyNotFound {
			return errors.ErrChannelNotFound
		}
		if err != nil {
			return err
		}

		var disk DiskChannel
		if err := item.Value(func(val []byte) error {
			return msgpack.Unmarshal(val, &disk)
		}); err != nil {
			return err
		}

		if lo.Contains(disk.Participants, email) {
			return nil
		}
		disk.Participants = append(disk.Participants, email)

		bytes, err := msgpack.Marshal(disk)
		if err != nil {
			return err
		}
		return txn.Set(channelKey(id), bytes)
	})
}

// ChannelsForParticipant scans channel documents and keeps those listing the
// identity. Channel cardinality is small enough that a prefix scan beats
// maintaining a secondary index here.
func (c ChannelRepository) ChannelsForParticipant(email string) ([]domain.Channel, error) {
	var channels []domain.Channel
	err := c.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte("channel:")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var disk DiskChannel
			err := it.Item().Value(func(val []byte) error {
				return msgpack.Unmarshal(val, &disk)
			})
			if err != nil {
				return err
			}
			if lo.Contains(disk.Participants, email) {
				channels = append(channels, toChannel(disk))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return channels, nil
}

func fromChannel(channel domain.Channel) DiskChannel {
	return DiskChannel{
		ID:           string(channel.ID),
		Name:         channel.Name,
		Owner:        channel.Owner,
		Participants: channel.Participants,
		CreatedAt:    channel.CreatedAt,
	}
}

func toChannel(disk DiskChannel) domain.Channel {
	return domain.Channel{
		ID:           domain.ChannelID(disk.ID),
		Name:         disk.Name,
		Owner:        disk.Owner,
		Participants: disk.Participants,
		CreatedAt:    disk.CreatedAt.UTC(),
	}
}
