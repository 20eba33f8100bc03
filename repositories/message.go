//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"zenlarn/domain"
)

type IMessageRepository interface {
	StoreMessage(message DiskMessage) error
	GetMessages(channelID domain.ChannelID, cursor *string) ([]DiskMessage, *string, error)
}

// DefaultHistoryLimit caps a history page when no explicit limit is
// configured. Replay on join never exceeds this many entries.
const DefaultHistoryLimit = 50

type MessageRepository struct {
	db            *badger.DB
	log           *slog.Logger
	limitMessages int
}

func NewMessageRepository(db *badger.DB, log *slog.Logger, limitMessages *int) MessageRepository {
	limit := DefaultHistoryLimit
	if limitMessages != nil {
		limit = *limitMessages
	}
	return MessageRepository{db: db, log: log, limitMessages: limit}
}

// DiskMessage is the storage-level representation of a message.
type DiskMessage struct {
	ID        uuid.UUID        `msgpack:"id"`
	ChannelID domain.ChannelID `msgpack:"channel_id"`
	Sender    string           `msgpack:"sender"`
	Text      string           `msgpack:"text"`
	Lang      string           `msgpack:"lang"`
	CreatedAt time.Time        `msgpack:"created_at"`
	UpdatedAt time.Time        `msgpack:"updated_at"`
}

// StoreMessage persists a message in BadgerDB.
// The key is formatted as "msg:{channel_id}:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding (lexicographical order).
//  2. Prevent data loss by using UUID as a collision disconnector if two messages
//     arrive at the same nanosecond.
//
// Reverse prefix scans over these keys are the (channelId, createdAt desc)
// index behind the bounded recent-history query.
func (m MessageRepository) StoreMessage(message DiskMessage) error {
	key := fmt.Sprintf("msg:%s:%019d:%s",
		message.ChannelID,
		message.CreatedAt.UnixNano(),
		message.ID,
	)
	bytes, err := msgpack.Marshal(message)
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// GetMessages retrieves messages for a channel using a reverse prefix scan,
// newest first. It stops once the configured limitMessages is reached and
// returns an opaque cursor for the next page.
func (m MessageRepository) GetMessages(channelID domain.ChannelID, cursor *string) ([]DiskMessage, *string, error) {
	var byteMessages [][]byte
	var diskMessages []DiskMessage
	var lastKey string
	err := m.db.View(func(txn *badger.Txn) error {
		prefixStr := fmt.Sprintf("msg:%s:", channelID)
		prefix := []byte(prefixStr)
		prefixLen := len(prefixStr)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			// Seek past the most recent possible key for the channel,
			// then walk backwards through its history
			seekKey = append(prefix, []byte("9999999999999999999")...)
		default:
			seekKey = append(prefix, []byte(*cursor)...)
		}

		it.Seek(seekKey)

		if cursor != nil && it.ValidForPrefix(prefix) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if len(byteMessages) == m.limitMessages {
				m.log.Debug(fmt.Sprintf("Maximum of %d messages reached", m.limitMessages))
				break
			}
			item := it.Item()
			// Memorize cursor part of the actual key
			lastKey = string(item.Key()[prefixLen:])
			err := item.Value(func(value []byte) error {
				byteMessages = append(byteMessages, append([]byte(nil), value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	for _, b := range byteMessages {
		var message DiskMessage
		if err = msgpack.Unmarshal(b, &message); err != nil {
			return nil, nil, err
		}
		// Timestamps decode in local time, the core speaks UTC
		message.CreatedAt = message.CreatedAt.UTC()
		message.UpdatedAt = message.UpdatedAt.UTC()
		diskMessages = append(diskMessages, message)
	}
	return diskMessages, &lastKey, nil
}
