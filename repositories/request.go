//go:generate go run go.uber.org/mock/mockgen -source=request.go -destination=../mocks/mock_request_repository.go -package=mocks
package repositories

import (
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"zenlarn/domain"
	"zenlarn/errors"
)

type IRequestRepository interface {
	InsertRequest(request domain.ChannelRequest) error
	FindPendingByID(id uuid.UUID, target string) (domain.ChannelRequest, error)
	PendingForTarget(target string) ([]domain.ChannelRequest, error)
	UpdateStatus(id uuid.UUID, status domain.RequestStatus) error
}

type RequestRepository struct {
	db *badger.DB
}

func NewRequestRepository(db *badger.DB) RequestRepository {
	return RequestRepository{db: db}
}

// DiskRequest is the storage-level representation of a channel request.
type DiskRequest struct {
	ID        string    `msgpack:"id"`
	ChannelID string    `msgpack:"channel_id"`
	Sender    string    `msgpack:"sender"`
	Target    string    `msgpack:"target"`
	Status    string    `msgpack:"status"`
	CreatedAt time.Time `msgpack:"created_at"`
}

// Two key families: the triple key guards pending-uniqueness per
// (sender, target, channel), the id key serves lookups by request id.
func tripleKey(channelID domain.ChannelID, target, sender string) []byte {
	return []byte(fmt.Sprintf("request:%s:%s:%s", channelID, target, sender))
}

func idKey(id uuid.UUID) []byte {
	return []byte(fmt.Sprintf("request_id:%s", id))
}

// InsertRequest persists a pending request. A second pending request for the
// same (sender, target, channel) triple is rejected with
// ErrRequestAlreadySent; accepted or rejected ones free the triple again.
func (r RequestRepository) InsertRequest(request domain.ChannelRequest) error {
	bytes, err := msgpack.Marshal(fromRequest(request))
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		key := tripleKey(request.ChannelID, request.Target, request.Sender)
		item, err := txn.Get(key)
		if err == nil {
			var existing DiskRequest
			if err := item.Value(func(val []byte) error {
				return msgpack.Unmarshal(val, &existing)
			}); err != nil {
				return err
			}
			if existing.Status == string(domain.RequestPending) {
				return errors.ErrRequestAlreadySent
			}
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		if err := txn.Set(key, bytes); err != nil {
			return err
		}
		return txn.Set(idKey(request.ID), bytes)
	})
}

// FindPendingByID returns a pending request addressed to target.
// Requests of other targets or in a terminal status map to
// ErrRequestNotFound: a processed request cannot be replayed.
func (r RequestRepository) FindPendingByID(id uuid.UUID, target string) (domain.ChannelRequest, error) {
	var disk DiskRequest
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(idKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return msgpack.Unmarshal(val, &disk)
		})
	})
	if err == badger.ErrKeyNotFound {
		return domain.ChannelRequest{}, errors.ErrRequestNotFound
	}
	if err != nil {
		return domain.ChannelRequest{}, err
	}
	if disk.Target != target || disk.Status != string(domain.RequestPending) {
		return domain.ChannelRequest{}, errors.ErrRequestNotFound
	}
	return toRequest(disk)
}

// PendingForTarget lists the pending requests addressed to an identity.
func (r RequestRepository) PendingForTarget(target string) ([]domain.ChannelRequest, error) {
	var requests []domain.ChannelRequest
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte("request:")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var disk DiskRequest
			err := it.Item().Value(func(val []byte) error {
				return msgpack.Unmarshal(val, &disk)
			})
			if err != nil {
				return err
			}
			if disk.Target != target || disk.Status != string(domain.RequestPending) {
				continue
			}
			request, err := toRequest(disk)
			if err != nil {
				return err
			}
			requests = append(requests, request)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateStatus moves a request into a terminal status under both keys.
func (r RequestRepository) UpdateStatus(id uuid.UUID, status domain.RequestStatus) error {
	return r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(idKey(id))
		if err == badger.ErrKeyNotFound {
			return errors.ErrRequestNotFound
		}
		if err != nil {
			return err
		}

		var disk DiskRequest
		if err := item.Value(func(val []byte) error {
			return msgpack.Unmarshal(val, &disk)
		}); err != nil {
			return err
		}

		disk.Status = string(status)
		bytes, err := msgpack.Marshal(disk)
		if err != nil {
			return err
		}
		if err := txn.Set(idKey(id), bytes); err != nil {
			return err
		}
		return txn.Set(tripleKey(domain.ChannelID(disk.ChannelID), disk.Target, disk.Sender), bytes)
	})
}

func fromRequest(request domain.ChannelRequest) DiskRequest {
	return DiskRequest{
		ID:        request.ID.String(),
		ChannelID: string(request.ChannelID),
		Sender:    request.Sender,
		Target:    request.Target,
		Status:    string(request.Status),
		CreatedAt: request.CreatedAt,
	}
}

func toRequest(disk DiskRequest) (domain.ChannelRequest, error) {
	parsedID, err := uuid.Parse(disk.ID)
	if err != nil {
		return domain.ChannelRequest{}, err
	}
	return domain.ChannelRequest{
		ID:        parsedID,
		ChannelID: domain.ChannelID(disk.ChannelID),
		Sender:    disk.Sender,
		Target:    disk.Target,
		Status:    domain.RequestStatus(disk.Status),
		CreatedAt: disk.CreatedAt.UTC(),
	}, nil
}
