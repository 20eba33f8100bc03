package event

import (
	"time"

	"github.com/google/uuid"

	"zenlarn/domain"
)

// DomainEvent is anything the fan-out pipeline can deliver to sinks.
type DomainEvent interface {
	Channel() domain.ChannelID
}

// MessageStored is emitted after a message has been durably persisted.
// Fan-out only ever sees stored messages: a failed insert never broadcasts.
type MessageStored struct {
	ID        uuid.UUID
	ChannelID domain.ChannelID
	Sender    string
	Text      string
	Lang      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m MessageStored) Channel() domain.ChannelID {
	return m.ChannelID
}
