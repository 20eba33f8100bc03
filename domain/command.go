package domain

import (
	"time"
)

type Command interface {
	Channel() ChannelID
}

type PostMessageCommand struct {
	ChannelID ChannelID
	Sender    string
	Text      string
	CreatedAt time.Time
}

func (p PostMessageCommand) Channel() ChannelID {
	return p.ChannelID
}

type GetMessagesCommand struct {
	ChannelID ChannelID
	Cursor    *string
}

func (p GetMessagesCommand) Channel() ChannelID {
	return p.ChannelID
}
