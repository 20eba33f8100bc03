// Package domain contains core concepts of the messaging system.
// This file defines Message events and related rules.
// Messages are immutable and validated by the domain.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message represents an immutable chat event.
// CreatedAt and UpdatedAt are both assigned at acceptance time; no edit
// operation exists yet, UpdatedAt is carried for forward compatibility.
// Lang is the ISO 639-1 code detected at acceptance time.
type Message struct {
	ID        uuid.UUID
	ChannelID ChannelID
	Sender    string
	Text      string
	Lang      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewMessage(channelID ChannelID, sender, text, lang string, at time.Time) Message {
	return Message{
		ID:        uuid.New(),
		ChannelID: channelID,
		Sender:    sender,
		Text:      text,
		Lang:      lang,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

// IsBlank reports whether a message body would be rejected.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
