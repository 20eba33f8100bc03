//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abadojack/whatlanggo"

	"zenlarn/contract"
	"zenlarn/domain"
	"zenlarn/domain/event"
	"zenlarn/errors"
	"zenlarn/moderation"
	"zenlarn/repositories"
)

type IChatService interface {
	Join(channelID domain.ChannelID, email string, connID domain.ConnectionID, sink contract.EventSink) ([]domain.Message, error)
	Leave(channelID domain.ChannelID, connID domain.ConnectionID)
	Disconnect(connID domain.ConnectionID)
	Publish(ctx context.Context, cmd domain.PostMessageCommand) error
	GetMessages(email string, cmd domain.GetMessagesCommand) ([]domain.Message, *string, error)
	Search(ctx context.Context, channelID domain.ChannelID, email, terms string, limit int) ([]repositories.MessageHit, error)
}

// ChatService drives the real-time core: channel entry with history
// replay, publication with persist-then-broadcast ordering, and
// connection teardown.
type ChatService struct {
	membership  IMembershipService
	messages    repositories.IMessageRepository
	search      repositories.ISearchRepository
	registry    contract.IRegistry
	broadcaster contract.IBroadcaster
	moderator   *moderation.Moderator
	log         *slog.Logger
}

func NewChatService(
	membership IMembershipService,
	messages repositories.IMessageRepository,
	search repositories.ISearchRepository,
	registry contract.IRegistry,
	broadcaster contract.IBroadcaster,
	moderator *moderation.Moderator,
	log *slog.Logger,
) *ChatService {
	return &ChatService{
		membership:  membership,
		messages:    messages,
		search:      search,
		registry:    registry,
		broadcaster: broadcaster,
		moderator:   moderator,
		log:         log,
	}
}

// Join admits a connection into a channel and returns the most recent
// history page, newest first. The registry is only touched after both
// the access check and the history fetch succeed, so a rejected join
// leaves no trace.
func (s *ChatService) Join(channelID domain.ChannelID, email string, connID domain.ConnectionID, sink contract.EventSink) ([]domain.Message, error) {
	if err := s.membership.IsAuthorizedParticipant(channelID, email); err != nil {
		return nil, err
	}

	stored, _, err := s.messages.GetMessages(channelID, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrHistoryFetch, err)
	}

	s.registry.Subscribe(channelID, connID, sink)
	s.log.Debug("Connection joined channel", "channel_id", channelID, "email", email, "history", len(stored))

	return fromDisk(stored), nil
}

func (s *ChatService) Leave(channelID domain.ChannelID, connID domain.ConnectionID) {
	s.registry.Unsubscribe(channelID, connID)
}

// Disconnect removes the connection from every channel at once.
// Called exactly once per connection, from the transport teardown path.
func (s *ChatService) Disconnect(connID domain.ConnectionID) {
	s.registry.UnsubscribeAll(connID)
}

// Publish accepts a message for a channel. The message is censored,
// persisted and only then handed to the fan-out pipeline: a failed
// insert never reaches any subscriber, and what subscribers receive is
// byte for byte what the store holds.
func (s *ChatService) Publish(ctx context.Context, cmd domain.PostMessageCommand) error {
	if domain.IsBlank(cmd.Text) {
		return errors.ErrEmptyMessage
	}

	sanitized, foundWords := s.moderator.Censor(cmd.Text)
	info := whatlanggo.Detect(sanitized)
	if len(foundWords) > 0 {
		s.log.Warn("Censored message content",
			"channel_id", cmd.ChannelID,
			"sender", cmd.Sender,
			"lang", info.Lang.Iso6391(),
			"words", foundWords)
	}

	at := cmd.CreatedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	message := domain.NewMessage(cmd.ChannelID, cmd.Sender, sanitized, info.Lang.Iso6391(), at)

	if err := s.messages.StoreMessage(toDisk(message)); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrDeliveryFailure, err)
	}

	return s.broadcaster.Broadcast(ctx, event.MessageStored{
		ID:        message.ID,
		ChannelID: message.ChannelID,
		Sender:    message.Sender,
		Text:      message.Text,
		Lang:      message.Lang,
		CreatedAt: message.CreatedAt,
		UpdatedAt: message.UpdatedAt,
	})
}

// GetMessages pages backwards through a channel's history.
func (s *ChatService) GetMessages(email string, cmd domain.GetMessagesCommand) ([]domain.Message, *string, error) {
	if err := s.membership.IsAuthorizedParticipant(cmd.ChannelID, email); err != nil {
		return nil, nil, err
	}

	stored, cursor, err := s.messages.GetMessages(cmd.ChannelID, cmd.Cursor)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errors.ErrHistoryFetch, err)
	}
	return fromDisk(stored), cursor, nil
}

// Search runs a full-text query over a single channel's messages.
func (s *ChatService) Search(ctx context.Context, channelID domain.ChannelID, email, terms string, limit int) ([]repositories.MessageHit, error) {
	if err := s.membership.IsAuthorizedParticipant(channelID, email); err != nil {
		return nil, err
	}
	return s.search.Search(ctx, channelID, terms, limit)
}

func toDisk(m domain.Message) repositories.DiskMessage {
	return repositories.DiskMessage{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		Sender:    m.Sender,
		Text:      m.Text,
		Lang:      m.Lang,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromDisk(stored []repositories.DiskMessage) []domain.Message {
	messages := make([]domain.Message, 0, len(stored))
	for _, d := range stored {
		messages = append(messages, domain.Message{
			ID:        d.ID,
			ChannelID: d.ChannelID,
			Sender:    d.Sender,
			Text:      d.Text,
			Lang:      d.Lang,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		})
	}
	return messages
}
