package sink

import (
	"context"
	"log/slog"

	"zenlarn/domain/event"
	"zenlarn/repositories"
)

// IndexSink feeds stored messages into the full-text index.
// It is registered as a permanent sink so every persisted message is
// indexed exactly once, off the hot publish path.
type IndexSink struct {
	repository repositories.ISearchRepository
	log        *slog.Logger
}

func NewIndexSink(repository repositories.ISearchRepository, log *slog.Logger) *IndexSink {
	return &IndexSink{repository: repository, log: log}
}

// Consume implements the EventSink interface.
func (s *IndexSink) Consume(ctx context.Context, e event.DomainEvent) error {
	stored, ok := e.(event.MessageStored)
	if !ok {
		return nil
	}

	err := s.repository.IndexMessage(repositories.DiskMessage{
		ID:        stored.ID,
		ChannelID: stored.ChannelID,
		Sender:    stored.Sender,
		Text:      stored.Text,
		Lang:      stored.Lang,
		CreatedAt: stored.CreatedAt,
		UpdatedAt: stored.UpdatedAt,
	})
	if err != nil {
		s.log.Error("Failed to index message", "message_id", stored.ID, "error", err)
		return err
	}
	return nil
}
