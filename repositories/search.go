//go:generate go run go.uber.org/mock/mockgen -source=search.go -destination=../mocks/mock_search_repository.go -package=mocks
package repositories

import (
	"context"
	"log/slog"
	"time"

	"github.com/blugelabs/bluge"

	"zenlarn/domain"
)

type ISearchRepository interface {
	IndexMessage(message DiskMessage) error
	Search(ctx context.Context, channelID domain.ChannelID, terms string, limit int) ([]MessageHit, error)
}

// SearchRepository maintains a full-text index over message bodies,
// fed asynchronously by the fan-out pipeline. The badger store stays the
// single source of truth; the index only answers content queries.
type SearchRepository struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func NewSearchRepository(writer *bluge.Writer, log *slog.Logger) SearchRepository {
	return SearchRepository{writer: writer, log: log}
}

// MessageHit is one search result with its stored fields.
type MessageHit struct {
	ID        string
	ChannelID domain.ChannelID
	Sender    string
	Text      string
	Lang      string
	CreatedAt time.Time
}

// IndexMessage upserts a message document keyed by its identifier.
func (s SearchRepository) IndexMessage(message DiskMessage) error {
	doc := bluge.NewDocument(message.ID.String()).
		AddField(bluge.NewTextField("text", message.Text).StoreValue()).
		AddField(bluge.NewKeywordField("channel_id", string(message.ChannelID)).StoreValue()).
		AddField(bluge.NewKeywordField("sender", message.Sender).StoreValue()).
		AddField(bluge.NewKeywordField("lang", message.Lang).StoreValue()).
		AddField(bluge.NewDateTimeField("created_at", message.CreatedAt).StoreValue())

	return s.writer.Update(doc.ID(), doc)
}

// Search matches terms against message bodies of a single channel.
func (s SearchRepository) Search(ctx context.Context, channelID domain.ChannelID, terms string, limit int) ([]MessageHit, error) {
	reader, err := s.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := reader.Close(); err != nil {
			s.log.Warn("Failed to close index reader", "error", err)
		}
	}()

	query := bluge.NewBooleanQuery().
		AddMust(bluge.NewMatchQuery(terms).SetField("text")).
		AddMust(bluge.NewTermQuery(string(channelID)).SetField("channel_id"))

	iterator, err := reader.Search(ctx, bluge.NewTopNSearch(limit, query))
	if err != nil {
		return nil, err
	}

	var hits []MessageHit
	match, err := iterator.Next()
	for err == nil && match != nil {
		var hit MessageHit
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				hit.ID = string(value)
			case "text":
				hit.Text = string(value)
			case "channel_id":
				hit.ChannelID = domain.ChannelID(value)
			case "sender":
				hit.Sender = string(value)
			case "lang":
				hit.Lang = string(value)
			case "created_at":
				if at, err := bluge.DecodeDateTime(value); err == nil {
					hit.CreatedAt = at
				}
			}
			return true
		})
		if err != nil {
			return nil, err
		}
		hits = append(hits, hit)
		match, err = iterator.Next()
	}
	if err != nil {
		return nil, err
	}
	return hits, nil
}
