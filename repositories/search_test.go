package repositories

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"zenlarn/domain"
)

func openTestIndex(t *testing.T) *bluge.Writer {
	t.Helper()
	writer, err := bluge.OpenWriter(bluge.DefaultConfig(t.TempDir()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = writer.Close() })
	return writer
}

func Test_Index_And_Search_Message(t *testing.T) {
	req := require.New(t)
	repository := NewSearchRepository(openTestIndex(t), slog.Default())

	at := time.Now().UTC()
	stored := DiskMessage{
		ID:        uuid.New(),
		ChannelID: "c1",
		Sender:    "alice@x.com",
		Text:      "the quarterly invoice is ready",
		Lang:      "en",
		CreatedAt: at,
		UpdatedAt: at,
	}
	req.NoError(repository.IndexMessage(stored))
	req.NoError(repository.IndexMessage(DiskMessage{
		ID:        uuid.New(),
		ChannelID: "c1",
		Sender:    "bob@x.com",
		Text:      "lunch at noon?",
		CreatedAt: at,
		UpdatedAt: at,
	}))

	hits, err := repository.Search(context.Background(), "c1", "invoice", 10)
	req.NoError(err)
	req.Len(hits, 1)
	req.Equal(stored.ID.String(), hits[0].ID)
	req.Equal("alice@x.com", hits[0].Sender)
	req.Equal("en", hits[0].Lang)
	req.Equal(domain.ChannelID("c1"), hits[0].ChannelID)
}

func Test_Search_Is_Scoped_To_Channel(t *testing.T) {
	req := require.New(t)
	repository := NewSearchRepository(openTestIndex(t), slog.Default())

	at := time.Now().UTC()
	req.NoError(repository.IndexMessage(DiskMessage{
		ID: uuid.New(), ChannelID: "c1", Sender: "alice@x.com",
		Text: "deploy friday", CreatedAt: at, UpdatedAt: at,
	}))
	req.NoError(repository.IndexMessage(DiskMessage{
		ID: uuid.New(), ChannelID: "c2", Sender: "bob@x.com",
		Text: "deploy monday", CreatedAt: at, UpdatedAt: at,
	}))

	hits, err := repository.Search(context.Background(), "c1", "deploy", 10)
	req.NoError(err)
	req.Len(hits, 1)
	req.Equal(domain.ChannelID("c1"), hits[0].ChannelID)
}
