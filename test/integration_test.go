package test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"zenlarn/contract"
	"zenlarn/domain"
	"zenlarn/domain/event"
	"zenlarn/errors"
	"zenlarn/moderation"
	"zenlarn/repositories"
	"zenlarn/runtime"
	"zenlarn/runtime/workers"
	"zenlarn/services"
	"zenlarn/sink"
)

func receiveStored(t *testing.T, s *sink.ConnectionSink) event.MessageStored {
	t.Helper()
	select {
	case e := <-s.Events:
		stored, ok := e.(event.MessageStored)
		require.True(t, ok)
		return stored
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout: event never reached the connection sink")
		return event.MessageStored{}
	}
}

func Test_Scenario(t *testing.T) {
	ctx := context.Background()
	req := require.New(t)

	// Reduced to 16 Mo for testing (avoid 20 Go of storage)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR).
		WithValueLogFileSize(16 << 20))
	req.NoError(err)

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(t.TempDir()))
	req.NoError(err)

	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	messageRepository := repositories.NewMessageRepository(db, log, lo.ToPtr(50))
	channelRepository := repositories.NewChannelRepository(db)
	searchRepository := repositories.NewSearchRepository(blugeWriter, log)

	moderator, err := moderation.NewModerator([]string{"badger"}, '*')
	req.NoError(err)

	registry := runtime.NewRegistry()
	indexSink := sink.NewIndexSink(searchRepository, log)
	fanout := workers.NewEventFanout(log, registry,
		[]contract.EventSink{indexSink}, 100, time.Second)

	supervisor := workers.NewSupervisor(log, 200*time.Millisecond)
	go supervisor.Add(fanout).Run(ctx)

	t.Cleanup(func() {
		supervisor.Stop()
		_ = blugeWriter.Close()
		_ = db.Close()
	})

	membership := services.NewMembershipService(channelRepository)
	chat := services.NewChatService(membership, messageRepository,
		searchRepository, registry, fanout, &moderator, log)

	// Given a channel where alice and bob are participants
	channel := domain.NewChannel("general", "alice@x.com", time.Now().UTC())
	req.NoError(channelRepository.InsertChannel(channel))
	req.NoError(channelRepository.AddParticipant(channel.ID, "bob@x.com"))

	// And more history than one replay page
	base := time.Now().UTC().Add(-time.Hour)
	for i := 1; i <= 55; i++ {
		msg := domain.NewMessage(channel.ID, "alice@x.com",
			fmt.Sprintf("message %d", i), "en", base.Add(time.Duration(i)*time.Second))
		req.NoError(messageRepository.StoreMessage(repositories.DiskMessage{
			ID:        msg.ID,
			ChannelID: msg.ChannelID,
			Sender:    msg.Sender,
			Text:      msg.Text,
			Lang:      msg.Lang,
			CreatedAt: msg.CreatedAt,
			UpdatedAt: msg.UpdatedAt,
		}))
	}

	// When alice joins on two connections and bob on one
	aliceSink1 := sink.NewConnectionSink(10)
	aliceSink2 := sink.NewConnectionSink(10)
	bobSink := sink.NewConnectionSink(10)

	aliceConn1 := domain.NewConnectionID()
	aliceConn2 := domain.NewConnectionID()
	bobConn := domain.NewConnectionID()

	history, err := chat.Join(channel.ID, "alice@x.com", aliceConn1, aliceSink1)
	req.NoError(err)

	// Then she gets the most recent page, newest first
	req.Len(history, 50)
	req.Equal("message 55", history[0].Text)
	req.Equal("message 6", history[49].Text)

	_, err = chat.Join(channel.ID, "alice@x.com", aliceConn2, aliceSink2)
	req.NoError(err)
	_, err = chat.Join(channel.ID, "bob@x.com", bobConn, bobSink)
	req.NoError(err)

	// And mallory is turned away without a trace
	mallorySink := sink.NewConnectionSink(10)
	_, err = chat.Join(channel.ID, "mallory@x.com", domain.NewConnectionID(), mallorySink)
	req.ErrorIs(err, errors.ErrUnauthorized)

	// When alice publishes a message with a forbidden word
	err = chat.Publish(ctx, domain.PostMessageCommand{
		ChannelID: channel.ID,
		Sender:    "alice@x.com",
		Text:      "hello from the badger den",
		CreatedAt: time.Now().UTC(),
	})
	req.NoError(err)

	// Then every connection gets exactly one censored copy, sender included
	for _, s := range []*sink.ConnectionSink{aliceSink1, aliceSink2, bobSink} {
		stored := receiveStored(t, s)
		req.Equal("hello from the ****** den", stored.Text)
		req.Equal("alice@x.com", stored.Sender)
		req.NotEqual(uuid.Nil, stored.ID)
		req.Empty(s.Events)
	}

	// And mallory's sink never saw anything
	req.Empty(mallorySink.Events)

	// And the message is findable through the full-text index
	hits, err := searchRepository.Search(ctx, channel.ID, "hello", 10)
	req.NoError(err)
	req.Len(hits, 1)
	req.Equal("hello from the ****** den", hits[0].Text)

	// When bob's second tab disconnects everything at once
	chat.Disconnect(bobConn)
	err = chat.Publish(ctx, domain.PostMessageCommand{
		ChannelID: channel.ID,
		Sender:    "bob@x.com",
		Text:      "one last word",
		CreatedAt: time.Now().UTC(),
	})
	req.NoError(err)

	// Then only alice's connections are served
	for _, s := range []*sink.ConnectionSink{aliceSink1, aliceSink2} {
		stored := receiveStored(t, s)
		req.Equal("one last word", stored.Text)
	}
	req.Empty(bobSink.Events)
}
