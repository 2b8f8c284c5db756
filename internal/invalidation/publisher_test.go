package invalidation

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/anonto42/socially/internal/observability"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	name   string
	err    error
	events []Event
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Send(_ context.Context, events []Event) error {
	s.events = append(s.events, events...)
	return s.err
}

func TestDispatcher_DedupesPathsAndStampsEvents(t *testing.T) {
	sink := &recordingSink{name: "rec"}
	d := NewDispatcher(observability.Discard(), sink)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	d.now = func() time.Time { return fixed }

	d.Publish(context.Background(), "like", FeedPath, ProfilePath("alice"), FeedPath, "")

	require.Len(t, sink.events, 2)
	assert.Equal(t, "/", sink.events[0].Path)
	assert.Equal(t, "/profile/alice", sink.events[1].Path)
	assert.Equal(t, "like", sink.events[1].Reason)
	assert.Equal(t, fixed, sink.events[0].At)
}

func TestDispatcher_SinkFailureDoesNotStopOthers(t *testing.T) {
	broken := &recordingSink{name: "broken", err: errors.New("down")}
	healthy := &recordingSink{name: "healthy"}
	d := NewDispatcher(observability.Discard(), broken, healthy)

	d.Publish(context.Background(), "comment", NotificationsPath)

	assert.Len(t, healthy.events, 1)
}

func TestDispatcher_NoSinksIsNoop(t *testing.T) {
	d := NewDispatcher(observability.Discard())
	assert.NotPanics(t, func() { d.Publish(context.Background(), "post", FeedPath) })
}

func TestRedisSink_PublishesJSONEvents(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub := client.Subscribe(ctx, DefaultChannel)
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)
	messages := sub.Channel()

	sink := NewRedisSink(client, "")
	require.NoError(t, sink.Send(ctx, []Event{{Path: "/", Reason: "post"}}))

	select {
	case msg := <-messages:
		var ev Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &ev))
		assert.Equal(t, "/", ev.Path)
		assert.Equal(t, "post", ev.Reason)
	case <-ctx.Done():
		t.Fatal("no message received")
	}
}
