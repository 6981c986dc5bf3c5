package graphql

import (
	"context"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gocloud.dev/pubsub"
	"gocloud.dev/pubsub/mempubsub"
)

// Bus fans subscription events out to connected clients. Every
// subscription field gets its own in-process pubsub topic; each connection
// subscribes separately, so every subscriber sees every event.
//
// Publishers send a payload that becomes the root value of the
// subscription operation, so the conventional shape is
// {"<fieldName>": <value>}.
type Bus struct {
	mu     sync.Mutex
	topics map[string]*pubsub.Topic
}

const ackDeadline = time.Second

func NewBus() *Bus {
	return &Bus{topics: make(map[string]*pubsub.Topic)}
}

func (b *Bus) topic(field string) *pubsub.Topic {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.topics[field]
	if !ok {
		t = mempubsub.NewTopic()
		b.topics[field] = t
	}
	return t
}

// Publish delivers an event payload to every subscriber of a subscription
// field.
func (b *Bus) Publish(ctx context.Context, field string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return pkgerrors.Wrap(err, "encode subscription event")
	}
	if err := b.topic(field).Send(ctx, &pubsub.Message{Body: body}); err != nil {
		return pkgerrors.Wrapf(err, "publish subscription event for %q", field)
	}
	return nil
}

// Subscribe opens a fresh event stream for one subscription field. The
// caller owns the subscription and must shut it down.
func (b *Bus) Subscribe(field string) *pubsub.Subscription {
	return mempubsub.NewSubscription(b.topic(field), ackDeadline)
}

// Shutdown releases every topic.
func (b *Bus) Shutdown(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	var firstErr error
	for field, t := range b.topics {
		if err := t.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = pkgerrors.Wrapf(err, "shutdown topic %q", field)
		}
		delete(b.topics, field)
	}
	return firstErr
}
