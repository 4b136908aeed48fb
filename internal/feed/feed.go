// Package feed delivers simulation and narrative events from a session loop to
// the transport that displays them. Sends never block the sender.
package feed

import (
	"sync"

	"github.com/google/uuid"
)

// DefaultBufferSize is used when a feed is created with a non-positive buffer.
const DefaultBufferSize = 64

// FeedID uniquely identifies a connected player's feed.
type FeedID string

// NewFeedID returns a random feed identifier.
func NewFeedID() FeedID {
	return FeedID(uuid.NewString())
}

// Handle is the transport-neutral side of a feed the session loop writes to.
type Handle interface {
	// ID returns the feed identifier.
	ID() FeedID

	// Send delivers an event. Must not block.
	Send(evt Event)

	// Done closes when the consumer has gone away.
	Done() <-chan struct{}
}

// ChannelFeed is a Handle backed by a buffered channel.
type ChannelFeed struct {
	id       FeedID
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
	mu       sync.Mutex
	dropped  int
}

// NewChannelFeed creates a feed holding up to bufferSize undelivered events.
func NewChannelFeed(id FeedID, bufferSize int) *ChannelFeed {
	if bufferSize < 1 {
		bufferSize = DefaultBufferSize
	}
	return &ChannelFeed{
		id:     id,
		events: make(chan Event, bufferSize),
		done:   make(chan struct{}),
	}
}

// ID returns the feed identifier.
func (f *ChannelFeed) ID() FeedID {
	return f.id
}

// Send queues an event. When the buffer is full the oldest event is dropped.
// Sends after Close are ignored.
func (f *ChannelFeed) Send(evt Event) {
	select {
	case <-f.done:
		return
	default:
	}

	// Serializes the drop-and-retry so concurrent senders cannot both evict.
	f.mu.Lock()
	defer f.mu.Unlock()

	select {
	case f.events <- evt:
		return
	default:
	}

	select {
	case <-f.events:
		f.dropped++
	default:
	}
	select {
	case f.events <- evt:
	default:
		f.dropped++
	}
}

// Events returns the channel the consumer reads from.
func (f *ChannelFeed) Events() <-chan Event {
	return f.events
}

// Dropped returns how many events were discarded on overflow.
func (f *ChannelFeed) Dropped() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dropped
}

// Done returns the done channel.
func (f *ChannelFeed) Done() <-chan struct{} {
	return f.done
}

// Close marks the feed as done.
// Safe to call multiple times.
func (f *ChannelFeed) Close() {
	f.doneOnce.Do(func() {
		close(f.done)
	})
}
