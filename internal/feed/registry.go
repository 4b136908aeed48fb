package feed

import "sync"

// Registry tracks active feeds.
// Thread-safe for concurrent access.
type Registry struct {
	mu    sync.RWMutex
	feeds map[FeedID]Handle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		feeds: make(map[FeedID]Handle),
	}
}

// Register adds a feed to the registry.
func (r *Registry) Register(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.feeds[h.ID()] = h
}

// Unregister removes a feed from the registry.
func (r *Registry) Unregister(id FeedID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.feeds, id)
}

// Get retrieves a feed by ID.
func (r *Registry) Get(id FeedID) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.feeds[id]
	return h, ok
}

// Count returns the number of registered feeds.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.feeds)
}

// Broadcast sends evt to every registered feed.
func (r *Registry) Broadcast(evt Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, h := range r.feeds {
		h.Send(evt)
	}
}
