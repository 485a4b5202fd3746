package handlers

import "sync"

// Notices collects toast-style messages from the controllers until the
// next response drains them to the client.
type Notices struct {
	mu       sync.Mutex
	messages []string
}

func NewNotices() *Notices {
	return &Notices{}
}

// Notify implements the controllers' and view-model's Notifier port.
func (n *Notices) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

// Drain returns the pending messages and resets the feed. Never nil, so
// responses always carry a JSON array.
func (n *Notices) Drain() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.messages
	n.messages = nil
	if out == nil {
		out = []string{}
	}
	return out
}
