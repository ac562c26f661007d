package gateway

import (
	"context"
	"sync"
	"time"
)

// FetchTimeout bounds a single catalog fetch.
const FetchTimeout = 10 * time.Second

// ToolSnapshot is a process-wide snapshot of the gateway's tool catalog.
// It is fetched once on first use and only replaced by an explicit
// Refresh, so every request in between sees the same immutable list.
type ToolSnapshot struct {
	client *Client

	mu    sync.RWMutex
	tools []Tool
}

// NewToolSnapshot creates an empty snapshot backed by the given client.
func NewToolSnapshot(client *Client) *ToolSnapshot {
	return &ToolSnapshot{client: client}
}

// Get returns the cached tools, fetching the catalog first if the
// snapshot is still empty. Concurrent first calls may both fetch; the
// fetch is idempotent so either result is fine.
func (s *ToolSnapshot) Get(ctx context.Context) ([]Tool, error) {
	s.mu.RLock()
	tools := s.tools
	s.mu.RUnlock()

	if tools != nil {
		return tools, nil
	}

	return s.Refresh(ctx)
}

// Refresh fetches the catalog and replaces the snapshot. On failure the
// previous snapshot is kept.
func (s *ToolSnapshot) Refresh(ctx context.Context) ([]Tool, error) {
	ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
	defer cancel()

	tools, err := s.client.ListTools(ctx)
	if err != nil {
		return nil, err
	}
	if tools == nil {
		tools = []Tool{}
	}

	s.mu.Lock()
	s.tools = tools
	s.mu.Unlock()

	return tools, nil
}

// Tools returns the current snapshot without fetching. The second return
// reports whether a snapshot exists yet.
func (s *ToolSnapshot) Tools() ([]Tool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tools, s.tools != nil
}
