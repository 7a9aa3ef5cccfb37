// Package store holds the in-memory resource caches that back the UI:
// collections loaded over the REST API with optimistic create/update
// semantics. Operations are deliberately not serialized against each
// other; two concurrent updates to the same record race at the network
// layer and the later response wins. That matches the single-user
// usage pattern and is documented, not guarded against.
package store

import (
	"context"

	"github.com/ucielsola/trackit/internal/stats"
)

// Observer is notified after every store state change. It replaces
// reactive field bindings with an explicit notification mechanism.
type Observer interface {
	StoreChanged()
}

// ClientPatch is a partial client update.
type ClientPatch struct {
	Name *string `json:"name,omitempty"`
}

type ClientStore struct {
	api *APIClient

	clients   []stats.ClientWithStats
	loaded    bool
	loading   bool
	lastError string
	success   string

	observers []Observer
}

func NewClientStore(api *APIClient) *ClientStore {
	return &ClientStore{api: api}
}

func (s *ClientStore) Subscribe(o Observer) {
	s.observers = append(s.observers, o)
}

func (s *ClientStore) notify() {
	for _, o := range s.observers {
		o.StoreChanged()
	}
}

// Clients returns a copy of the current collection.
func (s *ClientStore) Clients() []stats.ClientWithStats {
	out := make([]stats.ClientWithStats, len(s.clients))
	copy(out, s.clients)
	return out
}

func (s *ClientStore) Loaded() bool    { return s.loaded }
func (s *ClientStore) Loading() bool   { return s.loading }
func (s *ClientStore) Error() string   { return s.lastError }
func (s *ClientStore) Success() string { return s.success }

func (s *ClientStore) ClientByID(id uint) *stats.ClientWithStats {
	for i := range s.clients {
		if s.clients[i].ID == id {
			c := s.clients[i]
			return &c
		}
	}

	return nil
}

// Load replaces the whole collection, sorted by name.
func (s *ClientStore) Load(ctx context.Context) {
	s.loading = true
	s.lastError = ""
	s.notify()

	clients, err := s.api.ListClients(ctx)

	if err != nil {
		s.lastError = err.Error()
		s.loading = false
		s.notify()
		return
	}

	stats.SortClients(clients, stats.SortByName, stats.OrderAsc)

	s.clients = clients
	s.loaded = true
	s.loading = false
	s.notify()
}

// Create appends the server-confirmed record and re-sorts. Nothing is
// inserted until the server confirms, so a failure needs no rollback.
func (s *ClientStore) Create(ctx context.Context, name string) {
	s.loading = true
	s.lastError = ""
	s.notify()

	client, err := s.api.CreateClient(ctx, name)

	if err != nil {
		s.lastError = err.Error()
		s.loading = false
		s.notify()
		return
	}

	s.clients = append(s.clients, *client)
	stats.SortClients(s.clients, stats.SortByName, stats.OrderAsc)
	s.success = "Client created successfully"
	s.loading = false
	s.notify()
}

// Update is a two-phase optimistic operation: the patch is applied
// locally first (phase one, with the prior record remembered), then
// sent to the server; on failure the snapshot is restored and the
// collection re-sorted (phase two).
func (s *ClientStore) Update(ctx context.Context, id uint, patch ClientPatch) {
	s.lastError = ""

	index := s.indexOf(id)

	if index == -1 {
		s.lastError = "Client not found"
		s.notify()
		return
	}

	snapshot := s.clients[index]

	if patch.Name != nil {
		s.clients[index].Name = *patch.Name
		stats.SortClients(s.clients, stats.SortByName, stats.OrderAsc)
	}

	s.notify()

	if _, err := s.api.UpdateClient(ctx, id, patch); err != nil {
		s.lastError = err.Error()

		if restoreIndex := s.indexOf(id); restoreIndex != -1 {
			s.clients[restoreIndex] = snapshot
			stats.SortClients(s.clients, stats.SortByName, stats.OrderAsc)
		}

		s.notify()
		return
	}

	s.success = "Client updated successfully"
	s.notify()
}

// Delete removes the record locally only after the server confirms.
func (s *ClientStore) Delete(ctx context.Context, id uint) {
	s.loading = true
	s.lastError = ""
	s.notify()

	if err := s.api.DeleteClient(ctx, id); err != nil {
		s.lastError = err.Error()
		s.loading = false
		s.notify()
		return
	}

	filtered := s.clients[:0]

	for _, c := range s.clients {
		if c.ID != id {
			filtered = append(filtered, c)
		}
	}

	s.clients = filtered
	s.success = "Client deleted successfully"
	s.loading = false
	s.notify()
}

func (s *ClientStore) indexOf(id uint) int {
	for i := range s.clients {
		if s.clients[i].ID == id {
			return i
		}
	}

	return -1
}
