package session

import (
	"sync"

	"github.com/swoga/netgear-exporter/api"
)

// Store keeps one logged-in client per probe target so consecutive scrapes
// reuse the discovered control port instead of rediscovering and logging in
// every time.
type Store struct {
	mutex   sync.RWMutex
	clients map[string]*api.Client
}

func New() *Store {
	return &Store{
		clients: map[string]*api.Client{},
	}
}

func (s *Store) Get(target string) *api.Client {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.clients[target]
}

func (s *Store) Set(target string, client *api.Client) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if old, ok := s.clients[target]; ok && old != client {
		old.Close()
	}
	s.clients[target] = client
}

// Remove drops and closes the cached client of a target, forcing the next
// probe to discover and log in again.
func (s *Store) Remove(target string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if client, ok := s.clients[target]; ok {
		client.Close()
		delete(s.clients, target)
	}
}
