// SPDX-License-Identifier: EPL-2.0

package export

import (
	"sync"

	"github.com/google/uuid"
)

// URLScheme prefixes every published artifact URL.
const URLScheme = "blob:"

// Store holds published artifacts until they are revoked.
type Store struct {
	mu    sync.Mutex
	items map[string]Artifact
}

func NewStore() *Store {
	return &Store{items: make(map[string]Artifact)}
}

// Publish assigns a fresh ID and URL to a and keeps it until Revoke.
func (s *Store) Publish(a Artifact) Artifact {
	a.ID = uuid.NewString()
	a.URL = URLScheme + a.ID

	s.mu.Lock()
	s.items[a.ID] = a
	s.mu.Unlock()

	return a
}

// Revoke drops the artifact. It reports whether id was live.
func (s *Store) Revoke(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.items[id]
	delete(s.items, id)
	return ok
}

func (s *Store) Get(id string) (Artifact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.items[id]
	return a, ok
}

// Resolve looks an artifact up by its URL.
func (s *Store) Resolve(url string) (Artifact, bool) {
	id, ok := parseURL(url)
	if !ok {
		return Artifact{}, false
	}
	return s.Get(id)
}

// Live is the number of published, unrevoked artifacts.
func (s *Store) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func parseURL(url string) (string, bool) {
	if len(url) <= len(URLScheme) || url[:len(URLScheme)] != URLScheme {
		return "", false
	}
	id, err := uuid.Parse(url[len(URLScheme):])
	if err != nil {
		return "", false
	}
	return id.String(), true
}
