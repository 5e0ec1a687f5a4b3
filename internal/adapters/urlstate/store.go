// Package urlstate holds the browser state as URL query parameters.
package urlstate

import (
	"net/url"
	"strings"
	"sync"
)

// Store is an in-memory URL query string. It implements port.StateStore.
type Store struct {
	mu        sync.RWMutex
	values    url.Values
	listeners []func(query string)
}

// NewStore parses rawQuery ("page=2&tag=react", a leading "?" is accepted).
// An unparsable query yields an empty store and the parse error.
func NewStore(rawQuery string) (*Store, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		return &Store{values: url.Values{}}, err
	}
	return &Store{values: values}, nil
}

// Get returns the first value for key and whether it was set
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vs, ok := s.values[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// Set writes every pair of tx in one transition, then notifies listeners
func (s *Store) Set(tx map[string]string) {
	if len(tx) == 0 {
		return
	}

	s.mu.Lock()
	for k, v := range tx {
		s.values.Set(k, v)
	}
	query := s.values.Encode()
	listeners := append([]func(string){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(query)
	}
}

// Encode returns the query string, keys sorted
func (s *Store) Encode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values.Encode()
}

// Subscribe registers fn to be called with the new query after every transaction
func (s *Store) Subscribe(fn func(query string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}
