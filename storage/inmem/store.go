package inmem

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/msms/core/school"
)

// Store keeps the last saved Document in memory.
// Documents go in and out through their JSON form, so callers never share slices with it.
type Store struct {
	mu    sync.RWMutex
	data  []byte
	saves int
}

func New() *Store {
	return &Store{}
}

func (s *Store) Load() (school.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var doc school.Document
	if s.data == nil {
		return doc, errors.Wrap(school.ErrNoDocument, "in-memory store is empty")
	}
	if err := json.Unmarshal(s.data, &doc); err != nil {
		return school.Document{}, errors.Wrap(err, "decoding in-memory document")
	}
	return doc, nil
}

func (s *Store) Save(doc school.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encoding in-memory document")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (s *Store) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
