// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sync"
	"time"

	"github.com/danielhkuo/idea-board/models"
)

// MemoryStore keeps ideas in process memory behind a single RWMutex.
type MemoryStore struct {
	mu          sync.RWMutex
	ideas       map[int64]models.Idea
	lastID      int64
	lastCreated time.Time
	maxLen      int
	now         func() time.Time
}

// NewMemoryStore creates an empty store. maxLen <= 0 selects the default.
func NewMemoryStore(maxLen int) *MemoryStore {
	if maxLen <= 0 {
		maxLen = models.DefaultMaxTextLength
	}
	return &MemoryStore{
		ideas:  make(map[int64]models.Idea),
		maxLen: maxLen,
		now:    time.Now,
	}
}

func (s *MemoryStore) Create(ctx context.Context, text string) (models.Idea, error) {
	text, err := NormalizeText(text, s.maxLen)
	if err != nil {
		return models.Idea{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// created_at must be strictly increasing so recency ties never happen
	// inside one store, even on coarse clocks.
	created := s.now().UTC()
	if !created.After(s.lastCreated) {
		created = s.lastCreated.Add(time.Nanosecond)
	}
	s.lastCreated = created
	s.lastID++

	idea := models.Idea{
		ID:        s.lastID,
		Text:      text,
		CreatedAt: created,
	}
	s.ideas[idea.ID] = idea
	return idea, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]models.Idea, error) {
	s.mu.RLock()
	ideas := make([]models.Idea, 0, len(s.ideas))
	for _, idea := range s.ideas {
		ideas = append(ideas, idea)
	}
	s.mu.RUnlock()

	SortIdeas(ideas)
	return ideas, nil
}

func (s *MemoryStore) Get(ctx context.Context, id int64) (models.Idea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idea, ok := s.ideas[id]
	if !ok {
		return models.Idea{}, ErrNotFound
	}
	return idea, nil
}

func (s *MemoryStore) Upvote(ctx context.Context, id int64) (models.Idea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idea, ok := s.ideas[id]
	if !ok {
		return models.Idea{}, ErrNotFound
	}
	idea.Upvotes++
	s.ideas[id] = idea
	return idea, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ideas[id]; !ok {
		return ErrNotFound
	}
	delete(s.ideas, id)
	return nil
}
