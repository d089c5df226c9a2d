package session

import (
	"context"
	"sync"
	"time"

	"github.com/pageza/mealfinder/internal/page"
)

type flashEntry struct {
	flash   page.Flash
	expires time.Time
}

type memoryEntry struct {
	page    page.Page
	expires time.Time
}

// MemoryStore keeps pages, flashes and page locks in process memory. It is used when
// no Redis is configured and in tests.
type MemoryStore struct {
	mu      sync.Mutex
	pages   map[string]memoryEntry
	flashes map[string]flashEntry
	locks   map[string]time.Time
	ttl     time.Duration
	lockTTL time.Duration
	now     func() time.Time
}

// NewMemoryStore creates a new MemoryStore. Zero durations select the defaults.
func NewMemoryStore(ttl, lockTTL time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if lockTTL <= 0 {
		lockTTL = DefaultLockTTL
	}
	return &MemoryStore{
		pages:   make(map[string]memoryEntry),
		flashes: make(map[string]flashEntry),
		locks:   make(map[string]time.Time),
		ttl:     ttl,
		lockTTL: lockTTL,
		now:     time.Now,
	}
}

// Load returns a copy of the stored page
func (s *MemoryStore) Load(_ context.Context, id string) (*page.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.pages[id]
	if !ok || s.now().After(entry.expires) {
		delete(s.pages, id)
		return nil, ErrNotFound
	}
	p := entry.page
	return &p, nil
}

// Save stores a copy of p
func (s *MemoryStore) Save(_ context.Context, id string, p *page.Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pages[id] = memoryEntry{page: *p, expires: s.now().Add(s.ttl)}
	return nil
}

// PutFlash merges f into the pending flash of a session
func (s *MemoryStore) PutFlash(_ context.Context, id string, f page.Flash) error {
	if f.Empty() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.flashes[id]
	if !ok || s.now().After(entry.expires) {
		entry = flashEntry{}
	}
	if f.Alert != "" {
		entry.flash.Alert = f.Alert
	}
	if f.ScrollTo != "" {
		entry.flash.ScrollTo = f.ScrollTo
	}
	entry.expires = s.now().Add(s.ttl)
	s.flashes[id] = entry
	return nil
}

// TakeFlash returns and removes the pending flash of a session
func (s *MemoryStore) TakeFlash(_ context.Context, id string) (page.Flash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.flashes[id]
	delete(s.flashes, id)
	if !ok || s.now().After(entry.expires) {
		return page.Flash{}, nil
	}
	return entry.flash, nil
}

// Acquire takes the page lock of a session unless a live one exists
func (s *MemoryStore) Acquire(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if expires, ok := s.locks[id]; ok && s.now().Before(expires) {
		return false, nil
	}
	s.locks[id] = s.now().Add(s.lockTTL)
	return true, nil
}

// Release drops the page lock of a session
func (s *MemoryStore) Release(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.locks, id)
	return nil
}
