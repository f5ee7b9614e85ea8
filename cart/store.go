package cart

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
)

// ErrSnapshotNotFound is returned by a Store that holds nothing for a visitor
var ErrSnapshotNotFound = errors.New("cart snapshot not found")

// Store persists the serialized cart of each visitor. Implementations store the
// bytes verbatim; decoding and validation belong to the Cart.
type Store interface {
	Load(ctx context.Context, visitorID string) ([]byte, error)
	Save(ctx context.Context, visitorID string, snapshot []byte) error
	Delete(ctx context.Context, visitorID string) error
}

type memoryEntry struct {
	snapshot []byte
	savedAt  time.Time
}

// MemoryStore keeps snapshots in process memory. With a positive ttl a cart
// untouched for longer than ttl is forgotten.
type MemoryStore struct {
	mu        sync.RWMutex
	items     map[string]memoryEntry
	ttl       time.Duration
	lastPurge time.Time
	now       func() time.Time
}

// NewMemoryStore creates an empty MemoryStore whose carts never expire
func NewMemoryStore() *MemoryStore {
	return NewExpiringMemoryStore(0)
}

// NewExpiringMemoryStore creates an empty MemoryStore dropping carts idle for ttl
func NewExpiringMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		items: make(map[string]memoryEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (m *MemoryStore) expired(e memoryEntry, now time.Time) bool {
	return m.ttl > 0 && now.Sub(e.savedAt) > m.ttl
}

func (m *MemoryStore) Load(_ context.Context, visitorID string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.items[visitorID]
	if !ok || m.expired(e, m.now()) {
		return nil, ErrSnapshotNotFound
	}
	return append([]byte(nil), e.snapshot...), nil
}

func (m *MemoryStore) Save(_ context.Context, visitorID string, snapshot []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.purge(now)
	m.items[visitorID] = memoryEntry{snapshot: append([]byte(nil), snapshot...), savedAt: now}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, visitorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, visitorID)
	return nil
}

// Len returns the number of carts held, expired ones included until purged
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// purge drops expired carts, at most once per minute. Caller holds mu.
func (m *MemoryStore) purge(now time.Time) {
	if m.ttl <= 0 || now.Sub(m.lastPurge) < time.Minute {
		return
	}
	m.lastPurge = now
	for id, e := range m.items {
		if m.expired(e, now) {
			delete(m.items, id)
		}
	}
}
