package booking

import (
	"sync"
	"time"
)

// DefaultDraftTTL is how long an untouched draft survives before it
// is treated as abandoned.
const DefaultDraftTTL = 30 * time.Minute

// DraftStore keeps in-flight drafts in memory, keyed by draft id.
// Drafts are session state: they are never written to the database
// and disappear on confirmation, explicit abandonment or expiry.
// The store is safe for concurrent use by handler goroutines.
type DraftStore struct {
	mu     sync.Mutex
	drafts map[string]*Draft
	ttl    time.Duration
	now    func() time.Time // injectable clock for expiry tests
}

// NewDraftStore creates a store with the given idle TTL.  A TTL of 0
// falls back to DefaultDraftTTL.
func NewDraftStore(ttl time.Duration) *DraftStore {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &DraftStore{
		drafts: make(map[string]*Draft),
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Put registers a draft under its id, replacing any previous draft
// with the same id.
func (s *DraftStore) Put(d *Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.ID] = d
}

// Get returns the draft with the given id for the given user.
// Expired drafts are dropped lazily on access.  ErrDraftNotFound is
// returned for unknown or expired ids, ErrNotDraftOwner when the
// draft belongs to a different user.
func (s *DraftStore) Get(id string, userID uint64) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	if s.now().Sub(d.TouchedAt) > s.ttl {
		delete(s.drafts, id)
		return nil, ErrDraftNotFound
	}
	if d.UserID != userID {
		return nil, ErrNotDraftOwner
	}
	return d, nil
}

// Delete discards a draft.  Deleting an unknown id is a no-op so
// abandonment and confirmation can both call it unconditionally.
func (s *DraftStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
}

// Sweep removes all expired drafts and reports how many were
// dropped.  It is cheap enough to run from a ticker if desired; the
// store also expires lazily so sweeping is optional.
func (s *DraftStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	cutoff := s.now()
	for id, d := range s.drafts {
		if cutoff.Sub(d.TouchedAt) > s.ttl {
			delete(s.drafts, id)
			n++
		}
	}
	return n
}
