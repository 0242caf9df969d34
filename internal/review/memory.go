package review

import (
	"context"
	"sync"

	"github.com/nmalhotra/cinebook/internal/model"
)

// MemoryRepository is an in-memory Repository used by the unit tests
// and by local demo runs without a database.  It applies the same
// write-time constraints as the SQL implementation.
type MemoryRepository struct {
	mu      sync.Mutex
	nextID  uint64
	reviews map[uint64]*model.Review
	votes   map[[2]uint64]*model.ReviewVote // (reviewID, userID)
}

// NewMemoryRepository returns an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nextID:  1,
		reviews: make(map[uint64]*model.Review),
		votes:   make(map[[2]uint64]*model.ReviewVote),
	}
}

// ListByMovie returns the reviews for one movie in insertion order.
func (m *MemoryRepository) ListByMovie(ctx context.Context, movieID uint64) ([]model.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Review
	for id := uint64(1); id < m.nextID; id++ {
		if r, ok := m.reviews[id]; ok && r.MovieID == movieID {
			out = append(out, *r)
		}
	}
	return out, nil
}

// GetByID returns the review or nil when absent.
func (m *MemoryRepository) GetByID(ctx context.Context, id uint64) (*model.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.reviews[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

// GetByUserAndMovie returns the user's review of the movie, or nil.
func (m *MemoryRepository) GetByUserAndMovie(ctx context.Context, userID, movieID uint64) (*model.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reviews {
		if r.UserID == userID && r.MovieID == movieID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

// Create stores the review and assigns its id.
func (m *MemoryRepository) Create(ctx context.Context, r *model.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.nextID
	m.nextID++
	cp := *r
	m.reviews[r.ID] = &cp
	return nil
}

// Delete removes the review and its votes.
func (m *MemoryRepository) Delete(ctx context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reviews, id)
	for key := range m.votes {
		if key[0] == id {
			delete(m.votes, key)
		}
	}
	return nil
}

// GetVote returns the user's vote on the review, or nil.
func (m *MemoryRepository) GetVote(ctx context.Context, reviewID, userID uint64) (*model.ReviewVote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.votes[[2]uint64{reviewID, userID}]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

// ApplyVote stores, replaces or removes the vote row and shifts the
// review's helpful counter in one step.
func (m *MemoryRepository) ApplyVote(ctx context.Context, reviewID, userID uint64, vote *bool, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]uint64{reviewID, userID}
	if vote == nil {
		delete(m.votes, key)
	} else {
		m.votes[key] = &model.ReviewVote{ReviewID: reviewID, UserID: userID, Helpful: *vote}
	}
	if r, ok := m.reviews[reviewID]; ok {
		r.Helpful += delta
	}
	return nil
}
