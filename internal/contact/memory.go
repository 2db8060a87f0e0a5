package contact

import (
	"context"
	"sync"

	"github.com/goliatone/go-portfolio/contact"
	"github.com/google/uuid"
)

// MemorySubmissionRepository provides an in-memory SubmissionRepository.
type MemorySubmissionRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*contact.Submission
	order []uuid.UUID
}

// NewMemorySubmissionRepository constructs an empty memory-backed store.
func NewMemorySubmissionRepository() *MemorySubmissionRepository {
	return &MemorySubmissionRepository{
		byID: make(map[uuid.UUID]*contact.Submission),
	}
}

func (r *MemorySubmissionRepository) Create(_ context.Context, submission *contact.Submission) (*contact.Submission, error) {
	if submission == nil {
		return nil, nil
	}
	cloned := cloneSubmission(submission)
	if cloned.ID == uuid.Nil {
		cloned.ID = uuid.New()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[cloned.ID]; !ok {
		r.order = append(r.order, cloned.ID)
	}
	r.byID[cloned.ID] = cloned

	return cloneSubmission(cloned), nil
}

func (r *MemorySubmissionRepository) Update(_ context.Context, submission *contact.Submission) (*contact.Submission, error) {
	if submission == nil {
		return nil, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[submission.ID]; !ok {
		return nil, &contact.SubmissionNotFoundError{Key: submission.ID.String()}
	}

	cloned := cloneSubmission(submission)
	r.byID[cloned.ID] = cloned

	return cloneSubmission(cloned), nil
}

func (r *MemorySubmissionRepository) GetByID(_ context.Context, id uuid.UUID) (*contact.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.byID[id]
	if !ok {
		return nil, &contact.SubmissionNotFoundError{Key: id.String()}
	}
	return cloneSubmission(record), nil
}

func (r *MemorySubmissionRepository) List(_ context.Context) ([]*contact.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*contact.Submission, 0, len(r.order))
	for _, id := range r.order {
		records = append(records, cloneSubmission(r.byID[id]))
	}
	return records, nil
}

func cloneSubmission(submission *contact.Submission) *contact.Submission {
	if submission == nil {
		return nil
	}
	cloned := *submission
	if submission.ForwardedAt != nil {
		at := *submission.ForwardedAt
		cloned.ForwardedAt = &at
	}
	return &cloned
}
