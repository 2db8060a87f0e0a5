package contact

import (
	"context"

	"github.com/goliatone/go-portfolio/contact"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SubmissionRepository stores contact submissions.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *contact.Submission) (*contact.Submission, error)
	Update(ctx context.Context, submission *contact.Submission) (*contact.Submission, error)
	GetByID(ctx context.Context, id uuid.UUID) (*contact.Submission, error)
	List(ctx context.Context) ([]*contact.Submission, error)
}

// NewSubmissionRepository creates the bun repository for submissions.
func NewSubmissionRepository(db *bun.DB) repository.Repository[*contact.Submission] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*contact.Submission]{
		NewRecord:          func() *contact.Submission { return &contact.Submission{} },
		GetID:              func(submission *contact.Submission) uuid.UUID { return submission.ID },
		SetID:              func(submission *contact.Submission, id uuid.UUID) { submission.ID = id },
		GetIdentifier:      func() string { return "email" },
		GetIdentifierValue: func(submission *contact.Submission) string { return submission.NormalizedEmail() },
	})
}
