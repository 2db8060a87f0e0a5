package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// PostUUID identifies a post or project record by collection and slug so
// rebuilds assign stable IDs.
func PostUUID(collection, slug string) uuid.UUID {
	return UUID("go-portfolio:post:" + strings.ToLower(strings.TrimSpace(collection)) + ":" + strings.TrimSpace(slug))
}

// WorkExperienceUUID identifies a work history record by its slug.
func WorkExperienceUUID(slug string) uuid.UUID {
	return UUID("go-portfolio:work:" + strings.TrimSpace(slug))
}

// EducationUUID identifies an education record by its slug.
func EducationUUID(slug string) uuid.UUID {
	return UUID("go-portfolio:education:" + strings.TrimSpace(slug))
}

// SubmissionUUID identifies a contact submission by sender and receipt time.
func SubmissionUUID(email string, receivedAt string) uuid.UUID {
	return UUID("go-portfolio:submission:" + strings.ToLower(strings.TrimSpace(email)) + ":" + strings.TrimSpace(receivedAt))
}
