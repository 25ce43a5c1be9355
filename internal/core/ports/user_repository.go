package ports

import (
	"context"

	"github.com/gatherly/event-registration/internal/core/domain"
)

// UserRepository defines the persistence interface for the user collection.
// Every method runs inside a single serialized section of the document store.
type UserRepository interface {
	// Create inserts a new user. The uniqueness check and the insert happen
	// atomically; a taken username yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// FindByUsername returns the full record including the password hash.
	// Reserved for the credential-verification path; no other caller may
	// propagate the result.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByID returns a hash-stripped view of the user.
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// UpdatePassword swaps in a new password hash and marks the default
	// password as changed. Returns the hash-stripped updated user.
	UpdatePassword(ctx context.Context, userID, newHash string) (*domain.User, error)
}
