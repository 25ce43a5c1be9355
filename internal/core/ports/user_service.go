package ports

import (
	"context"

	"github.com/gatherly/event-registration/internal/core/domain"
)

type UserService interface {
	// CreateUser hashes the password and inserts the user. Returned users
	// are always hash-stripped.
	CreateUser(ctx context.Context, username, password, role string, defaultPasswordChanged bool) (*domain.User, error)

	// Login verifies credentials and returns a signed token plus the
	// hash-stripped user.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)

	// ChangePassword verifies the current password, stores a hash of the
	// new one, and marks the default password as changed.
	ChangePassword(ctx context.Context, username, currentPassword, newPassword string) (*domain.User, error)

	// GetByID returns a hash-stripped user.
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
