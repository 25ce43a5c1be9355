package jsonfile

import (
	"context"

	"github.com/gatherly/event-registration/internal/core/domain"
	"github.com/gatherly/event-registration/internal/core/ports"
)

// UserRepository implements ports.UserRepository on top of the document
// store.
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a UserRepository sharing the given store.
func NewUserRepository(store *Store) ports.UserRepository {
	return &UserRepository{store: store}
}

// userRecord is the on-disk shape of a user. Field names match the layout
// the dataset file has always used.
type userRecord struct {
	ID                     string `json:"id"`
	Username               string `json:"username"`
	HashedPassword         string `json:"hashedPassword"`
	Role                   string `json:"role"`
	DefaultPasswordChanged bool   `json:"defaultPasswordChanged"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	created := *user
	if created.ID == "" {
		created.ID = domain.NewID()
	}

	// Uniqueness check and insert share one section so two concurrent
	// creations of the same username cannot both pass the check.
	err := r.store.Update(ctx, func(ds *Dataset) error {
		for _, u := range ds.Users {
			if u.Username == created.Username {
				return domain.ErrUserExists
			}
		}
		ds.Users = append(ds.Users, toUserRecord(&created))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sanitized := created.Sanitized()
	return &sanitized, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var found *domain.User
	err := r.store.View(ctx, func(ds *Dataset) error {
		for i := range ds.Users {
			if ds.Users[i].Username == username {
				found = fromUserRecord(ds.Users[i])
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var found *domain.User
	err := r.store.View(ctx, func(ds *Dataset) error {
		for i := range ds.Users {
			if ds.Users[i].ID == id {
				u := fromUserRecord(ds.Users[i]).Sanitized()
				found = &u
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID, newHash string) (*domain.User, error) {
	var updated *domain.User
	err := r.store.Update(ctx, func(ds *Dataset) error {
		for i := range ds.Users {
			if ds.Users[i].ID == userID {
				ds.Users[i].HashedPassword = newHash
				ds.Users[i].DefaultPasswordChanged = true
				u := fromUserRecord(ds.Users[i]).Sanitized()
				updated = &u
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func toUserRecord(u *domain.User) userRecord {
	return userRecord{
		ID:                     u.ID,
		Username:               u.Username,
		HashedPassword:         u.PasswordHash,
		Role:                   u.Role,
		DefaultPasswordChanged: u.DefaultPasswordChanged,
	}
}

func fromUserRecord(rec userRecord) *domain.User {
	return &domain.User{
		ID:                     rec.ID,
		Username:               rec.Username,
		PasswordHash:           rec.HashedPassword,
		Role:                   rec.Role,
		DefaultPasswordChanged: rec.DefaultPasswordChanged,
	}
}
