package repository

import "github.com/coolcare/billing-api/internal/domain/entity"

// UserRepository is the persistence port for application logins.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
