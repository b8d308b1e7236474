package repository

import (
	"time"

	"github.com/coolcare/billing-api/internal/domain/entity"
)

// CustomerRepository is the persistence port for customers. Reads exclude
// soft-deleted rows.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	// List returns active (non-deleted) customers, newest first.
	List() ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	SoftDelete(id string, deletedAt time.Time) error
}
