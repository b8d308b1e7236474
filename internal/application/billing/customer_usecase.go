package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coolcare/billing-api/internal/application/dto"
	"github.com/coolcare/billing-api/internal/domain"
	"github.com/coolcare/billing-api/internal/domain/entity"
	"github.com/coolcare/billing-api/internal/domain/repository"
)

// CustomerUseCase covers customer records: CRUD with soft delete. Customers
// carry no financial figures; invoices reference them by ID.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase builds the use case.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create validates and persists a new customer. Name and phone are required;
// priority defaults to normal and isActive to true.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" || in.Phone == "" {
		return nil, fmt.Errorf("%w: name and phone are required", domain.ErrInvalidInput)
	}
	priority, err := normalizePriority(in.Priority)
	if err != nil {
		return nil, err
	}
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		AlternatePhone: in.AlternatePhone,
		Address:        in.Address,
		City:           in.City,
		PostalCode:     in.PostalCode,
		CompanyName:    in.CompanyName,
		GSTNumber:      in.GSTNumber,
		IsActive:       isActive,
		Priority:       priority,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Get returns one customer.
func (uc *CustomerUseCase) Get(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// List returns all non-deleted customers, newest first.
func (uc *CustomerUseCase) List(ctx context.Context) ([]*dto.CustomerResponse, error) {
	customers, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Update replaces the editable fields of a customer.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" || in.Phone == "" {
		return nil, fmt.Errorf("%w: name and phone are required", domain.ErrInvalidInput)
	}
	priority, err := normalizePriority(in.Priority)
	if err != nil {
		return nil, err
	}
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	customer.Name = in.Name
	customer.Email = in.Email
	customer.Phone = in.Phone
	customer.AlternatePhone = in.AlternatePhone
	customer.Address = in.Address
	customer.City = in.City
	customer.PostalCode = in.PostalCode
	customer.CompanyName = in.CompanyName
	customer.GSTNumber = in.GSTNumber
	if in.IsActive != nil {
		customer.IsActive = *in.IsActive
	}
	customer.Priority = priority
	customer.Notes = in.Notes
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Delete soft-deletes a customer; existing invoices keep referencing it.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(id, time.Now())
}

func normalizePriority(p string) (string, error) {
	switch p {
	case "":
		return entity.PriorityNormal, nil
	case entity.PriorityNormal, entity.PriorityHigh, entity.PriorityVIP:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidInput, p)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		AlternatePhone: c.AlternatePhone,
		Address:        c.Address,
		City:           c.City,
		PostalCode:     c.PostalCode,
		CompanyName:    c.CompanyName,
		GSTNumber:      c.GSTNumber,
		IsActive:       c.IsActive,
		Priority:       c.Priority,
		Notes:          c.Notes,
		CreatedAt:      c.CreatedAt.Format(time.RFC3339),
	}
}
