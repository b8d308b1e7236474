package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/coolcare/billing-api/internal/domain"
	"github.com/coolcare/billing-api/internal/domain/entity"
	"github.com/coolcare/billing-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implements CustomerRepository (usable with pool or tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository builds the adapter. Pass a pool or a tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `
	id, name, email, phone, alternate_phone,
	address, city, postal_code,
	company_name, gst_number,
	is_active, priority, notes,
	created_at, updated_at, created_by, deleted_at`

// Create persists a new customer.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, phone, alternate_phone,
			address, city, postal_code,
			company_name, gst_number,
			is_active, priority, notes,
			created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.Email, customer.Phone, customer.AlternatePhone,
		customer.Address, customer.City, customer.PostalCode,
		customer.CompanyName, customer.GSTNumber,
		customer.IsActive, customer.Priority, customer.Notes,
		customer.CreatedAt, customer.UpdatedAt, nullIfEmpty(customer.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID returns a customer, nil when missing or soft-deleted.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT` + customerColumns + `
		FROM customers WHERE id = $1 AND deleted_at IS NULL`
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// List returns non-deleted customers, newest first.
func (r *CustomerRepo) List() ([]*entity.Customer, error) {
	query := `SELECT` + customerColumns + `
		FROM customers WHERE deleted_at IS NULL ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update rewrites the customer's mutable fields.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, email = $3, phone = $4, alternate_phone = $5,
		    address = $6, city = $7, postal_code = $8,
		    company_name = $9, gst_number = $10,
		    is_active = $11, priority = $12, notes = $13, updated_at = $14
		WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.Email, customer.Phone, customer.AlternatePhone,
		customer.Address, customer.City, customer.PostalCode,
		customer.CompanyName, customer.GSTNumber,
		customer.IsActive, customer.Priority, customer.Notes, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete hides the customer from reads. Their invoices stay visible.
func (r *CustomerRepo) SoftDelete(id string, deletedAt time.Time) error {
	query := `
		UPDATE customers SET deleted_at = $2, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query, id, deletedAt)
	if err != nil {
		return fmt.Errorf("soft delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	var createdBy *string
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.AlternatePhone,
		&c.Address, &c.City, &c.PostalCode,
		&c.CompanyName, &c.GSTNumber,
		&c.IsActive, &c.Priority, &c.Notes,
		&c.CreatedAt, &c.UpdatedAt, &createdBy, &c.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	if createdBy != nil {
		c.CreatedBy = *createdBy
	}
	return &c, nil
}
