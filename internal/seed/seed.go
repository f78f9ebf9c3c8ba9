package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/arekzadka7/mini-crm/internal/domain"
)

// Writer is the part of the customer repository the seeder needs.
type Writer interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
}

type customerSeed struct {
	Name  string
	Email string
	Phone string
}

var demoCustomers = []customerSeed{
	{Name: "Jane Doe", Email: "jane@example.com", Phone: "555-0100"},
	{Name: "John Smith", Email: "john.smith@example.com", Phone: "555-0101"},
	{Name: "Ada Lovelace", Email: "ada@example.com"},
	{Name: "Grace Hopper", Email: "grace@example.com", Phone: "555-0103"},
}

// Apply inserts demo customers for manual testing. It is idempotent: customers
// whose email already exists are skipped. It returns how many were inserted.
func Apply(ctx context.Context, repo Writer) (int, error) {
	inserted := 0
	for _, s := range demoCustomers {
		c := domain.Customer{Name: s.Name, Email: s.Email}
		if s.Phone != "" {
			phone := s.Phone
			c.Phone = &phone
		}
		if _, err := repo.Create(ctx, c); err != nil {
			if errors.Is(err, domain.ErrConstraintViolation) {
				continue
			}
			return inserted, fmt.Errorf("insert customer %s: %w", s.Email, err)
		}
		inserted++
	}
	return inserted, nil
}
