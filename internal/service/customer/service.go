package customer

import (
	"context"
	"errors"
	"strings"

	"github.com/arekzadka7/mini-crm/internal/domain"
	custrepo "github.com/arekzadka7/mini-crm/internal/repository/customer"
)

// ErrMissingFields is returned when name or email is blank after trimming.
var ErrMissingFields = errors.New("name and email are required")

// Service applies input rules before handing work to the repository.
type Service struct {
	repo custrepo.Repository
}

// New creates a Service.
func New(repo custrepo.Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput captures the raw fields submitted for a new customer.
type CreateInput struct {
	Name  string `json:"name" form:"name"`
	Email string `json:"email" form:"email"`
	Phone string `json:"phone" form:"phone"`
}

// Create trims the input, rejects blank name or email and stores the customer.
// A blank phone is stored as absent.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Customer, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" {
		return nil, ErrMissingFields
	}

	c := domain.Customer{Name: name, Email: email}
	if phone := strings.TrimSpace(in.Phone); phone != "" {
		c.Phone = &phone
	}
	return s.repo.Create(ctx, c)
}

// List returns customers matching query, or every customer when query is blank.
func (s *Service) List(ctx context.Context, query string) ([]domain.Customer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.repo.List(ctx)
	}
	return s.repo.Search(ctx, query)
}

// Get returns a single customer; found is false when no customer has id.
func (s *Service) Get(ctx context.Context, id int64) (domain.Customer, bool, error) {
	return s.repo.GetByID(ctx, id)
}
