package customer

import (
	"context"

	"kiranabook/internal/core/id"
	"kiranabook/internal/domain"
	"kiranabook/pkg/logger"
)

// Service provides business logic for the customer catalog.
type Service struct {
	repo Repository
}

// NewService creates a new customer service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new customer.
func (s *Service) Create(ctx context.Context, c *Customer) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}

	logger.Info(ctx, "customer created", "id", c.ID, "name", c.Name)
	return nil
}

// GetByID retrieves a customer by id.
func (s *Service) GetByID(ctx context.Context, customerID id.ID) (*Customer, error) {
	return s.repo.GetByID(ctx, customerID)
}

// Update modifies an existing customer.
func (s *Service) Update(ctx context.Context, c *Customer) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Update(ctx, c)
}

// Delete removes a customer; their sales and payments cascade.
func (s *Service) Delete(ctx context.Context, customerID id.ID) error {
	if err := s.repo.Delete(ctx, customerID); err != nil {
		return err
	}
	logger.Info(ctx, "customer deleted", "id", customerID)
	return nil
}

// List retrieves customers with search, sorting and pagination.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Customer], error) {
	return s.repo.List(ctx, filter)
}

// ListAll returns every customer ordered by name.
func (s *Service) ListAll(ctx context.Context) ([]*Customer, error) {
	return s.repo.ListAll(ctx)
}
