package supplier

import (
	"context"

	"kiranabook/internal/core/id"
	"kiranabook/internal/domain"
	"kiranabook/pkg/logger"
)

// Repository defines persistence for suppliers.
type Repository interface {
	Create(ctx context.Context, s *Supplier) error
	GetByID(ctx context.Context, supplierID id.ID) (*Supplier, error)
	Update(ctx context.Context, s *Supplier) error

	// Delete removes the supplier; purchases referencing it keep their
	// rows with supplier_id set to NULL.
	Delete(ctx context.Context, supplierID id.ID) error

	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Supplier], error)
	Exists(ctx context.Context, supplierID id.ID) (bool, error)
}

// Service provides business logic for the supplier catalog.
type Service struct {
	repo Repository
}

// NewService creates a new supplier service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new supplier.
func (s *Service) Create(ctx context.Context, sup *Supplier) error {
	if err := sup.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, sup); err != nil {
		return err
	}

	logger.Info(ctx, "supplier created", "id", sup.ID, "name", sup.Name)
	return nil
}

// GetByID retrieves a supplier by id.
func (s *Service) GetByID(ctx context.Context, supplierID id.ID) (*Supplier, error) {
	return s.repo.GetByID(ctx, supplierID)
}

// Update modifies an existing supplier.
func (s *Service) Update(ctx context.Context, sup *Supplier) error {
	if err := sup.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Update(ctx, sup)
}

// Delete removes a supplier. Purchase history survives with a null supplier.
func (s *Service) Delete(ctx context.Context, supplierID id.ID) error {
	if err := s.repo.Delete(ctx, supplierID); err != nil {
		return err
	}
	logger.Info(ctx, "supplier deleted", "id", supplierID)
	return nil
}

// List retrieves suppliers with filtering and pagination.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Supplier], error) {
	return s.repo.List(ctx, filter)
}
