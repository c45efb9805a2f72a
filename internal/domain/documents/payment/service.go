package payment

import (
	"context"

	"kiranabook/internal/core/id"
	"kiranabook/internal/domain"
	"kiranabook/internal/domain/catalog/customer"
	"kiranabook/pkg/logger"
)

// Repository defines persistence for payments.
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, paymentID id.ID) (*Payment, error)

	// Update writes customer and amount. payment_date is immutable.
	Update(ctx context.Context, p *Payment) error

	Delete(ctx context.Context, paymentID id.ID) error
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Payment], error)
}

// Service records payments. Payments never touch stock or any stored
// balance field; the customer's balance is derived on read.
type Service struct {
	repo      Repository
	customers customer.Repository
}

// NewService creates a new payment service.
func NewService(repo Repository, customers customer.Repository) *Service {
	return &Service{
		repo:      repo,
		customers: customers,
	}
}

// Create records a payment against a customer.
func (s *Service) Create(ctx context.Context, p *Payment) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	if _, err := s.customers.GetByID(ctx, p.CustomerID); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}

	logger.Info(ctx, "payment recorded",
		"id", p.ID,
		"customer_id", p.CustomerID,
		"amount", p.Amount.String(),
	)
	return nil
}

// GetByID retrieves a payment by id.
func (s *Service) GetByID(ctx context.Context, paymentID id.ID) (*Payment, error) {
	return s.repo.GetByID(ctx, paymentID)
}

// Update modifies customer and amount of an existing payment.
func (s *Service) Update(ctx context.Context, p *Payment) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	if _, err := s.customers.GetByID(ctx, p.CustomerID); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

// Delete removes a payment.
func (s *Service) Delete(ctx context.Context, paymentID id.ID) error {
	if err := s.repo.Delete(ctx, paymentID); err != nil {
		return err
	}
	logger.Info(ctx, "payment deleted", "id", paymentID)
	return nil
}

// List retrieves payments with pagination, newest first by default.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Payment], error) {
	return s.repo.List(ctx, filter)
}
