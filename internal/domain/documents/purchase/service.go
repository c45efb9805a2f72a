package purchase

import (
	"context"
	"fmt"

	"kiranabook/internal/core/id"
	"kiranabook/internal/core/tx"
	"kiranabook/internal/domain"
	"kiranabook/internal/domain/catalog/product"
	"kiranabook/internal/domain/catalog/supplier"
	"kiranabook/internal/domain/stockledger"
	"kiranabook/pkg/logger"
)

// Repository defines persistence for purchases.
type Repository interface {
	Create(ctx context.Context, p *Purchase) error
	GetByID(ctx context.Context, purchaseID id.ID) (*Purchase, error)

	// Update writes supplier, variant, quantity and price fields.
	// purchase_date is immutable and never part of the SET list.
	Update(ctx context.Context, p *Purchase) error

	Delete(ctx context.Context, purchaseID id.ID) error
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Purchase], error)
}

// Service records purchases and keeps the stock ledger in step with them.
type Service struct {
	repo      Repository
	variants  product.VariantRepository
	suppliers supplier.Repository
	ledger    *stockledger.Service
	txManager tx.Manager
}

// NewService creates a new purchase service.
func NewService(
	repo Repository,
	variants product.VariantRepository,
	suppliers supplier.Repository,
	ledger *stockledger.Service,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		variants:  variants,
		suppliers: suppliers,
		ledger:    ledger,
		txManager: txManager,
	}
}

// Create persists the purchase and increments variant stock, atomically.
func (s *Service) Create(ctx context.Context, p *Purchase) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	// Reject unknown references before any write.
	if _, err := s.variants.GetByID(ctx, p.VariantID); err != nil {
		return err
	}
	if p.SupplierID != nil {
		if _, err := s.suppliers.GetByID(ctx, *p.SupplierID); err != nil {
			return err
		}
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, p); err != nil {
			return fmt.Errorf("create purchase: %w", err)
		}
		return s.ledger.OnPurchaseCreated(ctx, p.VariantID, p.Quantity)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "purchase recorded",
		"id", p.ID,
		"variant_id", p.VariantID,
		"quantity", p.Quantity.String(),
	)
	return nil
}

// GetByID retrieves a purchase by id.
func (s *Service) GetByID(ctx context.Context, purchaseID id.ID) (*Purchase, error) {
	return s.repo.GetByID(ctx, purchaseID)
}

// Update is a plain field edit. Changing the quantity does NOT adjust
// current_stock; only Create and Delete touch the ledger. This mirrors
// the historical behavior of the system and is deliberately preserved.
func (s *Service) Update(ctx context.Context, p *Purchase) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	if _, err := s.variants.GetByID(ctx, p.VariantID); err != nil {
		return err
	}
	if p.SupplierID != nil {
		if _, err := s.suppliers.GetByID(ctx, *p.SupplierID); err != nil {
			return err
		}
	}

	return s.repo.Update(ctx, p)
}

// Delete reverts the stock the purchase added, then removes it, atomically.
func (s *Service) Delete(ctx context.Context, purchaseID id.ID) error {
	p, err := s.repo.GetByID(ctx, purchaseID)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.ledger.OnPurchaseDeleted(ctx, p.VariantID, p.Quantity); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, purchaseID); err != nil {
			return fmt.Errorf("delete purchase: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "purchase deleted",
		"id", purchaseID,
		"variant_id", p.VariantID,
		"quantity", p.Quantity.String(),
	)
	return nil
}

// List retrieves purchases with pagination, newest first by default.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Purchase], error) {
	return s.repo.List(ctx, filter)
}
