package stockledger

import (
	"context"
	"fmt"

	"kiranabook/internal/core/apperror"
	"kiranabook/internal/core/id"
	"kiranabook/internal/core/types"
	"kiranabook/pkg/logger"
)

// ReversalItem is a sale item whose stock contribution is being reverted.
type ReversalItem struct {
	VariantID id.ID
	Quantity  types.Quantity
}

// Service mutates variant stock in response to purchase and sale-item
// lifecycle events. The purchase and credit-sale recorders call these
// methods explicitly inside their transactions; there are no implicit
// persistence hooks.
//
// Stock may go negative. The ledger records what happened; it does not
// police availability.
type Service struct {
	repo Repository
}

// NewService creates a new stock ledger service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// OnPurchaseCreated increases stock by the purchased quantity.
func (s *Service) OnPurchaseCreated(ctx context.Context, variantID id.ID, qty types.Quantity) error {
	if !qty.IsPositive() {
		return apperror.NewValidation("purchase quantity must be positive").
			WithDetail("quantity", qty.String())
	}

	if err := s.repo.ApplyDelta(ctx, variantID, qty); err != nil {
		return fmt.Errorf("apply purchase receipt: %w", err)
	}

	logger.Debug(ctx, "stock increased on purchase",
		"variant_id", variantID,
		"quantity", qty.String(),
	)
	return nil
}

// OnPurchaseDeleted decreases stock by the deleted purchase's quantity.
// No floor at zero.
func (s *Service) OnPurchaseDeleted(ctx context.Context, variantID id.ID, qty types.Quantity) error {
	if !qty.IsPositive() {
		return apperror.NewValidation("purchase quantity must be positive").
			WithDetail("quantity", qty.String())
	}

	if err := s.repo.ApplyDelta(ctx, variantID, qty.Neg()); err != nil {
		return fmt.Errorf("revert purchase receipt: %w", err)
	}

	logger.Debug(ctx, "stock decreased on purchase delete",
		"variant_id", variantID,
		"quantity", qty.String(),
	)
	return nil
}

// OnSaleItemCreated decreases stock by the sold quantity.
func (s *Service) OnSaleItemCreated(ctx context.Context, variantID id.ID, qty types.Quantity) error {
	if !qty.IsPositive() {
		return apperror.NewValidation("sale quantity must be positive").
			WithDetail("quantity", qty.String())
	}

	if err := s.repo.ApplyDelta(ctx, variantID, qty.Neg()); err != nil {
		return fmt.Errorf("apply sale expense: %w", err)
	}

	logger.Debug(ctx, "stock decreased on sale item",
		"variant_id", variantID,
		"quantity", qty.String(),
	)
	return nil
}

// OnSaleItemsReverted restores the stock each item had decremented.
// Used by the credit-sale recorder before it replaces a sale's item set.
func (s *Service) OnSaleItemsReverted(ctx context.Context, items []ReversalItem) error {
	for _, item := range items {
		if err := s.repo.ApplyDelta(ctx, item.VariantID, item.Quantity); err != nil {
			return fmt.Errorf("revert sale item for variant %s: %w", item.VariantID, err)
		}
	}

	if len(items) > 0 {
		logger.Debug(ctx, "stock restored for replaced sale items", "count", len(items))
	}
	return nil
}

// GetStock reads the current counter value for a variant.
func (s *Service) GetStock(ctx context.Context, variantID id.ID) (types.Quantity, error) {
	return s.repo.GetStock(ctx, variantID)
}
