package creditsale

import (
	"context"
	"fmt"

	"kiranabook/internal/core/apperror"
	"kiranabook/internal/core/id"
	"kiranabook/internal/core/tx"
	"kiranabook/internal/domain"
	"kiranabook/internal/domain/catalog/customer"
	"kiranabook/internal/domain/catalog/product"
	"kiranabook/internal/domain/stockledger"
	"kiranabook/pkg/logger"
)

// Repository defines persistence for credit sales and their items.
type Repository interface {
	Create(ctx context.Context, sale *CreditSale) error
	GetByID(ctx context.Context, saleID id.ID) (*CreditSale, error)

	// UpdateCustomer reassigns the sale to another customer.
	// sale_date is immutable and never part of the SET list.
	UpdateCustomer(ctx context.Context, saleID, customerID id.ID) error

	// Delete removes the sale; items cascade with it.
	Delete(ctx context.Context, saleID id.ID) error

	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*CreditSale], error)

	GetItems(ctx context.Context, saleID id.ID) ([]Item, error)
	CreateItem(ctx context.Context, item *Item) error
	DeleteItems(ctx context.Context, saleID id.ID) error
}

// Service records credit sales. Stock stays consistent with the current
// item set through explicit stock-ledger calls inside one transaction.
type Service struct {
	repo      Repository
	customers customer.Repository
	variants  product.VariantRepository
	ledger    *stockledger.Service
	txManager tx.Manager
}

// NewService creates a new credit sale service.
func NewService(
	repo Repository,
	customers customer.Repository,
	variants product.VariantRepository,
	ledger *stockledger.Service,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		customers: customers,
		variants:  variants,
		ledger:    ledger,
		txManager: txManager,
	}
}

// Create persists the sale with its items and decrements stock per item,
// all in one transaction. price_at_sale is taken from the submitted
// values; the caller passes the price in effect at the counter.
func (s *Service) Create(ctx context.Context, sale *CreditSale) error {
	if err := sale.Validate(ctx); err != nil {
		return err
	}
	if err := s.checkReferences(ctx, sale.CustomerID, sale.Items); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, sale); err != nil {
			return fmt.Errorf("create sale: %w", err)
		}
		return s.writeItems(ctx, sale.ID, sale.Items)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "credit sale recorded",
		"id", sale.ID,
		"customer_id", sale.CustomerID,
		"items", len(sale.Items),
	)
	return nil
}

// GetByID retrieves a sale with its items.
func (s *Service) GetByID(ctx context.Context, saleID id.ID) (*CreditSale, error) {
	sale, err := s.repo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.GetItems(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}
	sale.Items = items

	return sale, nil
}

// Update replaces the sale's item set wholesale:
//  1. revert stock for every existing item, then delete them;
//  2. apply scalar changes (customer reassignment; sale_date stays);
//  3. recreate the submitted items exactly as Create does.
//
// Revert-then-reapply rewrites every item on every edit, but guarantees
// stock always reflects the current item set no matter what changed.
func (s *Service) Update(ctx context.Context, saleID, customerID id.ID, newItems []Item) (*CreditSale, error) {
	if id.IsNil(customerID) {
		return nil, apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}
	if err := validateItems(newItems); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, saleID); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, customerID, newItems); err != nil {
		return nil, err
	}

	for i := range newItems {
		newItems[i].ID = id.New()
		newItems[i].SaleID = saleID
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		oldItems, err := s.repo.GetItems(ctx, saleID)
		if err != nil {
			return fmt.Errorf("get existing items: %w", err)
		}

		reversals := make([]stockledger.ReversalItem, len(oldItems))
		for i, item := range oldItems {
			reversals[i] = stockledger.ReversalItem{
				VariantID: item.VariantID,
				Quantity:  item.Quantity,
			}
		}
		if err := s.ledger.OnSaleItemsReverted(ctx, reversals); err != nil {
			return err
		}
		if err := s.repo.DeleteItems(ctx, saleID); err != nil {
			return fmt.Errorf("delete old items: %w", err)
		}

		if err := s.repo.UpdateCustomer(ctx, saleID, customerID); err != nil {
			return fmt.Errorf("update sale: %w", err)
		}

		return s.writeItems(ctx, saleID, newItems)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "credit sale updated",
		"id", saleID,
		"customer_id", customerID,
		"items", len(newItems),
	)

	return s.GetByID(ctx, saleID)
}

// Delete removes the sale and cascades its items. Stock is NOT restored:
// a deleted sale's stock is treated as gone.
func (s *Service) Delete(ctx context.Context, saleID id.ID) error {
	if err := s.repo.Delete(ctx, saleID); err != nil {
		return err
	}
	logger.Info(ctx, "credit sale deleted", "id", saleID)
	return nil
}

// List retrieves sales with pagination, items attached.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*CreditSale], error) {
	result, err := s.repo.List(ctx, filter)
	if err != nil {
		return result, err
	}

	for _, sale := range result.Items {
		items, err := s.repo.GetItems(ctx, sale.ID)
		if err != nil {
			return result, fmt.Errorf("get items for %s: %w", sale.ID, err)
		}
		sale.Items = items
	}

	return result, nil
}

func (s *Service) writeItems(ctx context.Context, saleID id.ID, items []Item) error {
	for i := range items {
		item := &items[i]
		if err := s.repo.CreateItem(ctx, item); err != nil {
			return fmt.Errorf("create item %d: %w", i, err)
		}
		if err := s.ledger.OnSaleItemCreated(ctx, item.VariantID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) checkReferences(ctx context.Context, customerID id.ID, items []Item) error {
	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		return err
	}
	for _, item := range items {
		if _, err := s.variants.GetByID(ctx, item.VariantID); err != nil {
			return err
		}
	}
	return nil
}
