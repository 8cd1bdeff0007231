package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"caixalivre/backend/internal/domain"
	"caixalivre/backend/internal/store"
	"caixalivre/backend/internal/xid"
)

// AddToCart snapshots the product into a cart line. The cart lives only in
// memory; nothing is persisted until the sale is finalized.
func (s *Service) AddToCart(ctx context.Context, req domain.CartAddRequest) (domain.CartItem, error) {
	if err := s.validate.Struct(req); err != nil {
		return domain.CartItem{}, fmt.Errorf("%w: %v", store.ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var product *domain.Product
	for i := range s.products {
		if s.products[i].ID == req.ProductID {
			product = &s.products[i]
			break
		}
	}
	if product == nil {
		return domain.CartItem{}, fmt.Errorf("%w: product %s", store.ErrNotFound, req.ProductID)
	}
	if req.Quantity > product.Quantity {
		return domain.CartItem{}, fmt.Errorf("%w: %s has %d left, requested %d", store.ErrInsufficientStock, product.Name, product.Quantity, req.Quantity)
	}

	qty := decimal.NewFromInt(int64(req.Quantity))
	item := domain.CartItem{
		ID:          xid.New("item"),
		ProductName: product.Name,
		Quantity:    req.Quantity,
		UnitPrice:   product.UnitValue,
		UnitProfit:  product.UnitProfit,
		Subtotal:    product.UnitValue.Mul(qty),
	}
	s.cart = append(s.cart, item)

	return item, nil
}

func (s *Service) RemoveFromCart(ctx context.Context, itemID string) error {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return fmt.Errorf("%w: cart item id required", store.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.cart {
		if item.ID == itemID {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: cart item %s", store.ErrNotFound, itemID)
}

func (s *Service) Cart(ctx context.Context) []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.cart)
}

func (s *Service) CartTotal(ctx context.Context) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.cart {
		total = total.Add(item.Subtotal)
	}
	return total
}

func (s *Service) ClearCart(ctx context.Context) {
	s.mu.Lock()
	s.cart = nil
	s.mu.Unlock()
}

// FinalizeSale turns the cart into a ledger entry, drains stock and clears
// the cart, all or nothing. Both documents are staged before either is
// written; if the catalog write fails after the sales write succeeded, the
// previous sales document is put back so the store never holds a sale whose
// stock was not drained.
func (s *Service) FinalizeSale(ctx context.Context, req domain.FinalizeSaleRequest) (domain.Sale, error) {
	if !req.PaymentMethod.Valid() {
		return domain.Sale{}, fmt.Errorf("%w: unknown payment method %q", store.ErrInvalidInput, req.PaymentMethod)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cart) == 0 {
		return domain.Sale{}, store.ErrEmptyCart
	}

	stagedProducts := cloneProducts(s.products)
	totalValue := decimal.Zero
	totalProfit := decimal.Zero
	for _, item := range s.cart {
		if err := applyDecrement(stagedProducts, item.ProductName, item.Quantity); err != nil {
			return domain.Sale{}, err
		}
		qty := decimal.NewFromInt(int64(item.Quantity))
		totalValue = totalValue.Add(item.Subtotal)
		totalProfit = totalProfit.Add(item.UnitProfit.Mul(qty))
	}

	sale := domain.Sale{
		ID:            xid.New("sale"),
		Items:         cloneItems(s.cart),
		TotalValue:    totalValue,
		TotalProfit:   totalProfit,
		PaymentMethod: req.PaymentMethod,
		CreatedAt:     s.now(),
	}
	stagedSales := append(cloneSales(s.sales), sale)

	if err := s.persist(ctx, store.KeySales, stagedSales); err != nil {
		return domain.Sale{}, err
	}
	if err := s.persist(ctx, store.KeyProducts, stagedProducts); err != nil {
		if restoreErr := s.repo.Save(ctx, store.KeySales, s.sales); restoreErr != nil {
			s.log.Error().Err(restoreErr).Msg("sales rollback failed, documents may disagree until next write")
		}
		return domain.Sale{}, err
	}

	s.sales = stagedSales
	s.products = stagedProducts
	s.cart = nil

	s.log.Info().
		Str("sale_id", sale.ID).
		Str("payment_method", string(sale.PaymentMethod)).
		Str("total_value", sale.TotalValue.StringFixed(2)).
		Int("items", len(sale.Items)).
		Msg("sale finalized")

	return cloneSale(sale), nil
}
