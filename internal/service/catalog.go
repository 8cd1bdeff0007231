package service

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/shopspring/decimal"

	"caixalivre/backend/internal/domain"
	"caixalivre/backend/internal/store"
	"caixalivre/backend/internal/xid"
)

func (s *Service) AddProduct(ctx context.Context, req domain.ProductCreateRequest) (domain.Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validate.Struct(req); err != nil {
		return domain.Product{}, fmt.Errorf("%w: %v", store.ErrInvalidInput, err)
	}
	if req.UnitValue.IsNegative() || req.UnitProfit.IsNegative() {
		return domain.Product{}, fmt.Errorf("%w: unit value and unit profit must not be negative", store.ErrInvalidInput)
	}

	product := domain.Product{
		ID:         xid.New("prod"),
		Name:       req.Name,
		Quantity:   req.Quantity,
		UnitValue:  req.UnitValue,
		UnitProfit: req.UnitProfit,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	staged := append(cloneProducts(s.products), product)
	if err := s.persist(ctx, store.KeyProducts, staged); err != nil {
		return domain.Product{}, err
	}
	s.products = staged

	s.log.Info().
		Str("product_id", product.ID).
		Str("name", product.Name).
		Int("quantity", product.Quantity).
		Msg("product added")

	return product, nil
}

func (s *Service) RemoveProduct(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: product id required", store.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, p := range s.products {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: product %s", store.ErrNotFound, id)
	}

	staged := cloneProducts(s.products)
	staged = append(staged[:idx], staged[idx+1:]...)
	if err := s.persist(ctx, store.KeyProducts, staged); err != nil {
		return err
	}
	s.products = staged

	s.log.Info().Str("product_id", id).Msg("product removed")
	return nil
}

func (s *Service) ListProducts(ctx context.Context) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProducts(s.products)
}

// FindByName returns the first product whose name matches exactly, in
// catalog order. The catalog allows duplicate names; later entries are
// shadowed until the earlier one is removed.
func (s *Service) FindByName(ctx context.Context, name string) (domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Product{}, fmt.Errorf("%w: product name required", store.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if p.Name == name {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("%w: product %s", store.ErrNotFound, name)
}

// SearchProducts yields products whose name contains term, skipping
// anything out of stock. The sequence ranges over a snapshot taken up
// front, so it can be restarted and is safe to consume after the catalog
// has moved on.
func (s *Service) SearchProducts(term string) iter.Seq[domain.Product] {
	needle := strings.ToLower(strings.TrimSpace(term))

	s.mu.Lock()
	snapshot := cloneProducts(s.products)
	s.mu.Unlock()

	return func(yield func(domain.Product) bool) {
		for _, p := range snapshot {
			if p.Quantity <= 0 {
				continue
			}
			if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

func (s *Service) StockSummary(ctx context.Context) domain.StockSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	var summary domain.StockSummary
	for _, p := range s.products {
		qty := decimal.NewFromInt(int64(p.Quantity))
		summary.TotalValue = summary.TotalValue.Add(p.UnitValue.Mul(qty))
		summary.TotalProfit = summary.TotalProfit.Add(p.UnitProfit.Mul(qty))
	}
	return summary
}

// applyDecrement lowers the stock of the first product matching name in
// the staged slice. The catalog allows duplicate names; sales always drain
// the earliest entry, matching how lines were picked into the cart.
func applyDecrement(staged []domain.Product, name string, quantity int) error {
	for i := range staged {
		if staged[i].Name != name {
			continue
		}
		if staged[i].Quantity < quantity {
			return fmt.Errorf("%w: %s has %d left, sale needs %d", store.ErrInsufficientStock, name, staged[i].Quantity, quantity)
		}
		staged[i].Quantity -= quantity
		return nil
	}
	return fmt.Errorf("%w: product %s", store.ErrNotFound, name)
}
