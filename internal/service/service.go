// Package service implements the shop's business rules on top of a
// document store. All ledgers are held in memory and written back as whole
// documents after each mutation, so the store only ever sees consistent
// snapshots.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"caixalivre/backend/internal/domain"
	"caixalivre/backend/internal/store"
)

type Service struct {
	mu       sync.Mutex
	repo     store.DocumentStore
	log      zerolog.Logger
	validate *validator.Validate
	now      func() time.Time

	products []domain.Product
	sales    []domain.Sale
	closings []domain.Closing
	expenses []domain.Expense
	cart     []domain.CartItem
}

type Option func(*Service)

// WithClock overrides the wall clock. Tests use it to pin sale and closing
// timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// New loads every ledger from the store before returning, so a restart
// resumes exactly where the previous run left off. The cart is deliberately
// not loaded: an unfinished cart does not survive a restart.
func New(ctx context.Context, repo store.DocumentStore, opts ...Option) (*Service, error) {
	s := &Service{
		repo:     repo,
		log:      zerolog.Nop(),
		validate: validator.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	for key, dest := range map[string]any{
		store.KeyProducts: &s.products,
		store.KeySales:    &s.sales,
		store.KeyClosings: &s.closings,
		store.KeyExpenses: &s.expenses,
	} {
		if err := repo.Load(ctx, key, dest); err != nil {
			return nil, fmt.Errorf("%w: load %s: %v", store.ErrStorage, key, err)
		}
	}

	s.log.Info().
		Int("products", len(s.products)).
		Int("sales", len(s.sales)).
		Int("closings", len(s.closings)).
		Int("expenses", len(s.expenses)).
		Msg("ledgers loaded")

	return s, nil
}

// persist writes one document back to the store. Callers stage the new
// slice first and only commit it to memory after persist succeeds.
func (s *Service) persist(ctx context.Context, key string, records any) error {
	if err := s.repo.Save(ctx, key, records); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("persist failed")
		return fmt.Errorf("%w: save %s: %v", store.ErrStorage, key, err)
	}
	return nil
}

func cloneProducts(products []domain.Product) []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out
}

func cloneItems(items []domain.CartItem) []domain.CartItem {
	out := make([]domain.CartItem, len(items))
	copy(out, items)
	return out
}

func cloneSale(sale domain.Sale) domain.Sale {
	sale.Items = cloneItems(sale.Items)
	return sale
}

func cloneSales(sales []domain.Sale) []domain.Sale {
	out := make([]domain.Sale, len(sales))
	for i, sale := range sales {
		out[i] = cloneSale(sale)
	}
	return out
}

func cloneClosing(closing domain.Closing) domain.Closing {
	summary := make(map[domain.PaymentMethod]decimal.Decimal, len(closing.PaymentSummary))
	for method, total := range closing.PaymentSummary {
		summary[method] = total
	}
	closing.PaymentSummary = summary
	return closing
}

func cloneClosings(closings []domain.Closing) []domain.Closing {
	out := make([]domain.Closing, len(closings))
	for i, closing := range closings {
		out[i] = cloneClosing(closing)
	}
	return out
}

func cloneExpenses(expenses []domain.Expense) []domain.Expense {
	out := make([]domain.Expense, len(expenses))
	copy(out, expenses)
	return out
}
