package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"caixalivre/backend/internal/domain"
	"caixalivre/backend/internal/store"
	"caixalivre/backend/internal/xid"
)

func (s *Service) QuerySales(ctx context.Context, r domain.Range) []domain.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	out := make([]domain.Sale, 0, len(s.sales))
	for _, sale := range s.sales {
		if r.Matches(now, sale.CreatedAt) {
			out = append(out, cloneSale(sale))
		}
	}
	return out
}

func (s *Service) ClearSales(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, store.KeySales, []domain.Sale{}); err != nil {
		return err
	}
	s.sales = nil
	s.log.Info().Msg("sales ledger cleared")
	return nil
}

// CloseRegister aggregates today's sales into a closing record. Only the
// closing itself is persisted; the per-product breakdown is recomputed for
// the caller and rendered into the printed report.
func (s *Service) CloseRegister(ctx context.Context, req domain.CloseRegisterRequest) (domain.ClosingResult, error) {
	if req.OpeningCash.IsNegative() {
		return domain.ClosingResult{}, fmt.Errorf("%w: opening cash must not be negative", store.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	summary := make(map[domain.PaymentMethod]decimal.Decimal, 3)
	for _, method := range domain.PaymentMethods() {
		summary[method] = decimal.Zero
	}

	productSales := make([]domain.ProductSale, 0, 8)
	position := make(map[string]int)
	for _, sale := range s.sales {
		if !domain.RangeDay.Matches(now, sale.CreatedAt) {
			continue
		}
		summary[sale.PaymentMethod] = summary[sale.PaymentMethod].Add(sale.TotalValue)
		for _, item := range sale.Items {
			i, seen := position[item.ProductName]
			if !seen {
				i = len(productSales)
				position[item.ProductName] = i
				productSales = append(productSales, domain.ProductSale{ProductName: item.ProductName})
			}
			productSales[i].Quantity += item.Quantity
			productSales[i].Total = productSales[i].Total.Add(item.Subtotal)
		}
	}

	totalReceived := decimal.Zero
	for _, method := range domain.PaymentMethods() {
		totalReceived = totalReceived.Add(summary[method])
	}

	closing := domain.Closing{
		ID:             xid.New("close"),
		CreatedAt:      now,
		OpeningCash:    req.OpeningCash,
		PaymentSummary: summary,
		TotalReceived:  totalReceived,
		GrandTotal:     req.OpeningCash.Add(totalReceived),
	}

	staged := append(cloneClosings(s.closings), closing)
	if err := s.persist(ctx, store.KeyClosings, staged); err != nil {
		return domain.ClosingResult{}, err
	}
	s.closings = staged

	s.log.Info().
		Str("closing_id", closing.ID).
		Str("total_received", closing.TotalReceived.StringFixed(2)).
		Str("grand_total", closing.GrandTotal.StringFixed(2)).
		Msg("register closed")

	return domain.ClosingResult{
		Closing:      cloneClosing(closing),
		ProductSales: productSales,
	}, nil
}

func (s *Service) QueryClosings(ctx context.Context, r domain.Range) []domain.Closing {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	out := make([]domain.Closing, 0, len(s.closings))
	for _, closing := range s.closings {
		if r.Matches(now, closing.CreatedAt) {
			out = append(out, cloneClosing(closing))
		}
	}
	return out
}

func (s *Service) ClearClosings(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, store.KeyClosings, []domain.Closing{}); err != nil {
		return err
	}
	s.closings = nil
	s.log.Info().Msg("closings ledger cleared")
	return nil
}
