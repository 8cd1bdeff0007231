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

func (s *Service) AddExpense(ctx context.Context, req domain.ExpenseCreateRequest) (domain.Expense, error) {
	req.Description = strings.TrimSpace(req.Description)
	if err := s.validate.Struct(req); err != nil {
		return domain.Expense{}, fmt.Errorf("%w: %v", store.ErrInvalidInput, err)
	}
	if req.Value.IsNegative() {
		return domain.Expense{}, fmt.Errorf("%w: expense value must not be negative", store.ErrInvalidInput)
	}

	expense := domain.Expense{
		ID:          xid.New("exp"),
		Description: req.Description,
		Value:       req.Value,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	staged := append(cloneExpenses(s.expenses), expense)
	if err := s.persist(ctx, store.KeyExpenses, staged); err != nil {
		return domain.Expense{}, err
	}
	s.expenses = staged

	s.log.Info().
		Str("expense_id", expense.ID).
		Str("value", expense.Value.StringFixed(2)).
		Msg("expense recorded")

	return expense, nil
}

func (s *Service) ListExpenses(ctx context.Context) []domain.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneExpenses(s.expenses)
}

func (s *Service) ClearExpenses(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, store.KeyExpenses, []domain.Expense{}); err != nil {
		return err
	}
	s.expenses = nil
	s.log.Info().Msg("expenses ledger cleared")
	return nil
}

// WorkingCapital estimates the money tied up in the business: profit from
// every recorded sale plus the resale value of the current stock, minus
// whatever the caller wants to set aside for expenses and taxes. Absent or
// negative inputs count as zero; no other validation is applied. The
// recorded expense total rides along for display but does not enter the
// formula.
func (s *Service) WorkingCapital(ctx context.Context, req domain.WorkingCapitalRequest) domain.WorkingCapitalResult {
	if req.ExtraExpenses.IsNegative() {
		req.ExtraExpenses = decimal.Zero
	}
	if req.Taxes.IsNegative() {
		req.Taxes = decimal.Zero
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	salesProfit := decimal.Zero
	for _, sale := range s.sales {
		salesProfit = salesProfit.Add(sale.TotalProfit)
	}

	stockValue := decimal.Zero
	for _, p := range s.products {
		stockValue = stockValue.Add(p.UnitValue.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}

	recorded := decimal.Zero
	for _, expense := range s.expenses {
		recorded = recorded.Add(expense.Value)
	}

	return domain.WorkingCapitalResult{
		SalesProfit:      salesProfit,
		StockValue:       stockValue,
		ExtraExpenses:    req.ExtraExpenses,
		Taxes:            req.Taxes,
		RecordedExpenses: recorded,
		WorkingCapital:   salesProfit.Add(stockValue).Sub(req.ExtraExpenses).Sub(req.Taxes),
	}
}
