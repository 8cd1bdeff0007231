package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod identifies how a sale was settled.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
	PaymentPix  PaymentMethod = "pix"
)

// PaymentMethods returns every method in presentation order. Closings and
// reports iterate this slice so payment rows always come out in the same
// order regardless of which methods saw sales.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCash, PaymentCard, PaymentPix}
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentPix:
		return true
	}
	return false
}

// Label returns the Portuguese display name used on closing reports.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCash:
		return "Dinheiro"
	case PaymentCard:
		return "Cartao"
	case PaymentPix:
		return "Pix"
	}
	return string(m)
}

type Product struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitValue  decimal.Decimal `json:"unit_value"`
	UnitProfit decimal.Decimal `json:"unit_profit"`
}

// CartItem is a point-in-time snapshot of a product at the moment it was
// added to the cart. Later edits to the catalog do not touch cart lines.
type CartItem struct {
	ID          string          `json:"id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	UnitProfit  decimal.Decimal `json:"unit_profit"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type Sale struct {
	ID            string          `json:"id"`
	Items         []CartItem      `json:"items"`
	TotalValue    decimal.Decimal `json:"total_value"`
	TotalProfit   decimal.Decimal `json:"total_profit"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	CreatedAt     time.Time       `json:"created_at"`
}

type Closing struct {
	ID             string                            `json:"id"`
	CreatedAt      time.Time                         `json:"created_at"`
	OpeningCash    decimal.Decimal                   `json:"opening_cash"`
	PaymentSummary map[PaymentMethod]decimal.Decimal `json:"payment_summary"`
	TotalReceived  decimal.Decimal                   `json:"total_received"`
	GrandTotal     decimal.Decimal                   `json:"grand_total"`
}

// ProductSale aggregates one product's movement during a closing day.
// Entries keep the order in which each product first appeared in a sale.
type ProductSale struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
}

// ClosingResult pairs the persisted closing with the per-product breakdown
// that feeds the printed report. The breakdown itself is not persisted.
type ClosingResult struct {
	Closing      Closing       `json:"closing"`
	ProductSales []ProductSale `json:"product_sales"`
}

type Expense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
}

// StockSummary totals the resale value and expected profit of everything
// currently on the shelf.
type StockSummary struct {
	TotalValue  decimal.Decimal `json:"total_value"`
	TotalProfit decimal.Decimal `json:"total_profit"`
}

type WorkingCapitalResult struct {
	SalesProfit      decimal.Decimal `json:"sales_profit"`
	StockValue       decimal.Decimal `json:"stock_value"`
	ExtraExpenses    decimal.Decimal `json:"extra_expenses"`
	Taxes            decimal.Decimal `json:"taxes"`
	RecordedExpenses decimal.Decimal `json:"recorded_expenses"`
	WorkingCapital   decimal.Decimal `json:"working_capital"`
}

type ProductCreateRequest struct {
	Name       string          `json:"name" validate:"required"`
	Quantity   int             `json:"quantity" validate:"gt=0"`
	UnitValue  decimal.Decimal `json:"unit_value"`
	UnitProfit decimal.Decimal `json:"unit_profit"`
}

type CartAddRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

type FinalizeSaleRequest struct {
	PaymentMethod PaymentMethod `json:"payment_method" validate:"required"`
}

type CloseRegisterRequest struct {
	OpeningCash decimal.Decimal `json:"opening_cash"`
}

type ExpenseCreateRequest struct {
	Description string          `json:"description" validate:"required"`
	Value       decimal.Decimal `json:"value"`
}

type WorkingCapitalRequest struct {
	ExtraExpenses decimal.Decimal `json:"extra_expenses"`
	Taxes         decimal.Decimal `json:"taxes"`
}
