package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"caixalivre/backend/internal/domain"
	"caixalivre/backend/internal/store"
	"caixalivre/backend/internal/store/memory"
)

// faultStore fails Save for one chosen key so tests can break the second
// write of a two-document commit.
type faultStore struct {
	*memory.Store
	failKey string
}

func (f *faultStore) Save(ctx context.Context, key string, records any) error {
	if key == f.failKey {
		return errors.New("disk full")
	}
	return f.Store.Save(ctx, key, records)
}

func TestFinalizeSaleRollsBackOnCatalogWriteFailure(t *testing.T) {
	repo := &faultStore{Store: memory.New()}
	ctx := context.Background()

	svc, err := New(ctx, repo, WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	product := mustAddProduct(t, svc, "Torta", 5, "25.00", "10.00")
	if _, err := svc.AddToCart(ctx, domain.CartAddRequest{ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	// The sales document writes fine, then the catalog write fails.
	repo.failKey = store.KeyProducts

	_, err = svc.FinalizeSale(ctx, domain.FinalizeSaleRequest{PaymentMethod: domain.PaymentCard})
	if !errors.Is(err, store.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}

	// Nothing moved in memory.
	if got := svc.ListProducts(ctx)[0].Quantity; got != 5 {
		t.Fatalf("stock changed on failed finalize: %d", got)
	}
	if got := len(svc.Cart(ctx)); got != 1 {
		t.Fatalf("cart lost on failed finalize: %d items", got)
	}
	if got := len(svc.QuerySales(ctx, domain.RangeAll)); got != 0 {
		t.Fatalf("sale visible despite failure: %d", got)
	}

	// The already-written sales document was restored, so a restart sees
	// no half-committed sale.
	repo.failKey = ""
	restarted, err := New(ctx, repo)
	if err != nil {
		t.Fatalf("restart service: %v", err)
	}
	if got := len(restarted.QuerySales(ctx, domain.RangeAll)); got != 0 {
		t.Fatalf("half-committed sale survived in store: %d", got)
	}
	if got := restarted.ListProducts(ctx)[0].Quantity; got != 5 {
		t.Fatalf("stored stock drifted: %d", got)
	}

	// The same cart finalizes cleanly once the store recovers.
	sale, err := svc.FinalizeSale(ctx, domain.FinalizeSaleRequest{PaymentMethod: domain.PaymentCard})
	if err != nil {
		t.Fatalf("finalize after recovery: %v", err)
	}
	if len(sale.Items) != 1 {
		t.Fatalf("unexpected sale items: %+v", sale.Items)
	}
	if got := svc.ListProducts(ctx)[0].Quantity; got != 3 {
		t.Fatalf("stock after recovered finalize = %d, want 3", got)
	}
}

func TestFinalizeSaleFailsFastOnSalesWriteFailure(t *testing.T) {
	repo := &faultStore{Store: memory.New()}
	ctx := context.Background()

	svc, err := New(ctx, repo, WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	product := mustAddProduct(t, svc, "Quibe", 4, "6.00", "2.00")
	if _, err := svc.AddToCart(ctx, domain.CartAddRequest{ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	repo.failKey = store.KeySales
	if _, err := svc.FinalizeSale(ctx, domain.FinalizeSaleRequest{PaymentMethod: domain.PaymentCash}); !errors.Is(err, store.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if got := svc.ListProducts(ctx)[0].Quantity; got != 4 {
		t.Fatalf("stock changed on failed finalize: %d", got)
	}
}
