package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/marcusroqy/foodsystempdv/internal/dto"
	"github.com/marcusroqy/foodsystempdv/internal/model"
	"github.com/marcusroqy/foodsystempdv/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInventoryFixture() (service.InventoryService, *stubProductRepo, *stubLedgerRepo, uuid.UUID) {
	products := newStubProductRepo()
	ledger := &stubLedgerRepo{}
	svc := service.NewInventoryService(products, service.NewLedgerService(ledger), ledger)
	return svc, products, ledger, uuid.New()
}

func TestListStockStatus(t *testing.T) {
	ctx := context.Background()
	svc, products, ledger, tenant := newInventoryFixture()

	good := products.add(model.Product{TenantID: tenant, Name: "Refrigerante", IsStockControlled: true, MinQuantity: d("10")})
	low := products.add(model.Product{TenantID: tenant, Name: "Ketchup", IsStockControlled: true, MinQuantity: d("50")})
	out := products.add(model.Product{TenantID: tenant, Name: "Maionese", IsStockControlled: true, MinQuantity: d("50")})
	// Not stock controlled: never listed.
	products.add(model.Product{TenantID: tenant, Name: "Pastel", IsStockControlled: false, IsForSale: true})

	seed := func(p uuid.UUID, qty string) {
		ledger.entries = append(ledger.entries, model.LedgerEntry{
			ID: uuid.New(), TenantID: tenant, ProductID: p,
			Type: model.DirectionIn, Quantity: d(qty),
		})
	}
	seed(good.ID, "100")
	seed(low.ID, "30")
	// "out" has no entries at all: quantity derives to zero.

	items, err := svc.ListStockStatus(ctx, tenant)
	require.NoError(t, err)
	require.Len(t, items, 3)

	byName := make(map[string]dto.StockStatusItem)
	for _, item := range items {
		byName[item.Name] = item
	}
	assert.Equal(t, model.StockGood, byName["Refrigerante"].Status)
	assert.Equal(t, model.StockLow, byName["Ketchup"].Status)
	assert.Equal(t, model.StockOut, byName["Maionese"].Status)
	assert.True(t, byName["Maionese"].CurrentQuantity.IsZero())

	sku := byName["Refrigerante"].SKU
	assert.Len(t, sku, 8)
	assert.Equal(t, strings.ToUpper(good.ID.String()[:8]), sku)
	_ = out
}

func TestAdjustModes(t *testing.T) {
	ctx := context.Background()
	svc, products, ledger, tenant := newInventoryFixture()
	sku := products.add(model.Product{TenantID: tenant, Name: "Ketchup", IsStockControlled: true})

	adjust := func(mode, qty string) (*model.LedgerEntry, error) {
		return svc.Adjust(ctx, tenant, dto.AdjustStockRequest{
			ProductID: sku.ID.String(), Mode: mode, Quantity: d(qty),
		})
	}

	entry, err := adjust("IN", "100")
	require.NoError(t, err)
	assert.Equal(t, model.DirectionIn, entry.Type)
	assert.Equal(t, "Ajuste manual", entry.Reason)

	entry, err = adjust("OUT", "30")
	require.NoError(t, err)
	assert.Equal(t, model.DirectionOut, entry.Type)

	// SET to 50 from 70: a single OUT 20.
	entry, err = adjust("SET", "50")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, model.DirectionOut, entry.Type)
	assert.True(t, entry.Quantity.Equal(d("20")))

	// SET to the same value: nothing written.
	entry, err = adjust("SET", "50")
	require.NoError(t, err)
	assert.Nil(t, entry)
	assert.Len(t, ledger.entries, 3)

	// SET to zero writes off the whole balance in one OUT entry.
	entry, err = adjust("SET", "0")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, model.DirectionOut, entry.Type)
	assert.True(t, entry.Quantity.Equal(d("50")))

	// A negative target balance makes no physical sense.
	_, err = adjust("SET", "-1")
	assert.ErrorIs(t, err, service.ErrInvalidQuantity)
	assert.Len(t, ledger.entries, 4)
}

func TestAdjustUnknownProduct(t *testing.T) {
	ctx := context.Background()
	svc, _, ledger, tenant := newInventoryFixture()

	_, err := svc.Adjust(ctx, tenant, dto.AdjustStockRequest{
		ProductID: uuid.New().String(), Mode: "IN", Quantity: d("5"),
	})
	assert.ErrorIs(t, err, service.ErrProductNotFound)
	assert.Empty(t, ledger.entries)
}

func TestListLedgerFilters(t *testing.T) {
	ctx := context.Background()
	svc, products, ledger, tenant := newInventoryFixture()
	ketchup := products.add(model.Product{TenantID: tenant, Name: "Ketchup", IsStockControlled: true})
	soda := products.add(model.Product{TenantID: tenant, Name: "Refrigerante", IsStockControlled: true})

	add := func(p uuid.UUID, typ, qty string) {
		ledger.entries = append(ledger.entries, model.LedgerEntry{
			ID: uuid.New(), TenantID: tenant, ProductID: p, Type: typ, Quantity: d(qty), Reason: "seed",
		})
	}
	add(ketchup.ID, model.DirectionIn, "100")
	add(ketchup.ID, model.DirectionOut, "2")
	add(soda.ID, model.DirectionIn, "48")

	all, err := svc.ListLedger(ctx, tenant, dto.LedgerFilter{Page: 1, Limit: 100})
	require.NoError(t, err)
	assert.EqualValues(t, 3, all.Total)

	onlyKetchup, err := svc.ListLedger(ctx, tenant, dto.LedgerFilter{ProductID: ketchup.ID.String(), Page: 1, Limit: 100})
	require.NoError(t, err)
	assert.EqualValues(t, 2, onlyKetchup.Total)

	onlyOut, err := svc.ListLedger(ctx, tenant, dto.LedgerFilter{Type: model.DirectionOut, Page: 1, Limit: 100})
	require.NoError(t, err)
	require.EqualValues(t, 1, onlyOut.Total)
	assert.Equal(t, model.DirectionOut, onlyOut.Data[0].Type)
}

func TestListLedgerTimestampsInUTC(t *testing.T) {
	ctx := context.Background()
	svc, products, ledger, tenant := newInventoryFixture()
	sku := products.add(model.Product{TenantID: tenant, Name: "Ketchup", IsStockControlled: true})

	// Stored as local wall-clock time (UTC-3): the response must shift it.
	brt := time.FixedZone("BRT", -3*60*60)
	ledger.entries = append(ledger.entries, model.LedgerEntry{
		ID: uuid.New(), TenantID: tenant, ProductID: sku.ID,
		Type: model.DirectionIn, Quantity: d("5"), Reason: "seed",
		CreatedAt: time.Date(2026, 3, 10, 21, 30, 0, 0, brt),
	})

	resp, err := svc.ListLedger(ctx, tenant, dto.LedgerFilter{Page: 1, Limit: 100})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "2026-03-11T00:30:00Z", resp.Data[0].CreatedAt)
}
