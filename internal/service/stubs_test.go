package service_test

// In-memory repository stubs shared by the service unit tests. DB() returns
// nil so transactional code paths run in direct mode.

import (
	"context"
	"errors"
	"time"

	"github.com/marcusroqy/foodsystempdv/internal/model"
	"github.com/marcusroqy/foodsystempdv/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Product stub ─────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
	links    []model.RecipeLink
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (s *stubProductRepo) add(p model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.products[p.ID] = &p
	return &p
}

func (s *stubProductRepo) link(tenantID, productID, ingredientID uuid.UUID, qty decimal.Decimal) {
	s.links = append(s.links, model.RecipeLink{
		ID:           uuid.New(),
		TenantID:     tenantID,
		ProductID:    productID,
		IngredientID: ingredientID,
		Quantity:     qty,
	})
}

func (s *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.products[p.ID] = p
	return nil
}

func (s *stubProductRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*model.Product, error) {
	p, ok := s.products[id]
	if !ok || p.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (s *stubProductRepo) List(_ context.Context, tenantID uuid.UUID, _ repository.ProductFilter) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range s.products {
		if p.TenantID == tenantID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (s *stubProductRepo) ListStockControlled(_ context.Context, tenantID uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, p := range s.products {
		if p.TenantID == tenantID && p.IsStockControlled {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	s.products[p.ID] = p
	return nil
}

func (s *stubProductRepo) Delete(_ context.Context, _, id uuid.UUID) error {
	delete(s.products, id)
	return nil
}

func (s *stubProductRepo) FindPackaging(_ context.Context, tenantID uuid.UUID, _ string) (*model.Product, error) {
	for _, p := range s.products {
		if p.TenantID == tenantID && !p.IsForSale && p.Name == "Sacola Plástica" {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProductRepo) CreateRecipeLink(_ context.Context, link *model.RecipeLink) error {
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	s.links = append(s.links, *link)
	return nil
}

func (s *stubProductRepo) FindRecipeLinks(_ context.Context, tenantID, productID uuid.UUID) ([]model.RecipeLink, error) {
	var out []model.RecipeLink
	for _, l := range s.links {
		if l.TenantID == tenantID && l.ProductID == productID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *stubProductRepo) CountLinksWithIngredient(_ context.Context, tenantID, productID uuid.UUID) (int64, error) {
	var n int64
	for _, l := range s.links {
		if l.TenantID == tenantID && l.IngredientID == productID {
			n++
		}
	}
	return n, nil
}

func (s *stubProductRepo) ListRecipeLinks(_ context.Context, tenantID uuid.UUID) ([]model.RecipeLink, error) {
	var out []model.RecipeLink
	for _, l := range s.links {
		if l.TenantID == tenantID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *stubProductRepo) DB() *gorm.DB { return nil }

// ── Ledger stub ──────────────────────────────────────────────────────────────

type stubLedgerRepo struct {
	entries    []model.LedgerEntry
	failCreate bool
}

var _ repository.LedgerRepository = (*stubLedgerRepo)(nil)

var errStubStorage = errors.New("storage down")

func (s *stubLedgerRepo) Create(_ context.Context, e *model.LedgerEntry) error {
	return s.insert(e)
}

func (s *stubLedgerRepo) CreateTx(_ *gorm.DB, e *model.LedgerEntry) error {
	return s.insert(e)
}

func (s *stubLedgerRepo) insert(e *model.LedgerEntry) error {
	if s.failCreate {
		return errStubStorage
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = time.Now()
	s.entries = append(s.entries, *e)
	return nil
}

func (s *stubLedgerRepo) SumByProduct(_ context.Context, tenantID, productID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range s.entries {
		if e.TenantID != tenantID || e.ProductID != productID {
			continue
		}
		if e.Type == model.DirectionIn {
			sum = sum.Add(e.Quantity)
		} else {
			sum = sum.Sub(e.Quantity)
		}
	}
	return sum, nil
}

func (s *stubLedgerRepo) SumByTenant(_ context.Context, tenantID uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	out := make(map[uuid.UUID]decimal.Decimal)
	for _, e := range s.entries {
		if e.TenantID != tenantID {
			continue
		}
		delta := e.Quantity
		if e.Type == model.DirectionOut {
			delta = delta.Neg()
		}
		out[e.ProductID] = out[e.ProductID].Add(delta)
	}
	return out, nil
}

func (s *stubLedgerRepo) List(_ context.Context, tenantID uuid.UUID, filter repository.LedgerFilter) ([]model.LedgerEntry, int64, error) {
	var out []model.LedgerEntry
	for _, e := range s.entries {
		if e.TenantID != tenantID {
			continue
		}
		if filter.ProductID != nil && e.ProductID != *filter.ProductID {
			continue
		}
		if filter.Type != "" && e.Type != filter.Type {
			continue
		}
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (s *stubLedgerRepo) DB() *gorm.DB { return nil }

// outEntriesFor returns the OUT entries for one SKU, in insertion order.
func (s *stubLedgerRepo) outEntriesFor(productID uuid.UUID) []model.LedgerEntry {
	var out []model.LedgerEntry
	for _, e := range s.entries {
		if e.ProductID == productID && e.Type == model.DirectionOut {
			out = append(out, e)
		}
	}
	return out
}

// ── Order stub ───────────────────────────────────────────────────────────────

type stubOrderRepo struct {
	orders map[uuid.UUID]*model.Order
}

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (s *stubOrderRepo) Create(_ context.Context, _ *gorm.DB, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for i := range o.Items {
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
		o.Items[i].OrderID = o.ID
	}
	o.CreatedAt = time.Now()
	stored := *o
	s.orders[o.ID] = &stored
	return nil
}

func (s *stubOrderRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*model.Order, error) {
	o, ok := s.orders[id]
	if !ok || o.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, tenantID, id uuid.UUID, status string) error {
	o, ok := s.orders[id]
	if !ok || o.TenantID != tenantID {
		return gorm.ErrRecordNotFound
	}
	o.Status = status
	return nil
}

func (s *stubOrderRepo) List(_ context.Context, tenantID uuid.UUID) ([]model.Order, error) {
	var out []model.Order
	for _, o := range s.orders {
		if o.TenantID == tenantID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *stubOrderRepo) DB() *gorm.DB { return nil }

// ── Category stub ────────────────────────────────────────────────────────────

type stubCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (s *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.categories[c.ID] = c
	return nil
}

func (s *stubCategoryRepo) List(_ context.Context, tenantID uuid.UUID) ([]model.Category, error) {
	var out []model.Category
	for _, c := range s.categories {
		if c.TenantID == tenantID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *stubCategoryRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*model.Category, error) {
	c, ok := s.categories[id]
	if !ok || c.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}
