package repository

import (
	"context"

	"github.com/marcusroqy/foodsystempdv/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	Name       string
	CategoryID string
	// ForSale: "true" (default) = sellable only, "all" = everything
	ForSale string
	Page    int
	Limit   int
}

// ProductRepository is the catalog provider. The catalog is read-only from
// the fulfillment core's perspective; mutations come from catalog management
// only. Every method takes tenantID explicitly — tenant scoping is never an
// ambient filter that a new method could forget.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, tenantID uuid.UUID, filter ProductFilter) ([]model.Product, int64, error)
	ListStockControlled(ctx context.Context, tenantID uuid.UUID) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// FindPackaging returns the designated packaging SKU: a non-sellable
	// product whose name matches the keyword. gorm.ErrRecordNotFound when the
	// tenant has none configured.
	FindPackaging(ctx context.Context, tenantID uuid.UUID, keyword string) (*model.Product, error)

	// Recipe links (bill of materials)
	CreateRecipeLink(ctx context.Context, link *model.RecipeLink) error
	FindRecipeLinks(ctx context.Context, tenantID, productID uuid.UUID) ([]model.RecipeLink, error)
	// CountLinksWithIngredient reports how many links use productID as an
	// ingredient — used to keep recipes one level deep.
	CountLinksWithIngredient(ctx context.Context, tenantID, productID uuid.UUID) (int64, error)
	ListRecipeLinks(ctx context.Context, tenantID uuid.UUID) ([]model.RecipeLink, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&p).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, tenantID uuid.UUID, filter ProductFilter) ([]model.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Product{}).Where("tenant_id = ?", tenantID)

	switch filter.ForSale {
	case "all":
		// no filter
	default:
		q = q.Where("is_for_sale = true")
	}
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}

	var products []model.Product
	err := q.Preload("Category").
		Order("name ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&products).Error
	return products, total, err
}

func (r *productRepo) ListStockControlled(ctx context.Context, tenantID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_stock_controlled = true", tenantID).
		Preload("Category").
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&model.Product{}).Error
}

func (r *productRepo) FindPackaging(ctx context.Context, tenantID uuid.UUID, keyword string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_for_sale = false AND name ILIKE ?", tenantID, "%"+keyword+"%").
		First(&p).Error
	return &p, err
}

func (r *productRepo) CreateRecipeLink(ctx context.Context, link *model.RecipeLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *productRepo) FindRecipeLinks(ctx context.Context, tenantID, productID uuid.UUID) ([]model.RecipeLink, error) {
	var links []model.RecipeLink
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Preload("Ingredient").
		Order("created_at ASC").
		Find(&links).Error
	return links, err
}

func (r *productRepo) CountLinksWithIngredient(ctx context.Context, tenantID, productID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.RecipeLink{}).
		Where("tenant_id = ? AND ingredient_id = ?", tenantID, productID).
		Count(&n).Error
	return n, err
}

func (r *productRepo) ListRecipeLinks(ctx context.Context, tenantID uuid.UUID) ([]model.RecipeLink, error) {
	var links []model.RecipeLink
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Preload("Product").Preload("Ingredient").
		Find(&links).Error
	return links, err
}

func (r *productRepo) DB() *gorm.DB { return r.db }
