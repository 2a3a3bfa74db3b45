package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/marcusroqy/foodsystempdv/internal/dto"
	"github.com/marcusroqy/foodsystempdv/internal/model"
	"github.com/marcusroqy/foodsystempdv/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogService manages products, categories and recipe links. From the
// fulfillment core's point of view the catalog is read-only; this service is
// the one writer.
type CatalogService interface {
	CreateProduct(ctx context.Context, tenantID uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	UpdateProduct(ctx context.Context, tenantID, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context, tenantID uuid.UUID, q dto.ProductFilterQuery) (*dto.ProductListResponse, error)
	DeleteProduct(ctx context.Context, tenantID, id uuid.UUID) error

	CreateRecipeLink(ctx context.Context, tenantID uuid.UUID, req dto.CreateRecipeLinkRequest) (*dto.RecipeLinkResponse, error)
	ListRecipeLinks(ctx context.Context, tenantID uuid.UUID) ([]dto.RecipeLinkResponse, error)

	CreateCategory(ctx context.Context, tenantID uuid.UUID, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	ListCategories(ctx context.Context, tenantID uuid.UUID) ([]dto.CategoryResponse, error)
}

type catalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

func NewCatalogService(products repository.ProductRepository, categories repository.CategoryRepository) CatalogService {
	return &catalogService{products: products, categories: categories}
}

func (s *catalogService) CreateProduct(ctx context.Context, tenantID uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p := &model.Product{
		TenantID:          tenantID,
		Name:              req.Name,
		Price:             req.Price,
		IsStockControlled: true,
		IsForSale:         true,
		MinQuantity:       decimal.NewFromInt(10),
	}
	if req.IsStockControlled != nil {
		p.IsStockControlled = *req.IsStockControlled
	}
	if req.IsForSale != nil {
		p.IsForSale = *req.IsForSale
	}
	if req.MinQuantity != nil {
		p.MinQuantity = *req.MinQuantity
	}
	if req.CategoryID != nil {
		cid, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("category_id inválido: %w", err)
		}
		if _, err := s.categories.FindByID(ctx, tenantID, cid); err != nil {
			return nil, errors.New("categoria não encontrada")
		}
		p.CategoryID = &cid
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, tenantID, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
		return nil, err
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.CategoryID != nil {
		cid, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("category_id inválido: %w", err)
		}
		p.CategoryID = &cid
	}
	if req.IsStockControlled != nil {
		p.IsStockControlled = *req.IsStockControlled
	}
	if req.IsForSale != nil {
		p.IsForSale = *req.IsForSale
	}
	if req.MinQuantity != nil {
		p.MinQuantity = *req.MinQuantity
	}
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *catalogService) ListProducts(ctx context.Context, tenantID uuid.UUID, q dto.ProductFilterQuery) (*dto.ProductListResponse, error) {
	filter := repository.ProductFilter{
		Name:       q.Name,
		CategoryID: q.CategoryID,
		ForSale:    q.ForSale,
		Page:       q.Page,
		Limit:      q.Limit,
	}
	products, total, err := s.products.List(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{Data: data, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, tenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
		return err
	}
	return s.products.Delete(ctx, tenantID, id)
}

// ── Recipe links ──────────────────────────────────────────────────────────────
// Recipes are one level deep: sellable → ingredient. Both directions are
// checked at creation so catalog data can never hold an
// ingredient-of-ingredient chain for the resolver to mis-expand.

func (s *catalogService) CreateRecipeLink(ctx context.Context, tenantID uuid.UUID, req dto.CreateRecipeLinkRequest) (*dto.RecipeLinkResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product_id inválido: %w", err)
	}
	ingredientID, err := uuid.Parse(req.IngredientID)
	if err != nil {
		return nil, fmt.Errorf("ingredient_id inválido: %w", err)
	}
	if productID == ingredientID {
		return nil, errors.New("um produto não pode ser ingrediente de si mesmo")
	}
	if req.Quantity.IsNegative() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQuantity, req.Quantity)
	}

	product, err := s.products.FindByID(ctx, tenantID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
		}
		return nil, err
	}
	ingredient, err := s.products.FindByID(ctx, tenantID, ingredientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, ingredientID)
		}
		return nil, err
	}

	// The ingredient must not have a recipe of its own.
	ingredientLinks, err := s.products.FindRecipeLinks(ctx, tenantID, ingredientID)
	if err != nil {
		return nil, err
	}
	if len(ingredientLinks) > 0 {
		return nil, errors.New("o ingrediente já possui ficha técnica própria: receitas têm apenas um nível")
	}
	// Nor may the sellable product already be an ingredient elsewhere.
	usedAsIngredient, err := s.products.CountLinksWithIngredient(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	if usedAsIngredient > 0 {
		return nil, errors.New("o produto já é ingrediente de outra receita: receitas têm apenas um nível")
	}

	link := &model.RecipeLink{
		TenantID:     tenantID,
		ProductID:    productID,
		IngredientID: ingredientID,
		Quantity:     req.Quantity,
	}
	if err := s.products.CreateRecipeLink(ctx, link); err != nil {
		return nil, err
	}
	return &dto.RecipeLinkResponse{
		ID:             link.ID.String(),
		ProductID:      productID.String(),
		ProductName:    product.Name,
		IngredientID:   ingredientID.String(),
		IngredientName: ingredient.Name,
		Quantity:       link.Quantity,
	}, nil
}

func (s *catalogService) ListRecipeLinks(ctx context.Context, tenantID uuid.UUID) ([]dto.RecipeLinkResponse, error) {
	links, err := s.products.ListRecipeLinks(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecipeLinkResponse, 0, len(links))
	for _, link := range links {
		resp := dto.RecipeLinkResponse{
			ID:           link.ID.String(),
			ProductID:    link.ProductID.String(),
			IngredientID: link.IngredientID.String(),
			Quantity:     link.Quantity,
		}
		if link.Product != nil {
			resp.ProductName = link.Product.Name
		}
		if link.Ingredient != nil {
			resp.IngredientName = link.Ingredient.Name
		}
		out = append(out, resp)
	}
	return out, nil
}

// ── Categories ────────────────────────────────────────────────────────────────

func (s *catalogService) CreateCategory(ctx context.Context, tenantID uuid.UUID, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	c := &model.Category{TenantID: tenantID, Name: req.Name}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: c.ID.String(), Name: c.Name}, nil
}

func (s *catalogService) ListCategories(ctx context.Context, tenantID uuid.UUID) ([]dto.CategoryResponse, error) {
	categories, err := s.categories.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.CategoryResponse{ID: c.ID.String(), Name: c.Name})
	}
	return out, nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:                p.ID.String(),
		Name:              p.Name,
		Price:             p.Price,
		IsStockControlled: p.IsStockControlled,
		IsForSale:         p.IsForSale,
		MinQuantity:       p.MinQuantity,
		CreatedAt:         p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if p.CategoryID != nil {
		cid := p.CategoryID.String()
		resp.CategoryID = &cid
	}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	return resp
}
