package handler

import (
	"net/http"

	"github.com/marcusroqy/foodsystempdv/internal/apierror"
	"github.com/marcusroqy/foodsystempdv/internal/dto"
	"github.com/marcusroqy/foodsystempdv/internal/middleware"
	"github.com/marcusroqy/foodsystempdv/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductsHandler struct{ svc service.CatalogService }

func NewProductsHandler(svc service.CatalogService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

func tenantFrom(c *gin.Context) uuid.UUID {
	claims := middleware.GetClaims(c)
	id, _ := uuid.Parse(claims.TenantID)
	return id
}

// Create godoc
// @Summary      Criar produto
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateProductRequest true "Produto"
// @Success      201  {object} dto.ProductResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/products [post]
func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateProduct(c.Request.Context(), tenantFrom(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      Listar produtos
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        name        query string false "Busca por nome"
// @Param        category_id query string false "Filtrar por categoria"
// @Param        for_sale    query bool   false "Somente vendáveis"
// @Param        page        query int    false "Página (default 1)"
// @Param        limit       query int    false "Registros por página (default 50)"
// @Success      200 {object} dto.ProductListResponse
// @Router       /v1/products [get]
func (h *ProductsHandler) List(c *gin.Context) {
	var q dto.ProductFilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 200 {
		q.Limit = 50
	}
	resp, err := h.svc.ListProducts(c.Request.Context(), tenantFrom(c), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar produtos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Atualizar produto
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID do produto"
// @Param        body body dto.UpdateProductRequest true "Campos a alterar"
// @Success      200  {object} dto.ProductResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/products/{id} [put]
func (h *ProductsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateProduct(c.Request.Context(), tenantFrom(c), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Remover produto
// @Tags         produtos
// @Security     BearerAuth
// @Param        id path string true "UUID do produto"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/products/{id} [delete]
func (h *ProductsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.DeleteProduct(c.Request.Context(), tenantFrom(c), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateRecipeLink godoc
// @Summary      Vincular ingrediente à ficha técnica
// @Description  Cria um vínculo produto→ingrediente. Fichas técnicas têm um único nível; vínculos que criariam cadeias são rejeitados.
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateRecipeLinkRequest true "Vínculo"
// @Success      201  {object} dto.RecipeLinkResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/recipes [post]
func (h *ProductsHandler) CreateRecipeLink(c *gin.Context) {
	var req dto.CreateRecipeLinkRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateRecipeLink(c.Request.Context(), tenantFrom(c), req)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListRecipeLinks godoc
// @Summary      Listar fichas técnicas
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.RecipeLinkResponse
// @Router       /v1/recipes [get]
func (h *ProductsHandler) ListRecipeLinks(c *gin.Context) {
	resp, err := h.svc.ListRecipeLinks(c.Request.Context(), tenantFrom(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar fichas técnicas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateCategory godoc
// @Summary      Criar categoria
// @Tags         categorias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateCategoryRequest true "Categoria"
// @Success      201  {object} dto.CategoryResponse
// @Router       /v1/categories [post]
func (h *ProductsHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateCategory(c.Request.Context(), tenantFrom(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListCategories godoc
// @Summary      Listar categorias
// @Tags         categorias
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.CategoryResponse
// @Router       /v1/categories [get]
func (h *ProductsHandler) ListCategories(c *gin.Context) {
	resp, err := h.svc.ListCategories(c.Request.Context(), tenantFrom(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar categorias"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
