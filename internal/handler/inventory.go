package handler

import (
	"net/http"
	"time"

	"github.com/marcusroqy/foodsystempdv/internal/apierror"
	"github.com/marcusroqy/foodsystempdv/internal/dto"
	"github.com/marcusroqy/foodsystempdv/internal/middleware"
	"github.com/marcusroqy/foodsystempdv/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// Status godoc
// @Summary      Painel de estoque
// @Description  Saldo atual de cada SKU controlado, derivado do razão, com status OUT/LOW/GOOD.
// @Tags         estoque
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.StockStatusItem
// @Router       /v1/inventory [get]
func (h *InventoryHandler) Status(c *gin.Context) {
	claims := middleware.GetClaims(c)
	tenantID, _ := uuid.Parse(claims.TenantID)

	items, err := h.svc.ListStockStatus(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao consultar estoque"))
		return
	}
	c.JSON(http.StatusOK, items)
}

// Adjust godoc
// @Summary      Ajuste manual de estoque
// @Description  Registra entrada (IN), saída (OUT) ou acerto absoluto (SET) no razão. SET sem diferença não grava nada.
// @Tags         estoque
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AdjustStockRequest true "Ajuste"
// @Success      201  {object} dto.LedgerEntryResponse
// @Failure      404  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError
// @Router       /v1/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	tenantID, _ := uuid.Parse(claims.TenantID)

	entry, err := h.svc.Adjust(c.Request.Context(), tenantID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if entry == nil {
		// SET mode found nothing to change.
		c.JSON(http.StatusOK, gin.H{"detail": "Nenhum ajuste necessário"})
		return
	}
	c.JSON(http.StatusCreated, dto.LedgerEntryResponse{
		ID:        entry.ID.String(),
		ProductID: entry.ProductID.String(),
		Type:      entry.Type,
		Quantity:  entry.Quantity,
		Reason:    entry.Reason,
		CreatedAt: entry.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// Ledger godoc
// @Summary      Histórico de movimentações
// @Tags         estoque
// @Produce      json
// @Security     BearerAuth
// @Param        product_id query string false "Filtrar por produto"
// @Param        type       query string false "IN | OUT"
// @Param        page       query int    false "Página (default 1)"
// @Param        limit      query int    false "Registros por página (default 50)"
// @Success      200 {object} dto.LedgerListResponse
// @Router       /v1/inventory/ledger [get]
func (h *InventoryHandler) Ledger(c *gin.Context) {
	var filter dto.LedgerFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	claims := middleware.GetClaims(c)
	tenantID, _ := uuid.Parse(claims.TenantID)

	resp, err := h.svc.ListLedger(c.Request.Context(), tenantID, filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
