package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/marcusroqy/foodsystempdv/internal/dto"
	"github.com/marcusroqy/foodsystempdv/internal/model"
	"github.com/marcusroqy/foodsystempdv/internal/repository"
	"github.com/marcusroqy/foodsystempdv/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService interface {
	CreateOrder(ctx context.Context, tenantID, userID uuid.UUID, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, tenantID, orderID uuid.UUID, status string) (*dto.OrderResponse, error)
	ListOrders(ctx context.Context, tenantID uuid.UUID) ([]dto.OrderResponse, error)
}

type orderService struct {
	repo       repository.OrderRepository
	ledger     LedgerService
	resolver   RecipeResolver
	packaging  PackagingEngine
	dispatcher *worker.Dispatcher
}

func NewOrderService(
	repo repository.OrderRepository,
	ledger LedgerService,
	resolver RecipeResolver,
	packaging PackagingEngine,
	dispatcher *worker.Dispatcher,
) OrderService {
	return &orderService{
		repo:       repo,
		ledger:     ledger,
		resolver:   resolver,
		packaging:  packaging,
		dispatcher: dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// mergedDeduction accumulates per-SKU consumption across all line items,
// preserving first-seen order so the ledger write sequence is deterministic.
type mergedDeduction struct {
	productID  uuid.UUID
	quantity   decimal.Decimal
	fromRecipe bool
	originName string
}

// ── CreateOrder ───────────────────────────────────────────────────────────────
// All-or-nothing fulfillment:
//  1. Validate items (before any write)
//  2. BEGIN TX: persist order + items
//  3. Expand each item through the recipe resolver; a product deleted since
//     the cart was built is skipped, not fatal (sale completion wins over
//     perfect stock accounting — the skip count is returned for
//     reconciliation)
//  4. Merge deductions per SKU and append one OUT ledger entry each
//  5. At most one packaging OUT entry, appended last
//  6. COMMIT
//  7. (async) enqueue a low-stock alert check for the touched SKUs

func (s *orderService) CreateOrder(ctx context.Context, tenantID, userID uuid.UUID, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	type resolvedItem struct {
		productID uuid.UUID
		quantity  int
		unitPrice decimal.Decimal
		notes     *string
	}

	resolved := make([]resolvedItem, 0, len(req.Items))
	total := decimal.Zero
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: product_id %q", ErrInvalidLineItem, item.ProductID)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidLineItem)
		}
		if item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit price must not be negative", ErrInvalidLineItem)
		}
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		resolved = append(resolved, resolvedItem{
			productID: pid,
			quantity:  item.Quantity,
			unitPrice: item.UnitPrice,
			notes:     item.Notes,
		})
	}

	var (
		order      model.Order
		skipped    int
		touchedIDs []string
	)

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		order = model.Order{
			TenantID:     tenantID,
			UserID:       userID,
			CustomerName: req.CustomerName,
			TotalAmount:  total,
			Status:       model.StatusQueue,
		}
		for _, r := range resolved {
			order.Items = append(order.Items, model.OrderItem{
				TenantID:  tenantID,
				ProductID: r.productID,
				Quantity:  r.quantity,
				UnitPrice: r.unitPrice,
				Notes:     r.notes,
			})
		}
		if err := s.repo.Create(ctx, tx, &order); err != nil {
			return err
		}

		// Expand every line item. Catalog reads stay uncached so a recipe
		// edited mid-order cannot leak stale quantities into this sale.
		expansions := make([][]Deduction, 0, len(resolved))
		for _, r := range resolved {
			deductions, err := s.resolver.Expand(ctx, tenantID, r.productID, r.quantity)
			if err != nil {
				if errors.Is(err, ErrProductNotFound) {
					skipped++
					continue
				}
				return err
			}
			expansions = append(expansions, deductions)
		}

		// Merge duplicated SKUs so two items consuming the same ingredient
		// produce one summed entry, in first-seen order.
		var merged []*mergedDeduction
		index := make(map[uuid.UUID]*mergedDeduction)
		for _, deductions := range expansions {
			for _, d := range deductions {
				if m, ok := index[d.ProductID]; ok {
					m.quantity = m.quantity.Add(d.Quantity)
					continue
				}
				m := &mergedDeduction{
					productID:  d.ProductID,
					quantity:   d.Quantity,
					fromRecipe: d.FromRecipe,
					originName: d.ProductName,
				}
				index[d.ProductID] = m
				merged = append(merged, m)
			}
		}

		for _, m := range merged {
			// A zero-quantity recipe link expands to nothing.
			if !m.quantity.IsPositive() {
				continue
			}
			reason := fmt.Sprintf("Venda direta - pedido %s", order.ID)
			if m.fromRecipe {
				reason = fmt.Sprintf("Consumo ficha técnica - produto %s (pedido %s)", m.originName, order.ID)
			}
			if _, err := s.ledger.AppendTx(tx, tenantID, m.productID, model.DirectionOut, m.quantity, reason); err != nil {
				return err
			}
			touchedIDs = append(touchedIDs, m.productID.String())
		}

		// Packaging last: one unit per order containing a prepared item,
		// regardless of how many such items the order holds.
		if s.packaging.RequiresPackaging(expansions) {
			pkg, err := s.packaging.PackagingDeduction(ctx, tenantID)
			if err != nil {
				return err
			}
			if pkg != nil {
				reason := fmt.Sprintf("Embalagem (1 por pedido) - pedido %s", order.ID)
				if _, err := s.ledger.AppendTx(tx, tenantID, pkg.ID, model.DirectionOut, decimal.NewFromInt(1), reason); err != nil {
					return err
				}
				touchedIDs = append(touchedIDs, pkg.ID.String())
			}
		}

		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransactionAborted, txErr)
	}

	// Async low-stock check (best-effort — fire & forget)
	if s.dispatcher != nil && len(touchedIDs) > 0 {
		_ = s.dispatcher.EnqueueStockAlert(ctx, worker.StockAlertPayload{
			TenantID:   tenantID.String(),
			ProductIDs: touchedIDs,
		})
	}

	resp := orderToResponse(&order)
	resp.SkippedDeductions = skipped
	return resp, nil
}

// ── UpdateStatus ──────────────────────────────────────────────────────────────
// Status values are validated against the enum; transitions themselves are
// unguarded — the counter UI drives them freely.

func (s *orderService) UpdateStatus(ctx context.Context, tenantID, orderID uuid.UUID, status string) (*dto.OrderResponse, error) {
	if !model.ValidStatus(status) {
		return nil, fmt.Errorf("status inválido: %q", status)
	}
	if err := s.repo.UpdateStatus(ctx, tenantID, orderID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
		}
		return nil, err
	}
	order, err := s.repo.FindByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	return orderToResponse(order), nil
}

// ListOrders returns the tenant's orders, newest first.
func (s *orderService) ListOrders(ctx context.Context, tenantID uuid.UUID) ([]dto.OrderResponse, error) {
	orders, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, *orderToResponse(&orders[i]))
	}
	return out, nil
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		items = append(items, dto.OrderItemResponse{
			ProductID: item.ProductID.String(),
			Product:   name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
			Notes:     item.Notes,
		})
	}
	return &dto.OrderResponse{
		ID:           o.ID.String(),
		CustomerName: o.CustomerName,
		TotalAmount:  o.TotalAmount,
		Status:       o.Status,
		Items:        items,
		CreatedAt:    o.CreatedAt.UTC().Format(time.RFC3339),
	}
}
