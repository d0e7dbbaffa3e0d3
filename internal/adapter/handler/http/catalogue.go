package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"github.com/mehtaam/shopstack/internal/core/domain"
	"github.com/mehtaam/shopstack/internal/core/port"
	"go.uber.org/zap"
)

type CatalogueHandler struct {
	Handler
	service port.Service
}

func NewCatalogueHandler(service port.Service, logger *zap.Logger) (*CatalogueHandler, error) {
	return &CatalogueHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type createProductRequest struct {
	ID        string `json:"id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Price     int64  `json:"price"`
	Inventory int    `json:"inventory"`
}

func (ch *CatalogueHandler) CreateProduct(ctx *gin.Context) {
	req := createProductRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ch.handleValidationError(ctx, err)
		return
	}

	product, err := ch.service.CreateProduct(ctx, &domain.Product{
		ID:        req.ID,
		Name:      req.Name,
		Price:     req.Price,
		Inventory: req.Inventory,
	})
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	ch.handleSuccessWithStatus(ctx, product, http.StatusCreated)
}

type createSaleRequest struct {
	ProductID       string    `json:"product_id" binding:"required"`
	DiscountPercent float64   `json:"discount_percent"`
	Allocation      int       `json:"allocation"`
	CouponAllowed   bool      `json:"coupon_allowed"`
	LedgerAllowed   bool      `json:"ledger_allowed"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          time.Time `json:"ends_at"`
}

func (ch *CatalogueHandler) CreateSale(ctx *gin.Context) {
	req := createSaleRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ch.handleValidationError(ctx, err)
		return
	}

	pct, err := decimal.NewFromFloat64(req.DiscountPercent)
	if err != nil {
		ch.handleValidationError(ctx, err)
		return
	}

	sale, err := ch.service.CreateSale(ctx, &domain.Sale{
		ProductID:       req.ProductID,
		DiscountPercent: pct,
		Allocation:      req.Allocation,
		CouponAllowed:   req.CouponAllowed,
		LedgerAllowed:   req.LedgerAllowed,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
	})
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	ch.handleSuccessWithStatus(ctx, gin.H{"id": sale.ID}, http.StatusCreated)
}

type quoteRequest struct {
	Items []lineItemPayload `json:"items" binding:"required"`
}

type quoteResp struct {
	ProductID     string `json:"product_id"`
	Quantity      int    `json:"quantity"`
	UnitPrice     int64  `json:"unit_price"`
	CouponAllowed bool   `json:"coupon_allowed"`
	LedgerAllowed bool   `json:"ledger_allowed"`
}

// QuoteCheckout prices the requested items against any active sales and
// reports which discount instruments each line still permits.
func (ch *CatalogueHandler) QuoteCheckout(ctx *gin.Context) {
	req := quoteRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ch.handleValidationError(ctx, err)
		return
	}

	items := make([]domain.LineItem, 0, len(req.Items))
	for _, i := range req.Items {
		items = append(items, domain.LineItem{
			ProductID: i.ProductID,
			Name:      i.Name,
			UnitPrice: i.UnitPrice,
			Quantity:  i.Quantity,
		})
	}

	quotes, err := ch.service.QuoteCheckout(ctx, items)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	result := make([]quoteResp, 0, len(quotes))
	for _, q := range quotes {
		result = append(result, quoteResp{
			ProductID:     q.Item.ProductID,
			Quantity:      q.Item.Quantity,
			UnitPrice:     q.Quote.Price,
			CouponAllowed: q.Quote.CouponAllowed,
			LedgerAllowed: q.Quote.LedgerAllowed,
		})
	}

	ch.handleSuccess(ctx, result)
}
