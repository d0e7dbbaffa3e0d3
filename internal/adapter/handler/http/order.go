package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mehtaam/shopstack/internal/core/domain"
	"github.com/mehtaam/shopstack/internal/core/port"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type lineItemPayload struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

type createOrderRequest struct {
	ID             string            `json:"id" binding:"required"`
	Items          []lineItemPayload `json:"items" binding:"required"`
	PaymentMethod  string            `json:"payment_method"`
	Subtotal       int64             `json:"subtotal"`
	Discount       int64             `json:"discount"`
	DeliveryCharge int64             `json:"delivery_charge"`
	ConvenienceFee int64             `json:"convenience_fee"`
	PlatformFee    int64             `json:"platform_fee"`
	Total          int64             `json:"total"`
	Annotations    map[string]any    `json:"annotations"`
}

func (oh *OrderHandler) CreateOrder(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	req := createOrderRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		oh.handleValidationError(ctx, err)
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

	order := &domain.Order{
		ID:             req.ID,
		UserID:         userID,
		Items:          items,
		PaymentMethod:  domain.PaymentMethod(req.PaymentMethod),
		Subtotal:       req.Subtotal,
		Discount:       req.Discount,
		DeliveryCharge: req.DeliveryCharge,
		ConvenienceFee: req.ConvenienceFee,
		PlatformFee:    req.PlatformFee,
		Total:          req.Total,
		Annotations:    req.Annotations,
	}

	created, err := oh.service.CreateOrder(ctx, order)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, orderResponse(created), http.StatusAccepted)
}

type orderResp struct {
	ID            string            `json:"id"`
	Status        string            `json:"status"`
	PaymentMethod string            `json:"payment_method"`
	IsPaid        bool              `json:"is_paid"`
	Items         []lineItemPayload `json:"items"`
	Subtotal      int64             `json:"subtotal"`
	Discount      int64             `json:"discount"`
	Total         int64             `json:"total"`
	PlacedAt      time.Time         `json:"placed_at"`
}

func orderResponse(o *domain.Order) orderResp {
	items := make([]lineItemPayload, 0, len(o.Items))
	for _, i := range o.Items {
		items = append(items, lineItemPayload{
			ProductID: i.ProductID,
			Name:      i.Name,
			UnitPrice: i.UnitPrice,
			Quantity:  i.Quantity,
		})
	}
	return orderResp{
		ID:            o.ID,
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		IsPaid:        o.IsPaid,
		Items:         items,
		Subtotal:      o.Subtotal,
		Discount:      o.Discount,
		Total:         o.Total,
		PlacedAt:      o.PlacedAt,
	}
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	order, err := oh.service.GetOrder(ctx, userID, ctx.Param("order"))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, orderResponse(order))
}

func (oh *OrderHandler) ListOrdersByUser(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	list, err := oh.service.ListOrdersByUser(ctx, userID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]orderResp, 0, len(list))
	for _, o := range list {
		result = append(result, orderResponse(o))
	}

	oh.handleSuccess(ctx, result)
}

type timelineStepResp struct {
	Label     string     `json:"label"`
	Completed bool       `json:"completed"`
	At        *time.Time `json:"at,omitempty"`
}

type lineTimelineResp struct {
	LineIndex      int                `json:"line_index"`
	ProductID      string             `json:"product_id"`
	Status         string             `json:"status"`
	Flow           string             `json:"flow"`
	TrackingNumber string             `json:"tracking_number,omitempty"`
	Steps          []timelineStepResp `json:"steps"`
}

func (oh *OrderHandler) OrderTimeline(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID
	orderID := ctx.Param("order")

	// Ownership check goes through the order read.
	if _, err := oh.service.GetOrder(ctx, userID, orderID); err != nil {
		oh.handleError(ctx, err)
		return
	}

	timelines, err := oh.service.ShipmentTimelines(ctx, orderID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]lineTimelineResp, 0, len(timelines))
	for _, t := range timelines {
		steps := make([]timelineStepResp, 0, len(t.Steps))
		for _, s := range t.Steps {
			steps = append(steps, timelineStepResp{
				Label:     s.Label,
				Completed: s.Completed,
				At:        s.At,
			})
		}
		result = append(result, lineTimelineResp{
			LineIndex:      t.Line.LineIndex,
			ProductID:      t.Line.ProductID,
			Status:         string(t.Line.Status),
			Flow:           string(t.Line.Flow),
			TrackingNumber: t.Line.TrackingNumber,
			Steps:          steps,
		})
	}

	oh.handleSuccess(ctx, result)
}

func (oh *OrderHandler) DispatchShipments(ctx *gin.Context) {
	lines, err := oh.service.DispatchShipments(ctx, ctx.Param("order"))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, gin.H{"lines": len(lines)}, http.StatusCreated)
}

type trackingUpdateRequest struct {
	OrderID        string    `json:"order_id" binding:"required"`
	LineIndex      int       `json:"line_index"`
	Status         string    `json:"status" binding:"required"`
	TrackingNumber string    `json:"tracking_number"`
	At             time.Time `json:"at"`
}

// TrackingWebhook accepts raw courier status callbacks. The vocabulary of
// the status field is whatever the courier sends.
func (oh *OrderHandler) TrackingWebhook(ctx *gin.Context) {
	req := trackingUpdateRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		oh.handleValidationError(ctx, err)
		return
	}
	if req.At.IsZero() {
		req.At = time.Now()
	}

	line, err := oh.service.ApplyTrackingUpdate(ctx, port.TrackingUpdate{
		OrderID:        req.OrderID,
		LineIndex:      req.LineIndex,
		RawStatus:      req.Status,
		TrackingNumber: req.TrackingNumber,
		At:             req.At,
	})
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, gin.H{
		"status":   string(line.Status),
		"flow":     string(line.Flow),
		"progress": line.Progress,
	})
}
