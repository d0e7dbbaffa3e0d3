package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mehtaam/shopstack/internal/core/domain"
	"github.com/mehtaam/shopstack/internal/core/port"
	"go.uber.org/zap"
)

type RewardHandler struct {
	Handler
	service port.Service
}

func NewRewardHandler(service port.Service, logger *zap.Logger) (*RewardHandler, error) {
	return &RewardHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type issuanceResp struct {
	Granted        bool  `json:"granted"`
	AlreadyGranted bool  `json:"already_granted"`
	Amount         int64 `json:"amount,omitempty"`
}

func issuanceResponse(r *domain.IssuanceResult) issuanceResp {
	resp := issuanceResp{
		Granted:        r.Granted,
		AlreadyGranted: r.AlreadyGranted,
	}
	if r.Entry != nil {
		resp.Amount = r.Entry.Amount
	}
	return resp
}

// ClaimOrderReward lets a client retry reward issuance for an order it
// owns. Duplicate claims are benign and report already_granted.
func (rh *RewardHandler) ClaimOrderReward(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	result, err := rh.service.ClaimOrderReward(ctx, userID, ctx.Param("order"))
	if err != nil {
		rh.handleError(ctx, err)
		return
	}

	rh.handleSuccess(ctx, issuanceResponse(result))
}

func (rh *RewardHandler) ConfirmPayment(ctx *gin.Context) {
	result, err := rh.service.ConfirmPayment(ctx, ctx.Param("order"), time.Now())
	if err != nil {
		rh.handleError(ctx, err)
		return
	}

	rh.handleSuccess(ctx, issuanceResponse(result))
}

func (rh *RewardHandler) UserBalance(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	balance, err := rh.service.Balance(ctx, userID)
	if err != nil {
		rh.handleError(ctx, err)
		return
	}

	rh.handleSuccess(ctx, gin.H{"balance": balance})
}

type spendRequest struct {
	Amount int64 `json:"amount"`
}

func (rh *RewardHandler) SpendBalance(ctx *gin.Context) {
	req := spendRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		rh.handleValidationError(ctx, err)
		return
	}

	userID := getAuthPayload(ctx).UserID

	remaining, err := rh.service.SpendBalance(ctx, userID, req.Amount)
	if err != nil {
		rh.handleError(ctx, err)
		return
	}

	rh.handleSuccess(ctx, gin.H{"balance": remaining})
}

type ledgerEntryResp struct {
	ID        uint64     `json:"id"`
	OrderID   *string    `json:"order_id,omitempty"`
	Kind      string     `json:"kind"`
	Amount    int64      `json:"amount"`
	IssuedAt  time.Time  `json:"issued_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Consumed  bool       `json:"consumed"`
	Expired   bool       `json:"expired"`
}

func (rh *RewardHandler) ListLedgerEntries(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	list, err := rh.service.ListLedgerEntries(ctx, userID)
	if err != nil {
		rh.handleError(ctx, err)
		return
	}

	now := time.Now()
	result := make([]ledgerEntryResp, 0, len(list))
	for _, e := range list {
		result = append(result, ledgerEntryResp{
			ID:        e.ID,
			OrderID:   e.OrderID,
			Kind:      string(e.Kind),
			Amount:    e.Amount,
			IssuedAt:  e.IssuedAt,
			ExpiresAt: e.ExpiresAt,
			Consumed:  e.Consumed,
			Expired:   e.Expired(now),
		})
	}

	rh.handleSuccess(ctx, result)
}

type signupBonusRequest struct {
	UserID uint64 `json:"user_id" binding:"required"`
	Amount int64  `json:"amount" binding:"required"`
}

func (rh *RewardHandler) GrantSignupBonus(ctx *gin.Context) {
	req := signupBonusRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		rh.handleValidationError(ctx, err)
		return
	}

	result, err := rh.service.GrantSignupBonus(ctx, req.UserID, req.Amount)
	if err != nil {
		rh.handleError(ctx, err)
		return
	}

	rh.handleSuccessWithStatus(ctx, issuanceResponse(result), http.StatusCreated)
}
