package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mehtaam/shopstack/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestHandler_SuccessStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(zap.NewNop())

	type statusTest struct {
		name      string
		data      any
		status    int
		expStatus int
	}

	tests := []statusTest{
		{
			name:      "Created with body keeps 201",
			data:      gin.H{"id": 1},
			status:    http.StatusCreated,
			expStatus: http.StatusCreated,
		},
		{
			name:      "Accepted with body keeps 202",
			data:      gin.H{"id": 1},
			status:    http.StatusAccepted,
			expStatus: http.StatusAccepted,
		},
		{
			name:      "No body keeps status",
			data:      nil,
			status:    http.StatusCreated,
			expStatus: http.StatusCreated,
		},
		{
			name:      "Plain success is 200",
			data:      gin.H{"ok": true},
			status:    http.StatusOK,
			expStatus: http.StatusOK,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)

			h.handleSuccessWithStatus(ctx, test.data, test.status)
			ctx.Writer.WriteHeaderNow()
			assert.Equal(t, test.expStatus, w.Code)
		})
	}
}

func TestHandler_ErrorStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(zap.NewNop())

	type errorTest struct {
		name      string
		err       error
		expStatus int
	}

	tests := []errorTest{
		{"Insufficient balance is 402", domain.ErrInsufficientBalance, http.StatusPaymentRequired},
		{"Duplicate order is 409", domain.ErrOrderAlreadyPlaced, http.StatusConflict},
		{"Terminal shipment is 409", domain.ErrShipmentFinal, http.StatusConflict},
		{"Unknown error is 500", assert.AnError, http.StatusInternalServerError},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)

			h.handleError(ctx, test.err)
			ctx.Writer.WriteHeaderNow()
			assert.Equal(t, test.expStatus, w.Code)
		})
	}
}
