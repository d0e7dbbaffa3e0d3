package rabbit

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mehtaam/shopstack/internal/core/domain"
	"github.com/mehtaam/shopstack/internal/core/port"
	"go.uber.org/zap"
)

// trackingMessage is the courier feed envelope. The status field carries
// whatever vocabulary the courier uses; normalization happens downstream.
type trackingMessage struct {
	OrderID        string    `json:"order_id"`
	LineIndex      int       `json:"line_index"`
	Status         string    `json:"status"`
	TrackingNumber string    `json:"tracking_number"`
	At             time.Time `json:"at"`
}

type paymentMessage struct {
	OrderID     string    `json:"order_id"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// StartConsumers subscribes the tracking and payment queues and keeps
// consuming until the context is cancelled.
func StartConsumers(ctx context.Context, b *Broker, svc port.Service) error {
	if err := b.consume(ctx, b.conf.TrackingQueue, trackingHandler(svc, b.logger)); err != nil {
		return err
	}
	return b.consume(ctx, b.conf.PaymentQueue, paymentHandler(svc, b.logger))
}

func trackingHandler(svc port.Service, logger *zap.Logger) handlerFunc {
	return func(ctx context.Context, body []byte) error {
		var msg trackingMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			// Malformed messages never become valid on retry.
			logger.Warn("dropping malformed tracking message", zap.Error(err))
			return nil
		}
		if msg.At.IsZero() {
			msg.At = time.Now()
		}

		_, err := svc.ApplyTrackingUpdate(ctx, port.TrackingUpdate{
			OrderID:        msg.OrderID,
			LineIndex:      msg.LineIndex,
			RawStatus:      msg.Status,
			TrackingNumber: msg.TrackingNumber,
			At:             msg.At,
		})
		if errors.Is(err, domain.ErrDataNotFound) || errors.Is(err, domain.ErrShipmentFinal) {
			// The line does not exist or is already settled. Retrying
			// cannot change either outcome.
			logger.Info("ignoring tracking update",
				zap.String("order", msg.OrderID),
				zap.Int("line", msg.LineIndex),
				zap.Error(err))
			return nil
		}
		return err
	}
}

func paymentHandler(svc port.Service, logger *zap.Logger) handlerFunc {
	return func(ctx context.Context, body []byte) error {
		var msg paymentMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			logger.Warn("dropping malformed payment message", zap.Error(err))
			return nil
		}
		if msg.ConfirmedAt.IsZero() {
			msg.ConfirmedAt = time.Now()
		}

		result, err := svc.ConfirmPayment(ctx, msg.OrderID, msg.ConfirmedAt)
		if errors.Is(err, domain.ErrDataNotFound) {
			logger.Info("ignoring payment for unknown order", zap.String("order", msg.OrderID))
			return nil
		}
		if err != nil {
			return err
		}

		if result.AlreadyGranted {
			logger.Debug("reward already granted", zap.String("order", msg.OrderID))
		}
		return nil
	}
}
