package payment_completed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"orderflow/internal/entities"
	"orderflow/internal/service/lifecycle"
	"orderflow/internal/service/ordering"
	"orderflow/internal/service/transition"
	"orderflow/pkg/logger"
)

// GatewayIdentity is the acting identity stamped on transitions driven by
// payment gateway events.
const GatewayIdentity = "payment-gateway"

// completedEvent is the payment gateway's topic contract.
type completedEvent struct {
	OrderID       string     `json:"order_id"`
	Status        string     `json:"status"`
	TransactionID string     `json:"transaction_id"`
	CompletedAt   *time.Time `json:"completed_at"`
}

const (
	paymentStatusCompleted = "completed"
	paymentStatusFailed    = "failed"
)

type Handler struct {
	lifecycleService         Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, lifecycleService Service, timeout time.Duration) *Handler {
	handlerLog := log.With()

	return &Handler{
		lifecycleService:         lifecycleService,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("payment.completed: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			h.log.Info("payment.completed: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing handles one Kafka message. It returns true when
// ConsumeClaim should stop (context cancelled, the message will be
// redelivered), false to keep consuming.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event completedEvent
	err := json.Unmarshal(message.Value, &event)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("payment.completed handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("order", event.OrderID),
		logger.NewField("payment_status", event.Status),
		logger.NewField("offset", message.Offset),
	)

	if event.Status != paymentStatusCompleted {
		if event.Status == paymentStatusFailed {
			msgLog.Warn("payment.completed: gateway reported payment failure, order stays pending")
		} else {
			msgLog.Warn("payment.completed: unknown payment status, skipping")
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.Info("payment.completed processing")

	order, err := h.lifecycleService.Transition(ctx, lifecycleCommand(event))
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("payment.completed handler context cancelled, message will be reprocessed")
			return true

		case errors.Is(err, transition.ErrInvalidTransition):
			// Duplicate delivery: the order already left pending_payment.
			msgLog.With(
				logger.NewField("error", err),
			).Warn("payment.completed handler order not awaiting payment")

		case errors.Is(err, ordering.ErrOrderNotFound):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("payment.completed handler unknown order")

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Warn("payment.completed handler failed to process order")
		}
		sess.MarkMessage(message, "")
		return false
	}

	h.log.With(
		logger.NewField("order", order.ID),
		logger.NewField("current_status", order.Status.String()),
		logger.NewField("offset", message.Offset),
	).Info("payment.completed: processed")

	sess.MarkMessage(message, "")
	return false
}

func lifecycleCommand(event completedEvent) lifecycle.TransitionCommand {
	return lifecycle.TransitionCommand{
		OrderID: event.OrderID,
		Actor: entities.Actor{
			ID:   GatewayIdentity,
			Role: entities.RolePayment,
		},
		Status:             entities.OrderPaid,
		PaymentTransaction: event.TransactionID,
		PaidAt:             event.CompletedAt,
	}
}
