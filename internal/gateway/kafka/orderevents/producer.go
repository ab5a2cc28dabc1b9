package orderevents

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"orderflow/internal/entities"
	"orderflow/pkg/logger"
)

type producerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

// statusChangedEvent is the integration shape of one committed status change.
type statusChangedEvent struct {
	OrderID       string    `json:"order_id"`
	Status        string    `json:"status"`
	CustomerRef   string    `json:"customer_ref"`
	RestaurantRef string    `json:"restaurant_ref"`
	Total         float64   `json:"total"`
	EventTime     time.Time `json:"event_time"`
}

// Producer publishes order.status.changed events for other services. It is
// keyed by order id so per-order ordering survives partitioning.
type Producer struct {
	log      logger.Logger
	producer sarama.SyncProducer
	topic    string
}

func New(log producerLogger, brokers []string, versionStr, topic string) (*Producer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Return.Successes = true

	version, err := sarama.ParseKafkaVersion(versionStr)
	if err != nil {
		return nil, err
	}
	cfg.Version = version

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}

	return &Producer{
		log: log.With(
			logger.NewField("topic", topic),
		),
		producer: producer,
		topic:    topic,
	}, nil
}

// Publish implements the broadcaster's publisher contract. Send failures are
// logged and dropped: the persisted order is the source of truth and
// downstream consumers reconcile from it.
func (p *Producer) Publish(_ context.Context, events []entities.OrderEvent) {
	for _, event := range events {
		payload := statusChangedEvent{
			OrderID:       event.Order.ID,
			Status:        event.Status.String(),
			CustomerRef:   event.Order.CustomerRef,
			RestaurantRef: event.Order.RestaurantRef,
			Total:         event.Order.Pricing.Total,
			EventTime:     event.OccurredAt,
		}

		data, err := json.Marshal(payload)
		if err != nil {
			p.log.Error("marshal status changed event",
				logger.NewField("error", err),
				logger.NewField("order", event.Order.ID),
			)
			continue
		}

		message := &sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(event.Order.ID),
			Value: sarama.ByteEncoder(data),
		}

		partition, offset, err := p.producer.SendMessage(message)
		if err != nil {
			PublishErrorsTotal.Inc()
			p.log.Error("publish status changed event",
				logger.NewField("error", err),
				logger.NewField("order", event.Order.ID),
			)
			continue
		}

		p.log.Info("status changed event published",
			logger.NewField("order", event.Order.ID),
			logger.NewField("status", event.Status.String()),
			logger.NewField("partition", partition),
			logger.NewField("offset", offset),
		)
	}
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
