package service

import (
	"context"
	"encoding/json"

	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the insight topic into the correlation engine.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	insights   IInsightService
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	insights IInsightService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		insights:   insights,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.InsightInputMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("INSIGHT", "Failed to unmarshal insight input", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		// Malformed payloads are acked; redelivery cannot fix them.
		msg.Ack()
		return
	}

	if err := cs.insights.Ingest(payload); err != nil {
		cs.logger.Warn("INSIGHT", "Dropped insight input", map[string]interface{}{
			"message_id": msg.UUID,
			"kind":       payload.Kind,
			"error":      err.Error(),
		})
		msg.Ack()
		return
	}

	cs.logger.Debug("INSIGHT", "Insight input applied", map[string]interface{}{"kind": payload.Kind})
	msg.Ack()
}
