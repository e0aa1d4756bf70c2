package service

import (
	"context"
	"encoding/json"

	"documind-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains session events into the activity feed. The feed
// uses its own isolated logger so request logs and activity stay apart.
type consumerService struct {
	pubSub   *gochannel.GoChannel
	topic    string
	activity logger.ILogger
	logger   logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topic string,
	activity logger.ILogger,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:   pubSub,
		topic:    topic,
		activity: activity,
		logger:   log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topic)
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
	var event publishedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("consumer", "undecodable event payload", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack poison messages so they don't loop forever.
		msg.Ack()
		return
	}

	cs.activity.Info(event.Type, "session activity", event.Payload)
	msg.Ack()
}
