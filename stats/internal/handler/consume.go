package handler

import (
	"context"
	"encoding/json"

	"github.com/Astemirdum/firebase-auth/pkg/kafka"
	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type saveEvent func(ctx context.Context, event kafka.EventAuth) error

type Consumer struct {
	save saveEvent
	log  *zap.Logger
}

func NewConsumer(save saveEvent, log *zap.Logger) *Consumer {
	return &Consumer{
		save: save,
		log:  log.Named("consumer"),
	}
}

func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			if err := consumer.handle(session.Context(), message); err != nil {
				// Offsets are cumulative: marking a later message would
				// commit past this one, so end the claim and let the
				// group resume from the last marked offset.
				return err
			}
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

// handle returns an error only when the message must be redelivered.
// Undecodable messages are skipped so they do not block the partition.
func (consumer *Consumer) handle(ctx context.Context, message *sarama.ConsumerMessage) error {
	var event kafka.EventAuth
	if err := json.Unmarshal(message.Value, &event); err != nil || event.ID == "" {
		consumer.log.Error("bad event", zap.ByteString("value", message.Value), zap.Error(err))
		return nil
	}
	if err := consumer.save(ctx, event); err != nil {
		consumer.log.Error("consumer.save", zap.String("id", event.ID), zap.Error(err))
		return errors.Wrapf(err, "save event %s at %s/%d/%d", event.ID, message.Topic, message.Partition, message.Offset)
	}
	consumer.log.Debug("Message claimed:",
		zap.String("id", event.ID),
		zap.Time("timestamp", message.Timestamp),
		zap.String("topic", message.Topic))
	return nil
}
