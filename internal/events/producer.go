// Package events publishes task lifecycle events to Kafka. The stream is an
// audit trail, not a sync channel: emission is fire-and-forget and a broker
// failure never fails the mutation that triggered it.
package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gofrs/uuid"
	"github.com/segmentio/kafka-go"
)

type TaskEventMessage struct {
	Action     string    `json:"action"`
	TaskID     string    `json:"task_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// TaskEvent satisfies services.TaskEventSink.
func (p *Producer) TaskEvent(ctx context.Context, action string, taskID uuid.UUID) {
	payload, err := json.Marshal(TaskEventMessage{
		Action:     action,
		TaskID:     taskID.String(),
		OccurredAt: time.Now(),
	})
	if err != nil {
		log.Println("failed to marshal task event:", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(taskID.String()),
		Value: payload,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		log.Println("failed to write kafka message:", err)
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
