package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Producer публикует события доски в Kafka.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer создает продюсер и проверяет доступность брокера.
func NewProducer(broker, topic string) (*Producer, error) {
	conn, err := kafka.Dial("tcp", broker)
	if err != nil {
		return nil, fmt.Errorf("connect to kafka: %w", err)
	}
	defer conn.Close()

	writer := &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
	}

	return &Producer{writer: writer, topic: topic}, nil
}

// Close закрывает продюсер.
func (p *Producer) Close() error {
	return p.writer.Close()
}

// PublishBoardEvent публикует событие, присваивая ему ID и время.
// Ключ сообщения - бизнес-дата: события одного дня попадают в одну
// партицию.
func (p *Producer) PublishBoardEvent(ctx context.Context, event BoardEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal board event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.BoardDate),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("write board event: %w", err)
	}

	return nil
}
