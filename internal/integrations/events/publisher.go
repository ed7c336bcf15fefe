package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Publisher публикует события встреч в kafka.
// Топик сообщения совпадает с типом события, ключ - ID консультанта,
// поэтому события одного консультанта попадают в одну партицию
type Publisher struct {
	writer       MessageWriter
	writeTimeout time.Duration
	log          Logger
	now          func() time.Time
}

// NewPublisher создаёт publisher. Без брокеров возвращается publisher, который ничего не отправляет
func NewPublisher(brokers string, writeTimeout time.Duration, log Logger) *Publisher {
	addrs := SplitBrokers(brokers)
	if len(addrs) == 0 {
		log.Warn("events publisher disabled (no kafka brokers configured)")
		return NewPublisherWithWriter(nil, writeTimeout, log)
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(addrs...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           writeTimeout,
	}
	return NewPublisherWithWriter(writer, writeTimeout, log)
}

// NewPublisherWithWriter создаёт publisher поверх произвольного writer (nil - отправка отключена)
func NewPublisherWithWriter(writer MessageWriter, writeTimeout time.Duration, log Logger) *Publisher {
	return &Publisher{
		writer:       writer,
		writeTimeout: writeTimeout,
		log:          log,
		now:          time.Now,
	}
}

// Enabled возвращает true, если publisher подключен к брокеру
func (p *Publisher) Enabled() bool {
	return p.writer != nil
}

// Publish отправляет событие. ID и время события проставляются, если не заданы
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	if p.writer == nil {
		return nil
	}

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = p.now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMarshal, err)
	}

	msg := kafka.Message{
		Topic: event.Type,
		Key:   []byte(event.AdvisorID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.ID)},
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	if p.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.writeTimeout)
		defer cancel()
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: type=%s appointment=%s: %w", ErrPublish, event.Type, event.AppointmentID, err)
	}

	p.log.Info("Published event %s id=%s appointment=%s", event.Type, event.ID, event.AppointmentID)
	return nil
}

// Close закрывает соединение с брокером
func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// SplitBrokers разбирает список брокеров через запятую
func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
