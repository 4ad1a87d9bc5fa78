// Package events 發布市集領域事件（商品上架、建立交易）
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"campus-market/internal/worker"

	"github.com/rs/zerolog/log"
)

const (
	TypeProductCreated     = "product.created"
	TypeTransactionCreated = "transaction.created"
)

// Event 是送往 broker 的一筆訊息，Key 例如 product.created.12
type Event struct {
	Type       string          `json:"type"`
	Key        string          `json:"key"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

var now = time.Now

// New 以 payload 的 JSON 建立事件
func New(typ string, id int, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("events.New: %w", err)
	}
	return Event{
		Type:       typ,
		Key:        fmt.Sprintf("%s.%d", typ, id),
		OccurredAt: now().UTC(),
		Payload:    raw,
	}, nil
}

// Publisher 將事件同步寫到外部系統
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Emitter 由 handler 使用，不等待結果
type Emitter interface {
	Emit(e Event)
}

// Discard 丟棄所有事件
type Discard struct{}

func (Discard) Emit(Event) {}

// LogPublisher 只寫 log，未設定 KAFKA_BROKERS 時使用
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, e Event) error {
	log.Info().Str("type", e.Type).Str("key", e.Key).RawJSON("payload", e.Payload).Msg("event")
	return nil
}

func (LogPublisher) Close() error { return nil }

// Dispatcher 透過 worker pool 非同步發布，失敗只記錄
type Dispatcher struct {
	pub     Publisher
	pool    worker.Pool
	timeout time.Duration
}

func NewDispatcher(pub Publisher, pool worker.Pool, timeout time.Duration) *Dispatcher {
	return &Dispatcher{pub: pub, pool: pool, timeout: timeout}
}

func (d *Dispatcher) Emit(e Event) {
	err := d.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := d.pub.Publish(ctx, e); err != nil {
			log.Error().Err(err).Str("key", e.Key).Msg("publish event failed")
		}
	})
	if err != nil {
		log.Warn().Err(err).Str("key", e.Key).Msg("event dropped")
	}
}
