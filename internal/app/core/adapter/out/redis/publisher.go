package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JoeShih716/go-money-transfer/internal/app/core/domain"
	"github.com/JoeShih716/go-money-transfer/internal/app/core/usecase"
)

const (
	// DefaultStream 預設 stream 名稱
	DefaultStream = "transaction.events"
	// EventTransactionCreated 交易提交事件
	EventTransactionCreated = "transaction.created"
)

// StreamAdder *redis.Client 中 StreamPublisher 需要的部分
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// Event 寫入 stream 的事件內容 (欄位 "event")
type Event struct {
	Type      string             `json:"type"`
	Timestamp time.Time          `json:"timestamp"`
	Data      domain.Transaction `json:"data"`
}

// StreamPublisher 將已提交的交易寫入 Redis Stream
type StreamPublisher struct {
	client StreamAdder
	stream string
	now    func() time.Time
}

// NewStreamPublisher 建立 StreamPublisher，stream 為空時使用 DefaultStream
func NewStreamPublisher(client StreamAdder, stream string) *StreamPublisher {
	if stream == "" {
		stream = DefaultStream
	}
	return &StreamPublisher{
		client: client,
		stream: stream,
		now:    time.Now,
	}
}

// PublishTransaction XADD 一筆 transaction.created 事件
func (p *StreamPublisher) PublishTransaction(ctx context.Context, tran domain.Transaction) error {
	event := Event{
		Type:      EventTransactionCreated,
		Timestamp: p.now().UTC(),
		Data:      tran,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"event":          eventJSON,
			"transaction_id": tran.ID,
		},
	}
	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to publish %s: %w", tran.ID, err)
	}
	return nil
}

var _ usecase.EventPublisher = (*StreamPublisher)(nil)
