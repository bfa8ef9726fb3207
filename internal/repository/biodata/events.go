// internal/repository/biodata/events.go
package biodata

import (
	"context"
	"encoding/json"
	"time"

	"biodata-service/internal/common/logger"
	"biodata-service/internal/models"

	"github.com/redis/go-redis/v9"
)

// EventPublisher announces successful writes on a Redis pub/sub channel.
// Reads pass straight through. A failed publish never fails the write.
type EventPublisher struct {
	next    Repository
	client  redis.UniversalClient
	channel string
	logger  logger.Logger
	now     func() time.Time
}

func NewEventPublisher(next Repository, client redis.UniversalClient, channel string, log logger.Logger) *EventPublisher {
	return &EventPublisher{
		next:    next,
		client:  client,
		channel: channel,
		logger:  log.WithFields(map[string]interface{}{"channel": channel}),
		now:     time.Now,
	}
}

func (p *EventPublisher) FindAll(ctx context.Context) ([]models.BiodataRecord, error) {
	return p.next.FindAll(ctx)
}

func (p *EventPublisher) FindByApplicationNumber(ctx context.Context, value interface{}) (models.BiodataRecord, error) {
	return p.next.FindByApplicationNumber(ctx, value)
}

func (p *EventPublisher) FindByID(ctx context.Context, id string) (models.BiodataRecord, error) {
	return p.next.FindByID(ctx, id)
}

func (p *EventPublisher) Create(ctx context.Context, fields models.BiodataRecord) (string, error) {
	id, err := p.next.Create(ctx, fields)
	if err == nil {
		p.publish(ctx, models.EventCreated, id)
	}
	return id, err
}

func (p *EventPublisher) UpdateByID(ctx context.Context, id string, fields models.BiodataRecord) error {
	err := p.next.UpdateByID(ctx, id, fields)
	if err == nil {
		p.publish(ctx, models.EventUpdated, id)
	}
	return err
}

func (p *EventPublisher) DeleteByID(ctx context.Context, id string) error {
	err := p.next.DeleteByID(ctx, id)
	if err == nil {
		p.publish(ctx, models.EventDeleted, id)
	}
	return err
}

func (p *EventPublisher) Ping(ctx context.Context) error {
	return p.next.Ping(ctx)
}

func (p *EventPublisher) publish(ctx context.Context, eventType models.EventType, id string) {
	payload, err := json.Marshal(models.RecordEvent{
		Type: eventType,
		ID:   id,
		Time: p.now().UTC(),
	})
	if err != nil {
		p.logger.Warn("failed to encode record event", map[string]interface{}{"error": err, "id": id})
		return
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		logger.FromContext(ctx, p.logger).Warn("failed to publish record event", map[string]interface{}{
			"error": err,
			"id":    id,
			"type":  string(eventType),
		})
	}
}
