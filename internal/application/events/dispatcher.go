package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/malikaashish/Inventory-Management-System/internal/application/ports"
	"github.com/malikaashish/Inventory-Management-System/pkg/logger"
)

// Dispatcher publica eventos de dominio después del commit.
// Un fallo de publicación se registra y nunca se propaga al caso de uso.
type Dispatcher struct {
	pub     ports.EventPublisher
	metrics ports.Metrics
	log     *logger.Logger
}

// NewDispatcher construye el dispatcher. pub nil = publicación deshabilitada.
func NewDispatcher(pub ports.EventPublisher, metrics ports.Metrics, log *logger.Logger) *Dispatcher {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{pub: pub, metrics: metrics, log: log}
}

// Publish completa ID y Timestamp y envía el evento.
func (d *Dispatcher) Publish(ctx context.Context, companyID, actorID, eventType, key string, payload any) {
	if d == nil || d.pub == nil {
		return
	}
	ev := ports.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		CompanyID: companyID,
		ActorID:   actorID,
		Key:       key,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
	if err := d.pub.Publish(context.WithoutCancel(ctx), ev); err != nil {
		d.metrics.EventPublishFailed(eventType)
		d.log.Warn().Err(err).
			Str("event_type", eventType).
			Str("event_id", ev.ID).
			Str("company_id", companyID).
			Msg("no se pudo publicar el evento")
	}
}
