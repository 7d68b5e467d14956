package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/Moussassoss/citizens-complaints/internal/events"
	"github.com/Moussassoss/citizens-complaints/internal/observability"
)

// ComplaintEventWorker turns lifecycle events into counters and audit log lines.
type ComplaintEventWorker struct {
	metrics *observability.Metrics
	logger  *zap.Logger
}

// RegisterEventHandlers subscribes a ComplaintEventWorker to dispatcher.
func RegisterEventHandlers(dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) *ComplaintEventWorker {
	w := &ComplaintEventWorker{metrics: metrics, logger: logger.Named("events")}
	if dispatcher == nil {
		return w
	}
	dispatcher.Subscribe(events.EventComplaintSubmitted, w.handleSubmitted)
	dispatcher.Subscribe(events.EventComplaintStatusUpdated, w.handleStatusUpdated)
	return w
}

func (w *ComplaintEventWorker) handleSubmitted(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ComplaintSubmittedPayload)
	if !ok {
		w.logger.Warn("unexpected payload", zap.String("event_type", string(event.Type)))
		return nil
	}
	w.metrics.RecordSubmission(string(payload.Agency))
	w.logger.Info("complaint submitted",
		zap.String("event_id", event.ID),
		zap.String("ticket_id", event.TicketID),
		zap.String("category", string(payload.Category)),
		zap.String("agency", string(payload.Agency)),
		zap.String("province", payload.Province))
	return nil
}

func (w *ComplaintEventWorker) handleStatusUpdated(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ComplaintStatusUpdatedPayload)
	if !ok {
		w.logger.Warn("unexpected payload", zap.String("event_type", string(event.Type)))
		return nil
	}
	w.metrics.RecordStatusUpdate(string(payload.NewStatus))
	w.logger.Info("complaint status updated",
		zap.String("event_id", event.ID),
		zap.String("ticket_id", event.TicketID),
		zap.String("actor_id", event.ActorID),
		zap.String("actor_agency", string(payload.ActorAgency)),
		zap.String("old_status", string(payload.OldStatus)),
		zap.String("new_status", string(payload.NewStatus)),
		zap.Bool("response_changed", payload.ResponseChanged))
	return nil
}
