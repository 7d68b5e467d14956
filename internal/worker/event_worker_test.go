package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Moussassoss/citizens-complaints/internal/domain"
	"github.com/Moussassoss/citizens-complaints/internal/events"
	"github.com/Moussassoss/citizens-complaints/internal/observability"
)

func TestEventHandlersRecordMetricsAndLogs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	RegisterEventHandlers(dispatcher, metrics, zap.New(core))

	ctx := context.Background()
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:     events.EventComplaintSubmitted,
		TicketID: "RW-45678901-0007",
		Payload:  events.ComplaintSubmittedPayload{Category: domain.CategoryWater, Agency: domain.AgencyWASAC},
	}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:     events.EventComplaintStatusUpdated,
		TicketID: "RW-45678901-0007",
		ActorID:  "3",
		Payload:  events.ComplaintStatusUpdatedPayload{OldStatus: domain.StatusPending, NewStatus: domain.StatusResolved},
	}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventComplaintSubmitted, Payload: "garbage"}))

	snap := metrics.Snapshot()
	assert.Equal(t, int64(1), snap.Submissions["WASAC"])
	assert.Equal(t, int64(1), snap.StatusUpdates["Resolved"])

	assert.Equal(t, 1, logs.FilterMessage("complaint submitted").Len())
	assert.Equal(t, 1, logs.FilterMessage("complaint status updated").Len())
	assert.Equal(t, 1, logs.FilterMessage("unexpected payload").Len())
}
