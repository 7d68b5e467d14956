package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var seen []string
	d.Subscribe(EventComplaintSubmitted, func(_ context.Context, e Event) error {
		seen = append(seen, "first:"+e.TicketID)
		return errors.New("boom")
	})
	d.Subscribe(EventComplaintSubmitted, func(_ context.Context, e Event) error {
		seen = append(seen, "second:"+e.TicketID)
		return nil
	})
	d.Subscribe(EventComplaintStatusUpdated, func(context.Context, Event) error {
		seen = append(seen, "unexpected")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventComplaintSubmitted, TicketID: "RW-00000001-0001"})
	assert.ErrorContains(t, err, "boom")
	assert.Equal(t, []string{"first:RW-00000001-0001", "second:RW-00000001-0001"}, seen)
}

func TestDispatcherWithoutSubscribers(t *testing.T) {
	assert.NoError(t, NewInMemoryDispatcher().Publish(context.Background(), Event{Type: EventComplaintStatusUpdated}))
}
