package events

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordfreq/internal/port"
)

func TestBus_PublishOrderAndUnsubscribe(t *testing.T) {
	bus := NewBus()

	var got []string
	bus.Subscribe(func(ev port.Event) { got = append(got, "first:"+ev.Corpus) })
	cancel := bus.Subscribe(func(ev port.Event) { got = append(got, "second:"+ev.Corpus) })

	bus.Publish(port.EventCorpusAdded, "a")
	cancel()
	bus.Publish(port.EventCorpusRemoved, "b")

	assert.Equal(t, []string{"first:a", "second:a", "first:b"}, got)
}

func TestBus_EventFields(t *testing.T) {
	bus := NewBus()

	var events []port.Event
	bus.Subscribe(func(ev port.Event) { events = append(events, ev) })
	bus.Publish(port.EventReportUpdated, "c")
	bus.Publish(port.EventReportUpdated, "c")

	require.Len(t, events, 2)
	assert.Equal(t, port.EventReportUpdated, events[0].Kind)
	assert.False(t, events[0].At.IsZero())
	_, err := uuid.Parse(events[0].ID)
	assert.NoError(t, err)
	assert.NotEqual(t, events[0].ID, events[1].ID)
}
