package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftlab/ampmap/internal/config"
	"github.com/driftlab/ampmap/internal/event"
)

func testConf() config.ServerConf {
	return config.ServerConf{
		MapWorkers:   2,
		QueueDepth:   16,
		MapTimeoutMs: 2000,
		MaxBatchSize: 10,
	}
}

func testEngine(t *testing.T, s *config.Settings) *Engine {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	e := New(ctx, s, testConf())
	t.Cleanup(func() {
		cancel()
		e.Shutdown()
	})
	return e
}

func trackEnvelope(name string) *event.Envelope {
	return &event.Envelope{
		MessageID:   "msg-1",
		Type:        event.TypeTrack,
		Event:       name,
		UserID:      "user-1",
		AnonymousID: "anon-1",
		Timestamp:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestMapSync(t *testing.T) {
	e := testEngine(t, &config.Settings{})

	res, err := e.MapSync(context.Background(), trackEnvelope("Clicked"), nil)
	require.NoError(t, err)
	assert.Equal(t, "msg-1", res.EventID)
	assert.Equal(t, "track", res.EventType)
	assert.False(t, res.Filtered)
	require.Len(t, res.Payloads, 1)
	assert.Equal(t, "Clicked", res.Payloads[0]["event_type"])
}

func TestMapSyncFilteredPage(t *testing.T) {
	e := testEngine(t, &config.Settings{})

	res, err := e.MapSync(context.Background(), &event.Envelope{
		MessageID: "msg-2",
		Type:      event.TypePage,
		Name:      "Index",
	}, nil)
	require.NoError(t, err)
	assert.True(t, res.Filtered)
	assert.Empty(t, res.Payloads)
}

func TestMapSyncSettingsOverride(t *testing.T) {
	e := testEngine(t, &config.Settings{})

	override := &config.Settings{TrackNamedPages: true}
	res, err := e.MapSync(context.Background(), &event.Envelope{
		MessageID: "msg-3",
		Type:      event.TypePage,
		Name:      "Index",
	}, override)
	require.NoError(t, err)
	assert.False(t, res.Filtered)
	require.Len(t, res.Payloads, 1)
	assert.Equal(t, "Viewed Index Page", res.Payloads[0]["event_type"])
}

func TestSwapSettings(t *testing.T) {
	e := testEngine(t, &config.Settings{})

	res, err := e.MapSync(context.Background(), &event.Envelope{Type: event.TypePage, Name: "Index"}, nil)
	require.NoError(t, err)
	assert.True(t, res.Filtered)

	e.SwapSettings(&config.Settings{TrackAllPages: true})
	res, err = e.MapSync(context.Background(), &event.Envelope{Type: event.TypePage, Name: "Index"}, nil)
	require.NoError(t, err)
	assert.False(t, res.Filtered)
}

func TestMapAsync(t *testing.T) {
	e := testEngine(t, &config.Settings{})
	assert.True(t, e.MapAsync(trackEnvelope("Background"), nil))
}

func TestQueueUtilization(t *testing.T) {
	e := testEngine(t, &config.Settings{})
	util := e.QueueUtilization()
	assert.GreaterOrEqual(t, util, 0.0)
	assert.LessOrEqual(t, util, 1.0)
}
