package telemetry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/blockrooms/engine"
	"github.com/lixenwraith/blockrooms/event"
	"github.com/lixenwraith/blockrooms/grid"
)

func TestSinkRoundTrip(t *testing.T) {
	dir := t.TempDir()
	clock := engine.NewMockTimeProvider(time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC))
	w := NewWriter(dir, "events", clock.Now)
	bus := event.NewBus(clock.Now)
	sink := NewSink(w, bus, nil)

	bus.SetFrame(12)
	bus.Publish(event.EventAmmoChanged, &event.AmmoPayload{Magazine: 5, Reserve: 10})
	bus.Publish(event.EventDryFire, nil)
	bus.Publish(event.EventTxFailed, &event.TxPayload{Seq: 3, EncDX: grid.DirPositive, RawDX: 1, Error: "reverted"})
	require.NoError(t, w.Close())

	written, failed := sink.Stats()
	assert.Equal(t, int64(3), written)
	assert.Zero(t, failed)

	path := filepath.Join(dir, "events-20260301-10.jsonl.zst")
	assert.Equal(t, path, w.Path(clock.Now()))
	entries, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, event.EventAmmoChanged, entries[0].Type)
	assert.Equal(t, int64(12), entries[0].Frame)
	assert.Equal(t, &event.AmmoPayload{Magazine: 5, Reserve: 10}, entries[0].Payload)

	assert.Equal(t, event.EventDryFire, entries[1].Type)
	assert.Nil(t, entries[1].Payload)

	tx, ok := entries[2].Payload.(*event.TxPayload)
	require.True(t, ok)
	assert.Equal(t, uint64(3), tx.Seq)
	assert.Equal(t, grid.DirPositive, tx.EncDX)
	assert.Equal(t, "reverted", tx.Error)
}

func TestHourlyRotation(t *testing.T) {
	dir := t.TempDir()
	clock := engine.NewMockTimeProvider(time.Date(2026, 3, 1, 10, 59, 0, 0, time.UTC))
	w := NewWriter(dir, "events", clock.Now)

	require.NoError(t, w.Write(Record{Type: "EventDryFire"}))
	clock.Advance(2 * time.Minute)
	require.NoError(t, w.Write(Record{Type: "EventDryFire"}))
	require.NoError(t, w.Write(Record{Type: "EventDryFire"}))
	require.NoError(t, w.Close())

	files, err := filepath.Glob(filepath.Join(dir, "events-*.jsonl.zst"))
	require.NoError(t, err)
	assert.Len(t, files, 2)

	first, err := ReadFile(filepath.Join(dir, "events-20260301-10.jsonl.zst"))
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := ReadFile(filepath.Join(dir, "events-20260301-11.jsonl.zst"))
	require.NoError(t, err)
	assert.Len(t, second, 2)
}

func TestAppendAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	clock := engine.NewMockTimeProvider(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	for i := 0; i < 2; i++ {
		w := NewWriter(dir, "events", clock.Now)
		require.NoError(t, w.Write(Record{Type: "EventPickup"}))
		require.NoError(t, w.Close())
	}

	entries, err := ReadFile(filepath.Join(dir, "events-20260301-10.jsonl.zst"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestUnknownTypeTolerated(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "events", nil)
	require.NoError(t, w.Write(Record{Type: "EventFromTheFuture", Payload: []byte(`{"x":1}`)}))
	path := w.Path(time.Now())
	require.NoError(t, w.Close())

	entries, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, event.EventNone, entries[0].Type)
	assert.Nil(t, entries[0].Payload)
}

func TestServiceDisabledWithoutDir(t *testing.T) {
	svc := NewService()
	require.NoError(t, svc.Init(&Options{}))
	assert.False(t, svc.Enabled())
	assert.Nil(t, svc.Attach(event.NewBus(time.Now)))
	assert.NoError(t, svc.Stop())

	dir := t.TempDir()
	svc = NewService()
	require.NoError(t, svc.Init(&Options{Dir: dir}))
	bus := event.NewBus(time.Now)
	require.NotNil(t, svc.Attach(bus))
	bus.Publish(event.EventPhaseChanged, &event.PhasePayload{Phase: "active"})
	require.NoError(t, svc.Stop())

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}
