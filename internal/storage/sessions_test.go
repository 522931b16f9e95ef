package storage

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenchworks-ai/shindan/migrations"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()
	db, err := New(ctx, ":memory:", slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.RunMigrations(ctx, migrations.FS))
	return db
}

func sampleRecord(id string) SessionRecord {
	return SessionRecord{
		ID:           id,
		VehicleMake:  "Toyota",
		VehicleModel: "Camry",
		VehicleYear:  2015,
		Diagnosis:    "thermostat_stuck_open",
		Confidence:   0.72,
		StartedAt:    time.Now().UTC().Add(-time.Hour),
		UpdatedAt:    time.Now().UTC(),
		Payload:      []byte(`{"observations":[]}`),
	}
}

func TestSaveAndGetSession(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	rec := sampleRecord("s-1")
	require.NoError(t, db.SaveSession(ctx, rec))

	got, err := db.GetSession(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.VehicleMake, got.VehicleMake)
	assert.Equal(t, rec.Diagnosis, got.Diagnosis)
	assert.InDelta(t, rec.Confidence, got.Confidence, 1e-9)
	assert.False(t, got.Concluded)
	assert.JSONEq(t, `{"observations":[]}`, string(got.Payload))
}

func TestSaveSessionUpsert(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	rec := sampleRecord("s-1")
	require.NoError(t, db.SaveSession(ctx, rec))

	rec.Diagnosis = "vacuum_leak"
	rec.Concluded = true
	rec.Confidence = 0.91
	require.NoError(t, db.SaveSession(ctx, rec))

	got, err := db.GetSession(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "vacuum_leak", got.Diagnosis)
	assert.True(t, got.Concluded)

	n, err := db.CountSessions(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestSaveSessionRejectsEmptyID(t *testing.T) {
	db := newTestDB(t)
	assert.Error(t, db.SaveSession(context.Background(), SessionRecord{}))
}

func TestGetSessionNotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := db.GetSession(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListSessionsOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	old := sampleRecord("s-old")
	old.UpdatedAt = time.Now().UTC().Add(-2 * time.Hour)
	recent := sampleRecord("s-new")
	recent.UpdatedAt = time.Now().UTC()
	require.NoError(t, db.SaveSession(ctx, old))
	require.NoError(t, db.SaveSession(ctx, recent))

	list, err := db.ListSessions(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "s-new", list[0].ID)
	assert.Equal(t, "s-old", list[1].ID)

	page, err := db.ListSessions(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "s-old", page[0].ID)
}

func TestDeleteSession(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.SaveSession(ctx, sampleRecord("s-1")))
	require.NoError(t, db.DeleteSession(ctx, "s-1"))
	_, err := db.GetSession(ctx, "s-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing session is not an error.
	assert.NoError(t, db.DeleteSession(ctx, "s-1"))
}

func TestPurgeSessionsBefore(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	stale := sampleRecord("s-stale")
	stale.Concluded = true
	stale.UpdatedAt = time.Now().UTC().Add(-100 * 24 * time.Hour)

	open := sampleRecord("s-open")
	open.UpdatedAt = stale.UpdatedAt // old but not concluded

	fresh := sampleRecord("s-fresh")
	fresh.Concluded = true

	for _, rec := range []SessionRecord{stale, open, fresh} {
		require.NoError(t, db.SaveSession(ctx, rec))
	}

	n, err := db.PurgeSessionsBefore(ctx, time.Now().UTC().Add(-90*24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = db.GetSession(ctx, "s-stale")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = db.GetSession(ctx, "s-open")
	assert.NoError(t, err)
	_, err = db.GetSession(ctx, "s-fresh")
	assert.NoError(t, err)
}

func TestMigrationsIdempotent(t *testing.T) {
	db := newTestDB(t)
	// Running again must be a no-op.
	require.NoError(t, db.RunMigrations(context.Background(), migrations.FS))
}
