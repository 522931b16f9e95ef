package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("storage: not found")

// SessionRecord is the persisted form of a diagnostic session. Payload is an
// opaque JSON document owned by the caller; the remaining columns exist for
// listing and retention queries.
type SessionRecord struct {
	ID           string
	VehicleMake  string
	VehicleModel string
	VehicleYear  int
	VIN          string
	Diagnosis    string
	Confidence   float64
	Concluded    bool
	StartedAt    time.Time
	UpdatedAt    time.Time
	Payload      []byte
}

// SaveSession inserts or replaces a session record.
func (d *DB) SaveSession(ctx context.Context, rec SessionRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("storage: save session: empty id")
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO sessions (id, vehicle_make, vehicle_model, vehicle_year, vin,
			diagnosis, confidence, concluded, started_at, updated_at, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			diagnosis  = excluded.diagnosis,
			confidence = excluded.confidence,
			concluded  = excluded.concluded,
			updated_at = excluded.updated_at,
			payload    = excluded.payload
	`,
		rec.ID, rec.VehicleMake, rec.VehicleModel, rec.VehicleYear, rec.VIN,
		rec.Diagnosis, rec.Confidence, boolToInt(rec.Concluded),
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.UpdatedAt.UTC().Format(time.RFC3339Nano),
		rec.Payload,
	)
	if err != nil {
		return fmt.Errorf("storage: save session %s: %w", rec.ID, err)
	}
	return nil
}

// GetSession fetches one session by ID. Returns ErrNotFound when absent.
func (d *DB) GetSession(ctx context.Context, id string) (SessionRecord, error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT id, vehicle_make, vehicle_model, vehicle_year, vin,
			diagnosis, confidence, concluded, started_at, updated_at, payload
		FROM sessions WHERE id = ?
	`, id)

	rec, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SessionRecord{}, ErrNotFound
	}
	if err != nil {
		return SessionRecord{}, fmt.Errorf("storage: get session %s: %w", id, err)
	}
	return rec, nil
}

// ListSessions returns up to limit sessions, most recently updated first.
func (d *DB) ListSessions(ctx context.Context, limit, offset int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, vehicle_make, vehicle_model, vehicle_year, vin,
			diagnosis, confidence, concluded, started_at, updated_at, payload
		FROM sessions
		ORDER BY updated_at DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("storage: list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: list sessions: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DeleteSession removes one session. Deleting a missing session is not an
// error.
func (d *DB) DeleteSession(ctx context.Context, id string) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("storage: delete session %s: %w", id, err)
	}
	return nil
}

// PurgeSessionsBefore deletes concluded sessions last updated before the
// cutoff, returning the number removed. Open sessions are never purged.
func (d *DB) PurgeSessionsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := d.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE concluded = 1 AND updated_at < ?`,
		cutoff.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("storage: purge sessions: %w", err)
	}
	return res.RowsAffected()
}

// CountSessions returns the total number of stored sessions.
func (d *DB) CountSessions(ctx context.Context) (int64, error) {
	var n int64
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: count sessions: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (SessionRecord, error) {
	var rec SessionRecord
	var concluded int
	var started, updated string
	if err := row.Scan(&rec.ID, &rec.VehicleMake, &rec.VehicleModel, &rec.VehicleYear,
		&rec.VIN, &rec.Diagnosis, &rec.Confidence, &concluded,
		&started, &updated, &rec.Payload); err != nil {
		return SessionRecord{}, err
	}
	rec.Concluded = concluded != 0

	var err error
	if rec.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return SessionRecord{}, fmt.Errorf("parse started_at: %w", err)
	}
	if rec.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return SessionRecord{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
