// Package repo contains all database access logic for the trip planner.
// Trips are stored as whole JSON documents keyed by user; the itinerary
// engine owns their internal consistency, so no business logic lives here,
// only SQL and type mapping.
package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/trip-planner/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test. Begin on a
// pgx.Tx opens a savepoint, so SaveTrips nests cleanly inside a test tx.
type db interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for a user's trip list.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// LoadTrips returns the user's trips in their saved order.
	// Returns domain.ErrNotFound if the user has never saved any trips.
	LoadTrips(ctx context.Context, userID string) ([]domain.Trip, error)

	// SaveTrips atomically replaces the user's trip list.
	SaveTrips(ctx context.Context, userID string, trips []domain.Trip) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// LoadTrips reads every trip document for userID ordered by position.
func (r *pgTripRepo) LoadTrips(ctx context.Context, userID string) ([]domain.Trip, error) {
	const q = `
		SELECT document
		FROM trip_documents
		WHERE user_id = @user_id
		ORDER BY position`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.LoadTrips: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.LoadTrips: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.LoadTrips: rows: %w", err)
	}

	if len(trips) == 0 {
		return nil, fmt.Errorf("repo.TripRepo.LoadTrips: %w", domain.ErrNotFound)
	}
	return trips, nil
}

// SaveTrips replaces all of the user's rows inside one transaction, so a
// reader never sees a half-written list.
func (r *pgTripRepo) SaveTrips(ctx context.Context, userID string, trips []domain.Trip) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.SaveTrips: begin: %w", err)
	}
	// Rollback after Commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	const del = `DELETE FROM trip_documents WHERE user_id = @user_id`
	if _, err := tx.Exec(ctx, del, pgx.NamedArgs{"user_id": userID}); err != nil {
		return fmt.Errorf("repo.TripRepo.SaveTrips: delete: %w", err)
	}

	const ins = `
		INSERT INTO trip_documents (user_id, trip_id, position, name, document)
		VALUES (@user_id, @trip_id, @position, @name, @document)`

	batch := &pgx.Batch{}
	for i, t := range trips {
		doc, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("repo.TripRepo.SaveTrips: encode trip %s: %w", t.ID, err)
		}
		batch.Queue(ins, pgx.NamedArgs{
			"user_id":  userID,
			"trip_id":  t.ID,
			"position": i,
			"name":     t.Name,
			"document": doc,
		})
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("repo.TripRepo.SaveTrips: insert: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.TripRepo.SaveTrips: commit: %w", err)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip decodes a JSONB trip document into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var raw []byte
	if err := s.Scan(&raw); err != nil {
		return domain.Trip{}, err
	}

	var t domain.Trip
	if err := json.Unmarshal(raw, &t); err != nil {
		return domain.Trip{}, fmt.Errorf("decode document: %w", err)
	}
	if t.Checkpoints == nil {
		t.Checkpoints = []domain.Checkpoint{}
	}
	if t.Segments == nil {
		t.Segments = []domain.RouteSegment{}
	}
	return t, nil
}
