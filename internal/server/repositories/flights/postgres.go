package flights

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/flightbooking/internal/common"
	"github.com/dmitrijs2005/flightbooking/internal/dbx"
	"github.com/dmitrijs2005/flightbooking/internal/server/models"
)

// PostgresRepository implements flight storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts flight. ID and UserID must already be set.
func (r *PostgresRepository) Create(ctx context.Context, flight *models.Flight) error {
	query := `
		INSERT INTO flights (id, user_id, aircraft, flight_number, std, sta, departure, destination)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		flight.ID, flight.UserID, flight.Aircraft, flight.FlightNumber,
		flight.Schedule.STD, flight.Schedule.STA, flight.Departure, flight.Destination)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// FindAllByUser returns all flights owned by userID in no particular order.
func (r *PostgresRepository) FindAllByUser(ctx context.Context, userID string) ([]*models.Flight, error) {
	query := `
		SELECT id, user_id, aircraft, flight_number, std, sta, departure, destination FROM flights
		WHERE user_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select flights: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Flight, 0)
	for rows.Next() {
		item, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// FindByIDAndUser returns common.ErrorNotFound when no flight matches both id and userID.
func (r *PostgresRepository) FindByIDAndUser(ctx context.Context, id string, userID string) (*models.Flight, error) {
	query := `
		SELECT id, user_id, aircraft, flight_number, std, sta, departure, destination FROM flights
		WHERE id = $1 AND user_id = $2
	`
	item, err := scanFlight(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

// UpdateByIDAndUser replaces every mutable field and returns the stored row.
func (r *PostgresRepository) UpdateByIDAndUser(ctx context.Context, id string, userID string, p models.FlightPayload) (*models.Flight, error) {
	query := `
		UPDATE flights SET
			aircraft = $3,
			flight_number = $4,
			std = $5,
			sta = $6,
			departure = $7,
			destination = $8
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, aircraft, flight_number, std, sta, departure, destination
	`
	item, err := scanFlight(r.db.QueryRowContext(ctx, query,
		id, userID, p.Aircraft, p.FlightNumber, p.Schedule.STD, p.Schedule.STA, p.Departure, p.Destination))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

// DeleteByIDAndUser returns common.ErrorNotFound when nothing was deleted.
func (r *PostgresRepository) DeleteByIDAndUser(ctx context.Context, id string, userID string) error {
	query := `
		DELETE FROM flights
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFlight(s scanner) (*models.Flight, error) {
	var f models.Flight
	if err := s.Scan(
		&f.ID, &f.UserID, &f.Aircraft, &f.FlightNumber,
		&f.Schedule.STD, &f.Schedule.STA, &f.Departure, &f.Destination,
	); err != nil {
		return nil, err
	}
	return &f, nil
}
