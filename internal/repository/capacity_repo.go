package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

var ErrCapacityNotFound = errors.New("retreat capacity not configured")

type RetreatCapacityRepository struct {
	db DBTX
}

func NewRetreatCapacityRepository(db DBTX) *RetreatCapacityRepository {
	return &RetreatCapacityRepository{db: db}
}

func (r *RetreatCapacityRepository) GetMaxCapacity(ctx context.Context, retreatName string) (int, error) {
	query := `
		SELECT max_capacity
		FROM retreat_capacity
		WHERE retreat_name = $1
	`
	var maxCapacity int
	if err := r.db.QueryRow(ctx, query, retreatName).Scan(&maxCapacity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrCapacityNotFound
		}
		return 0, err
	}
	return maxCapacity, nil
}

func (r *RetreatCapacityRepository) UpsertMaxCapacity(ctx context.Context, retreatName string, maxCapacity int) error {
	query := `
		INSERT INTO retreat_capacity (retreat_name, max_capacity)
		VALUES ($1, $2)
		ON CONFLICT (retreat_name)
		DO UPDATE SET max_capacity = EXCLUDED.max_capacity, updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, retreatName, maxCapacity)
	return err
}
