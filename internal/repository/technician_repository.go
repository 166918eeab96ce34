package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mistatas/soporte-service/internal/domain"
)

// TechnicianRepository exposes the fixed technician roster.
type TechnicianRepository interface {
	ListActive(ctx context.Context) ([]domain.Technician, error)
}

type technicianRepository struct {
	pool *pgxpool.Pool
}

// NewTechnicianRepository returns a Postgres-backed implementation.
func NewTechnicianRepository(pool *pgxpool.Pool) TechnicianRepository {
	return &technicianRepository{pool: pool}
}

func (r *technicianRepository) ListActive(ctx context.Context) ([]domain.Technician, error) {
	const query = `
        SELECT id, name, active, created_at
        FROM technicians WHERE active ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Technician
	for rows.Next() {
		var tech domain.Technician
		if err := rows.Scan(&tech.ID, &tech.Name, &tech.Active, &tech.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, tech)
	}
	return result, rows.Err()
}
