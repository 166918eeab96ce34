package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mistatas/soporte-service/internal/domain"
)

// AmaiaFilter captures list parameters for the imported dataset.
type AmaiaFilter struct {
	SearchTerm *string
	Priority   *string
	Commune    *string
	Group      *string
}

// AmaiaTicketRepository stores the spreadsheet-imported Amaia dataset. Each
// import replaces the previous one wholesale.
type AmaiaTicketRepository interface {
	ReplaceAll(ctx context.Context, tickets []domain.AmaiaTicket) error
	ListWithFilter(ctx context.Context, filter AmaiaFilter) ([]domain.AmaiaTicket, error)
}

type amaiaTicketRepository struct {
	pool *pgxpool.Pool
}

// NewAmaiaTicketRepository returns a Postgres-backed implementation.
func NewAmaiaTicketRepository(pool *pgxpool.Pool) AmaiaTicketRepository {
	return &amaiaTicketRepository{pool: pool}
}

func (r *amaiaTicketRepository) ReplaceAll(ctx context.Context, tickets []domain.AmaiaTicket) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM amaia_tickets`); err != nil {
		return err
	}

	const query = `
        INSERT INTO amaia_tickets (id, reference, beneficiary, type, priority, status,
            opened_at, closed_at, commune, grp)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	for _, ticket := range tickets {
		if _, err := tx.Exec(ctx, query,
			ticket.ID,
			ticket.Reference,
			ticket.Beneficiary,
			ticket.Type,
			ticket.Priority,
			ticket.Status,
			ticket.OpenedAt,
			ticket.ClosedAt,
			ticket.Commune,
			ticket.Group,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *amaiaTicketRepository) ListWithFilter(ctx context.Context, filter AmaiaFilter) ([]domain.AmaiaTicket, error) {
	base := `SELECT id, reference, beneficiary, type, priority, status, opened_at,
                    closed_at, commune, grp, imported_at
             FROM amaia_tickets`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		clauses = append(clauses, fmt.Sprintf("priority=$%d", len(args)))
	}
	if filter.Commune != nil {
		args = append(args, *filter.Commune)
		clauses = append(clauses, fmt.Sprintf("commune=$%d", len(args)))
	}
	if filter.Group != nil {
		args = append(args, *filter.Group)
		clauses = append(clauses, fmt.Sprintf("grp=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(id) LIKE %s OR LOWER(reference) LIKE %s OR LOWER(beneficiary) LIKE %s)",
			placeholder, placeholder, placeholder))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY imported_at ASC, id ASC`,
		base, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AmaiaTicket
	for rows.Next() {
		var ticket domain.AmaiaTicket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Reference,
			&ticket.Beneficiary,
			&ticket.Type,
			&ticket.Priority,
			&ticket.Status,
			&ticket.OpenedAt,
			&ticket.ClosedAt,
			&ticket.Commune,
			&ticket.Group,
			&ticket.ImportedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
