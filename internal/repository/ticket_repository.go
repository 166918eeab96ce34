package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mistatas/soporte-service/internal/domain"
)

const ticketColumns = `id, client_type, beneficiary_name, beneficiary_rut, beneficiary_phone,
               beneficiary_address, service_type, scheduled_date, scheduled_time,
               assigned_technician, status, description, notes, coordination_contact,
               history, closure_details, created_at, updated_at`

// TicketFilter captures list query parameters.
type TicketFilter struct {
	SearchTerm    *string
	Status        *domain.TicketStatus
	ServiceType   *string
	ScheduledDate *string
	Technician    *string
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context) ([]domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (client_type, beneficiary_name, beneficiary_rut, beneficiary_phone,
            beneficiary_address, service_type, scheduled_date, scheduled_time,
            assigned_technician, status, description, notes, coordination_contact,
            history, closure_details)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.ClientType,
		ticket.Beneficiary.Name,
		ticket.Beneficiary.RUT,
		ticket.Beneficiary.Phone,
		ticket.Beneficiary.Address,
		ticket.ServiceType,
		ticket.ScheduledDate,
		ticket.ScheduledTime,
		ticket.AssignedTechnician,
		ticket.Status,
		ticket.Description,
		ticket.Notes,
		ticket.CoordinationContact,
		ticket.History,
		ticket.Closure,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET client_type=$1, beneficiary_name=$2, beneficiary_rut=$3,
            beneficiary_phone=$4, beneficiary_address=$5, service_type=$6,
            scheduled_date=$7, scheduled_time=$8, assigned_technician=$9, status=$10,
            description=$11, notes=$12, coordination_contact=$13, history=$14,
            closure_details=$15, updated_at=NOW()
        WHERE id=$16`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.ClientType,
		ticket.Beneficiary.Name,
		ticket.Beneficiary.RUT,
		ticket.Beneficiary.Phone,
		ticket.Beneficiary.Address,
		ticket.ServiceType,
		ticket.ScheduledDate,
		ticket.ScheduledTime,
		ticket.AssignedTechnician,
		ticket.Status,
		ticket.Description,
		ticket.Notes,
		ticket.CoordinationContact,
		ticket.History,
		ticket.Closure,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTicketRow(row)
}

func (r *ticketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	return r.ListWithFilter(ctx, TicketFilter{})
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	base := `SELECT ` + ticketColumns + ` FROM tickets`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.ServiceType != nil {
		args = append(args, *filter.ServiceType)
		clauses = append(clauses, fmt.Sprintf("service_type=$%d", len(args)))
	}
	if filter.ScheduledDate != nil {
		args = append(args, *filter.ScheduledDate)
		clauses = append(clauses, fmt.Sprintf("scheduled_date=$%d", len(args)))
	}
	if filter.Technician != nil {
		args = append(args, *filter.Technician)
		clauses = append(clauses, fmt.Sprintf("assigned_technician=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(beneficiary_name) LIKE %s OR LOWER(beneficiary_rut) LIKE %s OR LOWER(service_type) LIKE %s OR LOWER(assigned_technician) LIKE %s)",
			placeholder, placeholder, placeholder, placeholder))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY scheduled_date ASC, created_at ASC`,
		base, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTicketRow(row pgx.Row) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := row.Scan(
		&ticket.ID,
		&ticket.ClientType,
		&ticket.Beneficiary.Name,
		&ticket.Beneficiary.RUT,
		&ticket.Beneficiary.Phone,
		&ticket.Beneficiary.Address,
		&ticket.ServiceType,
		&ticket.ScheduledDate,
		&ticket.ScheduledTime,
		&ticket.AssignedTechnician,
		&ticket.Status,
		&ticket.Description,
		&ticket.Notes,
		&ticket.CoordinationContact,
		&ticket.History,
		&ticket.Closure,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		ticket, err := scanTicketRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}
