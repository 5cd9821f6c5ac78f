package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/leavehub/leave-backend-go/internal/domain/balance"
	"github.com/leavehub/leave-backend-go/internal/pkg/database"
)

const balanceRequestColumns = `br.id, br.employee_id, br.leave_type, br.requested_amount, br.reason, br.status,
	br.notes, br.approved_by, br.approved_at, br.created_at, br.updated_at`

type balanceRequestRepositoryImpl struct {
	db *database.DB
}

func NewBalanceRequestRepository(db *database.DB) balance.RequestRepository {
	return &balanceRequestRepositoryImpl{db: db}
}

func balanceRequestDest(req *balance.Request) []interface{} {
	return []interface{}{
		&req.ID,
		&req.EmployeeID,
		&req.LeaveType,
		&req.RequestedAmount,
		&req.Reason,
		&req.Status,
		&req.Notes,
		&req.ApprovedBy,
		&req.ApprovedAt,
		&req.CreatedAt,
		&req.UpdatedAt,
	}
}

func scanBalanceRequest(row pgx.Row) (balance.Request, error) {
	var req balance.Request
	err := row.Scan(balanceRequestDest(&req)...)
	return req, err
}

// Create implements balance.RequestRepository.
func (r *balanceRequestRepositoryImpl) Create(ctx context.Context, req balance.Request) (balance.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO balance_requests AS br (id, employee_id, leave_type, requested_amount, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + balanceRequestColumns

	created, err := scanBalanceRequest(q.QueryRow(ctx, query,
		newID(),
		req.EmployeeID,
		req.LeaveType,
		req.RequestedAmount,
		req.Reason,
		balance.RequestPending,
	))
	if err != nil {
		return balance.Request{}, fmt.Errorf("failed to create balance request: %w", err)
	}
	return created, nil
}

// GetByID implements balance.RequestRepository.
func (r *balanceRequestRepositoryImpl) GetByID(ctx context.Context, id string) (balance.Request, error) {
	q := GetQuerier(ctx, r.db)

	req, err := scanBalanceRequest(q.QueryRow(ctx, `SELECT `+balanceRequestColumns+` FROM balance_requests br WHERE br.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return balance.Request{}, balance.ErrBalanceRequestNotFound
		}
		return balance.Request{}, fmt.Errorf("failed to get balance request: %w", err)
	}
	return req, nil
}

// ListByEmployee implements balance.RequestRepository.
func (r *balanceRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]balance.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+balanceRequestColumns+`
		FROM balance_requests br
		WHERE br.employee_id = $1
		ORDER BY br.created_at DESC`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list balance requests: %w", err)
	}
	defer rows.Close()

	requests := make([]balance.Request, 0)
	for rows.Next() {
		req, err := scanBalanceRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// ListAll implements balance.RequestRepository.
func (r *balanceRequestRepositoryImpl) ListAll(ctx context.Context) ([]balance.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+balanceRequestColumns+`, u.name, u.email
		FROM balance_requests br
		JOIN users u ON u.id = br.employee_id
		ORDER BY br.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list balance requests: %w", err)
	}
	defer rows.Close()

	requests := make([]balance.Request, 0)
	for rows.Next() {
		var req balance.Request
		dest := append(balanceRequestDest(&req), &req.EmployeeName, &req.EmployeeEmail)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan balance request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// Decide implements balance.RequestRepository.
func (r *balanceRequestRepositoryImpl) Decide(ctx context.Context, req balance.Request) (balance.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE balance_requests AS br
		SET status = $1, notes = $2, approved_by = $3, approved_at = $4, updated_at = NOW()
		WHERE br.id = $5 AND br.status = 'Pending'
		RETURNING ` + balanceRequestColumns

	updated, err := scanBalanceRequest(q.QueryRow(ctx, query, req.Status, req.Notes, req.ApprovedBy, req.ApprovedAt, req.ID))
	if err != nil {
		if isNoRows(err) {
			if _, getErr := r.GetByID(ctx, req.ID); getErr != nil {
				return balance.Request{}, getErr
			}
			return balance.Request{}, balance.ErrBalanceRequestAlreadyProcessed
		}
		return balance.Request{}, fmt.Errorf("failed to update balance request: %w", err)
	}
	return updated, nil
}
