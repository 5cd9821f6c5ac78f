package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/leavehub/leave-backend-go/internal/domain/leave"
	"github.com/leavehub/leave-backend-go/internal/pkg/database"
)

const leaveColumns = `l.id, l.employee_id, l.start_date, l.end_date, l.leave_type, l.description, l.status,
	l.requested_days, l.document, l.notes, l.approved_by, l.approved_at, l.created_at, l.updated_at`

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

func leaveDest(l *leave.Leave) []interface{} {
	return []interface{}{
		&l.ID,
		&l.EmployeeID,
		&l.StartDate,
		&l.EndDate,
		&l.LeaveType,
		&l.Description,
		&l.Status,
		&l.RequestedDays,
		&l.Document,
		&l.Notes,
		&l.ApprovedBy,
		&l.ApprovedAt,
		&l.CreatedAt,
		&l.UpdatedAt,
	}
}

func scanLeave(row pgx.Row) (leave.Leave, error) {
	var l leave.Leave
	err := row.Scan(leaveDest(&l)...)
	return l, err
}

func collectLeavesWithEmployee(rows pgx.Rows) ([]leave.Leave, error) {
	defer rows.Close()
	leaves := make([]leave.Leave, 0)
	for rows.Next() {
		var l leave.Leave
		dest := append(leaveDest(&l), &l.EmployeeName, &l.EmployeeEmail)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leaves AS l (id, employee_id, start_date, end_date, leave_type, description, status, requested_days, document)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + leaveColumns

	created, err := scanLeave(q.QueryRow(ctx, query,
		newID(),
		l.EmployeeID,
		l.StartDate,
		l.EndDate,
		l.LeaveType,
		l.Description,
		leave.StatusPending,
		l.RequestedDays,
		l.Document,
	))
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to create leave: %w", err)
	}
	return created, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `, u.name, u.email
		FROM leaves l
		JOIN users u ON u.id = l.employee_id
		WHERE l.id = $1`

	var l leave.Leave
	dest := append(leaveDest(&l), &l.EmployeeName, &l.EmployeeEmail)
	if err := q.QueryRow(ctx, query, id).Scan(dest...); err != nil {
		if isNoRows(err) {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to get leave: %w", err)
	}
	return l, nil
}

// ListByEmployee implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+leaveColumns+`
		FROM leaves l
		WHERE l.employee_id = $1
		ORDER BY l.created_at DESC`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	defer rows.Close()

	leaves := make([]leave.Leave, 0)
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

// ListAll implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListAll(ctx context.Context) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+leaveColumns+`, u.name, u.email
		FROM leaves l
		JOIN users u ON u.id = l.employee_id
		ORDER BY l.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	return collectLeavesWithEmployee(rows)
}

// ListRecent implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+leaveColumns+`, u.name, u.email
		FROM leaves l
		JOIN users u ON u.id = l.employee_id
		ORDER BY l.created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent leaves: %w", err)
	}
	return collectLeavesWithEmployee(rows)
}

// ListApprovedSince implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListApprovedSince(ctx context.Context, employeeID string, since time.Time, limit int) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+leaveColumns+`
		FROM leaves l
		WHERE l.employee_id = $1 AND l.status = 'Approved' AND l.created_at >= $2
		ORDER BY l.created_at DESC
		LIMIT $3`, employeeID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leaves: %w", err)
	}
	defer rows.Close()

	leaves := make([]leave.Leave, 0)
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

// Decide implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Decide(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leaves AS l
		SET status = $1, requested_days = $2, notes = $3, approved_by = $4, approved_at = $5, updated_at = NOW()
		WHERE l.id = $6 AND l.status = 'Pending'
		RETURNING ` + leaveColumns

	updated, err := scanLeave(q.QueryRow(ctx, query, l.Status, l.RequestedDays, l.Notes, l.ApprovedBy, l.ApprovedAt, l.ID))
	if err != nil {
		if isNoRows(err) {
			if _, getErr := r.GetByID(ctx, l.ID); getErr != nil {
				return leave.Leave{}, getErr
			}
			return leave.Leave{}, leave.ErrLeaveAlreadyProcessed
		}
		return leave.Leave{}, fmt.Errorf("failed to update leave status: %w", err)
	}
	updated.EmployeeName, updated.EmployeeEmail = l.EmployeeName, l.EmployeeEmail
	return updated, nil
}

// BackfillRequestedDays implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) BackfillRequestedDays(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE leaves
		SET requested_days = (end_date - start_date) + 1, updated_at = NOW()
		WHERE requested_days IS NULL OR requested_days = 0`)
	if err != nil {
		return 0, fmt.Errorf("failed to backfill requested days: %w", err)
	}
	return tag.RowsAffected(), nil
}
