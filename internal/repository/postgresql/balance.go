package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/leavehub/leave-backend-go/internal/domain/balance"
	"github.com/leavehub/leave-backend-go/internal/domain/leave"
	"github.com/leavehub/leave-backend-go/internal/domain/user"
	"github.com/leavehub/leave-backend-go/internal/pkg/database"
)

const balanceColumns = `id, employee_id, leave_type, balance, created_at, updated_at`

type balanceRepositoryImpl struct {
	db *database.DB
}

func NewBalanceRepository(db *database.DB) balance.BalanceRepository {
	return &balanceRepositoryImpl{db: db}
}

func scanBalance(row pgx.Row) (balance.Balance, error) {
	var b balance.Balance
	err := row.Scan(&b.ID, &b.EmployeeID, &b.LeaveType, &b.Balance, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// InitializeDefaults implements balance.BalanceRepository.
func (r *balanceRepositoryImpl) InitializeDefaults(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO balances (id, employee_id, leave_type, balance)
		VALUES ($1, $4, 'Sick', $5), ($2, $4, 'Vacation', $6), ($3, $4, 'Personal', $7)
		ON CONFLICT (employee_id, leave_type) DO NOTHING
	`
	_, err := q.Exec(ctx, query,
		newID(), newID(), newID(),
		employeeID,
		leave.DefaultAllowance[leave.TypeSick],
		leave.DefaultAllowance[leave.TypeVacation],
		leave.DefaultAllowance[leave.TypePersonal],
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to initialize balances: %w", err)
	}
	return nil
}

// GetByEmployee implements balance.BalanceRepository.
func (r *balanceRepositoryImpl) GetByEmployee(ctx context.Context, employeeID string) ([]balance.Balance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+balanceColumns+` FROM balances WHERE employee_id = $1 ORDER BY leave_type`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balances: %w", err)
	}
	defer rows.Close()

	balances := make([]balance.Balance, 0, 3)
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

// GetByEmployees implements balance.BalanceRepository.
func (r *balanceRepositoryImpl) GetByEmployees(ctx context.Context, employeeIDs []string) (map[string][]balance.Balance, error) {
	result := make(map[string][]balance.Balance, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return result, nil
	}

	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+balanceColumns+` FROM balances WHERE employee_id = ANY($1::uuid[])`, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get balances: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		result[b.EmployeeID] = append(result[b.EmployeeID], b)
	}
	return result, rows.Err()
}

// Get implements balance.BalanceRepository.
func (r *balanceRepositoryImpl) Get(ctx context.Context, employeeID string, leaveType leave.Type) (balance.Balance, error) {
	q := GetQuerier(ctx, r.db)

	b, err := scanBalance(q.QueryRow(ctx,
		`SELECT `+balanceColumns+` FROM balances WHERE employee_id = $1 AND leave_type = $2`,
		employeeID, leaveType,
	))
	if err != nil {
		if isNoRows(err) {
			return balance.Balance{}, balance.ErrBalanceNotFound
		}
		return balance.Balance{}, fmt.Errorf("failed to get balance: %w", err)
	}
	return b, nil
}

// Set implements balance.BalanceRepository.
func (r *balanceRepositoryImpl) Set(ctx context.Context, employeeID string, leaveType leave.Type, value int) (balance.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO balances (id, employee_id, leave_type, balance)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, leave_type)
		DO UPDATE SET balance = EXCLUDED.balance, updated_at = NOW()
		RETURNING ` + balanceColumns

	b, err := scanBalance(q.QueryRow(ctx, query, newID(), employeeID, leaveType, value))
	if err != nil {
		if isForeignKeyViolation(err) {
			return balance.Balance{}, user.ErrUserNotFound
		}
		return balance.Balance{}, fmt.Errorf("failed to set balance: %w", err)
	}
	return b, nil
}

// Credit implements balance.BalanceRepository.
func (r *balanceRepositoryImpl) Credit(ctx context.Context, employeeID string, leaveType leave.Type, amount int) (balance.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO balances (id, employee_id, leave_type, balance)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, leave_type)
		DO UPDATE SET balance = balances.balance + EXCLUDED.balance, updated_at = NOW()
		RETURNING ` + balanceColumns

	b, err := scanBalance(q.QueryRow(ctx, query, newID(), employeeID, leaveType, amount))
	if err != nil {
		if isForeignKeyViolation(err) {
			return balance.Balance{}, user.ErrUserNotFound
		}
		return balance.Balance{}, fmt.Errorf("failed to credit balance: %w", err)
	}
	return b, nil
}

// Deduct implements balance.BalanceRepository.
func (r *balanceRepositoryImpl) Deduct(ctx context.Context, employeeID string, leaveType leave.Type, days int) (balance.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE balances
		SET balance = balance - $3, updated_at = NOW()
		WHERE employee_id = $1 AND leave_type = $2 AND balance >= $3
		RETURNING ` + balanceColumns

	b, err := scanBalance(q.QueryRow(ctx, query, employeeID, leaveType, days))
	if err == nil {
		return b, nil
	}
	if !isNoRows(err) {
		return balance.Balance{}, fmt.Errorf("failed to deduct balance: %w", err)
	}

	// Nothing matched: tell a missing row apart from a short one.
	if _, getErr := r.Get(ctx, employeeID, leaveType); getErr != nil {
		return balance.Balance{}, getErr
	}
	return balance.Balance{}, balance.ErrInsufficientBalance
}
