package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leavehub/leave-backend-go/internal/domain/balance"
	"github.com/leavehub/leave-backend-go/internal/domain/leave"
	"github.com/leavehub/leave-backend-go/internal/domain/user"
	"github.com/leavehub/leave-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceRepository_DeductIsGuarded(t *testing.T) {
	db := newTestDB(t)
	users := postgresql.NewUserRepository(db)
	balances := postgresql.NewBalanceRepository(db)
	ctx := context.Background()

	u := createTestUser(t, users, "jane@example.com", user.RoleEmployee)
	require.NoError(t, balances.InitializeDefaults(ctx, u.ID))
	// Idempotent
	require.NoError(t, balances.InitializeDefaults(ctx, u.ID))

	rows, err := balances.GetByEmployee(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, balance.DefaultSummary(), balance.Summarize(rows))

	b, err := balances.Deduct(ctx, u.ID, leave.TypePersonal, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, b.Balance)

	_, err = balances.Deduct(ctx, u.ID, leave.TypePersonal, 1)
	assert.ErrorIs(t, err, balance.ErrInsufficientBalance)

	b, err = balances.Credit(ctx, u.ID, leave.TypePersonal, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Balance)

	assert.ErrorIs(t, balances.InitializeDefaults(ctx, "0199a1b2-0000-7000-8000-000000000000"), user.ErrUserNotFound)
}

func TestLeaveRepository_DecideOnce(t *testing.T) {
	db := newTestDB(t)
	users := postgresql.NewUserRepository(db)
	leaves := postgresql.NewLeaveRepository(db)
	ctx := context.Background()

	u := createTestUser(t, users, "jane@example.com", user.RoleEmployee)
	admin := createTestUser(t, users, "boss@example.com", user.RoleAdmin)

	start := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
	days := 3
	created, err := leaves.Create(ctx, leave.Leave{
		EmployeeID:    u.ID,
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, 2),
		LeaveType:     leave.TypeVacation,
		Description:   "Trip",
		RequestedDays: &days,
	})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, created.Status)

	now := time.Now().UTC()
	created.Status = leave.StatusApproved
	created.ApprovedBy = &admin.ID
	created.ApprovedAt = &now
	decided, err := leaves.Decide(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, decided.Status)

	created.Status = leave.StatusRejected
	_, err = leaves.Decide(ctx, created)
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)

	mine, err := leaves.ListByEmployee(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].RequestedDays)
	assert.Equal(t, 3, *mine[0].RequestedDays)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	tx := postgresql.NewTransactor(db)
	users := postgresql.NewUserRepository(db)
	balances := postgresql.NewBalanceRepository(db)
	ctx := context.Background()

	errAbort := errors.New("abort")
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		u, err := users.Create(ctx, user.User{Name: "Ghost", Email: "ghost@example.com", Role: user.RoleEmployee})
		if err != nil {
			return err
		}
		if err := balances.InitializeDefaults(ctx, u.ID); err != nil {
			return err
		}
		return errAbort
	})
	assert.ErrorIs(t, err, errAbort)

	_, err = users.GetByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
