package balance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/leavehub/leave-backend-go/internal/domain/balance"
	"github.com/leavehub/leave-backend-go/internal/domain/leave"
	"github.com/leavehub/leave-backend-go/internal/domain/notification"
	"github.com/leavehub/leave-backend-go/internal/domain/user"
	"github.com/leavehub/leave-backend-go/internal/pkg/sse"
	"github.com/leavehub/leave-backend-go/internal/pkg/validator"
	"github.com/leavehub/leave-backend-go/internal/repository/memory"
	notificationsvc "github.com/leavehub/leave-backend-go/internal/service/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func seedUser(t *testing.T, store *memory.Store, name string, role user.Role) user.User {
	t.Helper()
	u, err := store.Users().Create(context.Background(), user.User{
		Name:  name,
		Email: name + "@example.com",
		Role:  role,
	})
	require.NoError(t, err)
	return u
}

func TestGetMyBalance(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewBalanceService(store.Users(), store.Balances(), store.Leaves())
	employee := seedUser(t, store, "jane", user.RoleEmployee)

	t.Run("lazily creates defaults", func(t *testing.T) {
		summary, err := svc.GetMyBalance(ctx, employee.ID)
		require.NoError(t, err)
		assert.Equal(t, balance.Summary{Sick: 10, Vacation: 15, Personal: 5}, summary)
	})

	t.Run("existing values are kept", func(t *testing.T) {
		_, err := store.Balances().Set(ctx, employee.ID, leave.TypeSick, 3)
		require.NoError(t, err)

		summary, err := svc.GetMyBalance(ctx, employee.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, summary.Sick)
		assert.Equal(t, 15, summary.Vacation)
	})

	t.Run("concurrent first reads initialise once", func(t *testing.T) {
		other := seedUser(t, store, "sam", user.RoleEmployee)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				summary, err := svc.GetMyBalance(ctx, other.ID)
				assert.NoError(t, err)
				assert.Equal(t, balance.DefaultSummary(), summary)
			}()
		}
		wg.Wait()

		rows, err := store.Balances().GetByEmployee(ctx, other.ID)
		require.NoError(t, err)
		assert.Len(t, rows, 3)
	})
}

// cancelAwareBalances fails initialisation when handed a cancelled context.
type cancelAwareBalances struct {
	balance.BalanceRepository
}

func (r cancelAwareBalances) InitializeDefaults(ctx context.Context, employeeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.BalanceRepository.InitializeDefaults(ctx, employeeID)
}

func TestEnsureDefaults_SharedWorkIgnoresCallerCancellation(t *testing.T) {
	store := memory.NewStore()
	svc := NewBalanceService(store.Users(), cancelAwareBalances{store.Balances()}, store.Leaves())
	employee := seedUser(t, store, "jane", user.RoleEmployee)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, svc.EnsureDefaults(ctx, employee.ID))

	rows, err := store.Balances().GetByEmployee(context.Background(), employee.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestGetMyBalanceWithUsage(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	store := memory.NewStore()
	store.Now = func() time.Time { return now }
	svc := NewBalanceService(store.Users(), store.Balances(), store.Leaves()).(*BalanceServiceImpl)
	svc.now = func() time.Time { return now }

	employee := seedUser(t, store, "jane", user.RoleEmployee)

	for i := 0; i < 7; i++ {
		store.PutLeave(leave.Leave{
			EmployeeID:    employee.ID,
			StartDate:     now.AddDate(0, 0, i),
			EndDate:       now.AddDate(0, 0, i),
			LeaveType:     leave.TypeSick,
			Description:   "approved",
			Status:        leave.StatusApproved,
			RequestedDays: intPtr(1),
			CreatedAt:     now.AddDate(0, 0, -i),
		})
	}
	store.PutLeave(leave.Leave{
		EmployeeID:  employee.ID,
		StartDate:   now,
		EndDate:     now,
		LeaveType:   leave.TypeSick,
		Description: "pending",
		Status:      leave.StatusPending,
		CreatedAt:   now,
	})
	store.PutLeave(leave.Leave{
		EmployeeID:  employee.ID,
		StartDate:   now,
		EndDate:     now,
		LeaveType:   leave.TypeSick,
		Description: "too old",
		Status:      leave.StatusApproved,
		CreatedAt:   now.AddDate(0, 0, -45),
	})

	usage, err := svc.GetMyBalanceWithUsage(ctx, employee.ID)
	require.NoError(t, err)

	assert.Equal(t, balance.DefaultSummary(), usage.Balances)
	require.Len(t, usage.RecentUsage, 5)
	for _, l := range usage.RecentUsage {
		assert.Equal(t, leave.StatusApproved, l.Status)
		assert.Equal(t, "approved", l.Description)
	}
	assert.True(t, usage.RecentUsage[0].CreatedAt.After(usage.RecentUsage[4].CreatedAt))
	assert.False(t, usage.LastUpdated.IsZero())
}

func TestGetAllBalances(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewBalanceService(store.Users(), store.Balances(), store.Leaves())

	jane := seedUser(t, store, "jane", user.RoleEmployee)
	seedUser(t, store, "sam", user.RoleEmployee)
	seedUser(t, store, "boss", user.RoleAdmin)

	require.NoError(t, store.Balances().InitializeDefaults(ctx, jane.ID))
	_, err := store.Balances().Set(ctx, jane.ID, leave.TypeVacation, 20)
	require.NoError(t, err)

	all, err := svc.GetAllBalances(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	byName := map[string]balance.EmployeeBalanceResponse{}
	for _, b := range all {
		byName[b.Name] = b
	}
	assert.Equal(t, 20, byName["jane"].Balances.Vacation)
	assert.Equal(t, "jane@example.com", byName["jane"].Email)
	assert.Equal(t, balance.DefaultSummary(), byName["sam"].Balances)
	assert.NotContains(t, byName, "boss")
}

func TestUpdateBalance(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewBalanceService(store.Users(), store.Balances(), store.Leaves())
	jane := seedUser(t, store, "jane", user.RoleEmployee)

	t.Run("upserts the value", func(t *testing.T) {
		resp, err := svc.UpdateBalance(ctx, jane.ID, balance.UpdateBalanceRequest{LeaveType: "Vacation", Balance: intPtr(22)})
		require.NoError(t, err)
		assert.Equal(t, 22, resp.Balance)
		assert.Equal(t, leave.TypeVacation, resp.LeaveType)
	})

	tests := []struct {
		name       string
		employeeID string
		req        balance.UpdateBalanceRequest
		wantErr    error
	}{
		{"unknown leave type", jane.ID, balance.UpdateBalanceRequest{LeaveType: "Holiday", Balance: intPtr(1)}, balance.ErrInvalidLeaveType},
		{"negative value", jane.ID, balance.UpdateBalanceRequest{LeaveType: "Sick", Balance: intPtr(-1)}, balance.ErrNegativeBalance},
		{"unknown employee", "0190c0de-0000-7000-8000-000000000000", balance.UpdateBalanceRequest{LeaveType: "Sick", Balance: intPtr(1)}, user.ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateBalance(ctx, tt.employeeID, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("missing balance value", func(t *testing.T) {
		_, err := svc.UpdateBalance(ctx, jane.ID, balance.UpdateBalanceRequest{LeaveType: "Sick"})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})
}

func newRequestService(store *memory.Store) (balance.RequestService, notification.NotificationService) {
	notifier := notificationsvc.NewNotificationService(store.Notifications(), sse.NewHub())
	return NewRequestService(store.Transactor(), store.BalanceRequests(), store.Balances(), notifier), notifier
}

func TestBalanceRequests(t *testing.T) {
	ctx := context.Background()

	t.Run("approval credits the balance once", func(t *testing.T) {
		store := memory.NewStore()
		svc, notifier := newRequestService(store)
		jane := seedUser(t, store, "jane", user.RoleEmployee)
		boss := seedUser(t, store, "boss", user.RoleAdmin)
		require.NoError(t, store.Balances().InitializeDefaults(ctx, jane.ID))

		req, err := svc.RequestIncrease(ctx, jane.ID, balance.IncreaseRequest{LeaveType: "Vacation", RequestedAmount: 4, Reason: "conference"})
		require.NoError(t, err)
		assert.Equal(t, balance.RequestPending, req.Status)

		decided, err := svc.UpdateStatus(ctx, boss.ID, req.ID, balance.UpdateRequestStatusRequest{Status: "Approved"})
		require.NoError(t, err)
		assert.Equal(t, balance.RequestApproved, decided.Status)
		require.NotNil(t, decided.ApprovedBy)
		assert.Equal(t, boss.ID, *decided.ApprovedBy)

		b, err := store.Balances().Get(ctx, jane.ID, leave.TypeVacation)
		require.NoError(t, err)
		assert.Equal(t, 19, b.Balance)

		_, err = svc.UpdateStatus(ctx, boss.ID, req.ID, balance.UpdateRequestStatusRequest{Status: "Approved"})
		assert.ErrorIs(t, err, balance.ErrBalanceRequestAlreadyProcessed)

		b, err = store.Balances().Get(ctx, jane.ID, leave.TypeVacation)
		require.NoError(t, err)
		assert.Equal(t, 19, b.Balance)

		notes, err := notifier.List(ctx, jane.ID, notification.ListFilter{})
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, notification.TypeSuccess, notes[0].Type)
	})

	t.Run("approval creates a missing balance row", func(t *testing.T) {
		store := memory.NewStore()
		svc, _ := newRequestService(store)
		jane := seedUser(t, store, "jane", user.RoleEmployee)
		boss := seedUser(t, store, "boss", user.RoleAdmin)

		req, err := svc.RequestIncrease(ctx, jane.ID, balance.IncreaseRequest{LeaveType: "Personal", RequestedAmount: 2, Reason: "wedding"})
		require.NoError(t, err)
		_, err = svc.UpdateStatus(ctx, boss.ID, req.ID, balance.UpdateRequestStatusRequest{Status: "Approved"})
		require.NoError(t, err)

		b, err := store.Balances().Get(ctx, jane.ID, leave.TypePersonal)
		require.NoError(t, err)
		assert.Equal(t, 2, b.Balance)
	})

	t.Run("rejection does not credit", func(t *testing.T) {
		store := memory.NewStore()
		svc, _ := newRequestService(store)
		jane := seedUser(t, store, "jane", user.RoleEmployee)
		boss := seedUser(t, store, "boss", user.RoleAdmin)
		require.NoError(t, store.Balances().InitializeDefaults(ctx, jane.ID))

		req, err := svc.RequestIncrease(ctx, jane.ID, balance.IncreaseRequest{LeaveType: "Sick", RequestedAmount: 5, Reason: "surgery"})
		require.NoError(t, err)
		_, err = svc.UpdateStatus(ctx, boss.ID, req.ID, balance.UpdateRequestStatusRequest{Status: "Rejected"})
		require.NoError(t, err)

		b, err := store.Balances().Get(ctx, jane.ID, leave.TypeSick)
		require.NoError(t, err)
		assert.Equal(t, 10, b.Balance)
	})

	t.Run("validation", func(t *testing.T) {
		store := memory.NewStore()
		svc, _ := newRequestService(store)
		jane := seedUser(t, store, "jane", user.RoleEmployee)

		_, err := svc.RequestIncrease(ctx, jane.ID, balance.IncreaseRequest{LeaveType: "Nope", RequestedAmount: 1, Reason: "x"})
		assert.ErrorIs(t, err, balance.ErrInvalidLeaveType)
		_, err = svc.RequestIncrease(ctx, jane.ID, balance.IncreaseRequest{LeaveType: "Sick", RequestedAmount: 0, Reason: "x"})
		assert.ErrorIs(t, err, balance.ErrInvalidAmount)
		_, err = svc.RequestIncrease(ctx, jane.ID, balance.IncreaseRequest{LeaveType: "Sick", RequestedAmount: 1})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)

		_, err = svc.UpdateStatus(ctx, jane.ID, "0190c0de-0000-7000-8000-000000000000", balance.UpdateRequestStatusRequest{Status: "Approved"})
		assert.ErrorIs(t, err, balance.ErrBalanceRequestNotFound)
	})

	t.Run("listing", func(t *testing.T) {
		store := memory.NewStore()
		svc, _ := newRequestService(store)
		jane := seedUser(t, store, "jane", user.RoleEmployee)
		sam := seedUser(t, store, "sam", user.RoleEmployee)

		first, err := svc.RequestIncrease(ctx, jane.ID, balance.IncreaseRequest{LeaveType: "Sick", RequestedAmount: 1, Reason: "a"})
		require.NoError(t, err)
		second, err := svc.RequestIncrease(ctx, jane.ID, balance.IncreaseRequest{LeaveType: "Sick", RequestedAmount: 2, Reason: "b"})
		require.NoError(t, err)
		_, err = svc.RequestIncrease(ctx, sam.ID, balance.IncreaseRequest{LeaveType: "Sick", RequestedAmount: 3, Reason: "c"})
		require.NoError(t, err)

		mine, err := svc.ListMine(ctx, jane.ID)
		require.NoError(t, err)
		require.Len(t, mine, 2)
		assert.Equal(t, second.ID, mine[0].ID)
		assert.Equal(t, first.ID, mine[1].ID)

		all, err := svc.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		require.NotNil(t, all[0].EmployeeName)
		assert.Equal(t, "sam", *all[0].EmployeeName)
	})
}
