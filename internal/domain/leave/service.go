package leave

import "context"

type LeaveService interface {
	Apply(ctx context.Context, employeeID string, req ApplyLeaveRequest) (ApplyLeaveResponse, error)
	UpdateStatus(ctx context.Context, approverID string, leaveID string, req UpdateStatusRequest) (UpdateStatusResponse, error)
	ListMine(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	ListAll(ctx context.Context) ([]LeaveResponse, error)
	BackfillRequestedDays(ctx context.Context) (int64, error)
}
