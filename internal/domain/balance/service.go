package balance

import "context"

type BalanceService interface {
	GetMyBalance(ctx context.Context, employeeID string) (Summary, error)
	GetMyBalanceWithUsage(ctx context.Context, employeeID string) (UsageResponse, error)
	GetAllBalances(ctx context.Context) ([]EmployeeBalanceResponse, error)
	UpdateBalance(ctx context.Context, employeeID string, req UpdateBalanceRequest) (BalanceResponse, error)
	EnsureDefaults(ctx context.Context, employeeID string) error
}

type RequestService interface {
	RequestIncrease(ctx context.Context, employeeID string, req IncreaseRequest) (RequestResponse, error)
	UpdateStatus(ctx context.Context, approverID string, requestID string, req UpdateRequestStatusRequest) (RequestResponse, error)
	ListMine(ctx context.Context, employeeID string) ([]RequestResponse, error)
	ListAll(ctx context.Context) ([]RequestResponse, error)
}
