package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/leavehub/leave-backend-go/internal/domain/leave"
	"github.com/leavehub/leave-backend-go/internal/domain/notification"
)

// MaintenanceJobs keeps stored data tidy: stale read notifications and legacy leave rows
type MaintenanceJobs struct {
	leaveService        leave.LeaveService
	notificationService notification.NotificationService
	retention           time.Duration
}

func NewMaintenanceJobs(leaveService leave.LeaveService, notificationService notification.NotificationService, retention time.Duration) *MaintenanceJobs {
	return &MaintenanceJobs{
		leaveService:        leaveService,
		notificationService: notificationService,
		retention:           retention,
	}
}

func (j *MaintenanceJobs) RegisterJobs(scheduler *Scheduler, cleanupEvery, backfillEvery time.Duration) {
	scheduler.AddJob("cleanup_read_notifications", cleanupEvery, j.CleanupReadNotifications)
	scheduler.AddJob("backfill_leave_requested_days", backfillEvery, j.BackfillLeaveRequestedDays)
}

func (j *MaintenanceJobs) CleanupReadNotifications(ctx context.Context) error {
	deleted, err := j.notificationService.CleanupRead(ctx, j.retention)
	if err != nil {
		return err
	}
	if deleted > 0 {
		slog.Info("Cron: Deleted read notifications", "count", deleted, "older_than", j.retention)
	}
	return nil
}

func (j *MaintenanceJobs) BackfillLeaveRequestedDays(ctx context.Context) error {
	updated, err := j.leaveService.BackfillRequestedDays(ctx)
	if err != nil {
		return err
	}
	if updated > 0 {
		slog.Info("Cron: Backfilled leave requested days", "count", updated)
	}
	return nil
}
