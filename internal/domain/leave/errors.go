package leave

import "errors"

var (
	ErrLeaveNotFound         = errors.New("leave request not found")
	ErrLeaveAlreadyProcessed = errors.New("leave request has already been processed")
	ErrStartDateInPast       = errors.New("start date cannot be in the past")
	ErrEndBeforeStart        = errors.New("end date must be after start date")
)
