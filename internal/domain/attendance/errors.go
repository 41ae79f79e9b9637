package attendance

import "errors"

var (
	ErrNoActiveCheckIn  = errors.New("no check-in found for today")
	ErrClockSkew        = errors.New("check-out time is earlier than check-in time")
	ErrNoShiftToday     = errors.New("no shift scheduled for today")
	ErrSessionNotFound  = errors.New("attendance session not found")
	ErrInvalidScanMode  = errors.New("scan mode must be IN or OUT")
	ErrInvalidStatus    = errors.New("invalid attendance status")
	ErrTraineeNotActive = errors.New("trainee is not active")
)
