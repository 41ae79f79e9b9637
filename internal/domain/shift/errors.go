package shift

import "errors"

var (
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM 24-hour format")
	ErrNegativeGrace     = errors.New("grace minutes must not be negative")
	ErrShiftNotFound     = errors.New("shift not found")
	ErrShiftNameExists   = errors.New("shift with this name already exists")
	ErrShiftInUse        = errors.New("shift is still assigned to trainees or schedules")
	ErrShiftNameRequired = errors.New("shift name is required")
)
