package group

import "errors"

var (
	ErrGroupNotFound    = errors.New("group not found")
	ErrGroupNameExists  = errors.New("group with this name already exists")
	ErrScheduleNotFound = errors.New("group schedule not found")
	ErrScheduleRange    = errors.New("schedule range must not exceed 62 days")
)
