package specialization

import "errors"

var (
	ErrSpecializationNotFound   = errors.New("specialization not found")
	ErrSpecializationNameExists = errors.New("specialization with this name already exists")
	ErrSpecializationInUse      = errors.New("specialization is still assigned to trainees")
)
