package rank

import "errors"

var (
	ErrRankNotFound   = errors.New("rank not found")
	ErrRankNameExists = errors.New("rank with this name already exists")
	ErrRankInUse      = errors.New("rank is still assigned to trainees")
)
