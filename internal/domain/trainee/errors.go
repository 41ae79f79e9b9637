package trainee

import "errors"

var (
	ErrTraineeNotFound       = errors.New("trainee not found")
	ErrCivilIDExists         = errors.New("civil ID already registered")
	ErrMilitaryIDExists      = errors.New("military ID already registered")
	ErrBarcodeExists         = errors.New("barcode already assigned to another trainee")
	ErrInvalidRank           = errors.New("rank does not exist")
	ErrInvalidSpecialization = errors.New("specialization does not exist")
	ErrInvalidShift          = errors.New("shift does not exist")
	ErrInvalidGroup          = errors.New("group does not exist")
)
