package prescription

import "errors"

var (
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrNoMedicines          = errors.New("prescription requires at least one medicine")
)
