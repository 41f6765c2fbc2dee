package ticket

import "errors"

var (
	ErrTicketNotFound          = errors.New("ticket not found")
	ErrInvalidStatus           = errors.New("invalid ticket status")
	ErrInvalidStatusTransition = errors.New("invalid ticket status transition")
	ErrUnknownAction           = errors.New("unknown ticket action")
)
