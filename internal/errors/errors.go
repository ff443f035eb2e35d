package errors

import "fmt"

const (
	ErrNotFound          = "NOT_FOUND"
	ErrInvalidTransition = "INVALID_TRANSITION"
	ErrConflict          = "CONFLICT"
	ErrValidation        = "VALIDATION"
	ErrConfiguration     = "CONFIGURATION"
	ErrInternal          = "INTERNAL"
)

type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func Wrap(code, msg string, err error) *DomainError {
	return &DomainError{Code: code, Message: msg, Err: err}
}

// --- Generic ---

func NewNotFound(entity, id string) *DomainError {
	return &DomainError{Code: ErrNotFound, Message: fmt.Sprintf("%s with id %s not found", entity, id)}
}

func NewInvalidTransition(from, to string) *DomainError {
	return &DomainError{Code: ErrInvalidTransition, Message: fmt.Sprintf("cannot transition from %s to %s", from, to)}
}

func NewConflict(msg string) *DomainError {
	return &DomainError{Code: ErrConflict, Message: msg}
}

func NewValidation(msg string) *DomainError {
	return &DomainError{Code: ErrValidation, Message: msg}
}

func NewConfiguration(msg string) *DomainError {
	return &DomainError{Code: ErrConfiguration, Message: msg}
}

func NewInternal(msg string, err error) *DomainError {
	return &DomainError{Code: ErrInternal, Message: msg, Err: err}
}

// --- Bin ---

func BinNotFound(id string) *DomainError {
	return NewNotFound("bin", id)
}

func BinInvalidCapacity(capacity float64) *DomainError {
	return NewConfiguration(fmt.Sprintf("bin capacity must be positive, got %v", capacity))
}

// --- Alert ---

func AlertNotFoundForBin(binID string) *DomainError {
	return &DomainError{Code: ErrNotFound, Message: fmt.Sprintf("no alert found for bin %s", binID)}
}

// --- Route ---

func RouteNotFound(id string) *DomainError {
	return NewNotFound("route", id)
}

func StopNotFound(id string) *DomainError {
	return NewNotFound("route stop", id)
}

func RouteInvalidTransition(from, to string) *DomainError {
	return NewInvalidTransition(from, to)
}

// --- Fleet ---

func TruckNotFound(id string) *DomainError {
	return NewNotFound("truck", id)
}

func DriverNotFound(id string) *DomainError {
	return NewNotFound("driver", id)
}

func StaffNotFound(id string) *DomainError {
	return NewNotFound("staff member", id)
}

func ResourceAlreadyAssigned(kind, id, routeID string) *DomainError {
	return NewConflict(fmt.Sprintf("%s %s is already assigned to route %s", kind, id, routeID))
}

func TruckAlreadyInUse(id string) *DomainError {
	return NewConflict(fmt.Sprintf("truck %s is already in use", id))
}
