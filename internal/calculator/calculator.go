// Package calculator validates and evaluates arithmetic operations.
package calculator

import (
	"errors"

	"github.com/sbilibin2017/gw-calculations/internal/models"
)

// Error variables
var (
	ErrDivisionByZero   = errors.New("division by zero is not allowed")
	ErrUnknownOperation = errors.New("invalid calculation type")
)

// Validate rejects operations that must never be computed or stored.
func Validate(a, b float64, op models.OperationType) error {
	switch op {
	case models.OperationAdd, models.OperationSubtract, models.OperationMultiply:
		return nil
	case models.OperationDivide:
		if b == 0 {
			return ErrDivisionByZero
		}
		return nil
	default:
		return ErrUnknownOperation
	}
}

// Compute applies op to a and b.
func Compute(a, b float64, op models.OperationType) (float64, error) {
	switch op {
	case models.OperationAdd:
		return a + b, nil
	case models.OperationSubtract:
		return a - b, nil
	case models.OperationMultiply:
		return a * b, nil
	case models.OperationDivide:
		return a / b, nil
	default:
		return 0, ErrUnknownOperation
	}
}

// Perform validates the operation and computes its result.
func Perform(a, b float64, op models.OperationType) (float64, error) {
	if err := Validate(a, b, op); err != nil {
		return 0, err
	}
	return Compute(a, b, op)
}
