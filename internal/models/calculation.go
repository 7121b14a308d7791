package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OperationType is the kind of arithmetic operation stored with a calculation.
type OperationType string

// Supported operation types
const (
	OperationAdd      OperationType = "Add"
	OperationSubtract OperationType = "Subtract"
	OperationMultiply OperationType = "Multiply"
	OperationDivide   OperationType = "Divide"
)

// ErrInvalidOperationType is returned when a string does not name a known operation.
var ErrInvalidOperationType = errors.New("invalid calculation type")

var operationAliases = map[string]OperationType{
	"add":            OperationAdd,
	"addition":       OperationAdd,
	"subtract":       OperationSubtract,
	"sub":            OperationSubtract,
	"subtraction":    OperationSubtract,
	"multiply":       OperationMultiply,
	"multiplication": OperationMultiply,
	"divide":         OperationDivide,
	"division":       OperationDivide,
}

// ParseOperationType maps a client supplied name to an OperationType.
// Matching is case-insensitive.
func ParseOperationType(s string) (OperationType, error) {
	op, ok := operationAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", ErrInvalidOperationType
	}
	return op, nil
}

// Calculation represents a calculation record in the database
// swagger:model Calculation
type Calculation struct {
	CalculationID uuid.UUID     `json:"id" db:"calculation_id"`
	A             float64       `json:"a" db:"a"`
	B             float64       `json:"b" db:"b"`
	Type          OperationType `json:"type" db:"type"`
	Result        float64       `json:"result" db:"result"`
	OwnerID       uuid.UUID     `json:"owner_id" db:"owner_id"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}
