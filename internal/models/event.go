package models

// Calculation event actions
const (
	CalculationCreated = "created"
	CalculationUpdated = "updated"
	CalculationDeleted = "deleted"
)

// CalculationEvent is published to Kafka after a calculation changes.
type CalculationEvent struct {
	EventID       string        `json:"event_id"`       // Unique event ID
	Action        string        `json:"action"`         // created, updated or deleted
	CalculationID string        `json:"calculation_id"` // Calculation the event refers to
	OwnerID       string        `json:"owner_id"`       // Owner of the calculation
	A             float64       `json:"a"`
	B             float64       `json:"b"`
	Type          OperationType `json:"type"`
	Result        float64       `json:"result"`
	Timestamp     int64         `json:"timestamp"` // Unix timestamp
}
