package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-calculations/internal/aftercommit"
	"github.com/sbilibin2017/gw-calculations/internal/calculator"
	"github.com/sbilibin2017/gw-calculations/internal/logger"
	"github.com/sbilibin2017/gw-calculations/internal/models"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=calculation.go -destination=mock_calculation.go -package=services

// CalculationStore defines persistence operations for calculations.
type CalculationStore interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Calculation, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Calculation, error)
	Insert(ctx context.Context, calc *models.Calculation) error
	Update(ctx context.Context, calc *models.Calculation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// CalculationInput holds the operands and operation of a new calculation.
type CalculationInput struct {
	A    float64
	B    float64
	Type models.OperationType
}

// CalculationPatch holds the fields to change on an existing calculation.
// Nil fields keep their stored value.
type CalculationPatch struct {
	A    *float64
	B    *float64
	Type *models.OperationType
}

// CalculationService manages calculations owned by users.
type CalculationService struct {
	store       CalculationStore
	kafkaWriter KafkaWriter
	now         func() time.Time
}

// ErrNonFiniteResult is returned when the result cannot be represented as a finite number.
var ErrNonFiniteResult = errors.New("result is not a finite number")

// NewCalculationService creates a new CalculationService. kafkaWriter may be nil.
func NewCalculationService(store CalculationStore, kafkaWriter KafkaWriter) *CalculationService {
	return &CalculationService{
		store:       store,
		kafkaWriter: kafkaWriter,
		now:         time.Now,
	}
}

func evaluate(a, b float64, op models.OperationType) (float64, error) {
	result, err := calculator.Perform(a, b, op)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, fmt.Errorf("%w: %w", ErrValidation, ErrNonFiniteResult)
	}
	return result, nil
}

// Create validates and computes the calculation and stores it for the owner.
func (s *CalculationService) Create(ctx context.Context, ownerID uuid.UUID, in CalculationInput) (*models.Calculation, error) {
	result, err := evaluate(in.A, in.B, in.Type)
	if err != nil {
		return nil, err
	}

	calc := &models.Calculation{
		CalculationID: uuid.New(),
		A:             in.A,
		B:             in.B,
		Type:          in.Type,
		Result:        result,
		OwnerID:       ownerID,
	}

	if err := s.store.Insert(ctx, calc); err != nil {
		logger.FromContext(ctx).Errorw("failed to save calculation", "owner_id", ownerID, "error", err)
		return nil, err
	}

	s.publishCalculationEvent(ctx, models.CalculationCreated, calc)
	return calc, nil
}

// Get returns the owner's calculation.
func (s *CalculationService) Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Calculation, error) {
	calc, err := s.store.Get(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to get calculation", "calculation_id", id, "error", err)
		return nil, err
	}
	// calculations of other users are reported as missing
	if calc == nil || calc.OwnerID != ownerID {
		return nil, ErrCalculationNotFound
	}
	return calc, nil
}

// List returns all calculations of the owner.
func (s *CalculationService) List(ctx context.Context, ownerID uuid.UUID) ([]models.Calculation, error) {
	calcs, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to list calculations", "owner_id", ownerID, "error", err)
		return nil, err
	}
	return calcs, nil
}

// Update applies the patch and recomputes the result.
func (s *CalculationService) Update(ctx context.Context, ownerID, id uuid.UUID, patch CalculationPatch) (*models.Calculation, error) {
	calc, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	updated := *calc
	if patch.A != nil {
		updated.A = *patch.A
	}
	if patch.B != nil {
		updated.B = *patch.B
	}
	if patch.Type != nil {
		updated.Type = *patch.Type
	}

	updated.Result, err = evaluate(updated.A, updated.B, updated.Type)
	if err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, &updated); err != nil {
		logger.FromContext(ctx).Errorw("failed to update calculation", "calculation_id", id, "error", err)
		return nil, err
	}

	s.publishCalculationEvent(ctx, models.CalculationUpdated, &updated)
	return &updated, nil
}

// Delete removes the owner's calculation.
func (s *CalculationService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	calc, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCalculationNotFound
		}
		logger.FromContext(ctx).Errorw("failed to delete calculation", "calculation_id", id, "error", err)
		return err
	}

	s.publishCalculationEvent(ctx, models.CalculationDeleted, calc)
	return nil
}

// publishCalculationEvent publishes a calculation change to Kafka once the
// request transaction commits, or right away when there is none.
func (s *CalculationService) publishCalculationEvent(ctx context.Context, action string, calc *models.Calculation) {
	log := logger.FromContext(ctx)

	if s.kafkaWriter == nil {
		log.Warnw("Kafka writer not configured, skipping publishing", "calculation_id", calc.CalculationID)
		return
	}

	event := models.CalculationEvent{
		EventID:       uuid.NewString(),
		Action:        action,
		CalculationID: calc.CalculationID.String(),
		OwnerID:       calc.OwnerID.String(),
		A:             calc.A,
		B:             calc.B,
		Type:          calc.Type,
		Result:        calc.Result,
		Timestamp:     s.now().Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Errorw("Failed to marshal calculation event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.CalculationID),
		Value: data,
	}

	aftercommit.Do(ctx, func(ctx context.Context) {
		if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
			log.Errorw("Failed to publish calculation event to Kafka", "event_id", event.EventID, "error", err)
		} else {
			log.Infow("Calculation event published to Kafka", "event_id", event.EventID, "action", action)
		}
	})
}
