package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-calculations/internal/logger"
	"github.com/sbilibin2017/gw-calculations/internal/middlewares"
	"github.com/sbilibin2017/gw-calculations/internal/models"
	"github.com/sbilibin2017/gw-calculations/internal/services"
)

//go:generate mockgen -source=calculation.go -destination=mock_calculation.go -package=handlers

// CalculationManager defines the calculation operations used by the handlers.
type CalculationManager interface {
	Create(ctx context.Context, ownerID uuid.UUID, in services.CalculationInput) (*models.Calculation, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Calculation, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]models.Calculation, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, patch services.CalculationPatch) (*models.Calculation, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// CalculationRequest represents the JSON body for a new calculation.
// Operands are given either as a and b or as a two element inputs list.
// swagger:model CalculationRequest
type CalculationRequest struct {
	// First operand
	// default: 10
	A *float64 `json:"a,omitempty"`

	// Second operand
	// default: 5
	B *float64 `json:"b,omitempty"`

	// Operands as a list, alternative to a and b
	Inputs []float64 `json:"inputs,omitempty" validate:"omitempty,len=2"`

	// Operation: Add, Subtract, Multiply or Divide
	// required: true
	// default: Add
	Type string `json:"type" validate:"required,operation"`
}

func (req CalculationRequest) operands() (a, b *float64) {
	if len(req.Inputs) == 2 {
		return &req.Inputs[0], &req.Inputs[1]
	}
	return req.A, req.B
}

// CalculationUpdateRequest represents the JSON body for changing a calculation.
// Omitted fields keep their stored value.
// swagger:model CalculationUpdateRequest
type CalculationUpdateRequest struct {
	// First operand
	A *float64 `json:"a,omitempty"`

	// Second operand
	B *float64 `json:"b,omitempty"`

	// Operands as a list, alternative to a and b
	Inputs []float64 `json:"inputs,omitempty" validate:"omitempty,len=2"`

	// Operation: Add, Subtract, Multiply or Divide
	Type *string `json:"type,omitempty" validate:"omitempty,operation"`
}

func (req CalculationUpdateRequest) operands() (a, b *float64) {
	if len(req.Inputs) == 2 {
		return &req.Inputs[0], &req.Inputs[1]
	}
	return req.A, req.B
}

// NewCreateCalculationHandler returns an HTTP handler that computes and stores a calculation.
// @Summary Create calculation
// @Description Computes the result of the operation and stores it for the current user
// @Tags calculations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body handlers.CalculationRequest true "Calculation request"
// @Success 201 {object} models.Calculation "Calculation created"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.ErrorResponse "Could not validate credentials"
// @Failure 422 {object} handlers.ErrorResponse "Validation error"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /calculations [post]
func NewCreateCalculationHandler(svc CalculationManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req CalculationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusUnprocessableEntity, validationMessage(err))
			return
		}

		op, _ := models.ParseOperationType(req.Type)
		a, b := req.operands()

		calc, err := svc.Create(r.Context(), user.UserID, services.CalculationInput{A: *a, B: *b, Type: op})
		if err != nil {
			writeCalculationError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, calc)
	}
}

// NewListCalculationsHandler returns an HTTP handler that lists the current user's calculations.
// @Summary List calculations
// @Tags calculations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Calculation "Calculations of the current user"
// @Failure 401 {object} handlers.ErrorResponse "Could not validate credentials"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /calculations [get]
func NewListCalculationsHandler(svc CalculationManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		calcs, err := svc.List(r.Context(), user.UserID)
		if err != nil {
			writeCalculationError(w, r, err)
			return
		}
		if calcs == nil {
			calcs = []models.Calculation{}
		}

		writeJSON(w, http.StatusOK, calcs)
	}
}

// NewGetCalculationHandler returns an HTTP handler that reads one calculation.
// @Summary Get calculation
// @Tags calculations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Calculation ID"
// @Success 200 {object} models.Calculation "Calculation"
// @Failure 400 {object} handlers.ErrorResponse "Invalid calculation id"
// @Failure 401 {object} handlers.ErrorResponse "Could not validate credentials"
// @Failure 404 {object} handlers.ErrorResponse "Calculation not found"
// @Router /calculations/{id} [get]
func NewGetCalculationHandler(svc CalculationManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := calculationID(w, r)
		if !ok {
			return
		}

		calc, err := svc.Get(r.Context(), user.UserID, id)
		if err != nil {
			writeCalculationError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, calc)
	}
}

// NewUpdateCalculationHandler returns an HTTP handler that changes a calculation and recomputes its result.
// @Summary Update calculation
// @Tags calculations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Calculation ID"
// @Param request body handlers.CalculationUpdateRequest true "Fields to change"
// @Success 200 {object} models.Calculation "Updated calculation"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body or id"
// @Failure 401 {object} handlers.ErrorResponse "Could not validate credentials"
// @Failure 404 {object} handlers.ErrorResponse "Calculation not found"
// @Failure 422 {object} handlers.ErrorResponse "Validation error"
// @Router /calculations/{id} [put]
func NewUpdateCalculationHandler(svc CalculationManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := calculationID(w, r)
		if !ok {
			return
		}

		var req CalculationUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusUnprocessableEntity, validationMessage(err))
			return
		}

		var patch services.CalculationPatch
		patch.A, patch.B = req.operands()
		if req.Type != nil {
			op, _ := models.ParseOperationType(*req.Type)
			patch.Type = &op
		}

		calc, err := svc.Update(r.Context(), user.UserID, id, patch)
		if err != nil {
			writeCalculationError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, calc)
	}
}

// NewDeleteCalculationHandler returns an HTTP handler that removes a calculation.
// @Summary Delete calculation
// @Tags calculations
// @Security BearerAuth
// @Param id path string true "Calculation ID"
// @Success 204 "Calculation deleted"
// @Failure 400 {object} handlers.ErrorResponse "Invalid calculation id"
// @Failure 401 {object} handlers.ErrorResponse "Could not validate credentials"
// @Failure 404 {object} handlers.ErrorResponse "Calculation not found"
// @Router /calculations/{id} [delete]
func NewDeleteCalculationHandler(svc CalculationManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := calculationID(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), user.UserID, id); err != nil {
			writeCalculationError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func currentUser(w http.ResponseWriter, r *http.Request) (*models.UserPublic, bool) {
	user := middlewares.UserFromContext(r.Context())
	if user == nil {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, "Could not validate credentials")
		return nil, false
	}
	return user, true
}

func calculationID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid calculation id")
		return uuid.Nil, false
	}
	return id, true
}

func writeCalculationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrCalculationNotFound):
		writeError(w, http.StatusNotFound, "Calculation not found")
	case errors.Is(err, services.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		logger.FromContext(r.Context()).Errorw("internal server error", "err", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
	}
}
