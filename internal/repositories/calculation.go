package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-calculations/internal/models"
)

// CalculationRepository reads and writes calculations.
type CalculationRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

// NewCalculationRepository creates a new CalculationRepository.
func NewCalculationRepository(db *sqlx.DB, txGetter TxGetter) *CalculationRepository {
	return &CalculationRepository{db: db, txGetter: txGetter}
}

// Get returns the calculation with the given id, or nil, nil if it does not exist.
func (r *CalculationRepository) Get(ctx context.Context, id uuid.UUID) (*models.Calculation, error) {
	const query = `
		SELECT calculation_id, a, b, type, result, owner_id, created_at, updated_at
		FROM calculations
		WHERE calculation_id = $1
	`

	var calc models.Calculation
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &calc, query, id)

	logQuery(ctx, query, []any{id}, calc, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &calc, nil
}

// ListByOwner returns the calculations of one user, oldest first.
func (r *CalculationRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Calculation, error) {
	const query = `
		SELECT calculation_id, a, b, type, result, owner_id, created_at, updated_at
		FROM calculations
		WHERE owner_id = $1
		ORDER BY created_at, calculation_id
	`

	calcs := []models.Calculation{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &calcs, query, ownerID)

	logQuery(ctx, query, []any{ownerID}, len(calcs), err)

	if err != nil {
		return nil, err
	}
	return calcs, nil
}

// Insert stores a new calculation and fills its timestamps.
func (r *CalculationRepository) Insert(ctx context.Context, calc *models.Calculation) error {
	const query = `
		INSERT INTO calculations (calculation_id, a, b, type, result, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	args := []any{calc.CalculationID, calc.A, calc.B, string(calc.Type), calc.Result, calc.OwnerID}

	err := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...).
		Scan(&calc.CreatedAt, &calc.UpdatedAt)

	logQuery(ctx, query, args, calc.CreatedAt, err)

	return mapPgError(err)
}

// Update overwrites operands, type and result and advances updated_at.
func (r *CalculationRepository) Update(ctx context.Context, calc *models.Calculation) error {
	const query = `
		UPDATE calculations
		SET a = $2, b = $3, type = $4, result = $5, updated_at = NOW()
		WHERE calculation_id = $1
		RETURNING updated_at
	`
	args := []any{calc.CalculationID, calc.A, calc.B, string(calc.Type), calc.Result}

	err := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...).Scan(&calc.UpdatedAt)

	logQuery(ctx, query, args, calc.UpdatedAt, err)

	return err
}

// Delete removes the calculation. Deleting a missing row returns sql.ErrNoRows.
func (r *CalculationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM calculations WHERE calculation_id = $1`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(ctx, query, []any{id}, rowsAffected, err)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
