package calculator

import (
	"math"
	"testing"

	"github.com/sbilibin2017/gw-calculations/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name    string
		a, b    float64
		op      models.OperationType
		want    float64
		wantErr error
	}{
		{name: "add", a: 10, b: 5, op: models.OperationAdd, want: 15},
		{name: "subtract", a: 10, b: 5, op: models.OperationSubtract, want: 5},
		{name: "multiply", a: 10, b: 5, op: models.OperationMultiply, want: 50},
		{name: "divide", a: 10, b: 5, op: models.OperationDivide, want: 2},
		{name: "divide fraction", a: 1, b: 3, op: models.OperationDivide, want: 1.0 / 3.0},
		{name: "negative operands", a: -2.5, b: -4, op: models.OperationMultiply, want: 10},
		{name: "unknown operation", a: 1, b: 1, op: models.OperationType("Power"), wantErr: ErrUnknownOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.a, tt.b, tt.op)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		a, b    float64
		op      models.OperationType
		wantErr error
	}{
		{name: "divide by zero", a: 10, b: 0, op: models.OperationDivide, wantErr: ErrDivisionByZero},
		{name: "zero divided by zero", a: 0, b: 0, op: models.OperationDivide, wantErr: ErrDivisionByZero},
		{name: "divide by negative zero", a: 3, b: math.Copysign(0, -1), op: models.OperationDivide, wantErr: ErrDivisionByZero},
		{name: "divide by non-zero", a: 10, b: 4, op: models.OperationDivide},
		{name: "add with zero", a: 10, b: 0, op: models.OperationAdd},
		{name: "multiply with zero", a: 10, b: 0, op: models.OperationMultiply},
		{name: "unknown operation", a: 1, b: 2, op: models.OperationType(""), wantErr: ErrUnknownOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.a, tt.b, tt.op)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPerform_DivisionByZeroForAnyDividend(t *testing.T) {
	for _, a := range []float64{0, 1, -1, 42.5, math.MaxFloat64, math.Inf(1)} {
		_, err := Perform(a, 0, models.OperationDivide)
		assert.ErrorIs(t, err, ErrDivisionByZero, "a=%v", a)
	}
}

func TestPerform(t *testing.T) {
	got, err := Perform(20, 10, models.OperationDivide)
	assert.NoError(t, err)
	assert.Equal(t, 2.0, got)
}
