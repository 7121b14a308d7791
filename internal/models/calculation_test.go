package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOperationType(t *testing.T) {
	tests := []struct {
		in      string
		want    OperationType
		wantErr bool
	}{
		{in: "Add", want: OperationAdd},
		{in: "addition", want: OperationAdd},
		{in: "Sub", want: OperationSubtract},
		{in: "Subtract", want: OperationSubtract},
		{in: "SUBTRACTION", want: OperationSubtract},
		{in: "Multiply", want: OperationMultiply},
		{in: " multiplication ", want: OperationMultiply},
		{in: "Divide", want: OperationDivide},
		{in: "division", want: OperationDivide},
		{in: "Power", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOperationType(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOperationType)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUser_StringHidesPasswordHash(t *testing.T) {
	first, last := "John", "Doe"
	u := User{Username: "johndoe", Email: "john@example.com", FirstName: &first, LastName: &last, PasswordHash: "$2a$10$hash"}

	assert.Equal(t, "<User(name=John Doe, email=john@example.com)>", u.String())
	assert.NotContains(t, u.String(), "$2a$10$hash")
}

func TestUser_Public(t *testing.T) {
	u := &User{Username: "johndoe", Email: "john@example.com", PasswordHash: "hash", IsActive: true}
	p := u.Public()

	assert.Equal(t, "johndoe", p.Username)
	assert.Equal(t, "john@example.com", p.Email)
	assert.True(t, p.IsActive)
	assert.False(t, p.IsVerified)
}
