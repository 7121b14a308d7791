package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-calculations/internal/models"
	"github.com/sbilibin2017/gw-calculations/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := "John"

	tests := []struct {
		name          string
		body          string
		mockSetup     func(m *MockRegisterer)
		expectedCode  int
		expectedError string
	}{
		{
			name: "success",
			body: `{"username":"johndoe","email":"john@example.com","password":"secret123","first_name":"John"}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), services.RegisterInput{
						Username:  "johndoe",
						Email:     "john@example.com",
						Password:  "secret123",
						FirstName: &first,
					}).
					Return(&models.User{UserID: uuid.New(), Username: "johndoe", Email: "john@example.com", FirstName: &first, IsActive: true, PasswordHash: "hash"}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "user already exists",
			body: `{"username":"alice","email":"alice@example.com","password":"secret123"}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, services.ErrUserAlreadyExists)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "Username or email already exists",
		},
		{
			name: "password too short",
			body: `{"username":"alice","email":"alice@example.com","password":"123"}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: password must be at least 6 characters long", services.ErrValidation))
			},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "validation error: password must be at least 6 characters long",
		},
		{
			name: "internal server error",
			body: `{"username":"bob","email":"bob@example.com","password":"secret123"}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, errors.New("database failure"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
		{
			name:          "invalid json",
			body:          "{invalid json}",
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid request body",
		},
		{
			name:          "missing username",
			body:          `{"email":"bob@example.com","password":"secret123"}`,
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "username is required",
		},
		{
			name:          "invalid email",
			body:          `{"username":"bob","email":"not-an-email","password":"secret123"}`,
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "email must be a valid email address",
		},
		{
			name:          "username too long",
			body:          fmt.Sprintf(`{"username":%q,"email":"bob@example.com","password":"secret123"}`, strings.Repeat("u", 51)),
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "username must be at most 50 characters long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockRegisterer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewRegisterHandler(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp ErrorResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedError, resp.Error)
				return
			}

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "johndoe", resp["username"])
			assert.Equal(t, "John", resp["first_name"])
			assert.Equal(t, true, resp["is_active"])
			assert.NotContains(t, resp, "password_hash")
			assert.NotContains(t, resp, "last_name")
		})
	}
}
