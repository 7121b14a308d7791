package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-calculations/internal/models"
	"github.com/sbilibin2017/gw-calculations/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	result := &services.AuthResult{
		AccessToken: "jwt-token",
		TokenType:   services.TokenTypeBearer,
		User:        &models.UserPublic{Username: "johndoe", IsActive: true},
	}

	tests := []struct {
		name          string
		body          string
		mockSetup     func(m *MockAuthenticator)
		expectedCode  int
		expectedError string
	}{
		{
			name: "success",
			body: `{"username":"johndoe","password":"secret123"}`,
			mockSetup: func(m *MockAuthenticator) {
				m.EXPECT().Authenticate(gomock.Any(), "johndoe", "secret123").Return(result, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "login with email",
			body: `{"username":"john@example.com","password":"secret123"}`,
			mockSetup: func(m *MockAuthenticator) {
				m.EXPECT().Authenticate(gomock.Any(), "john@example.com", "secret123").Return(result, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "invalid credentials",
			body: `{"username":"johndoe","password":"wrong"}`,
			mockSetup: func(m *MockAuthenticator) {
				m.EXPECT().Authenticate(gomock.Any(), "johndoe", "wrong").Return(nil, services.ErrInvalidCredentials)
			},
			expectedCode:  http.StatusUnauthorized,
			expectedError: "Invalid username or password",
		},
		{
			name: "internal error",
			body: `{"username":"johndoe","password":"secret123"}`,
			mockSetup: func(m *MockAuthenticator) {
				m.EXPECT().Authenticate(gomock.Any(), "johndoe", "secret123").Return(nil, errors.New("db down"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
		{
			name:          "invalid json",
			body:          "{bad json}",
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid request body",
		},
		{
			name:          "missing password",
			body:          `{"username":"johndoe"}`,
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "password is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockAuthenticator(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewLoginHandler(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp ErrorResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedError, resp.Error)
				return
			}

			var resp TokenResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "jwt-token", resp.AccessToken)
			assert.Equal(t, "bearer", resp.TokenType)
			require.NotNil(t, resp.User)
			assert.Equal(t, "johndoe", resp.User.Username)
		})
	}
}

func TestTokenHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		form         url.Values
		mockSetup    func(m *MockAuthenticator)
		expectedCode int
	}{
		{
			name: "success",
			form: url.Values{"username": {"johndoe"}, "password": {"secret123"}},
			mockSetup: func(m *MockAuthenticator) {
				m.EXPECT().Authenticate(gomock.Any(), "johndoe", "secret123").
					Return(&services.AuthResult{AccessToken: "jwt-token", TokenType: "bearer", User: &models.UserPublic{Username: "johndoe"}}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "wrong password",
			form: url.Values{"username": {"johndoe"}, "password": {"nope"}},
			mockSetup: func(m *MockAuthenticator) {
				m.EXPECT().Authenticate(gomock.Any(), "johndoe", "nope").Return(nil, services.ErrInvalidCredentials)
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "missing fields",
			form:         url.Values{},
			expectedCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockAuthenticator(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rr := httptest.NewRecorder()

			NewTokenHandler(mockSvc).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				var resp TokenResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, "jwt-token", resp.AccessToken)
			}
		})
	}
}
