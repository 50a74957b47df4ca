package routers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"medilink-service/internal/app/config"
	"medilink-service/internal/app/delivery/http/controllers"
	"medilink-service/internal/app/delivery/http/middlewares"
	"medilink-service/internal/pkg/dto/requests"
	"medilink-service/internal/pkg/dto/responses"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockUserUsecase struct {
	mock.Mock
}

func (m *MockUserUsecase) Register(ctx context.Context, request *requests.RegisterUser) (*responses.AuthToken, error) {
	args := m.Called(ctx, request)
	if token, ok := args.Get(0).(*responses.AuthToken); ok {
		return token, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserUsecase) Login(ctx context.Context, request *requests.LoginUser) (*responses.AuthToken, error) {
	args := m.Called(ctx, request)
	if token, ok := args.Get(0).(*responses.AuthToken); ok {
		return token, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserUsecase) GoogleLogin(ctx context.Context, request *requests.GoogleLogin) (*responses.AuthToken, error) {
	args := m.Called(ctx, request)
	if token, ok := args.Get(0).(*responses.AuthToken); ok {
		return token, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserUsecase) GetProfile(ctx context.Context, userID string) (*responses.UserProfile, error) {
	args := m.Called(ctx, userID)
	if profile, ok := args.Get(0).(*responses.UserProfile); ok {
		return profile, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserUsecase) UpdateProfile(ctx context.Context, userID string, request *requests.UpdateProfile) (*responses.UserProfile, error) {
	args := m.Called(ctx, userID, request)
	if profile, ok := args.Get(0).(*responses.UserProfile); ok {
		return profile, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestAuthRouter_RegisterEndpoint(t *testing.T) {
	logger := zap.NewNop()

	internalConfig := &config.InternalConfig{
		JWT: config.JWT{Secret: "test-jwt-secret"},
	}
	middlewareInstance := &middlewares.Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
	}

	mockUserUsecase := new(MockUserUsecase)
	userController := controllers.NewUserController(logger, mockUserUsecase)

	router := chi.NewRouter()
	router.Use(middlewareInstance.RequestIDMiddleware)
	attachAuthRoutes(router, userController)

	t.Run("Register with valid body", func(t *testing.T) {
		mockUserUsecase.On("Register", mock.Anything, mock.AnythingOfType("*requests.RegisterUser")).
			Return(&responses.AuthToken{Token: "jwt-token"}, nil)

		requestBody := requests.RegisterUser{
			Name:     "Asha Rao",
			Email:    "asha@example.com",
			Password: "longenoughpassword",
		}
		jsonBody, _ := json.Marshal(requestBody)

		req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockUserUsecase.AssertExpectations(t)
	})

	t.Run("Register with invalid email", func(t *testing.T) {
		requestBody := requests.RegisterUser{
			Name:     "Asha Rao",
			Email:    "not-an-email",
			Password: "longenoughpassword",
		}
		jsonBody, _ := json.Marshal(requestBody)

		req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Register with malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/register", bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", "application/json")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Login with valid body", func(t *testing.T) {
		mockUserUsecase.On("Login", mock.Anything, mock.AnythingOfType("*requests.LoginUser")).
			Return(&responses.AuthToken{Token: "jwt-token"}, nil)

		requestBody := requests.LoginUser{
			Email:    "asha@example.com",
			Password: "longenoughpassword",
		}
		jsonBody, _ := json.Marshal(requestBody)

		req := httptest.NewRequest("POST", "/login", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockUserUsecase.AssertExpectations(t)
	})
}
