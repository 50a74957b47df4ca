package users

import (
	"context"
	"testing"
	"time"

	"medilink-service/internal/app/config"
	"medilink-service/internal/app/contracts"
	"medilink-service/internal/app/models"
	"medilink-service/internal/pkg/constvars"
	"medilink-service/internal/pkg/dto/requests"
	"medilink-service/internal/pkg/exceptions"
	"medilink-service/internal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, userModel *models.User) (string, error) {
	args := m.Called(ctx, userModel)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, userModel *models.User) error {
	args := m.Called(ctx, userModel)
	return args.Error(0)
}

type MockGoogleTokenVerifier struct {
	mock.Mock
}

func (m *MockGoogleTokenVerifier) VerifyIDToken(ctx context.Context, rawIDToken string) (*contracts.GoogleIdentity, error) {
	args := m.Called(ctx, rawIDToken)
	if identity, ok := args.Get(0).(*contracts.GoogleIdentity); ok {
		return identity, args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestUserUsecase(repo *MockUserRepository, verifier *MockGoogleTokenVerifier) *userUsecase {
	return &userUsecase{
		UserRepository: repo,
		GoogleVerifier: verifier,
		InternalConfig: &config.InternalConfig{
			JWT: config.JWT{Secret: "unit-test-secret", ExpTimeInHour: 1},
		},
		Log: zap.NewNop(),
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a patient account and returns a token", func(t *testing.T) {
		repo := new(MockUserRepository)
		verifier := new(MockGoogleTokenVerifier)
		uc := newTestUserUsecase(repo, verifier)

		repo.On("FindByEmail", ctx, "asha@example.com").Return(nil, nil)
		repo.On("CreateUser", ctx, mock.MatchedBy(func(user *models.User) bool {
			return user.Email == "asha@example.com" && user.Role == constvars.RolePatient && user.Password != "plaintext-pass"
		})).Return("user-1", nil)

		response, err := uc.Register(ctx, &requests.RegisterUser{
			Name:     "Asha",
			Email:    "asha@example.com",
			Password: "plaintext-pass",
		})

		assert.NoError(t, err)
		userID, role, err := utils.ParseJWT(response.Token, "unit-test-secret")
		assert.NoError(t, err)
		assert.Equal(t, "user-1", userID)
		assert.Equal(t, constvars.RolePatient, role)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a taken email", func(t *testing.T) {
		repo := new(MockUserRepository)
		verifier := new(MockGoogleTokenVerifier)
		uc := newTestUserUsecase(repo, verifier)

		repo.On("FindByEmail", ctx, "asha@example.com").Return(&models.User{ID: "user-1", Email: "asha@example.com"}, nil)

		_, err := uc.Register(ctx, &requests.RegisterUser{
			Name:     "Asha",
			Email:    "asha@example.com",
			Password: "plaintext-pass",
		})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := utils.HashPassword("correct horse")
	assert.NoError(t, err)
	stored := &models.User{ID: "user-1", Email: "asha@example.com", Password: hash, Role: constvars.RolePatient}

	t.Run("returns a token when the password matches", func(t *testing.T) {
		repo := new(MockUserRepository)
		verifier := new(MockGoogleTokenVerifier)
		uc := newTestUserUsecase(repo, verifier)

		repo.On("FindByEmail", ctx, "asha@example.com").Return(stored, nil)

		response, err := uc.Login(ctx, &requests.LoginUser{Email: "asha@example.com", Password: "correct horse"})

		assert.NoError(t, err)
		assert.NotEmpty(t, response.Token)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		verifier := new(MockGoogleTokenVerifier)
		uc := newTestUserUsecase(repo, verifier)

		repo.On("FindByEmail", ctx, "asha@example.com").Return(stored, nil)

		_, err := uc.Login(ctx, &requests.LoginUser{Email: "asha@example.com", Password: "wrong horse"})

		assert.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		assert.True(t, ok)
		assert.Equal(t, constvars.StatusUnauthorized, customErr.StatusCode)
	})

	t.Run("treats an unknown email like a wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		verifier := new(MockGoogleTokenVerifier)
		uc := newTestUserUsecase(repo, verifier)

		repo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, nil)

		_, err := uc.Login(ctx, &requests.LoginUser{Email: "nobody@example.com", Password: "whatever-pass"})

		assert.Error(t, err)
	})
}

func TestGoogleLogin(t *testing.T) {
	ctx := context.Background()
	identity := &contracts.GoogleIdentity{Subject: "google-sub-9", Email: "asha@example.com", Name: "Asha"}

	t.Run("provisions a patient account on first sign-in", func(t *testing.T) {
		repo := new(MockUserRepository)
		verifier := new(MockGoogleTokenVerifier)
		uc := newTestUserUsecase(repo, verifier)

		verifier.On("VerifyIDToken", ctx, "raw-id-token").Return(identity, nil)
		repo.On("FindByEmail", ctx, "asha@example.com").Return(nil, nil)
		repo.On("CreateUser", ctx, mock.MatchedBy(func(user *models.User) bool {
			return user.IsGoogleUser && user.GoogleID == "google-sub-9" && user.Role == constvars.RolePatient && user.Password == ""
		})).Return("user-7", nil)

		response, err := uc.GoogleLogin(ctx, &requests.GoogleLogin{IDToken: "raw-id-token"})

		assert.NoError(t, err)
		userID, _, err := utils.ParseJWT(response.Token, "unit-test-secret")
		assert.NoError(t, err)
		assert.Equal(t, "user-7", userID)
		repo.AssertExpectations(t)
	})

	t.Run("links an existing password account by email", func(t *testing.T) {
		repo := new(MockUserRepository)
		verifier := new(MockGoogleTokenVerifier)
		uc := newTestUserUsecase(repo, verifier)

		existing := &models.User{ID: "user-1", Email: "asha@example.com", Password: "hash", Role: constvars.RolePatient}
		verifier.On("VerifyIDToken", ctx, "raw-id-token").Return(identity, nil)
		repo.On("FindByEmail", ctx, "asha@example.com").Return(existing, nil)
		repo.On("UpdateUser", ctx, mock.MatchedBy(func(user *models.User) bool {
			return user.ID == "user-1" && user.IsGoogleUser && user.GoogleID == "google-sub-9"
		})).Return(nil)

		response, err := uc.GoogleLogin(ctx, &requests.GoogleLogin{IDToken: "raw-id-token"})

		assert.NoError(t, err)
		assert.NotEmpty(t, response.Token)
		repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("does not touch storage when the token is rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		verifier := new(MockGoogleTokenVerifier)
		uc := newTestUserUsecase(repo, verifier)

		verifier.On("VerifyIDToken", ctx, "forged-token").Return(nil, exceptions.ErrGoogleTokenInvalid(nil))

		_, err := uc.GoogleLogin(ctx, &requests.GoogleLogin{IDToken: "forged-token"})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("does not rewrite an account already linked to google", func(t *testing.T) {
		repo := new(MockUserRepository)
		verifier := new(MockGoogleTokenVerifier)
		uc := newTestUserUsecase(repo, verifier)

		linked := &models.User{ID: "user-1", Email: "asha@example.com", Role: constvars.RolePatient, GoogleID: "google-sub-9", IsGoogleUser: true}
		verifier.On("VerifyIDToken", ctx, "raw-id-token").Return(identity, nil)
		repo.On("FindByEmail", ctx, "asha@example.com").Return(linked, nil)

		response, err := uc.GoogleLogin(ctx, &requests.GoogleLogin{IDToken: "raw-id-token"})

		assert.NoError(t, err)
		assert.NotEmpty(t, response.Token)
		repo.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
	})
}

func TestTokenExpiry(t *testing.T) {
	uc := newTestUserUsecase(new(MockUserRepository), new(MockGoogleTokenVerifier))
	assert.Equal(t, time.Hour, uc.tokenExpiry())
}
