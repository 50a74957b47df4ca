package contracts

import (
	"context"

	"medilink-service/internal/app/models"
	"medilink-service/internal/pkg/dto/requests"
	"medilink-service/internal/pkg/dto/responses"
)

type UserUsecase interface {
	Register(ctx context.Context, request *requests.RegisterUser) (*responses.AuthToken, error)
	Login(ctx context.Context, request *requests.LoginUser) (*responses.AuthToken, error)
	GoogleLogin(ctx context.Context, request *requests.GoogleLogin) (*responses.AuthToken, error)
	GetProfile(ctx context.Context, userID string) (*responses.UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, request *requests.UpdateProfile) (*responses.UserProfile, error)
}

// GoogleIdentity is the verified subset of a Google ID token's claims.
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
}

type GoogleTokenVerifier interface {
	VerifyIDToken(ctx context.Context, rawIDToken string) (*GoogleIdentity, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, userModel *models.User) (userID string, err error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, userID string) (*models.User, error)
	UpdateUser(ctx context.Context, userModel *models.User) error
}
