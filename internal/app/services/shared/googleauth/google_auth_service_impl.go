package googleauth

import (
	"context"
	"fmt"
	"sync"

	"medilink-service/internal/app/config"
	"medilink-service/internal/app/contracts"
	"medilink-service/internal/pkg/exceptions"

	"go.uber.org/zap"
	"google.golang.org/api/idtoken"
)

var (
	googleAuthServiceInstance contracts.GoogleTokenVerifier
	onceGoogleAuthService     sync.Once
)

type googleAuthService struct {
	clientID string
	Log      *zap.Logger
}

func NewGoogleAuthService(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.GoogleTokenVerifier {
	onceGoogleAuthService.Do(func() {
		googleAuthServiceInstance = &googleAuthService{
			clientID: internalConfig.Google.ClientID,
			Log:      logger,
		}
	})
	return googleAuthServiceInstance
}

func (s *googleAuthService) VerifyIDToken(ctx context.Context, rawIDToken string) (*contracts.GoogleIdentity, error) {
	payload, err := idtoken.Validate(ctx, rawIDToken, s.clientID)
	if err != nil {
		s.Log.Warn("googleAuthService.VerifyIDToken token rejected",
			zap.Error(err),
		)
		return nil, exceptions.ErrGoogleTokenInvalid(err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, exceptions.ErrGoogleTokenInvalid(fmt.Errorf("token %s carries no email claim", payload.Subject))
	}
	name, _ := payload.Claims["name"].(string)

	return &contracts.GoogleIdentity{
		Subject: payload.Subject,
		Email:   email,
		Name:    name,
	}, nil
}
