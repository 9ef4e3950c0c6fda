package screens

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/suteetoe/stockmobile/pkg/apiclient"
	"github.com/suteetoe/stockmobile/pkg/credential"
	"github.com/suteetoe/stockmobile/pkg/logger"
)

// LoginScreen exchanges credentials for a token and stores it
type LoginScreen struct {
	auth   Authenticator
	store  credential.Store
	logger *zap.Logger
}

func NewLoginScreen(auth Authenticator, store credential.Store, log *zap.Logger) *LoginScreen {
	return &LoginScreen{auth: auth, store: store, logger: logger.OrNop(log)}
}

// Submit logs in. A 401 reply maps to the invalid credentials alert, any
// other failure to the generic one. The missing-token alert is shown only
// when the server answered without a token.
func (s *LoginScreen) Submit(ctx context.Context, email, password string) Outcome {
	log := logger.FromContext(ctx, s.logger)

	resp, err := s.auth.Login(ctx, apiclient.LoginRequest{Email: email, Password: password})
	if err != nil {
		if apiclient.StatusCode(err) == http.StatusUnauthorized {
			log.Warn("Login rejected", zap.String("email", email))
			return Outcome{}.withAlert("Invalid Credentials", "Please check your email and password.")
		}
		log.Error("Login failed", zap.String("email", email), zap.Error(err))
		return Outcome{}.withAlert("Login Error", unexpectedError)
	}

	if resp.Token == "" {
		log.Warn("Login succeeded without a token", zap.String("email", email))
		return Outcome{}.withAlert("Login Failed", "Token not received")
	}

	if err := s.store.Set(ctx, resp.Token); err != nil {
		log.Error("Failed to store token", zap.Error(err))
		return Outcome{}.withAlert("Login Error", unexpectedError)
	}

	log.Info("Logged in", zap.String("email", email))
	return Outcome{NavigateTo: RouteHome}
}

// Logout drops the stored token
func (s *LoginScreen) Logout(ctx context.Context) error {
	return s.store.Clear(ctx)
}
