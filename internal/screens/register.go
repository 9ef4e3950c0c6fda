package screens

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/suteetoe/stockmobile/pkg/apiclient"
	"github.com/suteetoe/stockmobile/pkg/logger"
)

// RegisterScreen creates an account
type RegisterScreen struct {
	auth   Authenticator
	logger *zap.Logger
}

func NewRegisterScreen(auth Authenticator, log *zap.Logger) *RegisterScreen {
	return &RegisterScreen{auth: auth, logger: logger.OrNop(log)}
}

// Submit registers the account and sends the user to the login screen on success
func (s *RegisterScreen) Submit(ctx context.Context, name, email, password string) Outcome {
	log := logger.FromContext(ctx, s.logger)

	status, err := s.auth.Register(ctx, apiclient.RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		log.Error("Registration failed", zap.String("email", email), zap.Error(err))

		var te *apiclient.TransportError
		if errors.As(err, &te) {
			return Outcome{}.withAlert("Registration Error", err.Error())
		}
		return Outcome{}.withAlert("Registration Error", unexpectedError)
	}

	if status != http.StatusOK {
		log.Warn("Registration returned unexpected status", zap.Int("status", status))
		return Outcome{}.withAlert("Registration Failed", "Please try again.")
	}

	return Outcome{NavigateTo: RouteLogin}.withAlert("Registration Successful", "You can now log in.")
}
