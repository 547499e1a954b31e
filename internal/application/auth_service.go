package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/aryaseta/movie-vault/internal/domain/entity"
	"github.com/aryaseta/movie-vault/internal/domain/repository"
	"github.com/aryaseta/movie-vault/pkg/helpers"
	"github.com/aryaseta/movie-vault/pkg/mailer"
	mailtpl "github.com/aryaseta/movie-vault/pkg/mailer/templates"
)

// AuthService handles registration and login. It is stateless; every call is
// a single unit of work against the repository. Pub and Logger may be nil,
// in which case the welcome email is skipped and logging is silent.
type AuthService struct {
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
	Pub     *helpers.RabbitPublisher
	Logger  *logrus.Logger
	AppName string
}

func NewAuthService(users repository.UserRepository, jwt *helpers.JWTManager, pub *helpers.RabbitPublisher, logger *logrus.Logger, appName string) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Pub: pub, Logger: logger, AppName: appName}
}

// AuthResult is what both Register and Login hand back to the transport.
type AuthResult struct {
	Token    string
	Username string
	Email    string
}

// Register creates an account and signs the new user in. The pre-checks give
// friendly conflict errors; the unique indexes behind Create are the
// authoritative guard when two registrations race on the same email or
// username.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.Users.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user, err := entity.NewUser(username, email, hash)
	if err != nil {
		return nil, err
	}

	if err := s.Users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	token, _, err := s.JWT.Generate(user.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", user.ID).Error("generate token failed")
		}
		return nil, err
	}

	s.enqueueWelcomeEmail(ctx, user)

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user registered")
	}
	return &AuthResult{Token: token, Username: user.Username, Email: user.Email}, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password return the identical ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, _, err := s.JWT.Generate(user.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", user.ID).Error("generate token failed")
		}
		return nil, err
	}
	return &AuthResult{Token: token, Username: user.Username, Email: user.Email}, nil
}

// enqueueWelcomeEmail is fire-and-forget: a broker outage never fails a
// registration.
func (s *AuthService) enqueueWelcomeEmail(ctx context.Context, user *entity.User) {
	if s.Pub == nil {
		return
	}
	job := mailer.EmailJob{
		To:       user.Email,
		Template: mailtpl.Welcome,
		Data: map[string]any{
			"Name":    user.Username,
			"AppName": s.AppName,
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", user.ID).Warn("enqueue welcome email failed")
	}
}
