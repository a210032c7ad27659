package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-link-saver/config"
	"github.com/oksasatya/go-link-saver/internal/domain/entity"
	repo "github.com/oksasatya/go-link-saver/internal/domain/repository"
	"github.com/oksasatya/go-link-saver/pkg/helpers"
	"github.com/oksasatya/go-link-saver/pkg/mailer"
	"github.com/oksasatya/go-link-saver/pkg/mailer/templates"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailInUse         = errors.New("email already in use")
)

// JobPublisher queues a JSON job for a background worker.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type AuthService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Jobs   JobPublisher // optional; nil disables welcome emails
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, jobs JobPublisher, cfg *config.Config, logger *logrus.Logger) *AuthService {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &AuthService{Repo: users, JWT: jwt, Jobs: jobs, Cfg: cfg, Logger: logger}
}

// Session is an authenticated user plus their bearer token.
type Session struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*Session, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{Email: email, Password: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, ErrEmailInUse
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	sess, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	s.queueWelcome(ctx, u)
	return sess, nil
}

// Login reports ErrInvalidCredentials for unknown emails and wrong passwords alike.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

func (s *AuthService) CurrentUser(ctx context.Context, id int64) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (s *AuthService) issue(u *entity.User) (*Session, error) {
	token, exp, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{User: u, Token: token, ExpiresAt: exp}, nil
}

// queueWelcome never fails the registration.
func (s *AuthService) queueWelcome(ctx context.Context, u *entity.User) {
	if s.Jobs == nil || s.Cfg == nil || !s.Cfg.MailSendEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: templates.Welcome,
		Data:     templates.NewWelcomeData(s.Cfg, u.Email, templates.WithTime(u.CreatedAt)),
	}
	if err := s.Jobs.PublishJSON(ctx, job); err != nil {
		helpers.LogError(s.Logger, "queue welcome email failed", err, logrus.Fields{"user_id": u.ID})
	}
}
