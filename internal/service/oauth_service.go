package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"broadcast-eval-be/internal/config"
	"broadcast-eval-be/internal/dto"
	"broadcast-eval-be/internal/entity"
	"broadcast-eval-be/internal/pkg/logger"
	"broadcast-eval-be/internal/repository/memory"
	"broadcast-eval-be/internal/repository/specification"
	"broadcast-eval-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var (
	ErrInvalidOAuthState  = errors.New("invalid or expired oauth state")
	ErrEmailDomainBlocked = errors.New("email domain is not allowed")
)

type IOAuthService interface {
	GetLoginURL(provider string) (string, error)
	HandleCallback(ctx context.Context, provider string, state string, code string) (*dto.LoginResponse, error)
}

type oauthService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   *memory.SessionRepository
	googleConf *oauth2.Config
	cfg        *config.Config
	logger     logger.ILogger
}

func NewOAuthService(uowFactory unitofwork.RepositoryFactory, sessions *memory.SessionRepository, cfg *config.Config, log logger.ILogger) IOAuthService {
	conf := &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &oauthService{
		uowFactory: uowFactory,
		sessions:   sessions,
		googleConf: conf,
		cfg:        cfg,
		logger:     log,
	}
}

func (s *oauthService) GetLoginURL(provider string) (string, error) {
	if provider != "google" {
		return "", errors.New("unsupported provider")
	}

	b := make([]byte, 16)
	rand.Read(b)
	state := base64.URLEncoding.EncodeToString(b)

	s.sessions.SaveState(state)

	return s.googleConf.AuthCodeURL(state), nil
}

func (s *oauthService) HandleCallback(ctx context.Context, provider string, state string, code string) (*dto.LoginResponse, error) {
	if provider != "google" {
		return nil, errors.New("unsupported provider")
	}

	if !s.sessions.ConsumeState(state) {
		s.logger.Warn("OAuth", "Rejected callback with unknown state", nil)
		return nil, ErrInvalidOAuthState
	}

	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	googleUser, err := s.fetchUserInfo(token.AccessToken)
	if err != nil {
		return nil, err
	}

	if !googleUser.VerifiedEmail {
		return nil, errors.New("google account email is not verified")
	}
	if domain := s.cfg.Auth.AllowedEmailDomain; domain != "" {
		if !strings.HasSuffix(strings.ToLower(googleUser.Email), "@"+strings.ToLower(domain)) {
			s.logger.Warn("OAuth", "Login from outside allowed domain", map[string]interface{}{
				"email": googleUser.Email,
			})
			return nil, ErrEmailDomainBlocked
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: googleUser.Email})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if user == nil {
		user = &entity.User{
			Id: uuid.New(),
			// Corporate addresses are employeeId@domain, so the local
			// part doubles as the employee id.
			EmployeeID:  strings.SplitN(googleUser.Email, "@", 2)[0],
			Email:       googleUser.Email,
			FullName:    googleUser.Name,
			Role:        entity.UserRoleCandidate,
			CreatedAt:   now,
			LastLoginAt: &now,
		}

		if err := uow.Begin(ctx); err != nil {
			return nil, err
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			uow.Rollback()
			return nil, err
		}
		if err := uow.Commit(); err != nil {
			return nil, err
		}

		s.logger.Info("OAuth", "Registered new user", map[string]interface{}{
			"employee_id": user.EmployeeID,
			"email":       user.Email,
		})
	} else {
		user.LastLoginAt = &now
		if err := uow.UserRepository().Update(ctx, user); err != nil {
			return nil, err
		}
	}

	accessToken, err := generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		User: dto.UserResponse{
			EmployeeID: user.EmployeeID,
			Name:       user.FullName,
			Email:      user.Email,
			Role:       string(user.Role),
		},
	}, nil
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (s *oauthService) fetchUserInfo(accessToken string) (*googleUserInfo, error) {
	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %w", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading user info response: %w", err)
	}

	var info googleUserInfo
	if err := json.Unmarshal(content, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
