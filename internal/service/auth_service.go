package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"broadcast-eval-be/internal/config"
	"broadcast-eval-be/internal/dto"
	"broadcast-eval-be/internal/entity"
	"broadcast-eval-be/internal/pkg/logger"
	"broadcast-eval-be/internal/repository/specification"
	"broadcast-eval-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrTestLoginDisabled = errors.New("test accounts are disabled in production")
	ErrUnknownTestUser   = errors.New("employee id is not a registered test account")
	ErrWrongGatePassword = errors.New("wrong gate password")
)

type IAuthService interface {
	// TestLogin signs in a configured test account without OAuth.
	// Available outside production only.
	TestLogin(ctx context.Context, req *dto.TestLoginRequest) (*dto.LoginResponse, error)

	// GateLogin elevates an already signed-in user to instructor or admin
	// after checking the shared gate password.
	GateLogin(ctx context.Context, employeeID string, req *dto.GateLoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	cfg        *config.Config
	logger     logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, cfg *config.Config, log logger.ILogger) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		cfg:        cfg,
		logger:     log,
	}
}

func (s *authService) TestLogin(ctx context.Context, req *dto.TestLoginRequest) (*dto.LoginResponse, error) {
	if s.cfg.App.Environment == "production" {
		return nil, ErrTestLoginDisabled
	}

	allowed := false
	for _, id := range s.cfg.Auth.TestAccounts {
		if id == req.EmployeeID {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ErrUnknownTestUser
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmployeeID{EmployeeID: req.EmployeeID})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if user == nil {
		user = &entity.User{
			Id:          uuid.New(),
			EmployeeID:  req.EmployeeID,
			Email:       fmt.Sprintf("%s@test.local", req.EmployeeID),
			FullName:    req.Name,
			Role:        entity.UserRoleCandidate,
			IsTestUser:  true,
			CreatedAt:   now,
			LastLoginAt: &now,
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return nil, err
		}
	} else {
		user.LastLoginAt = &now
		if err := uow.UserRepository().Update(ctx, user); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Auth", "Test account login", map[string]interface{}{"employee_id": req.EmployeeID})

	return s.loginResponse(user)
}

func (s *authService) GateLogin(ctx context.Context, employeeID string, req *dto.GateLoginRequest) (*dto.LoginResponse, error) {
	var hash string
	var role entity.UserRole
	switch req.Role {
	case "admin":
		hash = s.cfg.Auth.AdminGateHash
		role = entity.UserRoleAdmin
	default:
		hash = s.cfg.Auth.InstructorGateHash
		role = entity.UserRoleInstructor
	}

	if hash == "" {
		return nil, fmt.Errorf("gate for role %q is not configured", req.Role)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		s.logger.Warn("Auth", "Gate login rejected", map[string]interface{}{
			"employee_id": employeeID,
			"role":        req.Role,
		})
		return nil, ErrWrongGatePassword
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmployeeID{EmployeeID: employeeID})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("no signed-in user for employee id %s", employeeID)
	}

	user.Role = role
	now := time.Now()
	user.LastLoginAt = &now
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Auth", "Gate login", map[string]interface{}{
		"employee_id": employeeID,
		"role":        req.Role,
	})

	return s.loginResponse(user)
}

func (s *authService) loginResponse(user *entity.User) (*dto.LoginResponse, error) {
	token, err := generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		User: dto.UserResponse{
			EmployeeID: user.EmployeeID,
			Name:       user.FullName,
			Email:      user.Email,
			Role:       string(user.Role),
		},
	}, nil
}
