package service

import (
	"context"
	"time"

	"broadcast-eval-be/internal/dto"
	"broadcast-eval-be/internal/entity"
	"broadcast-eval-be/internal/pkg/logger"
	"broadcast-eval-be/internal/pkg/serverutils"
	"broadcast-eval-be/internal/repository/specification"
	"broadcast-eval-be/internal/repository/unitofwork"
)

type IAdminService interface {
	GetStats(ctx context.Context) (*dto.AdminStatsResponse, error)
	ListUsers(ctx context.Context, page, limit int) ([]dto.AdminUserItemResponse, error)
	SetUserRole(ctx context.Context, employeeID, role string) error
	ListSummaries(ctx context.Context, status, language string, page, limit int) ([]dto.AdminSummaryItemResponse, error)
	GetSystemLogs(ctx context.Context, level string, page, limit int) ([]logger.LogEntry, error)
}

// adminService serves the reporting dashboard from the relational mirror;
// it never touches the blob store.
type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	sysLogger  *logger.ZapLogger
	logger     logger.ILogger
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, sysLogger *logger.ZapLogger, log logger.ILogger) IAdminService {
	return &adminService{
		uowFactory: uowFactory,
		sysLogger:  sysLogger,
		logger:     log,
	}
}

func (s *adminService) GetStats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	summaries := uow.EvaluationSummaryRepository()

	total, err := summaries.Count(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := summaries.Count(ctx, specification.ByStatus{Status: "review_requested"})
	if err != nil {
		return nil, err
	}
	approved, err := summaries.Count(ctx, specification.ApprovedOnly{})
	if err != nil {
		return nil, err
	}
	users, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AdminStatsResponse{
		TotalSubmissions: total,
		PendingReviews:   pending,
		ApprovedCount:    approved,
		UserCount:        users,
	}, nil
}

func (s *adminService) ListUsers(ctx context.Context, page, limit int) ([]dto.AdminUserItemResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	users, err := uow.UserRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.AdminUserItemResponse, 0, len(users))
	for _, user := range users {
		item := dto.AdminUserItemResponse{
			EmployeeID: user.EmployeeID,
			Email:      user.Email,
			FullName:   user.FullName,
			Role:       string(user.Role),
			IsTestUser: user.IsTestUser,
		}
		if user.LastLoginAt != nil {
			item.LastLoginAt = user.LastLoginAt.Format(time.RFC3339)
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *adminService) SetUserRole(ctx context.Context, employeeID, role string) error {
	switch entity.UserRole(role) {
	case entity.UserRoleCandidate, entity.UserRoleInstructor, entity.UserRoleAdmin:
	default:
		return serverutils.NewValidationError("unknown role %q", role)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmployeeID{EmployeeID: employeeID})
	if err != nil {
		return err
	}
	if user == nil {
		return serverutils.NewValidationError("no user with employee id %s", employeeID)
	}

	user.Role = entity.UserRole(role)
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("Admin", "User role changed", map[string]interface{}{
		"employee_id": employeeID,
		"role":        role,
	})
	return nil
}

func (s *adminService) ListSummaries(ctx context.Context, status, language string, page, limit int) ([]dto.AdminSummaryItemResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}

	specs := []specification.Specification{
		specification.OrderBy{Field: "submitted_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	}
	if status != "" {
		specs = append(specs, specification.ByStatus{Status: status})
	}
	if language != "" {
		specs = append(specs, specification.ByLanguage{Language: language})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	summaries, err := uow.EvaluationSummaryRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.AdminSummaryItemResponse, 0, len(summaries))
	for _, summary := range summaries {
		items = append(items, dto.AdminSummaryItemResponse{
			EmployeeID:  summary.EmployeeID,
			Name:        summary.Name,
			Language:    summary.Language,
			Category:    summary.Category,
			Status:      summary.Status,
			Approved:    summary.Approved,
			TotalScore:  summary.TotalScore,
			Grade:       summary.Grade,
			SubmittedAt: summary.SubmittedAt.Format(time.RFC3339),
		})
	}
	return items, nil
}

func (s *adminService) GetSystemLogs(ctx context.Context, level string, page, limit int) ([]logger.LogEntry, error) {
	if s.sysLogger == nil {
		return []logger.LogEntry{}, nil
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if page < 1 {
		page = 1
	}
	return s.sysLogger.GetLogs(level, limit, (page-1)*limit)
}
