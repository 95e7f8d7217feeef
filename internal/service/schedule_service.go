package service

import (
	"context"
	"fmt"
	"time"

	"broadcast-eval-be/internal/config"
	"broadcast-eval-be/internal/constant"
	"broadcast-eval-be/internal/dto"
	"broadcast-eval-be/internal/pkg/logger"
	"broadcast-eval-be/internal/pkg/serverutils"
	"broadcast-eval-be/pkg/events"
	pktNats "broadcast-eval-be/pkg/nats"
	"broadcast-eval-be/pkg/sheets"
)

type IScheduleService interface {
	// PlaceRequest appends a practice-session request row to the shared
	// scheduling workbook.
	PlaceRequest(ctx context.Context, employeeID, name string, req *dto.CreateScheduleRequest) (*dto.ScheduleItemResponse, error)

	// ListRequests returns every request row of the configured tab.
	ListRequests(ctx context.Context) ([]dto.ScheduleItemResponse, error)
}

type scheduleService struct {
	sheetsClient   *sheets.Client
	eventPublisher *pktNats.Publisher
	cfg            *config.Config
	logger         logger.ILogger
}

func NewScheduleService(sheetsClient *sheets.Client, eventPublisher *pktNats.Publisher, cfg *config.Config, log logger.ILogger) IScheduleService {
	return &scheduleService{
		sheetsClient:   sheetsClient,
		eventPublisher: eventPublisher,
		cfg:            cfg,
		logger:         log,
	}
}

func (s *scheduleService) PlaceRequest(ctx context.Context, employeeID, name string, req *dto.CreateScheduleRequest) (*dto.ScheduleItemResponse, error) {
	if s.sheetsClient == nil {
		return nil, fmt.Errorf("scheduling workbook is not configured")
	}
	if !constant.IsBroadcastLanguage(req.Language) {
		return nil, serverutils.NewValidationError("unknown broadcast language %q", req.Language)
	}
	if _, err := time.Parse("2006-01-02", req.SlotDate); err != nil {
		return nil, serverutils.NewValidationError("slot_date must be YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", req.SlotTime); err != nil {
		return nil, serverutils.NewValidationError("slot_time must be HH:MM")
	}

	row := sheets.ScheduleRow{
		EmployeeID:  employeeID,
		Name:        name,
		Language:    req.Language,
		SlotDate:    req.SlotDate,
		SlotTime:    req.SlotTime,
		RequestedAt: time.Now().UTC(),
	}

	if err := s.sheetsClient.AppendRequest(ctx, s.cfg.Sheets.ScheduleTab, row); err != nil {
		return nil, err
	}

	s.logger.Info("Schedule", "Practice request placed", map[string]interface{}{
		"employee_id": employeeID,
		"slot":        req.SlotDate + " " + req.SlotTime,
	})

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeScheduleRequestPlaced,
			Data: map[string]interface{}{
				"employee_id": employeeID,
				"name":        name,
				"language":    req.Language,
				"slot_date":   req.SlotDate,
				"slot_time":   req.SlotTime,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("Schedule", "Failed to publish event", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.ScheduleItemResponse{
		EmployeeID:  row.EmployeeID,
		Name:        row.Name,
		Language:    row.Language,
		SlotDate:    row.SlotDate,
		SlotTime:    row.SlotTime,
		RequestedAt: row.RequestedAt.Format(time.RFC3339),
	}, nil
}

func (s *scheduleService) ListRequests(ctx context.Context) ([]dto.ScheduleItemResponse, error) {
	if s.sheetsClient == nil {
		return nil, fmt.Errorf("scheduling workbook is not configured")
	}

	rows, err := s.sheetsClient.ListRequests(ctx, s.cfg.Sheets.ScheduleTab)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ScheduleItemResponse, 0, len(rows))
	for _, row := range rows {
		item := dto.ScheduleItemResponse{
			EmployeeID: row.EmployeeID,
			Name:       row.Name,
			Language:   row.Language,
			SlotDate:   row.SlotDate,
			SlotTime:   row.SlotTime,
		}
		if !row.RequestedAt.IsZero() {
			item.RequestedAt = row.RequestedAt.Format(time.RFC3339)
		}
		items = append(items, item)
	}
	return items, nil
}
