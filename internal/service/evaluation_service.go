package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"broadcast-eval-be/internal/config"
	"broadcast-eval-be/internal/constant"
	"broadcast-eval-be/internal/dto"
	"broadcast-eval-be/internal/entity"
	"broadcast-eval-be/internal/pkg/logger"
	"broadcast-eval-be/internal/pkg/mailer"
	"broadcast-eval-be/internal/pkg/serverutils"
	"broadcast-eval-be/internal/repository/specification"
	"broadcast-eval-be/internal/repository/unitofwork"
	"broadcast-eval-be/pkg/blob"
	"broadcast-eval-be/pkg/evalindex"
	"broadcast-eval-be/pkg/events"
	pktNats "broadcast-eval-be/pkg/nats"

	"github.com/google/uuid"
)

type IEvaluationService interface {
	// Submit stores a new broadcast evaluation record and registers it in
	// the shared index.
	Submit(ctx context.Context, employeeID, name string, req *dto.SubmitEvaluationRequest) (*dto.SubmitEvaluationResponse, error)

	// RequestReview flags the candidate's own record for instructor review.
	RequestReview(ctx context.Context, employeeID, recordPath string) (*dto.StatusUpdateResponse, error)

	// SaveScores stores an instructor's score sheet on the record and
	// mirrors the summary into the index.
	SaveScores(ctx context.Context, evaluatedBy, recordPath string, req *dto.SaveScoresRequest) (*dto.StatusUpdateResponse, error)

	// Finalize relocates a scored record into the completed area. The index
	// entry changes path and status in one conditional write.
	Finalize(ctx context.Context, evaluatedBy, recordPath string) (*dto.StatusUpdateResponse, error)

	// Approve marks a finalized record as approved and notifies the
	// candidate.
	Approve(ctx context.Context, evaluatedBy, recordPath string, req *dto.ApproveEvaluationRequest) (*dto.StatusUpdateResponse, error)

	// Reevaluate sends a finalized record back to the pending area.
	Reevaluate(ctx context.Context, recordPath string) (*dto.StatusUpdateResponse, error)

	// Delete moves the backing record to the trash area and marks the index
	// entry deleted in the same flow.
	Delete(ctx context.Context, recordPath string) (*dto.StatusUpdateResponse, error)

	Mine(ctx context.Context, employeeID string) ([]dto.EvaluationItemResponse, error)
	ListPending(ctx context.Context) ([]dto.EvaluationRecordResponse, error)
	ListCompleted(ctx context.Context) ([]dto.EvaluationRecordResponse, error)
	LoadRecord(ctx context.Context, recordPath string) (*dto.EvaluationRecordResponse, error)
}

type evaluationService struct {
	blobStore        blob.Store
	index            *evalindex.Store
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	emailService     mailer.IEmailService
	cfg              *config.Config
	logger           logger.ILogger
}

func NewEvaluationService(
	blobStore blob.Store,
	index *evalindex.Store,
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	emailService mailer.IEmailService,
	cfg *config.Config,
	log logger.ILogger,
) IEvaluationService {
	return &evaluationService{
		blobStore:        blobStore,
		index:            index,
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		emailService:     emailService,
		cfg:              cfg,
		logger:           log,
	}
}

func (s *evaluationService) Submit(ctx context.Context, employeeID, name string, req *dto.SubmitEvaluationRequest) (*dto.SubmitEvaluationResponse, error) {
	if !constant.IsBroadcastLanguage(req.Language) {
		return nil, serverutils.NewValidationError("unknown broadcast language %q", req.Language)
	}
	if !constant.IsEvaluationCategory(req.Category) {
		return nil, serverutils.NewValidationError("unknown evaluation category %q", req.Category)
	}

	submittedAt := time.Now().UTC().Format(time.RFC3339)
	recordPath := fmt.Sprintf("%s/%s_%s_%s.json", s.cfg.Dropbox.PendingDir, employeeID, req.Language, uuid.New().String())

	record := &entity.EvaluationRecord{
		EmployeeID:    employeeID,
		Name:          name,
		Language:      req.Language,
		Category:      req.Category,
		Script:        req.Script,
		RecordingPath: req.RecordingPath,
		SubmittedAt:   submittedAt,
		Status:        string(evalindex.StatusPending),
	}

	if err := s.uploadRecord(ctx, recordPath, record); err != nil {
		return nil, fmt.Errorf("%w: %w", evalindex.ErrStoreUnavailable, err)
	}

	entry := evalindex.IndexEntry{
		EmployeeID:  employeeID,
		Name:        name,
		Language:    req.Language,
		Category:    req.Category,
		SubmittedAt: submittedAt,
		DropboxPath: recordPath,
		Status:      evalindex.StatusPending,
	}

	// The record upload above is the primary write. If the index append
	// cannot land the submission still counts; the entry is registered
	// later by the reconciler.
	indexSynced := true
	if err := s.index.AppendEntry(ctx, entry); err != nil {
		indexSynced = false
		s.logger.Error("Evaluation", "Record stored but index append failed", map[string]interface{}{
			"dropbox_path": recordPath,
			"error":        err.Error(),
		})
		s.requestIndexRepair(ctx, recordPath, "", dto.RepairReasonMissing)
	}

	s.mirrorSummary(ctx, recordPath, record)
	s.publishEvent(ctx, events.NewEvaluationSubmitted(employeeID, name, req.Language, req.Category, recordPath))

	return &dto.SubmitEvaluationResponse{
		DropboxPath: recordPath,
		SubmittedAt: submittedAt,
		IndexSynced: indexSynced,
	}, nil
}

func (s *evaluationService) RequestReview(ctx context.Context, employeeID, recordPath string) (*dto.StatusUpdateResponse, error) {
	record, err := s.downloadRecord(ctx, recordPath)
	if err != nil {
		return nil, err
	}
	if record.EmployeeID != employeeID {
		return nil, serverutils.NewValidationError("record does not belong to employee %s", employeeID)
	}
	if record.Status != string(evalindex.StatusPending) {
		return nil, serverutils.NewValidationError("only pending records can request review, got %q", record.Status)
	}

	record.Status = string(evalindex.StatusReviewRequested)
	if err := s.uploadRecord(ctx, recordPath, record); err != nil {
		return nil, fmt.Errorf("%w: %w", evalindex.ErrStoreUnavailable, err)
	}

	err = s.index.UpdateEntry(ctx, recordPath, func(e evalindex.IndexEntry) evalindex.IndexEntry {
		e.Status = evalindex.StatusReviewRequested
		return e
	}, evalindex.MustExist())
	if err != nil {
		return nil, err
	}

	s.mirrorSummary(ctx, recordPath, record)

	go func() {
		if err := s.emailService.SendSubmissionNotice(s.cfg.Auth.InstructorEmails, record.Name, record.Language, record.Category); err != nil {
			s.logger.Warn("Evaluation", "Failed to email instructors", map[string]interface{}{"error": err.Error()})
		}
	}()

	return &dto.StatusUpdateResponse{DropboxPath: recordPath, Status: string(evalindex.StatusReviewRequested)}, nil
}

func (s *evaluationService) SaveScores(ctx context.Context, evaluatedBy, recordPath string, req *dto.SaveScoresRequest) (*dto.StatusUpdateResponse, error) {
	record, err := s.downloadRecord(ctx, recordPath)
	if err != nil {
		return nil, err
	}

	evaluatedAt := time.Now().UTC().Format(time.RFC3339)
	record.Scores = req.Scores
	record.TotalScore = &req.TotalScore
	record.Grade = req.Grade
	record.Comments = req.Comments
	record.EvaluatedBy = evaluatedBy
	record.EvaluatedAt = evaluatedAt

	if err := s.uploadRecord(ctx, recordPath, record); err != nil {
		return nil, fmt.Errorf("%w: %w", evalindex.ErrStoreUnavailable, err)
	}

	// The record is the source of truth for scores; the index copy is a
	// display cache, so this is the one call site allowed to win a race by
	// unconditional overwrite rather than fail the instructor's save.
	totalScore := req.TotalScore
	err = s.index.UpdateEntry(ctx, recordPath, func(e evalindex.IndexEntry) evalindex.IndexEntry {
		e.TotalScore = &totalScore
		e.Grade = req.Grade
		e.EvaluatedBy = evaluatedBy
		e.EvaluatedAt = evaluatedAt
		return e
	}, evalindex.AllowLossyFallback())
	if err != nil {
		s.logger.Warn("Evaluation", "Score mirror to index failed", map[string]interface{}{
			"dropbox_path": recordPath,
			"error":        err.Error(),
		})
	}

	s.mirrorSummary(ctx, recordPath, record)

	return &dto.StatusUpdateResponse{DropboxPath: recordPath, Status: record.Status}, nil
}

func (s *evaluationService) Finalize(ctx context.Context, evaluatedBy, recordPath string) (*dto.StatusUpdateResponse, error) {
	record, err := s.downloadRecord(ctx, recordPath)
	if err != nil {
		return nil, err
	}
	if record.TotalScore == nil {
		return nil, serverutils.NewValidationError("record has no scores yet")
	}

	completedPath := fmt.Sprintf("%s/%s", s.cfg.Dropbox.CompletedDir, path.Base(recordPath))

	record.Status = string(evalindex.StatusSubmitted)
	if err := s.uploadRecord(ctx, recordPath, record); err != nil {
		return nil, fmt.Errorf("%w: %w", evalindex.ErrStoreUnavailable, err)
	}

	if _, err := s.blobStore.Move(ctx, recordPath, completedPath); err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", evalindex.ErrStoreUnavailable, err)
	}

	// Path and status move together; a reader never sees the new path with
	// the old status or vice versa.
	err = s.index.UpdateEntry(ctx, recordPath, func(e evalindex.IndexEntry) evalindex.IndexEntry {
		e.DropboxPath = completedPath
		e.Status = evalindex.StatusSubmitted
		e.TotalScore = record.TotalScore
		e.Grade = record.Grade
		e.EvaluatedBy = record.EvaluatedBy
		e.EvaluatedAt = record.EvaluatedAt
		return e
	}, evalindex.MustExist())
	if err != nil {
		// The record already lives at the new path. Hand the index fix to
		// the reconciler instead of unwinding the move.
		s.logger.Error("Evaluation", "Record relocated but index update failed", map[string]interface{}{
			"from":  recordPath,
			"to":    completedPath,
			"error": err.Error(),
		})
		s.requestIndexRepair(ctx, recordPath, completedPath, dto.RepairReasonRelocated)
	}

	s.mirrorSummary(ctx, completedPath, record)
	s.publishEvent(ctx, events.NewRecordRelocated(record.EmployeeID, recordPath, completedPath))

	s.logger.Info("Evaluation", "Record finalized", map[string]interface{}{
		"from":         recordPath,
		"to":           completedPath,
		"evaluated_by": evaluatedBy,
	})

	return &dto.StatusUpdateResponse{DropboxPath: completedPath, Status: string(evalindex.StatusSubmitted)}, nil
}

func (s *evaluationService) Approve(ctx context.Context, evaluatedBy, recordPath string, req *dto.ApproveEvaluationRequest) (*dto.StatusUpdateResponse, error) {
	record, err := s.downloadRecord(ctx, recordPath)
	if err != nil {
		return nil, err
	}
	if record.Status != string(evalindex.StatusSubmitted) {
		return nil, serverutils.NewValidationError("only finalized records can be approved, got %q", record.Status)
	}

	evaluatedAt := time.Now().UTC().Format(time.RFC3339)
	record.Status = string(evalindex.StatusApproved)
	record.Approved = true
	record.TotalScore = &req.TotalScore
	record.Grade = req.Grade
	if len(req.Scores) > 0 {
		record.Scores = req.Scores
	}
	if req.Comments != "" {
		record.Comments = req.Comments
	}
	record.EvaluatedBy = evaluatedBy
	record.EvaluatedAt = evaluatedAt

	if err := s.uploadRecord(ctx, recordPath, record); err != nil {
		return nil, fmt.Errorf("%w: %w", evalindex.ErrStoreUnavailable, err)
	}

	totalScore := req.TotalScore
	err = s.index.UpdateEntry(ctx, recordPath, func(e evalindex.IndexEntry) evalindex.IndexEntry {
		e.Status = evalindex.StatusApproved
		e.Approved = true
		e.TotalScore = &totalScore
		e.Grade = req.Grade
		e.EvaluatedBy = evaluatedBy
		e.EvaluatedAt = evaluatedAt
		return e
	}, evalindex.MustExist())
	if err != nil {
		return nil, err
	}

	s.mirrorSummary(ctx, recordPath, record)
	s.publishEvent(ctx, events.NewEvaluationApproved(record.EmployeeID, recordPath, evaluatedBy))

	go func(toEmail, name, grade string) {
		if toEmail == "" {
			return
		}
		if err := s.emailService.SendApprovalNotice(toEmail, name, grade); err != nil {
			s.logger.Warn("Evaluation", "Failed to email candidate", map[string]interface{}{"error": err.Error()})
		}
	}(s.candidateEmail(ctx, record.EmployeeID), record.Name, record.Grade)

	return &dto.StatusUpdateResponse{DropboxPath: recordPath, Status: string(evalindex.StatusApproved)}, nil
}

func (s *evaluationService) Reevaluate(ctx context.Context, recordPath string) (*dto.StatusUpdateResponse, error) {
	record, err := s.downloadRecord(ctx, recordPath)
	if err != nil {
		return nil, err
	}
	if record.Status != string(evalindex.StatusSubmitted) && record.Status != string(evalindex.StatusApproved) {
		return nil, serverutils.NewValidationError("only finalized records can be re-evaluated, got %q", record.Status)
	}

	pendingPath := fmt.Sprintf("%s/%s", s.cfg.Dropbox.PendingDir, path.Base(recordPath))

	record.Status = string(evalindex.StatusPending)
	record.Approved = false
	if err := s.uploadRecord(ctx, recordPath, record); err != nil {
		return nil, fmt.Errorf("%w: %w", evalindex.ErrStoreUnavailable, err)
	}

	if _, err := s.blobStore.Move(ctx, recordPath, pendingPath); err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", evalindex.ErrStoreUnavailable, err)
	}

	err = s.index.UpdateEntry(ctx, recordPath, func(e evalindex.IndexEntry) evalindex.IndexEntry {
		e.DropboxPath = pendingPath
		e.Status = evalindex.StatusPending
		e.Approved = false
		return e
	}, evalindex.MustExist())
	if err != nil {
		s.logger.Error("Evaluation", "Record relocated but index update failed", map[string]interface{}{
			"from":  recordPath,
			"to":    pendingPath,
			"error": err.Error(),
		})
		s.requestIndexRepair(ctx, recordPath, pendingPath, dto.RepairReasonRelocated)
	}

	s.mirrorSummary(ctx, pendingPath, record)
	s.publishEvent(ctx, events.NewEvaluationReopened(record.EmployeeID, pendingPath))

	return &dto.StatusUpdateResponse{DropboxPath: pendingPath, Status: string(evalindex.StatusPending)}, nil
}

func (s *evaluationService) Delete(ctx context.Context, recordPath string) (*dto.StatusUpdateResponse, error) {
	record, err := s.downloadRecord(ctx, recordPath)
	if err != nil {
		return nil, err
	}

	trashPath := fmt.Sprintf("%s/%s", s.cfg.Dropbox.TrashDir, path.Base(recordPath))

	if _, err := s.blobStore.Move(ctx, recordPath, trashPath); err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", evalindex.ErrStoreUnavailable, err)
	}

	// The index entry is marked rather than removed, so deleted submissions
	// stay auditable and no orphan row is left pointing at a gone file.
	err = s.index.UpdateEntry(ctx, recordPath, func(e evalindex.IndexEntry) evalindex.IndexEntry {
		e.DropboxPath = trashPath
		e.Status = evalindex.StatusDeleted
		return e
	})
	if err != nil {
		s.logger.Error("Evaluation", "Record trashed but index update failed", map[string]interface{}{
			"from":  recordPath,
			"to":    trashPath,
			"error": err.Error(),
		})
		s.requestIndexRepair(ctx, recordPath, trashPath, dto.RepairReasonDeleted)
	}

	record.Status = string(evalindex.StatusDeleted)
	s.mirrorSummary(ctx, trashPath, record)
	s.publishEvent(ctx, events.NewEvaluationDeleted(record.EmployeeID, recordPath))

	return &dto.StatusUpdateResponse{DropboxPath: trashPath, Status: string(evalindex.StatusDeleted)}, nil
}

func (s *evaluationService) Mine(ctx context.Context, employeeID string) ([]dto.EvaluationItemResponse, error) {
	entries, err := s.index.QueryByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.EvaluationItemResponse, 0, len(entries))
	for _, entry := range entries {
		if entry.Status == evalindex.StatusDeleted {
			continue
		}
		items = append(items, entryToItem(entry))
	}
	return items, nil
}

func (s *evaluationService) ListPending(ctx context.Context) ([]dto.EvaluationRecordResponse, error) {
	return s.listByStatus(ctx, evalindex.StatusPending, evalindex.StatusReviewRequested)
}

func (s *evaluationService) ListCompleted(ctx context.Context) ([]dto.EvaluationRecordResponse, error) {
	return s.listByStatus(ctx, evalindex.StatusSubmitted, evalindex.StatusApproved)
}

func (s *evaluationService) LoadRecord(ctx context.Context, recordPath string) (*dto.EvaluationRecordResponse, error) {
	record, err := s.downloadRecord(ctx, recordPath)
	if err != nil {
		return nil, err
	}
	resp := recordToResponse(recordPath, record)
	return &resp, nil
}

// listByStatus filters the index by status and then loads every matching
// full record. The index narrows the candidate set but the records are the
// source of truth; entries whose file is gone are skipped and handed to
// the reconciler.
func (s *evaluationService) listByStatus(ctx context.Context, statuses ...evalindex.Status) ([]dto.EvaluationRecordResponse, error) {
	entries, _, err := s.index.ReadIndex(ctx)
	if err != nil {
		return nil, err
	}

	wanted := make(map[evalindex.Status]bool, len(statuses))
	for _, status := range statuses {
		wanted[status] = true
	}

	result := make([]dto.EvaluationRecordResponse, 0)
	for _, entry := range entries {
		if !wanted[entry.Status] {
			continue
		}
		record, err := s.downloadRecord(ctx, entry.DropboxPath)
		if err != nil {
			if errors.Is(err, blob.ErrNotFound) {
				s.logger.Warn("Evaluation", "Index entry points at missing record", map[string]interface{}{
					"dropbox_path": entry.DropboxPath,
				})
				s.requestIndexRepair(ctx, entry.DropboxPath, "", dto.RepairReasonMissing)
				continue
			}
			return nil, err
		}
		result = append(result, recordToResponse(entry.DropboxPath, record))
	}
	return result, nil
}

func (s *evaluationService) downloadRecord(ctx context.Context, recordPath string) (*entity.EvaluationRecord, error) {
	content, err := s.blobStore.Download(ctx, recordPath)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", evalindex.ErrStoreUnavailable, err)
	}

	var record entity.EvaluationRecord
	if err := json.Unmarshal(content, &record); err != nil {
		return nil, fmt.Errorf("%w: malformed record at %s: %w", evalindex.ErrStoreUnavailable, recordPath, err)
	}
	return &record, nil
}

func (s *evaluationService) uploadRecord(ctx context.Context, recordPath string, record *entity.EvaluationRecord) error {
	content, err := json.Marshal(record)
	if err != nil {
		return err
	}
	_, err = s.blobStore.Upload(ctx, recordPath, content)
	return err
}

// mirrorSummary refreshes the Postgres reporting row. Failures are logged
// and swallowed; the relational mirror never blocks the workflow.
func (s *evaluationService) mirrorSummary(ctx context.Context, recordPath string, record *entity.EvaluationRecord) {
	if s.uowFactory == nil {
		return
	}

	submittedAt, err := time.Parse(time.RFC3339, record.SubmittedAt)
	if err != nil {
		submittedAt = time.Now().UTC()
	}

	scores := make(map[string]interface{}, len(record.Scores))
	for k, v := range record.Scores {
		scores[k] = v
	}

	var evaluatedAt *time.Time
	if record.EvaluatedAt != "" {
		if t, err := time.Parse(time.RFC3339, record.EvaluatedAt); err == nil {
			evaluatedAt = &t
		}
	}

	summary := &entity.EvaluationSummary{
		Id:          uuid.New(),
		EmployeeID:  record.EmployeeID,
		Name:        record.Name,
		Language:    record.Language,
		Category:    record.Category,
		DropboxPath: recordPath,
		Status:      record.Status,
		Approved:    record.Approved,
		TotalScore:  record.TotalScore,
		Grade:       record.Grade,
		Scores:      scores,
		EvaluatedBy: record.EvaluatedBy,
		EvaluatedAt: evaluatedAt,
		SubmittedAt: submittedAt,
		CreatedAt:   time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.EvaluationSummaryRepository().Upsert(ctx, summary); err != nil {
		s.logger.Warn("Evaluation", "Failed to mirror summary to database", map[string]interface{}{
			"dropbox_path": recordPath,
			"error":        err.Error(),
		})
	}
}

func (s *evaluationService) publishEvent(ctx context.Context, evt events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("Evaluation", "Failed to publish event", map[string]interface{}{
			"event": evt.EventType(),
			"error": err.Error(),
		})
	}
}

func (s *evaluationService) requestIndexRepair(ctx context.Context, fromPath, newPath, reason string) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(dto.IndexRepairMessage{
		DropboxPath: fromPath,
		NewPath:     newPath,
		Reason:      reason,
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("Evaluation", "Failed to queue index repair", map[string]interface{}{
			"dropbox_path": fromPath,
			"error":        err.Error(),
		})
	}
}

func (s *evaluationService) candidateEmail(ctx context.Context, employeeID string) string {
	if s.uowFactory == nil {
		return ""
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmployeeID{EmployeeID: employeeID})
	if err != nil || user == nil {
		return ""
	}
	return user.Email
}

func entryToItem(entry evalindex.IndexEntry) dto.EvaluationItemResponse {
	return dto.EvaluationItemResponse{
		EmployeeID:  entry.EmployeeID,
		Name:        entry.Name,
		Language:    entry.Language,
		Category:    entry.Category,
		SubmittedAt: entry.SubmittedAt,
		DropboxPath: entry.DropboxPath,
		Status:      string(entry.Status),
		Approved:    entry.Approved,
		TotalScore:  entry.TotalScore,
		Grade:       entry.Grade,
		EvaluatedAt: entry.EvaluatedAt,
		EvaluatedBy: entry.EvaluatedBy,
	}
}

func recordToResponse(recordPath string, record *entity.EvaluationRecord) dto.EvaluationRecordResponse {
	return dto.EvaluationRecordResponse{
		EvaluationItemResponse: dto.EvaluationItemResponse{
			EmployeeID:  record.EmployeeID,
			Name:        record.Name,
			Language:    record.Language,
			Category:    record.Category,
			SubmittedAt: record.SubmittedAt,
			DropboxPath: recordPath,
			Status:      record.Status,
			Approved:    record.Approved,
			TotalScore:  record.TotalScore,
			Grade:       record.Grade,
			EvaluatedAt: record.EvaluatedAt,
			EvaluatedBy: record.EvaluatedBy,
		},
		Script:        record.Script,
		RecordingPath: record.RecordingPath,
		Scores:        record.Scores,
		Comments:      record.Comments,
	}
}
