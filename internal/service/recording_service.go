package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"broadcast-eval-be/internal/config"
	"broadcast-eval-be/internal/dto"
	"broadcast-eval-be/internal/pkg/logger"
	"broadcast-eval-be/internal/pkg/serverutils"
	"broadcast-eval-be/pkg/blob"
	"broadcast-eval-be/pkg/evalindex"

	"github.com/google/uuid"
)

// maxRecordingSize caps announcement audio uploads at 25 MB.
const maxRecordingSize = 25 << 20

var allowedRecordingExts = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".wav":  true,
	".webm": true,
	".ogg":  true,
}

type IRecordingService interface {
	// UploadRecording stores an announcement audio file and returns the
	// blob path to reference from a submission.
	UploadRecording(ctx context.Context, employeeID string, file *multipart.FileHeader) (*dto.UploadRecordingResponse, error)

	// DownloadRecording streams a stored recording back.
	DownloadRecording(ctx context.Context, recordingPath string) ([]byte, string, error)
}

type recordingService struct {
	blobStore blob.Store
	cfg       *config.Config
	logger    logger.ILogger
}

func NewRecordingService(blobStore blob.Store, cfg *config.Config, log logger.ILogger) IRecordingService {
	return &recordingService{
		blobStore: blobStore,
		cfg:       cfg,
		logger:    log,
	}
}

func (s *recordingService) UploadRecording(ctx context.Context, employeeID string, file *multipart.FileHeader) (*dto.UploadRecordingResponse, error) {
	if file.Size > maxRecordingSize {
		return nil, serverutils.NewValidationError("recording exceeds %d bytes", maxRecordingSize)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedRecordingExts[ext] {
		return nil, serverutils.NewValidationError("unsupported recording type %q", ext)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", evalindex.ErrStoreUnavailable, err)
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", evalindex.ErrStoreUnavailable, err)
	}

	recordingPath := fmt.Sprintf("%s/%s_%s%s", s.cfg.Dropbox.RecordingDir, employeeID, uuid.New().String(), ext)

	meta, err := s.blobStore.Upload(ctx, recordingPath, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", evalindex.ErrStoreUnavailable, err)
	}

	s.logger.Info("Recording", "Recording stored", map[string]interface{}{
		"employee_id": employeeID,
		"path":        recordingPath,
		"size":        meta.Size,
	})

	return &dto.UploadRecordingResponse{
		Path: meta.Path,
		Size: meta.Size,
	}, nil
}

func (s *recordingService) DownloadRecording(ctx context.Context, recordingPath string) ([]byte, string, error) {
	// Only paths under the recording area are servable through this route.
	if !strings.HasPrefix(recordingPath, s.cfg.Dropbox.RecordingDir+"/") {
		return nil, "", serverutils.NewValidationError("path is not a recording")
	}

	content, err := s.blobStore.Download(ctx, recordingPath)
	if err != nil {
		return nil, "", err
	}
	return content, filepath.Base(recordingPath), nil
}
