package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"broadcast-eval-be/internal/dto"
	"broadcast-eval-be/internal/entity"
	"broadcast-eval-be/internal/pkg/logger"
	"broadcast-eval-be/pkg/blob"
	"broadcast-eval-be/pkg/evalindex"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IReconcilerService consumes index repair messages and brings the shared
// index back in line with the blob store after a workflow step could not
// update both sides.
type IReconcilerService interface {
	Consume(ctx context.Context) error
}

type reconcilerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	blobStore blob.Store
	index     *evalindex.Store
	logger    logger.ILogger
}

func NewReconcilerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	blobStore blob.Store,
	index *evalindex.Store,
	log logger.ILogger,
) IReconcilerService {
	return &reconcilerService{
		pubSub:    pubSub,
		topicName: topicName,
		blobStore: blobStore,
		index:     index,
		logger:    log,
	}
}

func (s *reconcilerService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *reconcilerService) processMessage(ctx context.Context, msg *message.Message) {
	var repair dto.IndexRepairMessage
	if err := json.Unmarshal(msg.Payload, &repair); err != nil {
		s.logger.Error("Reconciler", "Dropping unreadable repair message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	var err error
	switch repair.Reason {
	case dto.RepairReasonRelocated:
		err = s.repairRelocated(ctx, repair)
	case dto.RepairReasonDeleted:
		err = s.repairDeleted(ctx, repair)
	case dto.RepairReasonMissing:
		err = s.repairMissing(ctx, repair)
	default:
		s.logger.Warn("Reconciler", "Unknown repair reason", map[string]interface{}{
			"reason": repair.Reason,
		})
		msg.Ack()
		return
	}

	if err != nil {
		if errors.Is(err, evalindex.ErrStoreUnavailable) || errors.Is(err, evalindex.ErrWriteConflict) {
			// Transient: redeliver and try again later.
			s.logger.Warn("Reconciler", "Repair failed, will retry", map[string]interface{}{
				"dropbox_path": repair.DropboxPath,
				"reason":       repair.Reason,
				"error":        err.Error(),
			})
			msg.Nack()
			return
		}
		s.logger.Error("Reconciler", "Repair failed permanently", map[string]interface{}{
			"dropbox_path": repair.DropboxPath,
			"reason":       repair.Reason,
			"error":        err.Error(),
		})
		msg.Ack()
		return
	}

	s.logger.Info("Reconciler", "Index entry repaired", map[string]interface{}{
		"dropbox_path": repair.DropboxPath,
		"reason":       repair.Reason,
	})
	msg.Ack()
}

// repairRelocated re-points an entry whose backing record was moved but
// whose index update lost the conditional-write race.
func (s *reconcilerService) repairRelocated(ctx context.Context, repair dto.IndexRepairMessage) error {
	record, err := s.loadRecord(ctx, repair.NewPath)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			// The record moved again or was trashed since; mark the stale
			// entry deleted so it stops pointing at a gone file.
			return s.markDeleted(ctx, repair.DropboxPath, repair.DropboxPath)
		}
		return err
	}

	err = s.index.UpdateEntry(ctx, repair.DropboxPath, func(e evalindex.IndexEntry) evalindex.IndexEntry {
		return entryFromRecord(repair.NewPath, record, e)
	}, evalindex.MustExist())
	if errors.Is(err, evalindex.ErrEntryNotFound) {
		// No entry under the old path. Either the inline update landed
		// after all or the entry never existed; make sure the new path is
		// registered.
		return s.ensureEntry(ctx, repair.NewPath, record)
	}
	return err
}

func (s *reconcilerService) repairDeleted(ctx context.Context, repair dto.IndexRepairMessage) error {
	return s.markDeleted(ctx, repair.DropboxPath, repair.NewPath)
}

// repairMissing handles entries or records reported out of sync without a
// known target: the blob store decides which side wins.
func (s *reconcilerService) repairMissing(ctx context.Context, repair dto.IndexRepairMessage) error {
	record, err := s.loadRecord(ctx, repair.DropboxPath)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return s.markDeleted(ctx, repair.DropboxPath, repair.DropboxPath)
		}
		return err
	}
	return s.ensureEntry(ctx, repair.DropboxPath, record)
}

func (s *reconcilerService) markDeleted(ctx context.Context, matchPath, finalPath string) error {
	// Missing entry is fine here: nothing left to repair.
	return s.index.UpdateEntry(ctx, matchPath, func(e evalindex.IndexEntry) evalindex.IndexEntry {
		e.DropboxPath = finalPath
		e.Status = evalindex.StatusDeleted
		return e
	})
}

// ensureEntry appends an index entry rebuilt from the record unless one
// already exists for the path.
func (s *reconcilerService) ensureEntry(ctx context.Context, recordPath string, record *entity.EvaluationRecord) error {
	entries, _, err := s.index.ReadIndex(ctx)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.DropboxPath == recordPath {
			return nil
		}
	}

	entry := entryFromRecord(recordPath, record, evalindex.IndexEntry{})
	if entry.SubmittedAt == "" {
		entry.SubmittedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return s.index.AppendEntry(ctx, entry)
}

func (s *reconcilerService) loadRecord(ctx context.Context, recordPath string) (*entity.EvaluationRecord, error) {
	content, err := s.blobStore.Download(ctx, recordPath)
	if err != nil {
		return nil, err
	}
	var record entity.EvaluationRecord
	if err := json.Unmarshal(content, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// entryFromRecord rebuilds the index view of a record, keeping the
// original SubmittedAt of the existing entry when present.
func entryFromRecord(recordPath string, record *entity.EvaluationRecord, existing evalindex.IndexEntry) evalindex.IndexEntry {
	submittedAt := existing.SubmittedAt
	if submittedAt == "" {
		submittedAt = record.SubmittedAt
	}

	status := evalindex.Status(record.Status)
	if !status.Valid() {
		status = evalindex.StatusPending
	}

	return evalindex.IndexEntry{
		EmployeeID:  record.EmployeeID,
		Name:        record.Name,
		Language:    record.Language,
		Category:    record.Category,
		SubmittedAt: submittedAt,
		DropboxPath: recordPath,
		Status:      status,
		Approved:    record.Approved,
		TotalScore:  record.TotalScore,
		Grade:       record.Grade,
		EvaluatedAt: record.EvaluatedAt,
		EvaluatedBy: record.EvaluatedBy,
	}
}
