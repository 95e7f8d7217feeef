package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"broadcast-eval-be/internal/dto"
	"broadcast-eval-be/internal/entity"
	"broadcast-eval-be/internal/pkg/logger"
	blobMemory "broadcast-eval-be/pkg/blob/memory"
	"broadcast-eval-be/pkg/evalindex"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRepairTopic = "index_repair_test"

type reconcilerFixture struct {
	blobStore *blobMemory.Store
	index     *evalindex.Store
	publisher IPublisherService
}

func newReconcilerFixture(t *testing.T) *reconcilerFixture {
	t.Helper()

	blobStore := blobMemory.NewStore()
	index := evalindex.NewStore(blobStore, "/evaluations/index.json", logger.NewNopLogger())

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { pubSub.Close() })

	svc := NewReconcilerService(pubSub, testRepairTopic, blobStore, index, logger.NewNopLogger())
	require.NoError(t, svc.Consume(context.Background()))

	return &reconcilerFixture{
		blobStore: blobStore,
		index:     index,
		publisher: NewPublisherService(testRepairTopic, pubSub),
	}
}

func (f *reconcilerFixture) storeRecord(t *testing.T, path string, record entity.EvaluationRecord) {
	t.Helper()
	content, err := json.Marshal(record)
	require.NoError(t, err)
	_, err = f.blobStore.Upload(context.Background(), path, content)
	require.NoError(t, err)
}

func (f *reconcilerFixture) publishRepair(t *testing.T, repair dto.IndexRepairMessage) {
	t.Helper()
	payload, err := json.Marshal(repair)
	require.NoError(t, err)
	require.NoError(t, f.publisher.Publish(context.Background(), payload))
}

func (f *reconcilerFixture) entryAt(t *testing.T, path string) (evalindex.IndexEntry, bool) {
	t.Helper()
	entries, _, err := f.index.ReadIndex(context.Background())
	require.NoError(t, err)
	for _, entry := range entries {
		if entry.DropboxPath == path {
			return entry, true
		}
	}
	return evalindex.IndexEntry{}, false
}

func pendingRecord(employeeID string) entity.EvaluationRecord {
	return entity.EvaluationRecord{
		EmployeeID:  employeeID,
		Name:        "Kim Jiyoon",
		Language:    "english",
		Category:    "international",
		Script:      "Welcome aboard.",
		SubmittedAt: time.Now().UTC().Format(time.RFC3339),
		Status:      string(evalindex.StatusPending),
	}
}

func TestReconcilerRepointsRelocatedEntry(t *testing.T) {
	f := newReconcilerFixture(t)

	oldPath := "/evaluations/pending/CA1234_english_a.json"
	newPath := "/evaluations/completed/CA1234_english_a.json"

	record := pendingRecord("CA1234")
	record.Status = string(evalindex.StatusSubmitted)
	f.storeRecord(t, newPath, record)

	require.NoError(t, f.index.AppendEntry(context.Background(), evalindex.IndexEntry{
		EmployeeID:  "CA1234",
		Name:        record.Name,
		Language:    record.Language,
		Category:    record.Category,
		SubmittedAt: record.SubmittedAt,
		DropboxPath: oldPath,
		Status:      evalindex.StatusPending,
	}))

	f.publishRepair(t, dto.IndexRepairMessage{
		DropboxPath: oldPath,
		NewPath:     newPath,
		Reason:      dto.RepairReasonRelocated,
	})

	assert.Eventually(t, func() bool {
		entry, ok := f.entryAt(t, newPath)
		return ok && entry.Status == evalindex.StatusSubmitted
	}, 2*time.Second, 20*time.Millisecond)

	_, stale := f.entryAt(t, oldPath)
	assert.False(t, stale)
}

func TestReconcilerRebuildsMissingEntryFromRecord(t *testing.T) {
	f := newReconcilerFixture(t)

	path := "/evaluations/pending/CA5678_korean_b.json"
	f.storeRecord(t, path, pendingRecord("CA5678"))

	f.publishRepair(t, dto.IndexRepairMessage{
		DropboxPath: path,
		Reason:      dto.RepairReasonMissing,
	})

	assert.Eventually(t, func() bool {
		entry, ok := f.entryAt(t, path)
		return ok && entry.EmployeeID == "CA5678" && entry.Status == evalindex.StatusPending
	}, 2*time.Second, 20*time.Millisecond)
}

func TestReconcilerMarksEntryDeletedWhenRecordIsGone(t *testing.T) {
	f := newReconcilerFixture(t)

	path := "/evaluations/pending/CA9012_english_c.json"
	require.NoError(t, f.index.AppendEntry(context.Background(), evalindex.IndexEntry{
		EmployeeID:  "CA9012",
		Name:        "Lee Minho",
		Language:    "english",
		Category:    "domestic",
		SubmittedAt: time.Now().UTC().Format(time.RFC3339),
		DropboxPath: path,
		Status:      evalindex.StatusPending,
	}))

	f.publishRepair(t, dto.IndexRepairMessage{
		DropboxPath: path,
		Reason:      dto.RepairReasonMissing,
	})

	assert.Eventually(t, func() bool {
		entry, ok := f.entryAt(t, path)
		return ok && entry.Status == evalindex.StatusDeleted
	}, 2*time.Second, 20*time.Millisecond)
}

func TestReconcilerMarksTrashedEntryDeleted(t *testing.T) {
	f := newReconcilerFixture(t)

	oldPath := "/evaluations/pending/CA3456_japanese_d.json"
	trashPath := "/evaluations/trash/CA3456_japanese_d.json"
	require.NoError(t, f.index.AppendEntry(context.Background(), evalindex.IndexEntry{
		EmployeeID:  "CA3456",
		Name:        "Sato Yuki",
		Language:    "japanese",
		Category:    "irregular",
		SubmittedAt: time.Now().UTC().Format(time.RFC3339),
		DropboxPath: oldPath,
		Status:      evalindex.StatusPending,
	}))

	f.publishRepair(t, dto.IndexRepairMessage{
		DropboxPath: oldPath,
		NewPath:     trashPath,
		Reason:      dto.RepairReasonDeleted,
	})

	assert.Eventually(t, func() bool {
		entry, ok := f.entryAt(t, trashPath)
		return ok && entry.Status == evalindex.StatusDeleted
	}, 2*time.Second, 20*time.Millisecond)
}
